package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"

	"fit-agent/internal/domain"
)

const workoutSystemPrompt = `You are an expert strength coach and personal trainer.

Your role is to create safe, effective, and personalized workout programs
based on the user's goals, experience level, equipment access, and constraints.

Guidelines:
1. Prioritize safety and sustainable progress
2. Account for recovery capacity based on age, experience, and lifestyle
3. Use progressive overload principles
4. Recommend appropriate exercise selection for available equipment
5. Consider any injuries or limitations
6. Balance training volume with recovery

Respond with a single JSON object with the keys "weeks" (int), "phases"
(array of objects), "exercises" (array of strings), "frequency" (int,
workouts per week) and "rationale" (string).`

const nutritionSystemPrompt = `You are an expert sports nutritionist and dietitian.

Your role is to recommend appropriate macro targets and meal suggestions
based on the user's goals, activity level, and preferences.

Guidelines:
1. Use evidence-based nutrition principles
2. Prioritize protein intake for muscle recovery and growth
3. Adjust carbs and fats based on training volume and goals
4. Consider dietary preferences and restrictions
5. Provide practical, sustainable recommendations
6. Calculate appropriate calorie targets for goals

Respond with a single JSON object with the keys "daily_protein_g" (int),
"daily_carbs_g" (int), "daily_fat_g" (int), "daily_calories" (int),
"meal_suggestions" (array of strings) and "rationale" (string).`

const analysisSystemPrompt = `You are an AI fitness coach analyzing user progress.

Review the provided data and identify:
- Progress trends (improving, plateauing, declining)
- Potential issues or concerns
- Correlation between training, nutrition, and results
- Specific, actionable recommendations

Be supportive but honest. Celebrate wins and provide constructive feedback.`

// WorkoutPlanOutput é a saída estruturada de um plano de treino
type WorkoutPlanOutput struct {
	Weeks     int                      `json:"weeks"`
	Phases    []map[string]interface{} `json:"phases"`
	Exercises []string                 `json:"exercises"`
	Frequency int                      `json:"frequency"` // treinos por semana
	Rationale string                   `json:"rationale"`
}

// MealPlanOutput é a saída estruturada de metas nutricionais
type MealPlanOutput struct {
	DailyProteinG   int      `json:"daily_protein_g"`
	DailyCarbsG     int      `json:"daily_carbs_g"`
	DailyFatG       int      `json:"daily_fat_g"`
	DailyCalories   int      `json:"daily_calories"`
	MealSuggestions []string `json:"meal_suggestions"`
	Rationale       string   `json:"rationale"`
}

// WorkoutPlanParams são os dados do usuário para geração de plano de treino
type WorkoutPlanParams struct {
	Goals            string
	ExperienceLevel  string
	EquipmentAccess  []string
	TimeAvailability int // minutos por semana
	Injuries         string
	Age              *int
}

// NutritionPlanParams são os dados do usuário para metas nutricionais
type NutritionPlanParams struct {
	Goals              string
	WeightLbs          float64
	ActivityLevel      string
	DietaryPreferences string
}

// ChatClient é a superfície do provedor de AI usada pelo serviço.
// *openai.Client satisfaz a interface; os testes injetam um stub.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// AIService embrulha o provedor de geração de texto. O provedor é tratado
// como dependência opaca, lenta e sujeita a falhas: qualquer erro ou saída
// inutilizável vira AIServiceFailure, com o detalhe preservado nos logs.
type AIService struct {
	client ChatClient
	model  string
	logger domain.Logger
}

// NewAIService cria o serviço sobre um cliente OpenAI
func NewAIService(apiKey, model string, log domain.Logger) *AIService {
	return &AIService{
		client: openai.NewClient(apiKey),
		model:  model,
		logger: log,
	}
}

// NewAIServiceWithClient cria o serviço sobre um cliente injetado (testes)
func NewAIServiceWithClient(client ChatClient, model string, log domain.Logger) *AIService {
	return &AIService{client: client, model: model, logger: log}
}

// GenerateWorkoutPlan gera um plano de treino personalizado
func (s *AIService) GenerateWorkoutPlan(ctx context.Context, userID uuid.UUID, params WorkoutPlanParams) (*WorkoutPlanOutput, error) {
	age := "Not specified"
	if params.Age != nil {
		age = fmt.Sprintf("%d", *params.Age)
	}
	injuries := params.Injuries
	if injuries == "" {
		injuries = "None"
	}

	prompt := fmt.Sprintf(`Create a personalized workout program for this user:

Goals: %s
Experience Level: %s
Available Equipment: %s
Time Availability: %d minutes per week
Age: %s
Injuries/Limitations: %s

Generate a complete workout plan with:
- Appropriate training frequency (workouts per week)
- Program duration and phases
- Specific exercises
- Clear rationale for your recommendations
`, params.Goals, params.ExperienceLevel, strings.Join(params.EquipmentAccess, ", "),
		params.TimeAvailability, age, injuries)

	var output WorkoutPlanOutput
	if err := s.complete(ctx, userID, workoutSystemPrompt, prompt, &output); err != nil {
		return nil, err
	}
	return &output, nil
}

// GenerateNutritionTargets gera metas nutricionais personalizadas
func (s *AIService) GenerateNutritionTargets(ctx context.Context, userID uuid.UUID, params NutritionPlanParams) (*MealPlanOutput, error) {
	preferences := params.DietaryPreferences
	if preferences == "" {
		preferences = "None"
	}

	prompt := fmt.Sprintf(`Create personalized nutrition targets for this user:

Goals: %s
Current Weight: %.1f lbs
Activity Level: %s
Dietary Preferences: %s

Generate nutrition recommendations with:
- Daily macro targets (protein, carbs, fats)
- Total daily calorie target
- Sample meal suggestions
- Clear rationale for your recommendations
`, params.Goals, params.WeightLbs, params.ActivityLevel, preferences)

	var output MealPlanOutput
	if err := s.complete(ctx, userID, nutritionSystemPrompt, prompt, &output); err != nil {
		return nil, err
	}
	return &output, nil
}

// AnalyzeProgress produz uma análise textual do progresso recente
func (s *AIService) AnalyzeProgress(ctx context.Context, userID uuid.UUID, workouts, weights, meals interface{}) (string, error) {
	workoutJSON, _ := json.Marshal(workouts)
	weightJSON, _ := json.Marshal(weights)
	mealJSON, _ := json.Marshal(meals)

	prompt := fmt.Sprintf(`Analyze this user's recent fitness data:

Workout History:
%s

Weight History:
%s

Meal History:
%s

Provide a concise analysis with:
1. Key observations
2. Progress assessment
3. Specific recommendations for improvement
`, workoutJSON, weightJSON, mealJSON)

	content, err := s.chat(ctx, userID, analysisSystemPrompt, prompt, false)
	if err != nil {
		return "", err
	}
	return content, nil
}

// complete chama o provedor pedindo JSON e desserializa a saída no destino
func (s *AIService) complete(ctx context.Context, userID uuid.UUID, system, prompt string, out interface{}) error {
	content, err := s.chat(ctx, userID, system, prompt, true)
	if err != nil {
		return err
	}

	if err := json.Unmarshal([]byte(content), out); err != nil {
		s.logger.WithContext(ctx).Error("AI provider returned unusable output", err, map[string]interface{}{
			"user_id": userID.String(),
			"model":   s.model,
		})
		return domain.NewAIServiceError("AI provider returned unparseable output", err)
	}

	return nil
}

// chat executa a chamada de chat completion e retorna o conteúdo bruto
func (s *AIService) chat(ctx context.Context, userID uuid.UUID, system, prompt string, jsonMode bool) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}
	if jsonMode {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		s.logger.WithContext(ctx).Error("AI provider call failed", err, map[string]interface{}{
			"user_id": userID.String(),
			"model":   s.model,
		})
		return "", domain.NewAIServiceError("AI provider call failed", err)
	}

	if len(resp.Choices) == 0 {
		s.logger.WithContext(ctx).Error("AI provider returned no choices", nil, map[string]interface{}{
			"user_id": userID.String(),
			"model":   s.model,
		})
		return "", domain.NewAIServiceError("AI provider returned an empty response", nil)
	}

	return resp.Choices[0].Message.Content, nil
}
