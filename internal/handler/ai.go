package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"fit-agent/internal/domain"
	"fit-agent/internal/middleware"
	"fit-agent/internal/service"
)

// WorkoutPlanRequest é o corpo de geração de plano de treino
type WorkoutPlanRequest struct {
	UserGoals        string   `json:"user_goals" binding:"required"`
	ExperienceLevel  string   `json:"experience_level" binding:"required,oneof=beginner intermediate advanced"`
	EquipmentAccess  []string `json:"equipment_access" binding:"required"`
	TimeAvailability int      `json:"time_availability" binding:"required,gte=30,lte=10080"`
	Injuries         *string  `json:"injuries"`
	Age              *int     `json:"age" binding:"omitempty,gte=13,lte=120"`
}

// NutritionPlanRequest é o corpo de geração de metas nutricionais
type NutritionPlanRequest struct {
	UserGoals          string  `json:"user_goals" binding:"required"`
	WeightLbs          float64 `json:"weight_lbs" binding:"required,gte=50,lte=500"`
	ActivityLevel      string  `json:"activity_level" binding:"required,oneof=sedentary moderate active"`
	DietaryPreferences *string `json:"dietary_preferences"`
}

// GenerateWorkoutPlan gera um plano de treino personalizado via AI e
// persiste a nova versão do plano
func (h *Handlers) GenerateWorkoutPlan(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var req WorkoutPlanRequest
	if err := bindJSON(c, &req); err != nil {
		abort(c, err)
		return
	}

	params := service.WorkoutPlanParams{
		Goals:            req.UserGoals,
		ExperienceLevel:  req.ExperienceLevel,
		EquipmentAccess:  req.EquipmentAccess,
		TimeAvailability: req.TimeAvailability,
		Age:              req.Age,
	}
	if req.Injuries != nil {
		params.Injuries = *req.Injuries
	}

	output, err := h.ai.GenerateWorkoutPlan(c.Request.Context(), user.ID, params)
	if err != nil {
		abort(c, err)
		return
	}

	planData, err := json.Marshal(output)
	if err != nil {
		abort(c, domain.NewUnclassifiedError(err))
		return
	}

	weeks := output.Weeks
	if weeks <= 0 {
		weeks = 4
	}

	now := time.Now().UTC()
	plan := &domain.WorkoutPlan{
		UserID:      user.ID,
		StartDate:   now,
		EndDate:     now.AddDate(0, 0, weeks*7),
		PlanData:    datatypes.JSON(planData),
		AIRationale: &output.Rationale,
	}

	if err := h.plans.CreateWorkoutPlan(c.Request.Context(), plan); err != nil {
		abort(c, domain.NewExternalServiceError("failed to persist workout plan", err))
		return
	}

	c.JSON(http.StatusOK, output)
}

// GenerateNutritionPlan gera metas nutricionais personalizadas via AI e
// persiste a meta resultante
func (h *Handlers) GenerateNutritionPlan(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var req NutritionPlanRequest
	if err := bindJSON(c, &req); err != nil {
		abort(c, err)
		return
	}

	params := service.NutritionPlanParams{
		Goals:         req.UserGoals,
		WeightLbs:     req.WeightLbs,
		ActivityLevel: req.ActivityLevel,
	}
	if req.DietaryPreferences != nil {
		params.DietaryPreferences = *req.DietaryPreferences
	}

	output, err := h.ai.GenerateNutritionTargets(c.Request.Context(), user.ID, params)
	if err != nil {
		abort(c, err)
		return
	}

	now := time.Now().UTC()
	target := &domain.NutritionTarget{
		UserID:        user.ID,
		StartDate:     now,
		EndDate:       now.AddDate(0, 0, 28),
		DailyProteinG: output.DailyProteinG,
		DailyCarbsG:   output.DailyCarbsG,
		DailyFatG:     output.DailyFatG,
		DailyCalories: output.DailyCalories,
		AIRationale:   &output.Rationale,
	}

	if err := h.plans.CreateNutritionTarget(c.Request.Context(), target); err != nil {
		abort(c, domain.NewExternalServiceError("failed to persist nutrition target", err))
		return
	}

	c.JSON(http.StatusOK, output)
}
