package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"fit-agent/internal/domain"
	"fit-agent/internal/middleware"
)

// WeightLogCreate é o corpo de registro de peso
type WeightLogCreate struct {
	Date         time.Time              `json:"date" binding:"required"`
	WeightLbs    *float64               `json:"weight_lbs" binding:"omitempty,gte=50,lte=500"`
	BodyFatPct   *float64               `json:"body_fat_pct" binding:"omitempty,gte=0,lte=100"`
	Measurements map[string]interface{} `json:"measurements"`
}

// MealLogCreate é o corpo de registro de refeição
type MealLogCreate struct {
	Date        time.Time `json:"date" binding:"required"`
	MealType    *string   `json:"meal_type" binding:"omitempty,oneof=breakfast lunch dinner snack"`
	Description *string   `json:"description"`
	ProteinG    *float64  `json:"protein_g" binding:"omitempty,gte=0,lte=1000"`
	CarbsG      *float64  `json:"carbs_g" binding:"omitempty,gte=0,lte=1000"`
	FatG        *float64  `json:"fat_g" binding:"omitempty,gte=0,lte=1000"`
	Calories    *int      `json:"calories" binding:"omitempty,gte=0,lte=10000"`
}

// WorkoutSessionCreate é o corpo de registro de sessão de treino
type WorkoutSessionCreate struct {
	ScheduledDate   *time.Time `json:"scheduled_date"`
	CompletedDate   *time.Time `json:"completed_date"`
	DurationMinutes *int       `json:"duration_minutes" binding:"omitempty,gte=1,lte=600"`
	OverallRPE      *int       `json:"overall_rpe" binding:"omitempty,gte=1,lte=10"`
	Notes           *string    `json:"notes"`
}

// LogWeight registra peso corporal e medidas
func (h *Handlers) LogWeight(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var req WeightLogCreate
	if err := bindJSON(c, &req); err != nil {
		abort(c, err)
		return
	}

	log := &domain.WeightLog{
		UserID:       user.ID,
		Date:         req.Date,
		WeightLbs:    req.WeightLbs,
		BodyFatPct:   req.BodyFatPct,
		Measurements: toJSON(req.Measurements),
	}

	if err := h.activity.CreateWeightLog(c.Request.Context(), log); err != nil {
		abort(c, domain.NewExternalServiceError("failed to log weight", err))
		return
	}

	c.JSON(http.StatusCreated, log)
}

// GetWeightLogs lista os registros de peso recentes do usuário
func (h *Handlers) GetWeightLogs(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	limit, err := parseLimit(c, 30)
	if err != nil {
		abort(c, err)
		return
	}

	logs, err := h.activity.ListWeightLogs(c.Request.Context(), user.ID, limit)
	if err != nil {
		abort(c, domain.NewExternalServiceError("failed to fetch weight logs", err))
		return
	}

	if isHTMX(c) {
		renderWeightFragment(c, logs)
		return
	}

	c.JSON(http.StatusOK, logs)
}

// LogMeal registra uma refeição com macros
func (h *Handlers) LogMeal(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var req MealLogCreate
	if err := bindJSON(c, &req); err != nil {
		abort(c, err)
		return
	}

	log := &domain.MealLog{
		UserID:      user.ID,
		Date:        req.Date,
		MealType:    req.MealType,
		Description: req.Description,
		ProteinG:    req.ProteinG,
		CarbsG:      req.CarbsG,
		FatG:        req.FatG,
		Calories:    req.Calories,
	}

	if err := h.activity.CreateMealLog(c.Request.Context(), log); err != nil {
		abort(c, domain.NewExternalServiceError("failed to log meal", err))
		return
	}

	c.JSON(http.StatusCreated, log)
}

// GetMealLogs lista as refeições recentes do usuário
func (h *Handlers) GetMealLogs(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	limit, err := parseLimit(c, 50)
	if err != nil {
		abort(c, err)
		return
	}

	logs, err := h.activity.ListMealLogs(c.Request.Context(), user.ID, limit)
	if err != nil {
		abort(c, domain.NewExternalServiceError("failed to fetch meal logs", err))
		return
	}

	if isHTMX(c) {
		renderMealFragment(c, logs)
		return
	}

	c.JSON(http.StatusOK, logs)
}

// LogWorkout registra uma sessão de treino
func (h *Handlers) LogWorkout(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var req WorkoutSessionCreate
	if err := bindJSON(c, &req); err != nil {
		abort(c, err)
		return
	}

	completed := req.CompletedDate
	if completed == nil {
		now := time.Now().UTC()
		completed = &now
	}

	session := &domain.WorkoutSession{
		UserID:          user.ID,
		ScheduledDate:   req.ScheduledDate,
		CompletedDate:   completed,
		DurationMinutes: req.DurationMinutes,
		OverallRPE:      req.OverallRPE,
		Notes:           req.Notes,
	}

	if err := h.activity.CreateWorkoutSession(c.Request.Context(), session); err != nil {
		abort(c, domain.NewExternalServiceError("failed to log workout", err))
		return
	}

	c.JSON(http.StatusCreated, session)
}

// GetWorkoutSessions lista as sessões de treino recentes do usuário
func (h *Handlers) GetWorkoutSessions(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	limit, err := parseLimit(c, 30)
	if err != nil {
		abort(c, err)
		return
	}

	sessions, err := h.activity.ListWorkoutSessions(c.Request.Context(), user.ID, limit)
	if err != nil {
		abort(c, domain.NewExternalServiceError("failed to fetch workout sessions", err))
		return
	}

	if isHTMX(c) {
		renderWorkoutFragment(c, sessions)
		return
	}

	c.JSON(http.StatusOK, sessions)
}

// activityItem é um item do feed combinado de atividade recente
type activityItem struct {
	Type string      `json:"type"`
	Date time.Time   `json:"date"`
	Data interface{} `json:"data"`
}

// GetRecentActivity devolve a atividade recente combinada (treinos,
// refeições e peso), ordenada por data, limitada aos 10 mais recentes
func (h *Handlers) GetRecentActivity(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	ctx := c.Request.Context()

	workouts, err := h.activity.ListWorkoutSessions(ctx, user.ID, 5)
	if err != nil {
		abort(c, domain.NewExternalServiceError("failed to fetch recent activity", err))
		return
	}
	meals, err := h.activity.ListMealLogs(ctx, user.ID, 5)
	if err != nil {
		abort(c, domain.NewExternalServiceError("failed to fetch recent activity", err))
		return
	}
	weights, err := h.activity.ListWeightLogs(ctx, user.ID, 5)
	if err != nil {
		abort(c, domain.NewExternalServiceError("failed to fetch recent activity", err))
		return
	}

	items := make([]activityItem, 0, len(workouts)+len(meals)+len(weights))
	for i := range workouts {
		date := workouts[i].CreatedAt
		if workouts[i].CompletedDate != nil {
			date = *workouts[i].CompletedDate
		}
		items = append(items, activityItem{Type: "workout", Date: date, Data: workouts[i]})
	}
	for i := range meals {
		items = append(items, activityItem{Type: "meal", Date: meals[i].Date, Data: meals[i]})
	}
	for i := range weights {
		items = append(items, activityItem{Type: "weight", Date: weights[i].Date, Data: weights[i]})
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].Date.After(items[j].Date)
	})
	if len(items) > 10 {
		items = items[:10]
	}

	c.JSON(http.StatusOK, items)
}

// parseLimit interpreta o query param limit com um default por endpoint
func parseLimit(c *gin.Context, defaultLimit int) (int, error) {
	raw := c.Query("limit")
	if raw == "" {
		return defaultLimit, nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 || limit > 200 {
		return 0, domain.NewValidationError(
			fmt.Sprintf("invalid limit parameter %q", raw),
			"Invalid data provided.",
		).WithDetails(map[string]interface{}{
			"limit": "Must be an integer between 1 and 200",
		})
	}

	return limit, nil
}

// isHTMX detecta clientes interativos que pedem fragmentos HTML
func isHTMX(c *gin.Context) bool {
	return c.GetHeader("HX-Request") != ""
}

func renderHTML(c *gin.Context, html string) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func renderWeightFragment(c *gin.Context, logs []domain.WeightLog) {
	if len(logs) == 0 {
		renderHTML(c, "<p class='text-sm text-gray-500'>No weight logs yet. Start tracking your weight!</p>")
		return
	}

	var b strings.Builder
	b.WriteString("<div class='space-y-3'>")
	for i := range logs {
		weight := "-"
		if logs[i].WeightLbs != nil {
			weight = fmt.Sprintf("%.1f lbs", *logs[i].WeightLbs)
		}
		fmt.Fprintf(&b, "<div class='border-l-4 border-blue-500 pl-4 py-2'><p class='text-2xl font-bold'>%s</p><div class='text-sm text-gray-500'>%s</div></div>",
			weight, timeAgo(logs[i].Date))
	}
	b.WriteString("</div>")
	renderHTML(c, b.String())
}

func renderMealFragment(c *gin.Context, logs []domain.MealLog) {
	if len(logs) == 0 {
		renderHTML(c, "<p class='text-sm text-gray-500'>No meals logged yet. Start tracking your nutrition!</p>")
		return
	}

	var b strings.Builder
	b.WriteString("<div class='space-y-3'>")
	for i := range logs {
		mealType := "Meal"
		if logs[i].MealType != nil && *logs[i].MealType != "" {
			value := *logs[i].MealType
			mealType = strings.ToUpper(value[:1]) + value[1:]
		}
		description := ""
		if logs[i].Description != nil {
			description = *logs[i].Description
		}
		fmt.Fprintf(&b, "<div class='border-l-4 border-green-500 pl-4 py-2'><p class='font-medium'>%s</p><p class='text-sm'>%s</p><div class='text-xs text-gray-500'>%s</div></div>",
			mealType, description, timeAgo(logs[i].Date))
	}
	b.WriteString("</div>")
	renderHTML(c, b.String())
}

func renderWorkoutFragment(c *gin.Context, sessions []domain.WorkoutSession) {
	if len(sessions) == 0 {
		renderHTML(c, "<p class='text-sm text-gray-500'>No workouts logged yet. Start tracking your workouts!</p>")
		return
	}

	var b strings.Builder
	b.WriteString("<div class='space-y-4'>")
	for i := range sessions {
		date := sessions[i].CreatedAt
		if sessions[i].CompletedDate != nil {
			date = *sessions[i].CompletedDate
		}
		details := ""
		if sessions[i].DurationMinutes != nil {
			details = fmt.Sprintf("Duration: %d min", *sessions[i].DurationMinutes)
		}
		if sessions[i].OverallRPE != nil {
			details += fmt.Sprintf(" RPE: %d/10", *sessions[i].OverallRPE)
		}
		fmt.Fprintf(&b, "<div class='border-l-4 border-indigo-500 pl-4 py-2'><p class='font-medium'>%s</p><div class='text-sm text-gray-600'>%s</div></div>",
			timeAgo(date), details)
	}
	b.WriteString("</div>")
	renderHTML(c, b.String())
}

// timeAgo converte um instante em uma descrição relativa
func timeAgo(t time.Time) string {
	diff := time.Since(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		minutes := int(diff.Minutes())
		if minutes == 1 {
			return "1 min ago"
		}
		return fmt.Sprintf("%d min ago", minutes)
	case diff < 24*time.Hour:
		hours := int(diff.Hours())
		if hours == 1 {
			return "1 hr ago"
		}
		return fmt.Sprintf("%d hr ago", hours)
	case diff < 7*24*time.Hour:
		days := int(diff.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d day ago", days)
	default:
		return t.Format("Jan 02, 2006")
	}
}

// toJSON serializa um mapa para a coluna JSON; mapa vazio vira nulo
func toJSON(m map[string]interface{}) datatypes.JSON {
	if len(m) == 0 {
		return nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil
	}
	return datatypes.JSON(data)
}
