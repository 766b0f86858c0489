package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	"fit-agent/internal/domain"
	"fit-agent/internal/middleware"
	"fit-agent/internal/repository"
	"fit-agent/internal/service"
)

// Handlers contém os handlers da API
type Handlers struct {
	limiter   domain.RateLimiter
	auth      *service.AuthService
	ai        *service.AIService
	store     domain.CounterStore
	activity  repository.ActivityRepository
	plans     repository.PlanRepository
	logger    domain.Logger
	startTime time.Time
}

// NewHandlers cria uma nova instância dos handlers
func NewHandlers(
	limiter domain.RateLimiter,
	auth *service.AuthService,
	ai *service.AIService,
	store domain.CounterStore,
	activity repository.ActivityRepository,
	plans repository.PlanRepository,
	logger domain.Logger,
) *Handlers {
	return &Handlers{
		limiter:   limiter,
		auth:      auth,
		ai:        ai,
		store:     store,
		activity:  activity,
		plans:     plans,
		logger:    logger,
		startTime: time.Now(),
	}
}

// SetupRoutes configura as rotas da API. Todo endpoint passa pelo
// enforcement point da sua classe; rotas sem classe específica caem na
// cota default, e a isenção (health, IPs permitidos) é decidida dentro do
// próprio limiter.
func (h *Handlers) SetupRoutes(router *gin.Engine) {
	router.Use(middleware.RequestID())
	router.Use(middleware.NewErrorHandler(h.logger))

	rl := middleware.NewRateLimiter(h.limiter, h.logger)

	// Operacionais: health é isento pela política, não pela ausência de
	// middleware
	router.GET(service.HealthPath, rl.ForClass(domain.ClassDefault), h.Health)
	router.GET("/metrics", rl.ForClass(domain.ClassDefault), h.Metrics)

	// Autenticação: limites por IP, para que uma conta comprometida não
	// lave o identificador e brute force não se esconda atrás de login
	auth := router.Group("/auth")
	{
		auth.POST("/register", rl.ForClass(domain.ClassAuthRegister), h.Register)
		auth.POST("/jwt/login", rl.ForClass(domain.ClassAuthLogin), h.Login)
		auth.POST("/forgot-password", rl.ForClass(domain.ClassAuthResetPassword), h.ForgotPassword)
		auth.POST("/reset-password", rl.ForClass(domain.ClassAuthResetPassword), h.ResetPassword)

		users := auth.Group("/users")
		users.Use(middleware.RequireAuth(h.auth, h.logger))
		users.GET("/me", rl.ForClass(domain.ClassDataGet), h.Me)
	}

	// Dados e AI: exigem principal autenticado antes do limiter resolver
	// o identificador
	api := router.Group("/api")
	api.Use(middleware.RequireAuth(h.auth, h.logger))
	{
		api.POST("/weight", rl.ForClass(domain.ClassDataPost), h.LogWeight)
		api.GET("/weight", rl.ForClass(domain.ClassDataGet), h.GetWeightLogs)
		api.POST("/meals", rl.ForClass(domain.ClassDataPost), h.LogMeal)
		api.GET("/meals", rl.ForClass(domain.ClassDataGet), h.GetMealLogs)
		api.POST("/workouts", rl.ForClass(domain.ClassDataPost), h.LogWorkout)
		api.GET("/workouts", rl.ForClass(domain.ClassDataGet), h.GetWorkoutSessions)
		api.GET("/recent-activity", rl.ForClass(domain.ClassDataGet), h.GetRecentActivity)

		ai := api.Group("/ai")
		ai.POST("/generate-workout-plan", rl.ForClass(domain.ClassAIWorkoutPlan), h.GenerateWorkoutPlan)
		ai.POST("/generate-nutrition-plan", rl.ForClass(domain.ClassAINutritionPlan), h.GenerateNutritionPlan)
	}

	// Rotas desconhecidas ficam sob a cota default antes do 404
	router.NoRoute(rl.ForClass(domain.ClassDefault), h.NotFound)
}

// Health implementa o liveness probe
func (h *Handlers) Health(c *gin.Context) {
	status := "healthy"
	if err := h.store.Health(c.Request.Context()); err != nil {
		status = "degraded"
		h.logger.WithContext(c.Request.Context()).Warn("Counter store unhealthy", map[string]interface{}{
			"error": err.Error(),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    status,
		"service":   "Fit Agent API",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Metrics implementa o endpoint de métricas do processo
func (h *Handlers) Metrics(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	c.JSON(http.StatusOK, gin.H{
		"service":   "Fit Agent API",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(h.startTime).String(),
		"memory": gin.H{
			"alloc_bytes":  m.Alloc,
			"sys_bytes":    m.Sys,
			"num_gc":       m.NumGC,
			"heap_objects": m.HeapObjects,
		},
		"goroutines": runtime.NumGoroutine(),
	})
}

// NotFound responde rotas desconhecidas pela taxonomia de erros
func (h *Handlers) NotFound(c *gin.Context) {
	_ = c.Error(domain.NewNotFoundError(
		"route not found: "+c.Request.URL.Path,
		"The requested resource was not found.",
	))
	c.Abort()
}
