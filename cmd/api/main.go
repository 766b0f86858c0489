package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"fit-agent/internal/config"
	"fit-agent/internal/handler"
	"fit-agent/internal/logger"
	"fit-agent/internal/repository"
	"fit-agent/internal/service"
	"fit-agent/internal/storage"
)

func main() {
	// Carregar configurações
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Inicializar logger
	appLogger := logger.NewLogger(cfg.LogLevel, cfg.LogFormat)
	appLogger.Info("Starting Fit Agent API", map[string]interface{}{
		"version":     "1.0.0",
		"environment": cfg.Environment,
		"log_level":   cfg.LogLevel,
		"port":        cfg.ServerPort,
	})

	// Banco relacional
	db, err := repository.Connect(cfg, appLogger)
	if err != nil {
		appLogger.Error("Failed to connect to database", err, nil)
		os.Exit(1)
	}

	if cfg.Debug {
		if err := repository.Migrate(db); err != nil {
			appLogger.Error("Failed to migrate database", err, nil)
			os.Exit(1)
		}
	}

	// Counter store do rate limiter (memory por padrão, redis opcional)
	counterStore, err := storage.NewCounterStore(cfg, appLogger)
	if err != nil {
		appLogger.Error("Failed to create counter store", err, nil)
		os.Exit(1)
	}
	defer counterStore.Close()

	// Services
	rateLimiter := service.NewRateLimiterService(counterStore, cfg.Quotas, cfg.ExemptIPs, appLogger)
	authService := service.NewAuthService(
		repository.NewUserRepository(db),
		cfg.SecretKey,
		time.Duration(cfg.TokenTTLHours)*time.Hour,
		appLogger,
	)
	aiService := service.NewAIService(cfg.OpenAIAPIKey, cfg.OpenAIModel, appLogger)

	if cfg.OpenAIAPIKey == "" {
		appLogger.Warn("OPENAI_API_KEY not set, AI endpoints will fail", nil)
	}

	// Handlers
	handlers := handler.NewHandlers(
		rateLimiter,
		authService,
		aiService,
		counterStore,
		repository.NewActivityRepository(db),
		repository.NewPlanRepository(db),
		appLogger,
	)

	// Configurar Gin
	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()

	// Log de acesso
	router.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf("[%s] \"%s %s %s %d %s \"%s\" %s\"\n",
			param.TimeStamp.Format("2006/01/02 - 15:04:05"),
			param.Method,
			param.Path,
			param.Request.Proto,
			param.StatusCode,
			param.Latency,
			param.Request.UserAgent(),
			param.ErrorMessage,
		)
	}))

	handlers.SetupRoutes(router)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // chamadas de AI são lentas
		IdleTimeout:  60 * time.Second,
	}

	// Iniciar servidor em goroutine
	go func() {
		appLogger.Info("Starting HTTP server", map[string]interface{}{
			"addr": server.Addr,
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Failed to start server", err, nil)
			os.Exit(1)
		}
	}()

	// Aguardar sinais de interrupção
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	appLogger.Info("Fit Agent API is running", map[string]interface{}{
		"port": cfg.ServerPort,
		"endpoints": []string{
			"GET  /health",
			"GET  /metrics",
			"POST /auth/register",
			"POST /auth/jwt/login",
			"POST /auth/forgot-password",
			"POST /auth/reset-password",
			"GET  /auth/users/me",
			"POST /api/weight          GET /api/weight",
			"POST /api/meals           GET /api/meals",
			"POST /api/workouts        GET /api/workouts",
			"GET  /api/recent-activity",
			"POST /api/ai/generate-workout-plan",
			"POST /api/ai/generate-nutrition-plan",
		},
	})

	<-quit
	appLogger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", err, nil)
		os.Exit(1)
	}

	appLogger.Info("Server stopped gracefully", nil)
}
