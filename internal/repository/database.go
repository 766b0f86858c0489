package repository

import (
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"fit-agent/internal/config"
	"fit-agent/internal/domain"
)

// Connect abre a conexão com o banco relacional. DSN postgres:// usa o
// driver postgres; qualquer outro valor é tratado como arquivo sqlite,
// o padrão de desenvolvimento.
func Connect(cfg *config.Config, logger domain.Logger) (*gorm.DB, error) {
	logMode := gormlogger.Silent
	if cfg.Debug {
		logMode = gormlogger.Warn
	}

	gormCfg := &gorm.Config{
		Logger:         gormlogger.Default.LogMode(logMode),
		TranslateError: true,
	}

	var dialector gorm.Dialector
	if strings.HasPrefix(cfg.DatabaseURL, "postgres://") || strings.HasPrefix(cfg.DatabaseURL, "postgresql://") {
		dialector = postgres.Open(cfg.DatabaseURL)
	} else {
		dialector = sqlite.Open(cfg.DatabaseURL)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	logger.Info("Database connection established", map[string]interface{}{
		"dialect": db.Dialector.Name(),
	})

	return db, nil
}

// Migrate cria as tabelas da aplicação (uso em desenvolvimento)
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.UserProfile{},
		&domain.Goal{},
		&domain.WeightLog{},
		&domain.MealLog{},
		&domain.WorkoutSession{},
		&domain.WorkoutPlan{},
		&domain.Exercise{},
		&domain.ExerciseLog{},
		&domain.NutritionTarget{},
		&domain.AnalysisCache{},
		&domain.ScheduledJob{},
	)
}
