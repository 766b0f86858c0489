package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"fit-agent/internal/domain"
)

// PlanRepository define a persistência dos planos gerados por AI
type PlanRepository interface {
	// CreateWorkoutPlan insere um plano de treino atribuindo a próxima
	// versão do usuário
	CreateWorkoutPlan(ctx context.Context, plan *domain.WorkoutPlan) error
	CreateNutritionTarget(ctx context.Context, target *domain.NutritionTarget) error
}

type planRepository struct {
	db *gorm.DB
}

// NewPlanRepository cria o repositório de planos sobre o gorm
func NewPlanRepository(db *gorm.DB) PlanRepository {
	return &planRepository{db: db}
}

// CreateWorkoutPlan insere um plano versionado: a versão é calculada e o
// insert acontece na mesma transação
func (r *planRepository) CreateWorkoutPlan(ctx context.Context, plan *domain.WorkoutPlan) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var latest int
		err := tx.Model(&domain.WorkoutPlan{}).
			Where("user_id = ?", plan.UserID).
			Select("COALESCE(MAX(version), 0)").
			Scan(&latest).Error
		if err != nil {
			return err
		}

		plan.Version = latest + 1
		return tx.Create(plan).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create workout plan: %w", err)
	}
	return nil
}

// CreateNutritionTarget insere uma meta nutricional
func (r *planRepository) CreateNutritionTarget(ctx context.Context, target *domain.NutritionTarget) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(target).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create nutrition target: %w", err)
	}
	return nil
}
