package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fit-agent/internal/domain"
)

// ActivityRepository define a persistência dos logs de atividade do usuário
// (peso, refeições e sessões de treino)
type ActivityRepository interface {
	CreateWeightLog(ctx context.Context, log *domain.WeightLog) error
	ListWeightLogs(ctx context.Context, userID uuid.UUID, limit int) ([]domain.WeightLog, error)

	CreateMealLog(ctx context.Context, log *domain.MealLog) error
	ListMealLogs(ctx context.Context, userID uuid.UUID, limit int) ([]domain.MealLog, error)

	CreateWorkoutSession(ctx context.Context, session *domain.WorkoutSession) error
	ListWorkoutSessions(ctx context.Context, userID uuid.UUID, limit int) ([]domain.WorkoutSession, error)
}

type activityRepository struct {
	db *gorm.DB
}

// NewActivityRepository cria o repositório de atividades sobre o gorm
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

// CreateWeightLog insere um registro de peso. O insert roda em transação
// própria: falha nunca deixa escrita parcial.
func (r *activityRepository) CreateWeightLog(ctx context.Context, log *domain.WeightLog) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(log).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create weight log: %w", err)
	}
	return nil
}

// ListWeightLogs retorna os registros de peso mais recentes do usuário
func (r *activityRepository) ListWeightLogs(ctx context.Context, userID uuid.UUID, limit int) ([]domain.WeightLog, error) {
	var logs []domain.WeightLog
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list weight logs: %w", err)
	}
	return logs, nil
}

// CreateMealLog insere um registro de refeição
func (r *activityRepository) CreateMealLog(ctx context.Context, log *domain.MealLog) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(log).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create meal log: %w", err)
	}
	return nil
}

// ListMealLogs retorna os registros de refeição mais recentes do usuário
func (r *activityRepository) ListMealLogs(ctx context.Context, userID uuid.UUID, limit int) ([]domain.MealLog, error) {
	var logs []domain.MealLog
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list meal logs: %w", err)
	}
	return logs, nil
}

// CreateWorkoutSession insere uma sessão de treino
func (r *activityRepository) CreateWorkoutSession(ctx context.Context, session *domain.WorkoutSession) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(session).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create workout session: %w", err)
	}
	return nil
}

// ListWorkoutSessions retorna as sessões de treino mais recentes do usuário
func (r *activityRepository) ListWorkoutSessions(ctx context.Context, userID uuid.UUID, limit int) ([]domain.WorkoutSession, error) {
	var sessions []domain.WorkoutSession
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("completed_date DESC").
		Limit(limit).
		Find(&sessions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list workout sessions: %w", err)
	}
	return sessions, nil
}
