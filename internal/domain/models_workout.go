package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// WorkoutPlan guarda planos de treino gerados por AI, versionados por usuário
type WorkoutPlan struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;index" json:"user_id"`
	Version     int            `json:"version"`
	StartDate   time.Time      `json:"start_date"`
	EndDate     time.Time      `json:"end_date"`
	PlanData    datatypes.JSON `json:"plan_data"`
	AIRationale *string        `json:"ai_rationale,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

func (WorkoutPlan) TableName() string { return "workout_plans" }

// Exercise é a biblioteca de exercícios
type Exercise struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	Name              string         `gorm:"size:255;uniqueIndex" json:"name"`
	Category          *string        `gorm:"size:50" json:"category,omitempty"` // compound, isolation, cardio
	MuscleGroups      datatypes.JSON `json:"muscle_groups,omitempty"`
	EquipmentRequired datatypes.JSON `json:"equipment_required,omitempty"`
	Difficulty        *string        `gorm:"size:20" json:"difficulty,omitempty"`
	FormCues          *string        `json:"form_cues,omitempty"`
	VideoURL          *string        `gorm:"size:500" json:"video_url,omitempty"`
}

func (Exercise) TableName() string { return "exercises" }

// WorkoutSession registra uma sessão de treino individual
type WorkoutSession struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	UserID          uuid.UUID  `gorm:"type:uuid;index" json:"user_id"`
	WorkoutPlanID   *uint      `json:"workout_plan_id,omitempty"`
	ScheduledDate   *time.Time `json:"scheduled_date,omitempty"`
	CompletedDate   *time.Time `gorm:"index" json:"completed_date,omitempty"`
	DurationMinutes *int       `json:"duration_minutes,omitempty"`
	OverallRPE      *int       `json:"overall_rpe,omitempty"` // 1-10
	Notes           *string    `json:"notes,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

func (WorkoutSession) TableName() string { return "workout_sessions" }

// ExerciseLog registra um exercício dentro de uma sessão de treino
type ExerciseLog struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	WorkoutSessionID uint           `gorm:"index" json:"workout_session_id"`
	ExerciseID       uint           `json:"exercise_id"`
	SetsData         datatypes.JSON `json:"sets_data"`
	Notes            *string        `json:"notes,omitempty"`
}

func (ExerciseLog) TableName() string { return "exercise_logs" }
