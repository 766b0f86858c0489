package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AnalysisCache guarda resultados de análise de progresso gerados por AI
type AnalysisCache struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	UserID       uuid.UUID      `gorm:"type:uuid;index" json:"user_id"`
	AnalysisType string         `gorm:"size:50" json:"analysis_type"` // weekly_review, progress_summary
	AnalysisDate time.Time      `gorm:"index" json:"analysis_date"`
	Results      datatypes.JSON `json:"results"`
	CreatedAt    time.Time      `json:"created_at"`
}

func (AnalysisCache) TableName() string { return "analysis_cache" }

// ScheduledJob rastreia jobs de background agendados.
// Apenas o formato de dados; não há scheduler por trás ainda.
type ScheduledJob struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	UserID             uuid.UUID  `gorm:"type:uuid;index" json:"user_id"`
	JobType            string     `gorm:"size:50" json:"job_type"` // weekly_review, plan_adjustment
	ScheduleExpression string     `gorm:"size:100" json:"schedule_expression"`
	LastRun            *time.Time `json:"last_run,omitempty"`
	NextRun            *time.Time `json:"next_run,omitempty"`
	IsActive           bool       `gorm:"default:true" json:"is_active"`
}

func (ScheduledJob) TableName() string { return "scheduled_jobs" }
