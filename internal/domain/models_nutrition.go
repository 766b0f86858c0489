package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// WeightLog registra peso corporal e medidas
type WeightLog struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	UserID       uuid.UUID      `gorm:"type:uuid;index" json:"user_id"`
	Date         time.Time      `gorm:"index" json:"date"`
	WeightLbs    *float64       `json:"weight_lbs,omitempty"`
	BodyFatPct   *float64       `json:"body_fat_pct,omitempty"`
	Measurements datatypes.JSON `json:"measurements,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

func (WeightLog) TableName() string { return "weight_logs" }

// MealLog registra refeições e macros
type MealLog struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	Date        time.Time `gorm:"index" json:"date"`
	MealType    *string   `gorm:"size:20" json:"meal_type,omitempty"` // breakfast, lunch, dinner, snack
	Description *string   `json:"description,omitempty"`
	ProteinG    *float64  `json:"protein_g,omitempty"`
	CarbsG      *float64  `json:"carbs_g,omitempty"`
	FatG        *float64  `json:"fat_g,omitempty"`
	Calories    *int      `json:"calories,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (MealLog) TableName() string { return "meal_logs" }

// NutritionTarget guarda metas nutricionais geradas por AI
type NutritionTarget struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	DailyProteinG int       `json:"daily_protein_g"`
	DailyCarbsG   int       `json:"daily_carbs_g"`
	DailyFatG     int       `json:"daily_fat_g"`
	DailyCalories int       `json:"daily_calories"`
	AIRationale   *string   `json:"ai_rationale,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func (NutritionTarget) TableName() string { return "nutrition_targets" }
