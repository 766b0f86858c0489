package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// User é o modelo de autenticação persistido
type User struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email          string    `gorm:"size:255;uniqueIndex" json:"email"`
	HashedPassword string    `gorm:"not null" json:"-"`
	IsActive       bool      `gorm:"default:true" json:"is_active"`
	IsSuperuser    bool      `gorm:"default:false" json:"is_superuser"`
	IsVerified     bool      `gorm:"default:false" json:"is_verified"`
	CreatedAt      time.Time `json:"created_at"`
}

// TableName fixa o nome da tabela
func (User) TableName() string { return "users" }

// UserProfile guarda traços e preferências de treino do usuário
type UserProfile struct {
	UserID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"user_id"`
	Age              *int           `json:"age,omitempty"`
	Sex              *string        `gorm:"size:10" json:"sex,omitempty"`
	ExperienceLevel  *string        `gorm:"size:50" json:"experience_level,omitempty"` // beginner, intermediate, advanced
	EquipmentAccess  datatypes.JSON `json:"equipment_access,omitempty"`
	Injuries         *string        `json:"injuries,omitempty"`
	TimeAvailability *int           `json:"time_availability,omitempty"` // minutos por semana
	Preferences      datatypes.JSON `json:"preferences,omitempty"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

func (UserProfile) TableName() string { return "user_profiles" }

// Goal representa uma meta do usuário
type Goal struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;index" json:"user_id"`
	GoalType    string     `gorm:"size:50" json:"goal_type"` // weight_loss, muscle_gain, strength, endurance
	TargetValue *float64   `json:"target_value,omitempty"`
	TargetDate  *time.Time `json:"target_date,omitempty"`
	Status      string     `gorm:"size:20;default:active" json:"status"` // active, completed, abandoned
	CreatedAt   time.Time  `json:"created_at"`
}

func (Goal) TableName() string { return "goals" }
