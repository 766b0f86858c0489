package repository

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"fit-agent/internal/domain"
)

// newTestDB abre um sqlite em memória já migrado
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// Banco em memória é por conexão; uma única conexão evita que o pool
	// enxergue bancos vazios
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, Migrate(db))
	return db
}

func newTestUser(t *testing.T, db *gorm.DB) *domain.User {
	t.Helper()

	user := &domain.User{
		ID:             uuid.New(),
		Email:          uuid.NewString() + "@example.com",
		HashedPassword: "$2a$10$hash",
		IsActive:       true,
	}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), user))
	return user
}

// TestUserRepository testa o CRUD de usuários
func TestUserRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &domain.User{
		ID:             uuid.New(),
		Email:          "ana@example.com",
		HashedPassword: "$2a$10$hash",
		IsActive:       true,
	}
	require.NoError(t, repo.Create(ctx, user))

	t.Run("FindByEmail returns the user", func(t *testing.T) {
		found, err := repo.FindByEmail(ctx, "ana@example.com")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, user.ID, found.ID)
	})

	t.Run("FindByEmail returns nil when missing", func(t *testing.T) {
		found, err := repo.FindByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("FindByID returns the user", func(t *testing.T) {
		found, err := repo.FindByID(ctx, user.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "ana@example.com", found.Email)
	})

	t.Run("FindByID returns nil when missing", func(t *testing.T) {
		found, err := repo.FindByID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("Duplicate email violates the unique index", func(t *testing.T) {
		err := repo.Create(ctx, &domain.User{
			ID:             uuid.New(),
			Email:          "ana@example.com",
			HashedPassword: "$2a$10$other",
		})
		assert.ErrorIs(t, err, ErrDuplicateEmail)
	})

	t.Run("UpdatePassword swaps the hash", func(t *testing.T) {
		require.NoError(t, repo.UpdatePassword(ctx, user.ID, "$2a$10$newhash"))

		found, err := repo.FindByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "$2a$10$newhash", found.HashedPassword)
	})

	t.Run("UpdatePassword fails for unknown user", func(t *testing.T) {
		err := repo.UpdatePassword(ctx, uuid.New(), "$2a$10$newhash")
		assert.Error(t, err)
	})
}

// TestActivityRepository testa os logs de atividade
func TestActivityRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewActivityRepository(db)
	ctx := context.Background()

	ana := newTestUser(t, db)
	bia := newTestUser(t, db)

	weight := func(v float64) *float64 { return &v }

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.CreateWeightLog(ctx, &domain.WeightLog{
			UserID:    ana.ID,
			Date:      time.Date(2024, 6, 1+i, 8, 0, 0, 0, time.UTC),
			WeightLbs: weight(185.0 + float64(i)),
		}))
	}
	require.NoError(t, repo.CreateWeightLog(ctx, &domain.WeightLog{
		UserID:    bia.ID,
		Date:      time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC),
		WeightLbs: weight(140),
	}))

	t.Run("ListWeightLogs is per user, newest first", func(t *testing.T) {
		logs, err := repo.ListWeightLogs(ctx, ana.ID, 10)
		require.NoError(t, err)
		require.Len(t, logs, 3)
		assert.Equal(t, 187.0, *logs[0].WeightLbs)
		assert.Equal(t, 185.0, *logs[2].WeightLbs)
	})

	t.Run("ListWeightLogs honors the limit", func(t *testing.T) {
		logs, err := repo.ListWeightLogs(ctx, ana.ID, 2)
		require.NoError(t, err)
		assert.Len(t, logs, 2)
	})

	t.Run("Meal logs round trip", func(t *testing.T) {
		mealType := "lunch"
		require.NoError(t, repo.CreateMealLog(ctx, &domain.MealLog{
			UserID:   ana.ID,
			Date:     time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC),
			MealType: &mealType,
		}))

		logs, err := repo.ListMealLogs(ctx, ana.ID, 10)
		require.NoError(t, err)
		require.Len(t, logs, 1)
		assert.Equal(t, "lunch", *logs[0].MealType)
	})

	t.Run("Workout sessions round trip", func(t *testing.T) {
		completed := time.Date(2024, 6, 2, 18, 0, 0, 0, time.UTC)
		duration := 60
		require.NoError(t, repo.CreateWorkoutSession(ctx, &domain.WorkoutSession{
			UserID:          ana.ID,
			CompletedDate:   &completed,
			DurationMinutes: &duration,
		}))

		sessions, err := repo.ListWorkoutSessions(ctx, ana.ID, 10)
		require.NoError(t, err)
		require.Len(t, sessions, 1)
		assert.Equal(t, 60, *sessions[0].DurationMinutes)
	})
}

// TestPlanRepository testa o versionamento de planos por usuário
func TestPlanRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewPlanRepository(db)
	ctx := context.Background()

	ana := newTestUser(t, db)
	bia := newTestUser(t, db)

	newPlan := func(userID uuid.UUID) *domain.WorkoutPlan {
		return &domain.WorkoutPlan{
			UserID:    userID,
			StartDate: time.Now().UTC(),
			EndDate:   time.Now().UTC().AddDate(0, 0, 28),
			PlanData:  []byte(`{"weeks": 4}`),
		}
	}

	t.Run("Versions increment per user", func(t *testing.T) {
		first := newPlan(ana.ID)
		require.NoError(t, repo.CreateWorkoutPlan(ctx, first))
		assert.Equal(t, 1, first.Version)

		second := newPlan(ana.ID)
		require.NoError(t, repo.CreateWorkoutPlan(ctx, second))
		assert.Equal(t, 2, second.Version)

		// Outro usuário começa do 1
		other := newPlan(bia.ID)
		require.NoError(t, repo.CreateWorkoutPlan(ctx, other))
		assert.Equal(t, 1, other.Version)
	})

	t.Run("Nutrition targets persist", func(t *testing.T) {
		target := &domain.NutritionTarget{
			UserID:        ana.ID,
			StartDate:     time.Now().UTC(),
			EndDate:       time.Now().UTC().AddDate(0, 0, 28),
			DailyProteinG: 170,
			DailyCalories: 2475,
		}
		require.NoError(t, repo.CreateNutritionTarget(ctx, target))
		assert.NotZero(t, target.ID)
	})
}
