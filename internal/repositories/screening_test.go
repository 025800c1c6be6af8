package repositories

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"alfredoptarigan/ats-screener/internal/models"
)

func setUpPostgres(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("DB_TEST_DSN")
	if dsn == "" {
		t.Skip("DB_TEST_DSN not set, skipping integration test")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Screening{}))

	return db
}

func TestPostgresScreeningLifecycle(t *testing.T) {
	db := setUpPostgres(t)
	ctx := context.Background()
	repo := NewScreeningRepository(db)

	screening := &models.Screening{
		ID:        uuid.New(),
		Status:    models.StatusQueued,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, repo.Create(ctx, screening))
	t.Cleanup(func() { db.Delete(&models.Screening{}, "id = ?", screening.ID) })

	require.NoError(t, repo.UpdateResult(ctx, screening.ID, "{'JD Match': '75%'}"))

	got, err := repo.FindByID(ctx, screening.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, got.Status)
	assert.Equal(t, "{'JD Match': '75%'}", *got.Result)

	removed, err := repo.DeleteExpired(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, removed, int64(1))

	_, err = repo.FindByID(ctx, screening.ID)
	assert.ErrorIs(t, err, ErrScreeningNotFound)
}

func TestPostgresScreeningNotFound(t *testing.T) {
	db := setUpPostgres(t)
	repo := NewScreeningRepository(db)

	assert.ErrorIs(t, repo.UpdateStatus(context.Background(), uuid.New(), models.StatusProcessing), ErrScreeningNotFound)
}
