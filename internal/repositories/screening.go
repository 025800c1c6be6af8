package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/ats-screener/internal/apperrors"
	"alfredoptarigan/ats-screener/internal/models"
)

var ErrScreeningNotFound = fmt.Errorf("screening %w", apperrors.ErrNotFound)

type ScreeningRepository interface {
	Create(ctx context.Context, screening *models.Screening) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Screening, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.ScreeningStatus) error
	UpdateResult(ctx context.Context, id uuid.UUID, result string) error
	UpdateError(ctx context.Context, id uuid.UUID, kind, message string) error
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

type screeningRepository struct {
	db *gorm.DB
}

func NewScreeningRepository(db *gorm.DB) ScreeningRepository {
	return &screeningRepository{db: db}
}

func (r *screeningRepository) Create(ctx context.Context, screening *models.Screening) error {
	if err := r.db.WithContext(ctx).Create(screening).Error; err != nil {
		return fmt.Errorf("failed to create screening: %w", err)
	}
	return nil
}

func (r *screeningRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Screening, error) {
	var screening models.Screening
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&screening).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScreeningNotFound
		}
		return nil, fmt.Errorf("failed to find screening: %w", err)
	}
	return &screening, nil
}

func (r *screeningRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ScreeningStatus) error {
	return r.update(ctx, id, map[string]interface{}{
		"status": status,
	})
}

func (r *screeningRepository) UpdateResult(ctx context.Context, id uuid.UUID, result string) error {
	return r.update(ctx, id, map[string]interface{}{
		"status": models.StatusCompleted,
		"result": result,
	})
}

func (r *screeningRepository) UpdateError(ctx context.Context, id uuid.UUID, kind, message string) error {
	return r.update(ctx, id, map[string]interface{}{
		"status":        models.StatusFailed,
		"error_kind":    kind,
		"error_message": message,
	})
}

func (r *screeningRepository) update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result := r.db.WithContext(ctx).Model(&models.Screening{}).
		Where("id = ?", id).
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("failed to update screening: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrScreeningNotFound
	}

	return nil
}

func (r *screeningRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("updated_at < ?", before).
		Delete(&models.Screening{})

	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete expired screenings: %w", result.Error)
	}

	return result.RowsAffected, nil
}
