package repositories

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/ats-screener/internal/models"
)

type memoryScreeningRepository struct {
	mu         sync.RWMutex
	screenings map[uuid.UUID]models.Screening
	now        func() time.Time
}

// NewMemoryScreeningRepository keeps screenings in process memory. State is
// lost on restart, which is fine for a single instance.
func NewMemoryScreeningRepository() ScreeningRepository {
	return &memoryScreeningRepository{
		screenings: make(map[uuid.UUID]models.Screening),
		now:        time.Now,
	}
}

func (r *memoryScreeningRepository) Create(_ context.Context, screening *models.Screening) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if screening.ID == uuid.Nil {
		screening.ID = uuid.New()
	}
	if screening.Status == "" {
		screening.Status = models.StatusQueued
	}
	if screening.CreatedAt.IsZero() {
		screening.CreatedAt = now
	}
	if screening.UpdatedAt.IsZero() {
		screening.UpdatedAt = now
	}

	r.screenings[screening.ID] = copyScreening(*screening)
	return nil
}

func (r *memoryScreeningRepository) FindByID(_ context.Context, id uuid.UUID) (*models.Screening, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	screening, ok := r.screenings[id]
	if !ok {
		return nil, ErrScreeningNotFound
	}

	out := copyScreening(screening)
	return &out, nil
}

func (r *memoryScreeningRepository) UpdateStatus(_ context.Context, id uuid.UUID, status models.ScreeningStatus) error {
	return r.update(id, func(s *models.Screening) {
		s.Status = status
	})
}

func (r *memoryScreeningRepository) UpdateResult(_ context.Context, id uuid.UUID, result string) error {
	return r.update(id, func(s *models.Screening) {
		s.Status = models.StatusCompleted
		s.Result = &result
	})
}

func (r *memoryScreeningRepository) UpdateError(_ context.Context, id uuid.UUID, kind, message string) error {
	return r.update(id, func(s *models.Screening) {
		s.Status = models.StatusFailed
		s.ErrorKind = &kind
		s.ErrorMessage = &message
	})
}

func (r *memoryScreeningRepository) update(id uuid.UUID, apply func(s *models.Screening)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	screening, ok := r.screenings[id]
	if !ok {
		return ErrScreeningNotFound
	}

	apply(&screening)
	screening.UpdatedAt = r.now()
	r.screenings[id] = screening
	return nil
}

func (r *memoryScreeningRepository) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed int64
	for id, screening := range r.screenings {
		if screening.UpdatedAt.Before(before) {
			delete(r.screenings, id)
			removed++
		}
	}
	return removed, nil
}

func copyScreening(s models.Screening) models.Screening {
	out := s
	out.Result = copyString(s.Result)
	out.ErrorKind = copyString(s.ErrorKind)
	out.ErrorMessage = copyString(s.ErrorMessage)
	return out
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
