package repositories

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/valkey-io/valkey-go"

	"alfredoptarigan/ats-screener/internal/models"
)

const screeningKeyPrefix = "screening:"

// updateScript writes fields only while the hash still exists, so an update
// racing with expiry cannot recreate a screening without created_at.
// ARGV[1] is the TTL in milliseconds, the rest are field/value pairs.
var updateScript = valkey.NewLuaScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
  return 0
end
redis.call('HSET', KEYS[1], unpack(ARGV, 2))
redis.call('PEXPIRE', KEYS[1], ARGV[1])
return 1
`)

// valkeyScreeningRepository stores each screening as a hash that expires
// after ttl, so expiry needs no sweeping.
type valkeyScreeningRepository struct {
	client valkey.Client
	ttl    time.Duration
}

func NewValkeyScreeningRepository(client valkey.Client, ttl time.Duration) ScreeningRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &valkeyScreeningRepository{client: client, ttl: ttl}
}

func screeningKey(id uuid.UUID) string {
	return screeningKeyPrefix + id.String()
}

func (r *valkeyScreeningRepository) Create(ctx context.Context, screening *models.Screening) error {
	now := time.Now()
	if screening.ID == uuid.Nil {
		screening.ID = uuid.New()
	}
	if screening.Status == "" {
		screening.Status = models.StatusQueued
	}
	if screening.CreatedAt.IsZero() {
		screening.CreatedAt = now
	}
	screening.UpdatedAt = now

	fields := map[string]string{
		"id":         screening.ID.String(),
		"status":     string(screening.Status),
		"created_at": screening.CreatedAt.Format(time.RFC3339Nano),
		"updated_at": screening.UpdatedAt.Format(time.RFC3339Nano),
	}

	if err := r.write(ctx, screening.ID, fields); err != nil {
		return fmt.Errorf("failed to create screening: %w", err)
	}
	return nil
}

func (r *valkeyScreeningRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Screening, error) {
	cmd := r.client.B().Hgetall().Key(screeningKey(id)).Build()

	fields, err := r.client.Do(ctx, cmd).AsStrMap()
	if err != nil {
		return nil, fmt.Errorf("failed to find screening: %w", err)
	}
	if len(fields) == 0 {
		return nil, ErrScreeningNotFound
	}

	return decodeScreening(id, fields)
}

func (r *valkeyScreeningRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ScreeningStatus) error {
	return r.update(ctx, id, map[string]string{
		"status": string(status),
	})
}

func (r *valkeyScreeningRepository) UpdateResult(ctx context.Context, id uuid.UUID, result string) error {
	return r.update(ctx, id, map[string]string{
		"status": string(models.StatusCompleted),
		"result": result,
	})
}

func (r *valkeyScreeningRepository) UpdateError(ctx context.Context, id uuid.UUID, kind, message string) error {
	return r.update(ctx, id, map[string]string{
		"status":        string(models.StatusFailed),
		"error_kind":    kind,
		"error_message": message,
	})
}

// DeleteExpired is a no-op: keys carry their own TTL.
func (r *valkeyScreeningRepository) DeleteExpired(context.Context, time.Time) (int64, error) {
	return 0, nil
}

func (r *valkeyScreeningRepository) update(ctx context.Context, id uuid.UUID, fields map[string]string) error {
	fields["updated_at"] = time.Now().Format(time.RFC3339Nano)

	args := append([]string{strconv.FormatInt(r.ttlMillis(), 10)}, fieldArgs(fields)...)

	updated, err := updateScript.Exec(ctx, r.client, []string{screeningKey(id)}, args).AsInt64()
	if err != nil {
		return fmt.Errorf("failed to update screening: %w", err)
	}
	if updated == 0 {
		return ErrScreeningNotFound
	}
	return nil
}

// write sets the given hash fields and refreshes the key's TTL.
func (r *valkeyScreeningRepository) write(ctx context.Context, id uuid.UUID, fields map[string]string) error {
	key := screeningKey(id)

	hset := r.client.B().Hset().Key(key).FieldValue()
	for field, value := range fields {
		hset = hset.FieldValue(field, value)
	}

	cmds := valkey.Commands{
		hset.Build(),
		r.client.B().Pexpire().Key(key).Milliseconds(r.ttlMillis()).Build(),
	}

	for _, resp := range r.client.DoMulti(ctx, cmds...) {
		if err := resp.Error(); err != nil {
			return err
		}
	}
	return nil
}

// ttlMillis never returns 0: PEXPIRE 0 would delete the key on the spot.
func (r *valkeyScreeningRepository) ttlMillis() int64 {
	if ms := r.ttl.Milliseconds(); ms > 0 {
		return ms
	}
	return 1
}

// fieldArgs flattens fields into sorted field/value pairs.
func fieldArgs(fields map[string]string) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	args := make([]string, 0, 2*len(fields))
	for _, name := range names {
		args = append(args, name, fields[name])
	}
	return args
}

func decodeScreening(id uuid.UUID, fields map[string]string) (*models.Screening, error) {
	screening := &models.Screening{
		ID:     id,
		Status: models.ScreeningStatus(fields["status"]),
	}

	if v, ok := fields["result"]; ok {
		screening.Result = &v
	}
	if v, ok := fields["error_kind"]; ok {
		screening.ErrorKind = &v
	}
	if v, ok := fields["error_message"]; ok {
		screening.ErrorMessage = &v
	}

	var err error
	if screening.CreatedAt, err = time.Parse(time.RFC3339Nano, fields["created_at"]); err != nil {
		return nil, fmt.Errorf("corrupt created_at for screening %s: %w", id, err)
	}
	if screening.UpdatedAt, err = time.Parse(time.RFC3339Nano, fields["updated_at"]); err != nil {
		return nil, fmt.Errorf("corrupt updated_at for screening %s: %w", id, err)
	}

	return screening, nil
}
