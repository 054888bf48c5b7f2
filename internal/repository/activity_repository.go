package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/project-board/internal/domain"
)

// ActivityRepository persists the append-only activity journal.
// It is never read back into the board; the in-memory store stays authoritative.
type ActivityRepository interface {
	Append(ctx context.Context, entry *domain.ActivityEntry) error
}

type activityRepository struct {
	pool *pgxpool.Pool
}

// NewActivityRepository returns a Postgres-backed implementation.
func NewActivityRepository(pool *pgxpool.Pool) ActivityRepository {
	return &activityRepository{pool: pool}
}

func (r *activityRepository) Append(ctx context.Context, entry *domain.ActivityEntry) error {
	const query = `
        INSERT INTO activity_log (id, event_type, entity_id, payload, occurred_at)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (id) DO NOTHING`

	_, err := r.pool.Exec(ctx, query,
		entry.ID,
		entry.EventType,
		entry.EntityID,
		string(entry.Payload),
		entry.OccurredAt,
	)
	return err
}
