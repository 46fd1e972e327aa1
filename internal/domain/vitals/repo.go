package vitals

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, r *Record) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*Record, error)
	Update(ctx context.Context, r *Record) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	// ListByUser returns entries recorded at or after since, newest first.
	// A zero since matches everything.
	ListByUser(ctx context.Context, userID uuid.UUID, since time.Time, limit, offset int) ([]*Record, int, error)
	// ListAllByUser returns every entry for the user, newest first, for
	// the aggregation engine.
	ListAllByUser(ctx context.Context, userID uuid.UUID) ([]*Record, error)
}
