package report

import (
	"context"

	"github.com/google/uuid"
)

// Filter narrows report listings. Zero values are identity filters.
type Filter struct {
	Category      ReportType // empty or "all" matches every category
	Search        string     // case-insensitive match on file name, lab, doctor
	ProcessedOnly bool
}

type Repository interface {
	Create(ctx context.Context, r *Record) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*Record, error)
	Update(ctx context.Context, r *Record) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID, f Filter, limit, offset int) ([]*Record, int, error)
	// ListAllByUser returns every record for the user, newest first. The
	// aggregation engine consumes full collections, not pages.
	ListAllByUser(ctx context.Context, userID uuid.UUID) ([]*Record, error)
}
