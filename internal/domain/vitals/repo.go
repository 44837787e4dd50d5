package vitals

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository is the persistence boundary for health metric samples.
type Repository interface {
	Create(ctx context.Context, sample *Sample) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*Sample, int, error)
	ListSince(ctx context.Context, ownerID uuid.UUID, since time.Time) ([]*Sample, error)
}
