package activity

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the persistence boundary for activity records.
type Repository interface {
	Create(ctx context.Context, rec *Record) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*Record, int, error)

	// Latest returns the most recent record for the owner, or ErrNotFound
	// when the owner has never logged activity.
	Latest(ctx context.Context, ownerID uuid.UUID) (*Record, error)
}
