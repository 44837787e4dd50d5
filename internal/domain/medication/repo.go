package medication

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository is the persistence boundary for medication definitions and
// usage events.
type Repository interface {
	CreateDefinition(ctx context.Context, def *Definition) error
	GetDefinition(ctx context.Context, id uuid.UUID) (*Definition, error)
	UpdateDefinition(ctx context.Context, def *Definition) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID, activeOnly bool) ([]*Definition, error)

	CreateUsageEvent(ctx context.Context, evt *UsageEvent) error
	ListUsageBetween(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]*UsageEvent, error)
}
