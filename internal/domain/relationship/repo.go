package relationship

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository is the persistence boundary for relationships.
type Repository interface {
	Create(ctx context.Context, rel *Relationship) error
	GetByID(ctx context.Context, id uuid.UUID) (*Relationship, error)

	// Resolve transitions a pending relationship into a terminal status.
	// The write is conditional on the record still being pending; it
	// reports false, without error, when another actor resolved the
	// record first.
	Resolve(ctx context.Context, id uuid.UUID, status Status, seniorID uuid.UUID, at time.Time) (bool, error)

	// HasOpenRequest reports whether a non-rejected relationship already
	// exists for the caregiver and senior email pair.
	HasOpenRequest(ctx context.Context, caregiverID uuid.UUID, seniorEmail string) (bool, error)

	// LatestApproved returns the most recently approved relationship
	// between the caregiver and the senior, or ErrNotFound.
	LatestApproved(ctx context.Context, caregiverID, seniorID uuid.UUID) (*Relationship, error)

	ListByCaregiver(ctx context.Context, caregiverID uuid.UUID, limit, offset int) ([]*Relationship, int, error)
	CountPendingByCaregiver(ctx context.Context, caregiverID uuid.UUID) (int, error)
	ListApprovedByCaregiver(ctx context.Context, caregiverID uuid.UUID) ([]*Relationship, error)
	ListPendingBySeniorEmail(ctx context.Context, seniorEmail string) ([]*Relationship, error)
}
