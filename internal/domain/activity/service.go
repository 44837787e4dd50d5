package activity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/caresense/caresense/internal/platform/apperr"
)

// Verifier gates access to a senior's records. Implemented by the
// relationship service.
type Verifier interface {
	VerifyAccess(ctx context.Context, callerID, seniorID uuid.UUID) error
}

type Service struct {
	repo     Repository
	verifier Verifier
	logger   zerolog.Logger
	now      func() time.Time
}

func NewService(repo Repository, verifier Verifier, logger zerolog.Logger) *Service {
	return &Service{repo: repo, verifier: verifier, logger: logger, now: time.Now}
}

// Log appends an activity record for the senior.
func (s *Service) Log(ctx context.Context, callerID uuid.UUID, rec *Record) (*Record, error) {
	if err := s.verifier.VerifyAccess(ctx, callerID, rec.OwnerID); err != nil {
		return nil, err
	}
	if rec.Type == "" {
		return nil, apperr.Validationf("activity type is required")
	}
	if rec.DurationSeconds < 0 || rec.CaloriesBurned < 0 || rec.Distance < 0 {
		return nil, apperr.Validationf("activity measurements must not be negative")
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = s.now().UTC()
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, err
	}
	s.logger.Info().
		Str("record_id", rec.ID.String()).
		Str("owner_id", rec.OwnerID.String()).
		Msg("activity logged")
	return rec, nil
}

// List returns the senior's activity, newest first.
func (s *Service) List(ctx context.Context, callerID, ownerID uuid.UUID, limit, offset int) ([]*Record, int, error) {
	if err := s.verifier.VerifyAccess(ctx, callerID, ownerID); err != nil {
		return nil, 0, err
	}
	return s.repo.ListByOwner(ctx, ownerID, limit, offset)
}

// Latest returns the senior's most recent record, or ErrNotFound.
func (s *Service) Latest(ctx context.Context, ownerID uuid.UUID) (*Record, error) {
	return s.repo.Latest(ctx, ownerID)
}
