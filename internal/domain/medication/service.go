package medication

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

// Create adds a medication definition for the senior. The caller must be the
// senior or an approved caregiver.
func (s *Service) Create(ctx context.Context, callerID uuid.UUID, def *Definition) (*Definition, error) {
	if err := s.verifier.VerifyAccess(ctx, callerID, def.OwnerID); err != nil {
		return nil, err
	}
	if err := s.validate(def); err != nil {
		return nil, err
	}
	def.IsActive = true
	if err := s.repo.CreateDefinition(ctx, def); err != nil {
		return nil, err
	}
	s.logger.Info().
		Str("medication_id", def.ID.String()).
		Str("owner_id", def.OwnerID.String()).
		Msg("medication created")
	return def, nil
}

// Update replaces the mutable fields of a definition, including the active
// flag. Deactivation rather than deletion keeps usage history intact.
func (s *Service) Update(ctx context.Context, callerID, id uuid.UUID, updated *Definition) (*Definition, error) {
	existing, err := s.repo.GetDefinition(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.verifier.VerifyAccess(ctx, callerID, existing.OwnerID); err != nil {
		return nil, err
	}

	updated.ID = existing.ID
	updated.OwnerID = existing.OwnerID
	if err := s.validate(updated); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateDefinition(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// Deactivate retires a medication. The definition and its usage events are
// kept; the medication just stops appearing in active listings, schedules,
// and alert evaluation.
func (s *Service) Deactivate(ctx context.Context, callerID, id uuid.UUID) (*Definition, error) {
	def, err := s.repo.GetDefinition(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.verifier.VerifyAccess(ctx, callerID, def.OwnerID); err != nil {
		return nil, err
	}
	if !def.IsActive {
		return def, nil
	}
	def.IsActive = false
	if err := s.repo.UpdateDefinition(ctx, def); err != nil {
		return nil, err
	}
	s.logger.Info().
		Str("medication_id", def.ID.String()).
		Str("owner_id", def.OwnerID.String()).
		Msg("medication deactivated")
	return def, nil
}

// List returns the senior's medications, optionally only active ones.
func (s *Service) List(ctx context.Context, callerID, ownerID uuid.UUID, activeOnly bool) ([]*Definition, error) {
	if err := s.verifier.VerifyAccess(ctx, callerID, ownerID); err != nil {
		return nil, err
	}
	return s.repo.ListByOwner(ctx, ownerID, activeOnly)
}

// RecordUsage appends a dose event for an as-needed medication. Daily
// medications are tracked through the schedule, not usage events.
func (s *Service) RecordUsage(ctx context.Context, callerID, medicationID uuid.UUID, takenAt time.Time) (*UsageEvent, error) {
	def, err := s.repo.GetDefinition(ctx, medicationID)
	if err != nil {
		return nil, err
	}
	if err := s.verifier.VerifyAccess(ctx, callerID, def.OwnerID); err != nil {
		return nil, err
	}
	if def.IsDaily {
		return nil, apperr.Validationf("usage events apply only to as-needed medications")
	}
	if !def.IsActive {
		return nil, apperr.Validationf("medication is inactive")
	}
	if takenAt.IsZero() {
		takenAt = s.now().UTC()
	}
	if takenAt.After(s.now().Add(time.Minute)) {
		return nil, apperr.Validationf("taken_at must not be in the future")
	}

	evt := &UsageEvent{
		MedicationID: def.ID,
		OwnerID:      def.OwnerID,
		TakenAt:      takenAt,
	}
	if err := s.repo.CreateUsageEvent(ctx, evt); err != nil {
		return nil, err
	}
	return evt, nil
}

// ActiveDefinitions returns the senior's active medications without an
// access check. Callers that already verified the relationship, such as the
// alert engine, use this to avoid double gating.
func (s *Service) ActiveDefinitions(ctx context.Context, ownerID uuid.UUID) ([]*Definition, error) {
	return s.repo.ListByOwner(ctx, ownerID, true)
}

// TodaySchedule resolves the senior's schedule for the calendar day
// containing now.
func (s *Service) TodaySchedule(ctx context.Context, callerID, ownerID uuid.UUID) ([]ScheduleItem, error) {
	if err := s.verifier.VerifyAccess(ctx, callerID, ownerID); err != nil {
		return nil, err
	}

	now := s.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	defs, err := s.repo.ListByOwner(ctx, ownerID, true)
	if err != nil {
		return nil, err
	}
	usage, err := s.repo.ListUsageBetween(ctx, ownerID, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	return ResolveToday(defs, usage, now), nil
}

func (s *Service) validate(def *Definition) error {
	if def.Name == "" {
		return apperr.Validationf("medication name is required")
	}
	if def.IsDaily {
		if len(def.Times) == 0 {
			return apperr.Validationf("a daily medication needs at least one clock time")
		}
		seen := make(map[string]struct{}, len(def.Times))
		for _, clock := range def.Times {
			if _, err := time.Parse("15:04", clock); err != nil {
				return apperr.Validationf("clock time %q is not HH:MM", clock)
			}
			if _, dup := seen[clock]; dup {
				return apperr.Validationf("clock time %q is duplicated", clock)
			}
			seen[clock] = struct{}{}
		}
	} else if len(def.Times) > 0 {
		return apperr.Validationf("an as-needed medication must not carry clock times")
	}
	if def.RefillDate != nil {
		now := s.now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		if def.RefillDate.Before(today) {
			return apperr.Validationf("refill date is in the past")
		}
	}
	return nil
}
