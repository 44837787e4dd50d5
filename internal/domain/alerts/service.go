package alerts

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/caresense/caresense/internal/domain/activity"
	"github.com/caresense/caresense/internal/domain/medication"
	"github.com/caresense/caresense/internal/domain/vitals"
	"github.com/caresense/caresense/internal/platform/apperr"
)

// Verifier gates access to a senior's records. Implemented by the
// relationship service.
type Verifier interface {
	VerifyAccess(ctx context.Context, callerID, seniorID uuid.UUID) error
}

// VitalsSource supplies the samples the health evaluator reads.
type VitalsSource interface {
	RecentSamples(ctx context.Context, ownerID uuid.UUID) ([]*vitals.Sample, error)
}

// MedicationSource supplies the definitions the refill evaluator reads.
type MedicationSource interface {
	ActiveDefinitions(ctx context.Context, ownerID uuid.UUID) ([]*medication.Definition, error)
}

// ActivitySource supplies the latest record the inactivity evaluator reads.
type ActivitySource interface {
	Latest(ctx context.Context, ownerID uuid.UUID) (*activity.Record, error)
}

// Service fronts the three evaluators. Every call re-verifies the caller's
// relationship before touching senior data, then evaluates on a fresh
// snapshot; nothing is cached between calls.
type Service struct {
	verifier    Verifier
	vitals      VitalsSource
	medications MedicationSource
	activities  ActivitySource
	logger      zerolog.Logger
	now         func() time.Time
}

func NewService(verifier Verifier, v VitalsSource, m MedicationSource, a ActivitySource, logger zerolog.Logger) *Service {
	return &Service{
		verifier:    verifier,
		vitals:      v,
		medications: m,
		activities:  a,
		logger:      logger,
		now:         time.Now,
	}
}

// HealthAlerts evaluates the last 24 hours of samples.
func (s *Service) HealthAlerts(ctx context.Context, callerID, ownerID uuid.UUID) ([]HealthAlert, error) {
	if err := s.verifier.VerifyAccess(ctx, callerID, ownerID); err != nil {
		return nil, err
	}
	samples, err := s.vitals.RecentSamples(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return EvaluateHealth(samples, s.now()), nil
}

// MedicationAlerts evaluates refill dates of active medications.
func (s *Service) MedicationAlerts(ctx context.Context, callerID, ownerID uuid.UUID) ([]MedicationAlert, error) {
	if err := s.verifier.VerifyAccess(ctx, callerID, ownerID); err != nil {
		return nil, err
	}
	defs, err := s.medications.ActiveDefinitions(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return EvaluateRefills(defs, s.now()), nil
}

// InactivityAlerts evaluates the gap since the senior's last activity.
func (s *Service) InactivityAlerts(ctx context.Context, callerID, ownerID uuid.UUID) ([]InactivityAlert, error) {
	if err := s.verifier.VerifyAccess(ctx, callerID, ownerID); err != nil {
		return nil, err
	}
	alert, err := s.evaluateInactivity(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if alert == nil {
		return nil, nil
	}
	return []InactivityAlert{*alert}, nil
}

// All merges the three evaluators into one ranked list. A failing evaluator
// degrades to its successful peers rather than failing the whole call, so a
// dashboard can always render the alerts that could be computed.
func (s *Service) All(ctx context.Context, callerID, ownerID uuid.UUID) ([]Alert, error) {
	if err := s.verifier.VerifyAccess(ctx, callerID, ownerID); err != nil {
		return nil, err
	}
	now := s.now()

	var health []HealthAlert
	if samples, err := s.vitals.RecentSamples(ctx, ownerID); err != nil {
		s.logger.Error().Err(err).Str("owner_id", ownerID.String()).Msg("health alert evaluation skipped")
	} else {
		health = EvaluateHealth(samples, now)
	}

	var refills []MedicationAlert
	if defs, err := s.medications.ActiveDefinitions(ctx, ownerID); err != nil {
		s.logger.Error().Err(err).Str("owner_id", ownerID.String()).Msg("refill alert evaluation skipped")
	} else {
		refills = EvaluateRefills(defs, now)
	}

	var inactivity *InactivityAlert
	if alert, err := s.evaluateInactivity(ctx, ownerID); err != nil {
		s.logger.Error().Err(err).Str("owner_id", ownerID.String()).Msg("inactivity alert evaluation skipped")
	} else {
		inactivity = alert
	}

	return Aggregate(health, refills, inactivity), nil
}

func (s *Service) evaluateInactivity(ctx context.Context, ownerID uuid.UUID) (*InactivityAlert, error) {
	last, err := s.activities.Latest(ctx, ownerID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return EvaluateInactivity(nil, s.now()), nil
		}
		return nil, err
	}
	return EvaluateInactivity(last, s.now()), nil
}
