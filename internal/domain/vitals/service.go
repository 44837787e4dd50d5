package vitals

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

// Record appends a sample for the senior.
func (s *Service) Record(ctx context.Context, callerID uuid.UUID, sample *Sample) (*Sample, error) {
	if err := s.verifier.VerifyAccess(ctx, callerID, sample.OwnerID); err != nil {
		return nil, err
	}
	if err := validate(sample); err != nil {
		return nil, err
	}
	if sample.RecordedAt.IsZero() {
		sample.RecordedAt = s.now().UTC()
	}
	if err := s.repo.Create(ctx, sample); err != nil {
		return nil, err
	}
	s.logger.Info().
		Str("sample_id", sample.ID.String()).
		Str("owner_id", sample.OwnerID.String()).
		Str("metric_type", string(sample.MetricType)).
		Msg("sample recorded")
	return sample, nil
}

// List returns the senior's samples, newest first.
func (s *Service) List(ctx context.Context, callerID, ownerID uuid.UUID, limit, offset int) ([]*Sample, int, error) {
	if err := s.verifier.VerifyAccess(ctx, callerID, ownerID); err != nil {
		return nil, 0, err
	}
	return s.repo.ListByOwner(ctx, ownerID, limit, offset)
}

// RecentSamples returns samples recorded within the last 24 hours, the window
// the alert engine evaluates.
func (s *Service) RecentSamples(ctx context.Context, ownerID uuid.UUID) ([]*Sample, error) {
	return s.repo.ListSince(ctx, ownerID, s.now().Add(-24*time.Hour))
}

func validate(sample *Sample) error {
	if !sample.MetricType.Valid() {
		return apperr.Validationf("unknown metric type %q", sample.MetricType)
	}
	if sample.MetricType == MetricBloodPressure {
		if sample.Systolic == nil || sample.Diastolic == nil {
			return apperr.Validationf("blood pressure needs systolic and diastolic values")
		}
		if *sample.Systolic <= 0 || *sample.Diastolic <= 0 {
			return apperr.Validationf("blood pressure values must be positive")
		}
		if sample.Value != nil {
			return apperr.Validationf("blood pressure must not carry a single value")
		}
		return nil
	}
	if sample.Value == nil {
		return apperr.Validationf("metric %s needs a value", sample.MetricType)
	}
	if sample.Systolic != nil || sample.Diastolic != nil {
		return apperr.Validationf("only blood pressure carries a systolic/diastolic pair")
	}
	if *sample.Value <= 0 {
		return apperr.Validationf("value must be positive")
	}
	return nil
}
