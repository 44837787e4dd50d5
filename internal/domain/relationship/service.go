package relationship

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/caresense/caresense/internal/platform/apperr"
	"github.com/caresense/caresense/internal/platform/feed"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Publisher receives relationship change events after a successful
// status transition.
type Publisher interface {
	Publish(evt feed.Event)
}

// Service implements relationship authorization. All status transitions go
// through the repository's conditional write, so a request that two actors
// race to resolve settles on exactly one terminal status.
type Service struct {
	repo   Repository
	pub    Publisher
	logger zerolog.Logger
	now    func() time.Time
	runTx  func(ctx context.Context, fn func(ctx context.Context) error) error
}

func NewService(repo Repository, pub Publisher, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		pub:    pub,
		logger: logger,
		now:    time.Now,
		runTx:  func(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) },
	}
}

// WithTxRunner sets the transactional boundary for resolve operations, so the
// conditional write and the post-write read see one consistent snapshot.
func (s *Service) WithTxRunner(run func(ctx context.Context, fn func(ctx context.Context) error) error) {
	s.runTx = run
}

// RequestAccess creates a pending relationship from the caller to the senior
// identified by email. A caregiver may hold at most one non-rejected request
// per senior email; a rejected request may be retried.
func (s *Service) RequestAccess(ctx context.Context, caregiverID uuid.UUID, caregiverEmail, seniorEmail string) (*Relationship, error) {
	caregiverEmail = normalizeEmail(caregiverEmail)
	seniorEmail = normalizeEmail(seniorEmail)

	if !emailPattern.MatchString(caregiverEmail) {
		return nil, apperr.Validationf("caregiver email %q is not a valid address", caregiverEmail)
	}
	if !emailPattern.MatchString(seniorEmail) {
		return nil, apperr.Validationf("senior email %q is not a valid address", seniorEmail)
	}
	if caregiverEmail == seniorEmail {
		return nil, apperr.Validationf("caregiver and senior email must differ")
	}

	open, err := s.repo.HasOpenRequest(ctx, caregiverID, seniorEmail)
	if err != nil {
		return nil, err
	}
	if open {
		return nil, fmt.Errorf("%w: a request for %s already exists", apperr.ErrConflict, seniorEmail)
	}

	code, err := generateVerificationCode()
	if err != nil {
		return nil, fmt.Errorf("generate verification code: %w", err)
	}

	rel := &Relationship{
		CaregiverID:      caregiverID,
		CaregiverEmail:   caregiverEmail,
		SeniorEmail:      seniorEmail,
		Status:           StatusPending,
		VerificationCode: code,
		RequestedAt:      s.now().UTC(),
	}
	if err := s.repo.Create(ctx, rel); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("relationship_id", rel.ID.String()).
		Str("caregiver_id", caregiverID.String()).
		Msg("access requested")
	return rel, nil
}

// Approve resolves a pending relationship to approved. The verification code
// issued at request time is optional; when supplied it must match. When the
// record was already resolved by the time the write lands, Approve returns
// the current record with changed=false instead of failing.
func (s *Service) Approve(ctx context.Context, id, seniorID uuid.UUID, code string) (*Relationship, bool, error) {
	rel, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, false, err
	}

	code = strings.TrimSpace(code)
	if rel.Status == StatusPending && code != "" && rel.VerificationCode != code {
		return nil, false, apperr.Validationf("verification code does not match")
	}

	var changed bool
	err = s.runTx(ctx, func(ctx context.Context) error {
		var txErr error
		changed, txErr = s.repo.Resolve(ctx, id, StatusApproved, seniorID, s.now().UTC())
		if txErr != nil {
			return txErr
		}
		rel, txErr = s.repo.GetByID(ctx, id)
		return txErr
	})
	if err != nil {
		return nil, false, err
	}
	if !changed {
		// Lost the race: the record reached a terminal status first.
		// Treat redelivery of the same outcome as a no-op.
		return rel, false, nil
	}

	s.publishTransition(rel, StatusPending)
	s.logger.Info().
		Str("relationship_id", rel.ID.String()).
		Str("senior_id", seniorID.String()).
		Msg("relationship approved")
	return rel, true, nil
}

// Reject resolves a pending relationship to rejected. Like Approve, losing
// the race to another resolution is a no-op, not an error.
func (s *Service) Reject(ctx context.Context, id, seniorID uuid.UUID) (*Relationship, bool, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, false, err
	}

	var rel *Relationship
	var changed bool
	err := s.runTx(ctx, func(ctx context.Context) error {
		var txErr error
		changed, txErr = s.repo.Resolve(ctx, id, StatusRejected, seniorID, s.now().UTC())
		if txErr != nil {
			return txErr
		}
		rel, txErr = s.repo.GetByID(ctx, id)
		return txErr
	})
	if err != nil {
		return nil, false, err
	}
	if !changed {
		return rel, false, nil
	}

	s.publishTransition(rel, StatusPending)
	s.logger.Info().
		Str("relationship_id", rel.ID.String()).
		Str("senior_id", seniorID.String()).
		Msg("relationship rejected")
	return rel, true, nil
}

// VerifyAccess is the authorization gate for senior-data reads. The senior
// always has access to their own data; anyone else needs an approved
// relationship.
func (s *Service) VerifyAccess(ctx context.Context, callerID, seniorID uuid.UUID) error {
	if callerID == uuid.Nil {
		return apperr.ErrNotAuthenticated
	}
	if callerID == seniorID {
		return nil
	}
	_, err := s.repo.LatestApproved(ctx, callerID, seniorID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return fmt.Errorf("%w: no approved relationship with this senior", apperr.ErrNotApproved)
		}
		return err
	}
	return nil
}

// List returns the caller's relationships in every status, most recently
// requested first.
func (s *Service) List(ctx context.Context, caregiverID uuid.UUID, limit, offset int) ([]*Relationship, int, error) {
	return s.repo.ListByCaregiver(ctx, caregiverID, limit, offset)
}

// PendingCount returns how many of the caller's requests still await a
// decision, for the roster badge.
func (s *Service) PendingCount(ctx context.Context, caregiverID uuid.UUID) (int, error) {
	return s.repo.CountPendingByCaregiver(ctx, caregiverID)
}

// ListActive returns the caller's approved relationships, most recently
// approved first.
func (s *Service) ListActive(ctx context.Context, caregiverID uuid.UUID) ([]*Relationship, error) {
	return s.repo.ListApprovedByCaregiver(ctx, caregiverID)
}

// ListPendingForSenior returns pending requests addressed to the given
// email, for a senior deciding whether to grant access.
func (s *Service) ListPendingForSenior(ctx context.Context, seniorEmail string) ([]*Relationship, error) {
	seniorEmail = normalizeEmail(seniorEmail)
	if !emailPattern.MatchString(seniorEmail) {
		return nil, apperr.Validationf("email %q is not a valid address", seniorEmail)
	}
	return s.repo.ListPendingBySeniorEmail(ctx, seniorEmail)
}

func (s *Service) publishTransition(rel *Relationship, old Status) {
	if s.pub == nil {
		return
	}
	s.pub.Publish(feed.Event{
		RelationshipID: rel.ID,
		CaregiverID:    rel.CaregiverID,
		SeniorEmail:    rel.SeniorEmail,
		OldStatus:      string(old),
		NewStatus:      string(rel.Status),
		Timestamp:      s.now().UTC(),
	})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// generateVerificationCode produces a 6-digit numeric code.
func generateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
