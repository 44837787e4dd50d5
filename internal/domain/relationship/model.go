// Package relationship implements caregiver-to-senior access authorization.
// A caregiver requests access to a senior's data; the senior approves the
// request with a verification code or rejects it. Approval is the sole gate
// for every senior-data read in the system.
package relationship

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Resolved reports whether the status is terminal. Approved and rejected
// records never change status again.
func (s Status) Resolved() bool {
	return s == StatusApproved || s == StatusRejected
}

// Relationship is one caregiver's access request for one senior. SeniorID is
// nil until the senior approves, at which point the approving account is
// bound to the record.
type Relationship struct {
	ID               uuid.UUID  `json:"id"`
	CaregiverID      uuid.UUID  `json:"caregiver_id"`
	CaregiverEmail   string     `json:"caregiver_email"`
	SeniorEmail      string     `json:"senior_email"`
	SeniorID         *uuid.UUID `json:"senior_id,omitempty"`
	Status           Status     `json:"status"`
	VerificationCode string     `json:"-"`
	RequestedAt      time.Time  `json:"requested_at"`
	ApprovedAt       *time.Time `json:"approved_at,omitempty"`
}

// Active reports whether the relationship currently grants access.
func (r *Relationship) Active() bool {
	return r.Status == StatusApproved
}
