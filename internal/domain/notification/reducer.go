// Package notification turns relationship change-feed events into
// caregiver-facing notifications: a pure reducer decides whether an event is
// a genuine transition, an inbox keeps the per-caregiver history, and a toast
// controller manages the auto-dismiss timer for the currently displayed one.
package notification

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/caresense/caresense/internal/platform/feed"
)

type Kind string

const (
	KindApproved Kind = "approved"
	KindRejected Kind = "rejected"
)

// Notification is one displayable inbox entry.
type Notification struct {
	ID             uuid.UUID `json:"id"`
	CaregiverID    uuid.UUID `json:"caregiver_id"`
	RelationshipID uuid.UUID `json:"relationship_id"`
	Kind           Kind      `json:"kind"`
	Message        string    `json:"message"`
	Timestamp      time.Time `json:"timestamp"`
	Unread         bool      `json:"unread"`
}

// Reduce maps one change-feed event to at most one notification. Only a
// genuine transition into approved or rejected produces output; redelivery
// of an event whose old and new status agree produces nothing, which is what
// makes downstream delivery idempotent.
func Reduce(evt feed.Event) *Notification {
	if evt.NewStatus == evt.OldStatus {
		return nil
	}

	var kind Kind
	var message string
	switch evt.NewStatus {
	case "approved":
		kind = KindApproved
		message = fmt.Sprintf("%s approved your access request", evt.SeniorEmail)
	case "rejected":
		kind = KindRejected
		message = fmt.Sprintf("%s declined your access request", evt.SeniorEmail)
	default:
		return nil
	}

	return &Notification{
		ID:             uuid.New(),
		CaregiverID:    evt.CaregiverID,
		RelationshipID: evt.RelationshipID,
		Kind:           kind,
		Message:        message,
		Timestamp:      evt.Timestamp,
		Unread:         true,
	}
}
