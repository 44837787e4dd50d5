package notification

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func inboxEntry(caregiverID uuid.UUID, at time.Time) *Notification {
	return &Notification{
		ID:          uuid.New(),
		CaregiverID: caregiverID,
		Kind:        KindApproved,
		Timestamp:   at,
		Unread:      true,
	}
}

func TestInboxMostRecentFirst(t *testing.T) {
	in := NewInbox()
	caregiver := uuid.New()
	now := time.Now()

	first := inboxEntry(caregiver, now.Add(-time.Hour))
	second := inboxEntry(caregiver, now)
	in.Add(first)
	in.Add(second)

	list := in.List(caregiver)
	if len(list) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(list))
	}
	if list[0].ID != second.ID {
		t.Error("expected most recently added entry first")
	}
}

func TestInboxMarkAllReadKeepsEntries(t *testing.T) {
	in := NewInbox()
	caregiver := uuid.New()
	in.Add(inboxEntry(caregiver, time.Now()))
	in.Add(inboxEntry(caregiver, time.Now()))

	if got := in.UnreadCount(caregiver); got != 2 {
		t.Fatalf("expected 2 unread, got %d", got)
	}

	in.MarkAllRead(caregiver)
	if got := in.UnreadCount(caregiver); got != 0 {
		t.Errorf("expected 0 unread after marking, got %d", got)
	}
	if got := len(in.List(caregiver)); got != 2 {
		t.Errorf("expected entries kept, got %d", got)
	}
}

func TestInboxIsolatedPerCaregiver(t *testing.T) {
	in := NewInbox()
	a, b := uuid.New(), uuid.New()
	in.Add(inboxEntry(a, time.Now()))

	if got := len(in.List(b)); got != 0 {
		t.Errorf("expected empty inbox for other caregiver, got %d", got)
	}
}

func TestInboxListReturnsCopies(t *testing.T) {
	in := NewInbox()
	caregiver := uuid.New()
	in.Add(inboxEntry(caregiver, time.Now()))

	list := in.List(caregiver)
	list[0].Unread = false

	if got := in.UnreadCount(caregiver); got != 1 {
		t.Error("expected mutation of listed copy not to affect inbox")
	}
}
