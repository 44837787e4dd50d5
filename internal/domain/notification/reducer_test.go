package notification

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/caresense/caresense/internal/platform/feed"
)

func event(old, new string) feed.Event {
	return feed.Event{
		RelationshipID: uuid.New(),
		CaregiverID:    uuid.New(),
		SeniorEmail:    "senior@example.com",
		OldStatus:      old,
		NewStatus:      new,
		Timestamp:      time.Now(),
	}
}

func TestReduceTransitions(t *testing.T) {
	cases := []struct {
		old, new string
		want     Kind // empty means no notification
	}{
		{"pending", "approved", KindApproved},
		{"pending", "rejected", KindRejected},
		{"", "approved", KindApproved},
		{"approved", "approved", ""},
		{"rejected", "rejected", ""},
		{"pending", "pending", ""},
		{"", "pending", ""},
	}
	for _, tc := range cases {
		n := Reduce(event(tc.old, tc.new))
		if tc.want == "" {
			if n != nil {
				t.Errorf("%s->%s: expected no notification, got %+v", tc.old, tc.new, n)
			}
			continue
		}
		if n == nil {
			t.Errorf("%s->%s: expected %s notification, got none", tc.old, tc.new, tc.want)
			continue
		}
		if n.Kind != tc.want || !n.Unread {
			t.Errorf("%s->%s: unexpected notification %+v", tc.old, tc.new, n)
		}
	}
}

func TestReduceIdempotentUnderRedelivery(t *testing.T) {
	evt := event("pending", "approved")

	first := Reduce(evt)
	if first == nil {
		t.Fatal("expected notification on genuine transition")
	}

	// A redelivered event reflects the already-terminal state.
	evt.OldStatus = "approved"
	if n := Reduce(evt); n != nil {
		t.Errorf("expected no notification on redelivery, got %+v", n)
	}
}
