package notification

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/caresense/caresense/internal/platform/feed"
	"github.com/caresense/caresense/internal/platform/ws"
)

func newTestCenter() (*Center, *feed.Dispatcher, *ws.Hub) {
	dispatcher := feed.NewDispatcher(zerolog.Nop())
	hub := ws.NewHub(zerolog.Nop())
	center := NewCenter(dispatcher, hub, NewInbox(), 50*time.Millisecond, zerolog.Nop())
	return center, dispatcher, hub
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestCenterDeliversToInboxAndSessions(t *testing.T) {
	center, dispatcher, hub := newTestCenter()
	caregiver := uuid.New()

	client := &ws.Client{CaregiverID: caregiver, Send: make(chan []byte, 4)}
	hub.Register(client)
	center.SessionStarted(caregiver)
	defer center.SessionEnded(caregiver)

	dispatcher.Publish(feed.Event{
		RelationshipID: uuid.New(),
		CaregiverID:    caregiver,
		SeniorEmail:    "senior@example.com",
		OldStatus:      "pending",
		NewStatus:      "approved",
		Timestamp:      time.Now(),
	})

	waitFor(t, func() bool { return center.Inbox().UnreadCount(caregiver) == 1 })

	select {
	case <-client.Send:
	case <-time.After(time.Second):
		t.Fatal("expected websocket push")
	}
}

func TestCenterToastLifecycle(t *testing.T) {
	center, dispatcher, _ := newTestCenter()
	caregiver := uuid.New()

	center.SessionStarted(caregiver)
	defer center.SessionEnded(caregiver)

	dispatcher.Publish(feed.Event{
		RelationshipID: uuid.New(),
		CaregiverID:    caregiver,
		SeniorEmail:    "senior@example.com",
		OldStatus:      "pending",
		NewStatus:      "rejected",
		Timestamp:      time.Now(),
	})

	waitFor(t, func() bool { return center.CurrentToast(caregiver) != nil })
	waitFor(t, func() bool { return center.CurrentToast(caregiver) == nil })
}

func TestCenterIgnoresNonTransitions(t *testing.T) {
	center, dispatcher, _ := newTestCenter()
	caregiver := uuid.New()

	center.SessionStarted(caregiver)
	defer center.SessionEnded(caregiver)

	dispatcher.Publish(feed.Event{
		CaregiverID: caregiver,
		OldStatus:   "approved",
		NewStatus:   "approved",
		Timestamp:   time.Now(),
	})

	time.Sleep(50 * time.Millisecond)
	if got := center.Inbox().UnreadCount(caregiver); got != 0 {
		t.Errorf("expected no notifications for redelivery, got %d", got)
	}
}

func TestCenterTearsDownListenerWithLastSession(t *testing.T) {
	center, dispatcher, _ := newTestCenter()
	caregiver := uuid.New()

	center.SessionStarted(caregiver)
	center.SessionStarted(caregiver)
	if got := dispatcher.SubscriberCount(caregiver); got != 1 {
		t.Fatalf("expected a single shared listener, got %d", got)
	}

	center.SessionEnded(caregiver)
	if got := dispatcher.SubscriberCount(caregiver); got != 1 {
		t.Errorf("expected listener kept while a session remains, got %d", got)
	}

	center.SessionEnded(caregiver)
	if got := dispatcher.SubscriberCount(caregiver); got != 0 {
		t.Errorf("expected listener removed with last session, got %d", got)
	}
}

func TestCenterShutdown(t *testing.T) {
	center, dispatcher, _ := newTestCenter()
	a, b := uuid.New(), uuid.New()
	center.SessionStarted(a)
	center.SessionStarted(b)

	center.Shutdown()
	if dispatcher.SubscriberCount(a) != 0 || dispatcher.SubscriberCount(b) != 0 {
		t.Error("expected all listeners removed on shutdown")
	}
}
