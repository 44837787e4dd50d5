package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

func TestBroadcastReachesAllSessions(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	caregiver := uuid.New()

	a := &Client{CaregiverID: caregiver, Send: make(chan []byte, 4)}
	b := &Client{CaregiverID: caregiver, Send: make(chan []byte, 4)}
	hub.Register(a)
	hub.Register(b)

	hub.Broadcast(caregiver, Message{Type: "notification", Timestamp: time.Now()})

	for _, client := range []*Client{a, b} {
		select {
		case raw := <-client.Send:
			var msg Message
			if err := json.Unmarshal(raw, &msg); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if msg.Type != "notification" {
				t.Errorf("expected type notification, got %s", msg.Type)
			}
		default:
			t.Error("expected message on session")
		}
	}
}

func TestBroadcastIsolatedPerCaregiver(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	other := &Client{CaregiverID: uuid.New(), Send: make(chan []byte, 4)}
	hub.Register(other)

	hub.Broadcast(uuid.New(), Message{Type: "notification"})

	select {
	case <-other.Send:
		t.Error("expected no delivery to other caregiver")
	default:
	}
}

func TestUnregisterClosesSend(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	caregiver := uuid.New()
	client := &Client{CaregiverID: caregiver, Send: make(chan []byte, 4)}
	hub.Register(client)

	if got := hub.SessionCount(caregiver); got != 1 {
		t.Fatalf("expected 1 session, got %d", got)
	}

	hub.Unregister(client)
	hub.Unregister(client) // second call is a no-op

	if got := hub.SessionCount(caregiver); got != 0 {
		t.Errorf("expected 0 sessions, got %d", got)
	}
	if _, open := <-client.Send; open {
		t.Error("expected send channel to be closed")
	}
}

func TestBroadcastDropsOnFullBuffer(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	caregiver := uuid.New()
	client := &Client{CaregiverID: caregiver, Send: make(chan []byte, 1)}
	hub.Register(client)

	hub.Broadcast(caregiver, Message{Type: "first"})
	hub.Broadcast(caregiver, Message{Type: "second"}) // dropped, buffer full

	var msg Message
	if err := json.Unmarshal(<-client.Send, &msg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if msg.Type != "first" {
		t.Errorf("expected first message retained, got %s", msg.Type)
	}
	select {
	case <-client.Send:
		t.Error("expected second message to be dropped")
	default:
	}
}
