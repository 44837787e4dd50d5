package notification

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/caresense/caresense/internal/platform/feed"
	"github.com/caresense/caresense/internal/platform/ws"
)

// Center bridges the change feed to caregiver clients. Each connected
// caregiver gets one long-lived feed listener that reduces events to
// notifications, stores them in the inbox, and pushes them over the
// caregiver's websocket sessions. Listeners are torn down when the last
// session closes so a disconnected caregiver leaves no live subscription
// behind.
type Center struct {
	feed          *feed.Dispatcher
	hub           *ws.Hub
	inbox         *Inbox
	toastDuration time.Duration
	logger        zerolog.Logger

	mu        sync.Mutex
	listeners map[uuid.UUID]*listener
	toasts    map[uuid.UUID]*ToastController
}

type listener struct {
	sessions int
	cancel   func()
	done     chan struct{}
}

func NewCenter(dispatcher *feed.Dispatcher, hub *ws.Hub, inbox *Inbox, toastDuration time.Duration, logger zerolog.Logger) *Center {
	return &Center{
		feed:          dispatcher,
		hub:           hub,
		inbox:         inbox,
		toastDuration: toastDuration,
		logger:        logger,
		listeners:     make(map[uuid.UUID]*listener),
		toasts:        make(map[uuid.UUID]*ToastController),
	}
}

// Inbox exposes the backing inbox for the HTTP handler.
func (c *Center) Inbox() *Inbox {
	return c.inbox
}

// CurrentToast returns the caregiver's currently displayed toast, or nil
// once the dismiss timer has fired.
func (c *Center) CurrentToast(caregiverID uuid.UUID) *Notification {
	c.mu.Lock()
	tc, ok := c.toasts[caregiverID]
	c.mu.Unlock()
	if !ok {
		return nil
	}
	return tc.Current()
}

// DismissToast hides the caregiver's toast immediately.
func (c *Center) DismissToast(caregiverID uuid.UUID) {
	c.mu.Lock()
	tc, ok := c.toasts[caregiverID]
	c.mu.Unlock()
	if ok {
		tc.Dismiss()
	}
}

func (c *Center) toastFor(caregiverID uuid.UUID) *ToastController {
	c.mu.Lock()
	defer c.mu.Unlock()
	tc, ok := c.toasts[caregiverID]
	if !ok {
		tc = NewToastController(c.toastDuration, nil)
		c.toasts[caregiverID] = tc
	}
	return tc
}

// SessionStarted registers a caregiver session, starting the feed listener
// on the first one.
func (c *Center) SessionStarted(caregiverID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if l, ok := c.listeners[caregiverID]; ok {
		l.sessions++
		return
	}

	events, cancel := c.feed.Subscribe(caregiverID)
	l := &listener{sessions: 1, cancel: cancel, done: make(chan struct{})}
	c.listeners[caregiverID] = l

	go c.run(caregiverID, events, l.done)
	c.logger.Debug().Str("caregiver_id", caregiverID.String()).Msg("feed listener started")
}

// SessionEnded unregisters a session, tearing the listener down when no
// sessions remain.
func (c *Center) SessionEnded(caregiverID uuid.UUID) {
	c.mu.Lock()
	l, ok := c.listeners[caregiverID]
	if !ok {
		c.mu.Unlock()
		return
	}
	l.sessions--
	if l.sessions > 0 {
		c.mu.Unlock()
		return
	}
	delete(c.listeners, caregiverID)
	c.mu.Unlock()

	l.cancel()
	<-l.done
	c.logger.Debug().Str("caregiver_id", caregiverID.String()).Msg("feed listener stopped")
}

// Shutdown tears down every listener. Used on server stop.
func (c *Center) Shutdown() {
	c.mu.Lock()
	listeners := c.listeners
	c.listeners = make(map[uuid.UUID]*listener)
	c.mu.Unlock()

	for _, l := range listeners {
		l.cancel()
		<-l.done
	}
}

func (c *Center) run(caregiverID uuid.UUID, events <-chan feed.Event, done chan struct{}) {
	defer close(done)
	for evt := range events {
		n := Reduce(evt)
		if n == nil {
			continue
		}
		c.inbox.Add(n)
		c.toastFor(caregiverID).Show(n)

		payload, err := json.Marshal(n)
		if err != nil {
			c.logger.Error().Err(err).Msg("marshal notification")
			continue
		}
		c.hub.Broadcast(caregiverID, ws.Message{
			Type:      "notification",
			Timestamp: n.Timestamp,
			Data:      payload,
		})
	}
}
