// Package feed provides an in-process change feed for relationship status
// transitions. Writers publish events after a successful store write and
// per-caregiver subscribers consume them, typically to drive notification
// delivery over websockets.
package feed

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Event describes one observed relationship record change. OldStatus is empty
// when the record was first seen.
type Event struct {
	RelationshipID uuid.UUID `json:"relationship_id"`
	CaregiverID    uuid.UUID `json:"caregiver_id"`
	SeniorEmail    string    `json:"senior_email"`
	OldStatus      string    `json:"old_status"`
	NewStatus      string    `json:"new_status"`
	Timestamp      time.Time `json:"timestamp"`
}

const subscriberBuffer = 16

type subscriber struct {
	id uint64
	ch chan Event
}

// Dispatcher fans events out to per-caregiver subscribers. Delivery is
// best-effort: a subscriber whose buffer is full misses the event rather
// than blocking the publisher.
type Dispatcher struct {
	mu     sync.RWMutex
	subs   map[uuid.UUID][]*subscriber
	nextID uint64
	closed bool
	logger zerolog.Logger
}

func NewDispatcher(logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		subs:   make(map[uuid.UUID][]*subscriber),
		logger: logger,
	}
}

// Publish delivers the event to every subscriber registered for the event's
// caregiver. It never blocks.
func (d *Dispatcher) Publish(evt Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return
	}
	for _, sub := range d.subs[evt.CaregiverID] {
		select {
		case sub.ch <- evt:
		default:
			d.logger.Warn().
				Str("caregiver_id", evt.CaregiverID.String()).
				Str("relationship_id", evt.RelationshipID.String()).
				Msg("feed subscriber buffer full, dropping event")
		}
	}
}

// Subscribe registers a listener for one caregiver's events. The returned
// cancel func removes the subscription and closes the channel; it is safe to
// call more than once.
func (d *Dispatcher) Subscribe(caregiverID uuid.UUID) (<-chan Event, func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	sub := &subscriber{
		id: d.nextID,
		ch: make(chan Event, subscriberBuffer),
	}
	d.nextID++

	if d.closed {
		close(sub.ch)
		return sub.ch, func() {}
	}
	d.subs[caregiverID] = append(d.subs[caregiverID], sub)

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			d.mu.Lock()
			defer d.mu.Unlock()
			list := d.subs[caregiverID]
			for i, s := range list {
				if s.id == sub.id {
					d.subs[caregiverID] = append(list[:i], list[i+1:]...)
					break
				}
			}
			if len(d.subs[caregiverID]) == 0 {
				delete(d.subs, caregiverID)
			}
			close(sub.ch)
		})
	}
	return sub.ch, cancel
}

// SubscriberCount reports how many listeners a caregiver currently has.
func (d *Dispatcher) SubscriberCount(caregiverID uuid.UUID) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.subs[caregiverID])
}

// Close shuts the dispatcher down and closes every subscriber channel.
// Publish and Subscribe become no-ops afterwards.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.closed = true
	for _, list := range d.subs {
		for _, sub := range list {
			close(sub.ch)
		}
	}
	d.subs = make(map[uuid.UUID][]*subscriber)
}
