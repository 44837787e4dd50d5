package notification

import (
	"sync"

	"github.com/google/uuid"
)

// Inbox holds each caregiver's notification history in memory, most recent
// first. Opening the tray marks everything read; nothing is ever deleted.
type Inbox struct {
	mu      sync.RWMutex
	entries map[uuid.UUID][]*Notification
}

func NewInbox() *Inbox {
	return &Inbox{entries: make(map[uuid.UUID][]*Notification)}
}

// Add prepends the notification to its caregiver's list.
func (in *Inbox) Add(n *Notification) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.entries[n.CaregiverID] = append([]*Notification{n}, in.entries[n.CaregiverID]...)
}

// List returns a snapshot of the caregiver's notifications, newest first.
func (in *Inbox) List(caregiverID uuid.UUID) []*Notification {
	in.mu.RLock()
	defer in.mu.RUnlock()
	entries := in.entries[caregiverID]
	out := make([]*Notification, len(entries))
	for i, n := range entries {
		cp := *n
		out[i] = &cp
	}
	return out
}

// UnreadCount reports how many notifications the caregiver has not seen.
func (in *Inbox) UnreadCount(caregiverID uuid.UUID) int {
	in.mu.RLock()
	defer in.mu.RUnlock()
	count := 0
	for _, n := range in.entries[caregiverID] {
		if n.Unread {
			count++
		}
	}
	return count
}

// MarkAllRead clears the unread flag on every entry. Entries are kept.
func (in *Inbox) MarkAllRead(caregiverID uuid.UUID) {
	in.mu.Lock()
	defer in.mu.Unlock()
	for _, n := range in.entries[caregiverID] {
		n.Unread = false
	}
}
