package notification

import (
	"sync"
	"time"
)

// ToastController manages the auto-dismiss timer for the currently displayed
// toast. Showing a new toast re-arms the timer; a generation counter ensures
// that when timers overlap, only the latest one hides the toast, so an
// earlier timer can never race a newer toast off the screen.
type ToastController struct {
	mu         sync.Mutex
	generation uint64
	current    *Notification
	duration   time.Duration
	onHide     func(*Notification)
}

func NewToastController(duration time.Duration, onHide func(*Notification)) *ToastController {
	return &ToastController{duration: duration, onHide: onHide}
}

// Show displays the notification and arms a fresh dismiss timer, superseding
// any timer armed for a previous toast.
func (t *ToastController) Show(n *Notification) {
	t.mu.Lock()
	t.generation++
	gen := t.generation
	t.current = n
	t.mu.Unlock()

	time.AfterFunc(t.duration, func() {
		t.hide(gen)
	})
}

func (t *ToastController) hide(gen uint64) {
	t.mu.Lock()
	if gen != t.generation || t.current == nil {
		t.mu.Unlock()
		return
	}
	n := t.current
	t.current = nil
	t.mu.Unlock()

	if t.onHide != nil {
		t.onHide(n)
	}
}

// Dismiss hides the current toast immediately.
func (t *ToastController) Dismiss() {
	t.mu.Lock()
	t.generation++
	n := t.current
	t.current = nil
	t.mu.Unlock()

	if n != nil && t.onHide != nil {
		t.onHide(n)
	}
}

// Current returns the toast being displayed, or nil.
func (t *ToastController) Current() *Notification {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}
