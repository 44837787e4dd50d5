package notification

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

func toastNotification() *Notification {
	return &Notification{ID: uuid.New(), Kind: KindApproved, Timestamp: time.Now()}
}

func TestToastAutoDismiss(t *testing.T) {
	var mu sync.Mutex
	var hidden []*Notification
	tc := NewToastController(20*time.Millisecond, func(n *Notification) {
		mu.Lock()
		hidden = append(hidden, n)
		mu.Unlock()
	})

	n := toastNotification()
	tc.Show(n)
	if tc.Current() == nil {
		t.Fatal("expected toast visible after Show")
	}

	time.Sleep(60 * time.Millisecond)
	if tc.Current() != nil {
		t.Error("expected toast hidden after duration")
	}
	mu.Lock()
	defer mu.Unlock()
	if len(hidden) != 1 || hidden[0].ID != n.ID {
		t.Errorf("expected one hide callback for the shown toast, got %d", len(hidden))
	}
}

func TestToastLaterTimerWins(t *testing.T) {
	var mu sync.Mutex
	var hidden []*Notification
	tc := NewToastController(40*time.Millisecond, func(n *Notification) {
		mu.Lock()
		hidden = append(hidden, n)
		mu.Unlock()
	})

	first := toastNotification()
	second := toastNotification()
	tc.Show(first)
	time.Sleep(25 * time.Millisecond)
	tc.Show(second) // re-arms before the first timer fires

	// The first timer fires here but must not hide the second toast.
	time.Sleep(25 * time.Millisecond)
	if cur := tc.Current(); cur == nil || cur.ID != second.ID {
		t.Error("expected second toast still visible after first timer expired")
	}

	time.Sleep(40 * time.Millisecond)
	if tc.Current() != nil {
		t.Error("expected second toast hidden by its own timer")
	}
	mu.Lock()
	defer mu.Unlock()
	if len(hidden) != 1 || hidden[0].ID != second.ID {
		t.Errorf("expected exactly one hide, for the second toast; got %d", len(hidden))
	}
}

func TestToastManualDismiss(t *testing.T) {
	tc := NewToastController(time.Hour, nil)
	tc.Show(toastNotification())
	tc.Dismiss()
	if tc.Current() != nil {
		t.Error("expected toast hidden after Dismiss")
	}
	// The stale timer must not panic or resurrect anything.
	tc.Dismiss()
}
