package alerts

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/caresense/caresense/internal/domain/medication"
)

func defWithRefill(name string, refill time.Time) *medication.Definition {
	return &medication.Definition{
		ID:         uuid.New(),
		Name:       name,
		IsActive:   true,
		RefillDate: &refill,
	}
}

func TestEvaluateRefills(t *testing.T) {
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)

	cases := []struct {
		name         string
		daysOut      int
		wantEmitted  bool
		wantCritical bool
	}{
		{"ten days out", 10, false, false},
		{"eight days out", 8, false, false},
		{"seven days out", 7, true, false},
		{"four days out", 4, true, false},
		{"three days out", 3, true, true},
		{"due today", 0, true, true},
		{"overdue", -2, true, true},
	}
	for _, tc := range cases {
		def := defWithRefill("metformin", now.AddDate(0, 0, tc.daysOut))
		alerts := EvaluateRefills([]*medication.Definition{def}, now)
		if !tc.wantEmitted {
			if len(alerts) != 0 {
				t.Errorf("%s: expected no alert, got %+v", tc.name, alerts)
			}
			continue
		}
		if len(alerts) != 1 {
			t.Fatalf("%s: expected 1 alert, got %d", tc.name, len(alerts))
		}
		if alerts[0].IsCritical != tc.wantCritical {
			t.Errorf("%s: expected critical=%v, got %+v", tc.name, tc.wantCritical, alerts[0])
		}
		if alerts[0].IsCritical == alerts[0].IsUpcoming {
			t.Errorf("%s: critical and upcoming must be exclusive", tc.name)
		}
		if alerts[0].DaysUntilRefill != tc.daysOut {
			t.Errorf("%s: expected %d days, got %d", tc.name, tc.daysOut, alerts[0].DaysUntilRefill)
		}
	}
}

func TestEvaluateRefillsSkipsInactiveAndUndated(t *testing.T) {
	now := time.Now()
	inactive := defWithRefill("old med", now.AddDate(0, 0, 2))
	inactive.IsActive = false
	undated := &medication.Definition{ID: uuid.New(), Name: "vitamins", IsActive: true}

	if alerts := EvaluateRefills([]*medication.Definition{inactive, undated}, now); len(alerts) != 0 {
		t.Errorf("expected no alerts, got %+v", alerts)
	}
}
