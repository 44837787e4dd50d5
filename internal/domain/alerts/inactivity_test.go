package alerts

import (
	"testing"
	"time"

	"github.com/caresense/caresense/internal/domain/activity"
)

func TestEvaluateInactivityNeverActive(t *testing.T) {
	alert := EvaluateInactivity(nil, time.Now())
	if alert == nil {
		t.Fatal("expected alert for never-active senior")
	}
	if !alert.NeverActive || alert.Severity != SeverityCritical {
		t.Errorf("expected critical never-active alert, got %+v", alert)
	}
}

func TestEvaluateInactivityLevels(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		days int
		want Severity // empty means no alert
	}{
		{0, ""},
		{1, ""},
		{2, SeverityLow},
		{3, SeverityMedium},
		{4, SeverityMedium},
		{5, SeverityHigh},
		{6, SeverityHigh},
		{7, SeverityCritical},
		{9, SeverityCritical},
	}
	for _, tc := range cases {
		last := &activity.Record{CreatedAt: now.AddDate(0, 0, -tc.days)}
		alert := EvaluateInactivity(last, now)
		if tc.want == "" {
			if alert != nil {
				t.Errorf("%d days: expected no alert, got %+v", tc.days, alert)
			}
			continue
		}
		if alert == nil {
			t.Errorf("%d days: expected %s alert, got none", tc.days, tc.want)
			continue
		}
		if alert.Severity != tc.want {
			t.Errorf("%d days: expected %s, got %s", tc.days, tc.want, alert.Severity)
		}
		if alert.DaysInactive != tc.days {
			t.Errorf("%d days: reported %d days inactive", tc.days, alert.DaysInactive)
		}
	}
}
