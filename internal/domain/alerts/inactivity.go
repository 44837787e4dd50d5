package alerts

import (
	"fmt"
	"time"

	"github.com/caresense/caresense/internal/domain/activity"
)

// EvaluateInactivity inspects the senior's most recent activity record.
// A senior with no history at all is critically flagged. Otherwise the gap
// in calendar days maps to a level, checked highest-first so a long gap
// lands on the most severe tier it qualifies for. Gaps under two days are
// normal and produce nothing.
func EvaluateInactivity(last *activity.Record, now time.Time) *InactivityAlert {
	if last == nil {
		return &InactivityAlert{
			NeverActive: true,
			Severity:    SeverityCritical,
			Message:     "No activity has ever been recorded",
			Timestamp:   now,
		}
	}

	days := calendarDaysUntil(last.CreatedAt, now)
	if days < 2 {
		return nil
	}

	var severity Severity
	switch {
	case days >= 7:
		severity = SeverityCritical
	case days >= 5:
		severity = SeverityHigh
	case days >= 3:
		severity = SeverityMedium
	default:
		severity = SeverityLow
	}

	lastActive := last.CreatedAt
	return &InactivityAlert{
		DaysInactive: days,
		Severity:     severity,
		Message:      fmt.Sprintf("No activity recorded for %d days", days),
		LastActiveAt: &lastActive,
		Timestamp:    now,
	}
}
