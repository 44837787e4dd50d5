// Package alerts evaluates a senior's recent health samples, medication
// refill dates, and activity recency against fixed threshold tables,
// producing severity-ranked alerts. All evaluators are pure over a snapshot
// of their inputs; nothing here is persisted.
package alerts

import (
	"time"

	"github.com/google/uuid"
)

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Rank orders severities for aggregation: Critical=4 down to Low=1.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	}
	return 0
}

type AlertType string

const (
	TypeHealth     AlertType = "health"
	TypeRefill     AlertType = "medication_refill"
	TypeInactivity AlertType = "inactivity"
)

// HealthAlert flags an out-of-range health metric sample.
type HealthAlert struct {
	SampleID   uuid.UUID `json:"sample_id"`
	MetricType string    `json:"metric_type"`
	Severity   Severity  `json:"severity"`
	Message    string    `json:"message"`
	RecordedAt time.Time `json:"recorded_at"`
}

// MedicationAlert flags a medication whose refill date is near.
type MedicationAlert struct {
	MedicationID    uuid.UUID `json:"medication_id"`
	Name            string    `json:"name"`
	RefillDate      time.Time `json:"refill_date"`
	DaysUntilRefill int       `json:"days_until_refill"`
	IsCritical      bool      `json:"is_critical"`
	IsUpcoming      bool      `json:"is_upcoming"`
	Message         string    `json:"message"`
	Timestamp       time.Time `json:"timestamp"`
}

// InactivityAlert flags a senior who has not logged activity recently.
type InactivityAlert struct {
	DaysInactive int        `json:"days_inactive"`
	NeverActive  bool       `json:"never_active"`
	Severity     Severity   `json:"severity"`
	Message      string     `json:"message"`
	LastActiveAt *time.Time `json:"last_active_at,omitempty"`
	Timestamp    time.Time  `json:"timestamp"`
}

// Alert is the merged, ranked view across all evaluators.
type Alert struct {
	Type      AlertType `json:"type"`
	Severity  Severity  `json:"severity"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
