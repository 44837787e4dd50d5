// Package vitals stores health metric samples recorded for a senior. Samples
// are append-only; a new reading supersedes older ones but never rewrites
// them.
package vitals

import (
	"time"

	"github.com/google/uuid"
)

type MetricType string

const (
	MetricBloodPressure MetricType = "blood_pressure"
	MetricHeartRate     MetricType = "heart_rate"
	MetricTemperature   MetricType = "body_temperature"
	MetricWeight        MetricType = "weight"
	MetricBloodSugar    MetricType = "blood_sugar"
	MetricOxygenLevel   MetricType = "oxygen_level"
)

// Valid reports whether t is a known metric type.
func (t MetricType) Valid() bool {
	switch t {
	case MetricBloodPressure, MetricHeartRate, MetricTemperature,
		MetricWeight, MetricBloodSugar, MetricOxygenLevel:
		return true
	}
	return false
}

// Sample is one recorded reading. Blood pressure uses the systolic and
// diastolic pair; every other metric uses the single value.
type Sample struct {
	ID         uuid.UUID  `json:"id"`
	OwnerID    uuid.UUID  `json:"owner_id"`
	MetricType MetricType `json:"metric_type"`
	Value      *float64   `json:"value,omitempty"`
	Systolic   *float64   `json:"systolic,omitempty"`
	Diastolic  *float64   `json:"diastolic,omitempty"`
	Unit       string     `json:"unit"`
	RecordedAt time.Time  `json:"recorded_at"`
}
