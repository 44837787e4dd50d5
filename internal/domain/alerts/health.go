package alerts

import (
	"fmt"
	"time"

	"github.com/caresense/caresense/internal/domain/vitals"
)

// healthWindow is how far back samples are considered.
const healthWindow = 24 * time.Hour

// EvaluateHealth applies the per-metric threshold tables to samples recorded
// within the last 24 hours. Samples below the High threshold for their type
// produce no alert; blood sugar and weight carry no thresholds at all.
func EvaluateHealth(samples []*vitals.Sample, now time.Time) []HealthAlert {
	cutoff := now.Add(-healthWindow)
	var out []HealthAlert
	for _, sample := range samples {
		if sample.RecordedAt.Before(cutoff) {
			continue
		}
		alert := evaluateSample(sample)
		if alert != nil {
			out = append(out, *alert)
		}
	}
	return out
}

func evaluateSample(sample *vitals.Sample) *HealthAlert {
	var severity Severity
	var message string

	switch sample.MetricType {
	case vitals.MetricBloodPressure:
		if sample.Systolic == nil || sample.Diastolic == nil {
			return nil
		}
		sys, dia := *sample.Systolic, *sample.Diastolic
		switch {
		case sys > 180 || dia > 110:
			severity = SeverityCritical
			message = fmt.Sprintf("Blood pressure critically high: %.0f/%.0f", sys, dia)
		case sys > 160 || dia > 100:
			severity = SeverityHigh
			message = fmt.Sprintf("Blood pressure high: %.0f/%.0f", sys, dia)
		default:
			return nil
		}

	case vitals.MetricHeartRate:
		if sample.Value == nil {
			return nil
		}
		hr := *sample.Value
		switch {
		case hr > 120 || hr < 40:
			severity = SeverityCritical
			message = fmt.Sprintf("Heart rate critically abnormal: %.0f bpm", hr)
		case hr > 100 || hr < 50:
			severity = SeverityHigh
			message = fmt.Sprintf("Heart rate abnormal: %.0f bpm", hr)
		default:
			return nil
		}

	case vitals.MetricTemperature:
		if sample.Value == nil {
			return nil
		}
		temp := *sample.Value
		switch {
		case temp > 103 || temp < 95:
			severity = SeverityCritical
			message = fmt.Sprintf("Body temperature critically abnormal: %.1f°F", temp)
		case temp > 101 || temp < 97:
			severity = SeverityHigh
			message = fmt.Sprintf("Body temperature abnormal: %.1f°F", temp)
		default:
			return nil
		}

	case vitals.MetricOxygenLevel:
		if sample.Value == nil {
			return nil
		}
		o2 := *sample.Value
		if o2 >= 90 {
			return nil
		}
		severity = SeverityCritical
		message = fmt.Sprintf("Oxygen level critically low: %.0f%%", o2)

	default:
		return nil
	}

	return &HealthAlert{
		SampleID:   sample.ID,
		MetricType: string(sample.MetricType),
		Severity:   severity,
		Message:    message,
		RecordedAt: sample.RecordedAt,
	}
}
