package alerts

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/caresense/caresense/internal/domain/vitals"
)

func f(v float64) *float64 { return &v }

func bpSample(sys, dia float64, recordedAt time.Time) *vitals.Sample {
	return &vitals.Sample{
		ID:         uuid.New(),
		MetricType: vitals.MetricBloodPressure,
		Systolic:   f(sys),
		Diastolic:  f(dia),
		RecordedAt: recordedAt,
	}
}

func scalarSample(metric vitals.MetricType, v float64, recordedAt time.Time) *vitals.Sample {
	return &vitals.Sample{
		ID:         uuid.New(),
		MetricType: metric,
		Value:      f(v),
		RecordedAt: recordedAt,
	}
}

func TestEvaluateHealthBloodPressure(t *testing.T) {
	now := time.Now()

	alerts := EvaluateHealth([]*vitals.Sample{bpSample(190, 115, now)}, now)
	if len(alerts) != 1 {
		t.Fatalf("190/115: expected exactly 1 alert, got %d", len(alerts))
	}
	if alerts[0].Severity != SeverityCritical {
		t.Errorf("190/115: expected critical, got %s", alerts[0].Severity)
	}

	if alerts := EvaluateHealth([]*vitals.Sample{bpSample(150, 95, now)}, now); len(alerts) != 0 {
		t.Errorf("150/95: expected no alerts, got %d", len(alerts))
	}

	alerts = EvaluateHealth([]*vitals.Sample{bpSample(165, 90, now)}, now)
	if len(alerts) != 1 || alerts[0].Severity != SeverityHigh {
		t.Errorf("165/90: expected one high alert, got %+v", alerts)
	}
}

func TestEvaluateHealthHeartRate(t *testing.T) {
	now := time.Now()
	cases := []struct {
		value float64
		want  Severity
	}{
		{130, SeverityCritical},
		{35, SeverityCritical},
		{110, SeverityHigh},
		{45, SeverityHigh},
		{70, ""},
	}
	for _, tc := range cases {
		alerts := EvaluateHealth([]*vitals.Sample{scalarSample(vitals.MetricHeartRate, tc.value, now)}, now)
		if tc.want == "" {
			if len(alerts) != 0 {
				t.Errorf("hr=%.0f: expected no alert, got %+v", tc.value, alerts)
			}
			continue
		}
		if len(alerts) != 1 || alerts[0].Severity != tc.want {
			t.Errorf("hr=%.0f: expected %s, got %+v", tc.value, tc.want, alerts)
		}
	}
}

func TestEvaluateHealthTemperatureAndOxygen(t *testing.T) {
	now := time.Now()

	alerts := EvaluateHealth([]*vitals.Sample{scalarSample(vitals.MetricTemperature, 104, now)}, now)
	if len(alerts) != 1 || alerts[0].Severity != SeverityCritical {
		t.Errorf("temp=104: expected critical, got %+v", alerts)
	}
	alerts = EvaluateHealth([]*vitals.Sample{scalarSample(vitals.MetricTemperature, 96.5, now)}, now)
	if len(alerts) != 1 || alerts[0].Severity != SeverityHigh {
		t.Errorf("temp=96.5: expected high, got %+v", alerts)
	}

	// Oxygen has a critical tier only.
	alerts = EvaluateHealth([]*vitals.Sample{scalarSample(vitals.MetricOxygenLevel, 88, now)}, now)
	if len(alerts) != 1 || alerts[0].Severity != SeverityCritical {
		t.Errorf("o2=88: expected critical, got %+v", alerts)
	}
	if alerts := EvaluateHealth([]*vitals.Sample{scalarSample(vitals.MetricOxygenLevel, 92, now)}, now); len(alerts) != 0 {
		t.Errorf("o2=92: expected no alert, got %+v", alerts)
	}
}

func TestEvaluateHealthIgnoresUnthresholdedMetrics(t *testing.T) {
	now := time.Now()
	samples := []*vitals.Sample{
		scalarSample(vitals.MetricWeight, 300, now),
		scalarSample(vitals.MetricBloodSugar, 500, now),
	}
	if alerts := EvaluateHealth(samples, now); len(alerts) != 0 {
		t.Errorf("expected no alerts for weight/blood sugar, got %+v", alerts)
	}
}

func TestEvaluateHealthIgnoresStaleSamples(t *testing.T) {
	now := time.Now()
	stale := bpSample(200, 120, now.Add(-25*time.Hour))
	if alerts := EvaluateHealth([]*vitals.Sample{stale}, now); len(alerts) != 0 {
		t.Errorf("expected stale sample ignored, got %+v", alerts)
	}
}
