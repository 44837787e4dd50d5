package alerts

import "sort"

// refill alerts carry no severity of their own; for ranking, a critical
// refill sits at High and an upcoming one at Low.
func refillSeverity(a MedicationAlert) Severity {
	if a.IsCritical {
		return SeverityHigh
	}
	return SeverityLow
}

// Aggregate merges the evaluator outputs into one ranked list: severity
// descending, then timestamp descending. The head of the list is always the
// single most urgent, most recent alert.
func Aggregate(health []HealthAlert, refills []MedicationAlert, inactivity *InactivityAlert) []Alert {
	merged := make([]Alert, 0, len(health)+len(refills)+1)
	for _, a := range health {
		merged = append(merged, Alert{
			Type:      TypeHealth,
			Severity:  a.Severity,
			Message:   a.Message,
			Timestamp: a.RecordedAt,
		})
	}
	for _, a := range refills {
		merged = append(merged, Alert{
			Type:      TypeRefill,
			Severity:  refillSeverity(a),
			Message:   a.Message,
			Timestamp: a.Timestamp,
		})
	}
	if inactivity != nil {
		merged = append(merged, Alert{
			Type:      TypeInactivity,
			Severity:  inactivity.Severity,
			Message:   inactivity.Message,
			Timestamp: inactivity.Timestamp,
		})
	}

	sort.SliceStable(merged, func(i, j int) bool {
		ri, rj := merged[i].Severity.Rank(), merged[j].Severity.Rank()
		if ri != rj {
			return ri > rj
		}
		return merged[i].Timestamp.After(merged[j].Timestamp)
	})
	return merged
}
