package alerts

import (
	"fmt"
	"time"

	"github.com/caresense/caresense/internal/domain/medication"
)

const (
	refillHorizonDays  = 7
	refillCriticalDays = 3
)

// EvaluateRefills flags active medications whose refill date falls within
// the next week, measured in calendar days. A refill three or fewer days out
// (or already past) is critical.
func EvaluateRefills(defs []*medication.Definition, now time.Time) []MedicationAlert {
	var out []MedicationAlert
	for _, def := range defs {
		if !def.IsActive || def.RefillDate == nil {
			continue
		}
		days := calendarDaysUntil(now, *def.RefillDate)
		if days > refillHorizonDays {
			continue
		}
		alert := MedicationAlert{
			MedicationID:    def.ID,
			Name:            def.Name,
			RefillDate:      *def.RefillDate,
			DaysUntilRefill: days,
			IsCritical:      days <= refillCriticalDays,
			IsUpcoming:      days > refillCriticalDays,
			Timestamp:       now,
		}
		if alert.IsCritical {
			alert.Message = fmt.Sprintf("%s needs a refill within %d days", def.Name, days)
			if days <= 0 {
				alert.Message = fmt.Sprintf("%s refill is due now", def.Name)
			}
		} else {
			alert.Message = fmt.Sprintf("%s refill coming up in %d days", def.Name, days)
		}
		out = append(out, alert)
	}
	return out
}

// calendarDaysUntil counts whole calendar days from now's date to target's
// date, rounding partial days up.
func calendarDaysUntil(now, target time.Time) int {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	due := time.Date(target.Year(), target.Month(), target.Day(), 0, 0, 0, 0, now.Location())
	return int(due.Sub(today).Hours() / 24)
}
