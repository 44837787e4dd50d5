package medication

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

type ScheduleStatus string

const (
	ScheduleOverdue  ScheduleStatus = "overdue"
	ScheduleDueNow   ScheduleStatus = "due_now"
	ScheduleUpcoming ScheduleStatus = "upcoming"
)

// dueWindowMinutes is the tolerance around a scheduled time within which a
// dose counts as due now rather than upcoming or overdue.
const dueWindowMinutes = 30

// ScheduleItem is one dose slot in today's resolved schedule. Derived on
// read, never stored.
type ScheduleItem struct {
	MedicationID  uuid.UUID      `json:"medication_id"`
	Name          string         `json:"name"`
	Dosage        string         `json:"dosage"`
	ScheduledTime time.Time      `json:"scheduled_time"`
	Status        ScheduleStatus `json:"status"`
	AsNeeded      bool           `json:"as_needed"`
}

// ResolveToday computes today's schedule from medication definitions and
// today's usage events. It is pure given its inputs: every status decision
// derives from now, so callers can test it without a store.
//
// Daily medications contribute one item per clock time, classified by the
// signed distance between the scheduled time and now. As-needed medications
// appear only when a dose was actually taken today; those items carry the
// usage timestamp and are always upcoming, since lateness has no meaning for
// an on-demand dose.
func ResolveToday(defs []*Definition, usage []*UsageEvent, now time.Time) []ScheduleItem {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)
	nowMinutes := now.Hour()*60 + now.Minute()

	var items []ScheduleItem
	for _, def := range defs {
		if !def.IsActive {
			continue
		}
		if def.IsDaily {
			for _, clock := range def.Times {
				t, err := time.Parse("15:04", clock)
				if err != nil {
					continue
				}
				scheduledMinutes := t.Hour()*60 + t.Minute()
				items = append(items, ScheduleItem{
					MedicationID:  def.ID,
					Name:          def.Name,
					Dosage:        def.Dosage,
					ScheduledTime: dayStart.Add(time.Duration(scheduledMinutes) * time.Minute),
					Status:        classify(scheduledMinutes - nowMinutes),
				})
			}
			continue
		}
		for _, evt := range usage {
			if evt.MedicationID != def.ID {
				continue
			}
			if evt.TakenAt.Before(dayStart) || !evt.TakenAt.Before(dayEnd) {
				continue
			}
			items = append(items, ScheduleItem{
				MedicationID:  def.ID,
				Name:          def.Name,
				Dosage:        def.Dosage,
				ScheduledTime: evt.TakenAt,
				Status:        ScheduleUpcoming,
				AsNeeded:      true,
			})
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		ti := minuteOfDay(items[i].ScheduledTime)
		tj := minuteOfDay(items[j].ScheduledTime)
		if ti != tj {
			return ti < tj
		}
		return items[i].MedicationID.String() < items[j].MedicationID.String()
	})
	return items
}

func classify(diffMinutes int) ScheduleStatus {
	switch {
	case diffMinutes < -dueWindowMinutes:
		return ScheduleOverdue
	case diffMinutes <= dueWindowMinutes:
		return ScheduleDueNow
	default:
		return ScheduleUpcoming
	}
}

func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
