package medication

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func day(hour, minute int) time.Time {
	return time.Date(2026, 8, 28, hour, minute, 0, 0, time.UTC)
}

func dailyDef(name string, times ...string) *Definition {
	return &Definition{
		ID:       uuid.New(),
		OwnerID:  uuid.New(),
		Name:     name,
		IsDaily:  true,
		IsActive: true,
		Times:    times,
	}
}

func TestResolveTodayStatusWindows(t *testing.T) {
	def := dailyDef("metformin", "08:00", "20:00")

	items := ResolveToday([]*Definition{def}, nil, day(8, 5))
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Status != ScheduleDueNow {
		t.Errorf("08:00 at 08:05: expected due_now, got %s", items[0].Status)
	}
	if items[1].Status != ScheduleUpcoming {
		t.Errorf("20:00 at 08:05: expected upcoming, got %s", items[1].Status)
	}

	items = ResolveToday([]*Definition{def}, nil, day(8, 45))
	if items[0].Status != ScheduleOverdue {
		t.Errorf("08:00 at 08:45: expected overdue, got %s", items[0].Status)
	}
}

func TestResolveTodayWindowBoundaries(t *testing.T) {
	def := dailyDef("lisinopril", "12:00")

	cases := []struct {
		now  time.Time
		want ScheduleStatus
	}{
		{day(11, 29), ScheduleUpcoming},
		{day(11, 30), ScheduleDueNow},
		{day(12, 30), ScheduleDueNow},
		{day(12, 31), ScheduleOverdue},
	}
	for _, tc := range cases {
		items := ResolveToday([]*Definition{def}, nil, tc.now)
		if items[0].Status != tc.want {
			t.Errorf("at %s: expected %s, got %s", tc.now.Format("15:04"), tc.want, items[0].Status)
		}
	}
}

func TestResolveTodaySkipsInactive(t *testing.T) {
	def := dailyDef("aspirin", "08:00")
	def.IsActive = false
	if items := ResolveToday([]*Definition{def}, nil, day(9, 0)); len(items) != 0 {
		t.Errorf("expected no items for inactive medication, got %d", len(items))
	}
}

func TestResolveTodayAsNeeded(t *testing.T) {
	def := &Definition{ID: uuid.New(), Name: "ibuprofen", IsActive: true}
	now := day(15, 0)

	// Without a usage event today the medication does not appear.
	if items := ResolveToday([]*Definition{def}, nil, now); len(items) != 0 {
		t.Fatalf("expected no items without usage, got %d", len(items))
	}

	usage := []*UsageEvent{
		{MedicationID: def.ID, TakenAt: day(9, 30)},
		{MedicationID: def.ID, TakenAt: day(8, 0).AddDate(0, 0, -1)}, // yesterday, ignored
	}
	items := ResolveToday([]*Definition{def}, usage, now)
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if !items[0].AsNeeded || items[0].Status != ScheduleUpcoming {
		t.Errorf("as-needed item should be upcoming, got %+v", items[0])
	}
	if !items[0].ScheduledTime.Equal(day(9, 30)) {
		t.Errorf("expected usage timestamp, got %s", items[0].ScheduledTime)
	}
}

func TestResolveTodayOrdering(t *testing.T) {
	a := dailyDef("evening med", "20:00")
	b := dailyDef("morning med", "07:00")
	prn := &Definition{ID: uuid.New(), Name: "prn med", IsActive: true}
	usage := []*UsageEvent{{MedicationID: prn.ID, TakenAt: day(12, 15)}}

	items := ResolveToday([]*Definition{a, b, prn}, usage, day(10, 0))
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0].Name != "morning med" || items[1].Name != "prn med" || items[2].Name != "evening med" {
		t.Errorf("unexpected order: %s, %s, %s", items[0].Name, items[1].Name, items[2].Name)
	}
}

func TestResolveTodayTieBreakByID(t *testing.T) {
	a := dailyDef("med a", "09:00")
	b := dailyDef("med b", "09:00")

	first := ResolveToday([]*Definition{a, b}, nil, day(8, 0))
	second := ResolveToday([]*Definition{b, a}, nil, day(8, 0))
	if first[0].MedicationID != second[0].MedicationID {
		t.Error("expected deterministic ordering regardless of input order")
	}
	if first[0].MedicationID.String() > first[1].MedicationID.String() {
		t.Error("expected tie broken by ascending medication id")
	}
}

func TestResolveTodaySkipsMalformedTimes(t *testing.T) {
	def := dailyDef("odd med", "25:99", "08:00")
	items := ResolveToday([]*Definition{def}, nil, day(9, 0))
	if len(items) != 1 {
		t.Errorf("expected malformed time skipped, got %d items", len(items))
	}
}
