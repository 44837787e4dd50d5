// Package medication manages medication definitions, as-needed usage events,
// and the resolution of today's dose schedule.
package medication

import (
	"time"

	"github.com/google/uuid"
)

// Definition describes one medication a senior takes. Daily medications carry
// fixed clock times; as-needed (PRN) medications carry none and are tracked
// through usage events instead.
type Definition struct {
	ID         uuid.UUID  `json:"id"`
	OwnerID    uuid.UUID  `json:"owner_id"`
	Name       string     `json:"name"`
	Dosage     string     `json:"dosage"`
	Type       string     `json:"type"`
	Frequency  string     `json:"frequency"`
	Times      []string   `json:"times"`
	IsDaily    bool       `json:"is_daily"`
	IsActive   bool       `json:"is_active"`
	RefillDate *time.Time `json:"refill_date,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// UsageEvent records a single as-needed dose. Append-only.
type UsageEvent struct {
	ID           uuid.UUID `json:"id"`
	MedicationID uuid.UUID `json:"medication_id"`
	OwnerID      uuid.UUID `json:"owner_id"`
	TakenAt      time.Time `json:"taken_at"`
}
