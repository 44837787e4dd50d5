// Package activity stores a senior's activity records. Append-only; the
// alert engine reads the most recent record to judge inactivity.
package activity

import (
	"time"

	"github.com/google/uuid"
)

// Record is one logged activity session.
type Record struct {
	ID              uuid.UUID `json:"id"`
	OwnerID         uuid.UUID `json:"owner_id"`
	Type            string    `json:"type"`
	DurationSeconds int       `json:"duration_seconds"`
	CaloriesBurned  float64   `json:"calories_burned"`
	Distance        float64   `json:"distance"`
	CreatedAt       time.Time `json:"created_at"`
}
