package models

import (
	"time"

	"github.com/google/uuid"
)

// StormEvent is a recorded weather event from an imported catalog
// (NOAA storm events or equivalent), used to corroborate a claimed loss date.
type StormEvent struct {
	ID             uuid.UUID `json:"id"`
	PerilType      string    `json:"peril_type"`
	EventDate      time.Time `json:"event_date"`
	County         string    `json:"county"`
	State          string    `json:"state"`
	MaxWindGustMPH *float64  `json:"max_wind_gust_mph,omitempty"`
	HailSizeIn     *float64  `json:"hail_size_in,omitempty"`
	Source         string    `json:"source"`
	Narrative      *string   `json:"narrative,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
