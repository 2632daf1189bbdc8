package domain

import "time"

// Hospital groups beds under a unique name and a city.
type Hospital struct {
	ID        int64
	Name      string
	City      string
	CreatedAt time.Time
	// Beds is only populated by detail lookups.
	Beds []Bed
}
