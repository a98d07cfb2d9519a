package events

import "time"

type Event struct {
	Type      string    `json:"type"`      // "catalog_loaded", "catalog_load_failed", "target_moved", "simulation_submitted", "simulation_completed", "simulation_failed", "quote_exported"
	Source    string    `json:"source"`    // originating component
	Timestamp time.Time `json:"timestamp"` // when the event occurred
}
