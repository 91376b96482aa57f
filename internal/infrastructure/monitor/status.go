package monitor

import "time"

// Status is a snapshot of dependency health.
type Status struct {
	Storage   bool      `json:"storage"`
	Driver    string    `json:"driver"`
	LastCheck time.Time `json:"last_check"`
}
