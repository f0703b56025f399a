package models

import "time"

// MileageLog records a tracked trip. Estimated marks distances that came out
// of the heuristic fallback rather than a real Distance Matrix measurement.
type MileageLog struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	GigID       *int64    `json:"gig_id,omitempty"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	Miles       float64   `json:"miles"`
	Estimated   bool      `json:"estimated"`
	LogDate     time.Time `json:"log_date"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewMileageLog() *MileageLog {
	return &MileageLog{}
}
