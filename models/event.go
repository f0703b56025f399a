package models

import (
	"encoding/json"
	"time"
)

// Event is the audit record for a processed bus event.
type Event struct {
	ID          int64           `json:"id"`
	Type        string          `json:"type"`
	UserID      int64           `json:"user_id"`
	Payload     json.RawMessage `json:"payload"`
	ProcessedAt time.Time       `json:"processed_at"`
	CreatedAt   time.Time       `json:"created_at"`
}
