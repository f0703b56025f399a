package models

import "time"

type Receipt struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	FileName        string    `json:"file_name"`
	ContentType     string    `json:"content_type"`
	StorageKey      string    `json:"storage_key"`
	StorageProvider string    `json:"storage_provider"`
	URL             string    `json:"url"`
	SizeBytes       int64     `json:"size_bytes"`
	CreatedAt       time.Time `json:"created_at"`
}

func NewReceipt() *Receipt {
	return &Receipt{}
}
