package models

import "time"

type User struct {
	ID                   int64     `json:"id"`
	Email                string    `json:"email"`
	Name                 string    `json:"name"`
	DefaultTaxPercentage *int32    `json:"default_tax_percentage,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

type PartialUser struct {
	ID                   int64   `json:"id"`
	Email                *string `json:"email,omitempty"`
	Name                 *string `json:"name,omitempty"`
	DefaultTaxPercentage *int32  `json:"default_tax_percentage,omitempty"`
}

func NewUser() *User {
	return &User{}
}
