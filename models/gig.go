package models

import (
	"time"

	"gigflow.io/ledger/models/enum"
)

// Gig is a single work engagement. Pay and tips arrive as decimal strings
// from the client and stay that way until the tax estimator parses them.
// A nil TaxPercentage means "use the user default"; an explicit 0 is a
// deliberate signal (cash income) and is never substituted.
type Gig struct {
	ID                 int64          `json:"id"`
	UserID             int64          `json:"user_id"`
	Platform           string         `json:"platform"`
	Description        string         `json:"description"`
	GigDate            time.Time      `json:"gig_date"`
	ActualPay          *string        `json:"actual_pay,omitempty"`
	Tips               *string        `json:"tips,omitempty"`
	TaxPercentage      *int32         `json:"tax_percentage,omitempty"`
	Status             enum.GigStatus `json:"status"`
	OriginAddress      string         `json:"origin_address,omitempty"`
	DestinationAddress string         `json:"destination_address,omitempty"`
	Miles              *float64       `json:"miles,omitempty"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

type PartialGig struct {
	ID                 int64           `json:"id"`
	Platform           *string         `json:"platform,omitempty"`
	Description        *string         `json:"description,omitempty"`
	GigDate            *time.Time      `json:"gig_date,omitempty"`
	ActualPay          *string         `json:"actual_pay,omitempty"`
	Tips               *string         `json:"tips,omitempty"`
	TaxPercentage      *int32          `json:"tax_percentage,omitempty"`
	Status             *enum.GigStatus `json:"status,omitempty"`
	OriginAddress      *string         `json:"origin_address,omitempty"`
	DestinationAddress *string         `json:"destination_address,omitempty"`
	Miles              *float64        `json:"miles,omitempty"`
}

func NewGig() *Gig {
	return &Gig{}
}
