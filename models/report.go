package models

import "time"

// DashboardSummary aggregates a user's activity over a date range for the
// dashboard and tax report views.
type DashboardSummary struct {
	UserID           int64     `json:"user_id"`
	From             time.Time `json:"from"`
	To               time.Time `json:"to"`
	GigCount         int       `json:"gig_count"`
	TotalIncome      string    `json:"total_income"`
	TotalTips        string    `json:"total_tips"`
	TotalExpenses    string    `json:"total_expenses"`
	TotalMiles       float64   `json:"total_miles"`
	MileageDeduction string    `json:"mileage_deduction"`
	EstimatedTax     string    `json:"estimated_tax"`
	NetIncome        string    `json:"net_income"`
	GeneratedAt      time.Time `json:"generated_at"`
}
