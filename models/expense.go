package models

import (
	"time"

	"gigflow.io/ledger/models/enum"
)

type Expense struct {
	ID          int64                `json:"id"`
	UserID      int64                `json:"user_id"`
	GigID       *int64               `json:"gig_id,omitempty"`
	Category    enum.ExpenseCategory `json:"category"`
	Amount      string               `json:"amount"`
	Description string               `json:"description"`
	ExpenseDate time.Time            `json:"expense_date"`
	ReceiptID   *int64               `json:"receipt_id,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

type PartialExpense struct {
	ID          int64                 `json:"id"`
	GigID       *int64                `json:"gig_id,omitempty"`
	Category    *enum.ExpenseCategory `json:"category,omitempty"`
	Amount      *string               `json:"amount,omitempty"`
	Description *string               `json:"description,omitempty"`
	ExpenseDate *time.Time            `json:"expense_date,omitempty"`
	ReceiptID   *int64                `json:"receipt_id,omitempty"`
}

func NewExpense() *Expense {
	return &Expense{}
}
