package models

import (
	"github.com/shopspring/decimal"
)

type Transaction struct {
	ID           int             `json:"id,omitempty" db:"id,omitempty"`
	UserID       int             `json:"user_id,omitempty" db:"user_id,omitempty"`
	CategoryID   *int            `json:"category,omitempty" db:"category_id,omitempty"`
	CategoryName *string         `json:"category_name,omitempty" db:"-"`
	Type         string          `json:"type" db:"type"`
	Amount       decimal.Decimal `json:"amount" db:"amount"`
	Description  string          `json:"description" db:"description"`
	Date         string          `json:"date" db:"date"`
	CreatedAt    string          `json:"created_at,omitempty" db:"created_at,omitempty"`
	UpdatedAt    string          `json:"updated_at,omitempty" db:"updated_at,omitempty"`
}
