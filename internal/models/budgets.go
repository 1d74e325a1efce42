package models

import (
	"github.com/shopspring/decimal"
)

type Budget struct {
	ID              int             `json:"id,omitempty" db:"id,omitempty"`
	UserID          int             `json:"user_id,omitempty" db:"user_id,omitempty"`
	CategoryID      int             `json:"category" db:"category_id"`
	CategoryName    string          `json:"category_name,omitempty" db:"-"`
	Month           int             `json:"month" db:"month"`
	Year            int             `json:"year" db:"year"`
	AllocatedAmount decimal.Decimal `json:"allocated_amount" db:"allocated_amount"`
	CreatedAt       string          `json:"created_at,omitempty" db:"created_at,omitempty"`
	UpdatedAt       string          `json:"updated_at,omitempty" db:"updated_at,omitempty"`
}
