package models

const (
	TypeIncome  = "INCOME"
	TypeExpense = "EXPENSE"
)

type Category struct {
	ID        int     `json:"id,omitempty" db:"id,omitempty"`
	UserID    int     `json:"user_id,omitempty" db:"user_id,omitempty"`
	Name      string  `json:"name" db:"name"`
	Type      string  `json:"type" db:"type"`
	Icon      *string `json:"icon,omitempty" db:"icon,omitempty"`
	Color     string  `json:"color" db:"color"`
	IsActive  bool    `json:"is_active" db:"is_active"`
	CreatedAt string  `json:"created_at,omitempty" db:"created_at,omitempty"`
	UpdatedAt string  `json:"updated_at,omitempty" db:"updated_at,omitempty"`
}
