package reports

import (
	"github.com/shopspring/decimal"
)

type Summary struct {
	TotalIncome      decimal.Decimal `json:"total_income"`
	TotalExpenses    decimal.Decimal `json:"total_expenses"`
	Balance          decimal.Decimal `json:"balance"`
	TransactionCount int             `json:"transaction_count"`
}

// BreakdownRow is one (category, type) group of the dashboard summary.
// CategoryName is nil for uncategorized transactions.
type BreakdownRow struct {
	CategoryName *string         `json:"category_name"`
	Type         string          `json:"type"`
	Total        decimal.Decimal `json:"total"`
	Count        int             `json:"count"`
}

func BuildSummary(income, expenses decimal.Decimal, count int) Summary {
	return Summary{
		TotalIncome:      income,
		TotalExpenses:    expenses,
		Balance:          income.Sub(expenses),
		TransactionCount: count,
	}
}
