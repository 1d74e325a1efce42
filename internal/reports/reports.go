// Package reports holds the budget-vs-actual aggregation math. Everything
// here is pure: handlers run the grouped SQL queries and feed the rows in,
// so the arithmetic stays deterministic and testable.
package reports

import (
	"budget_tracker/internal/models"
	"math"

	"github.com/shopspring/decimal"
)

const (
	StatusOver  = "over"
	StatusUnder = "under"
)

type BudgetUsage struct {
	models.Budget
	SpentAmount     decimal.Decimal `json:"spent_amount"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	PercentageUsed  float64         `json:"percentage_used"`
}

type CategoryComparison struct {
	Category       string          `json:"category"`
	Allocated      decimal.Decimal `json:"allocated"`
	Spent          decimal.Decimal `json:"spent"`
	Remaining      decimal.Decimal `json:"remaining"`
	PercentageUsed float64         `json:"percentage_used"`
	Status         string          `json:"status"`
}

type Overall struct {
	TotalAllocated decimal.Decimal `json:"total_allocated"`
	TotalSpent     decimal.Decimal `json:"total_spent"`
	TotalRemaining decimal.Decimal `json:"total_remaining"`
	PercentageUsed float64         `json:"percentage_used"`
}

// PercentageUsed is spent/allocated*100 rounded to 2 decimal places, with a
// zero allocation defined as 0 rather than a division fault. Float division
// is for display only; amounts stay decimal.
func PercentageUsed(spent, allocated decimal.Decimal) float64 {
	if !allocated.IsPositive() {
		return 0
	}
	pct, _ := spent.Div(allocated).Mul(decimal.NewFromInt(100)).Float64()
	return math.Round(pct*100) / 100
}

// BuildBudgetUsage derives spent/remaining/percentage for each budget.
// spentByCategory maps category id to the in-period EXPENSE sum; a missing
// key means no spending.
func BuildBudgetUsage(budgets []models.Budget, spentByCategory map[int]decimal.Decimal) []BudgetUsage {
	usage := make([]BudgetUsage, 0, len(budgets))
	for _, b := range budgets {
		spent := spentByCategory[b.CategoryID]
		usage = append(usage, BudgetUsage{
			Budget:          b,
			SpentAmount:     spent,
			RemainingAmount: b.AllocatedAmount.Sub(spent),
			PercentageUsed:  PercentageUsed(spent, b.AllocatedAmount),
		})
	}
	return usage
}

// BuildComparison produces the per-category breakdown plus overall totals.
// totalSpent is the user's full EXPENSE sum for the period, including
// categories without a budget, so it can exceed the breakdown's sum.
func BuildComparison(budgets []models.Budget, spentByCategory map[int]decimal.Decimal, totalSpent decimal.Decimal) (Overall, []CategoryComparison) {
	totalAllocated := decimal.Zero
	byCategory := make([]CategoryComparison, 0, len(budgets))

	for _, b := range budgets {
		totalAllocated = totalAllocated.Add(b.AllocatedAmount)

		spent := spentByCategory[b.CategoryID]
		status := StatusUnder
		if spent.GreaterThan(b.AllocatedAmount) {
			status = StatusOver
		}

		byCategory = append(byCategory, CategoryComparison{
			Category:       b.CategoryName,
			Allocated:      b.AllocatedAmount,
			Spent:          spent,
			Remaining:      b.AllocatedAmount.Sub(spent),
			PercentageUsed: PercentageUsed(spent, b.AllocatedAmount),
			Status:         status,
		})
	}

	overall := Overall{
		TotalAllocated: totalAllocated,
		TotalSpent:     totalSpent,
		TotalRemaining: totalAllocated.Sub(totalSpent),
		PercentageUsed: PercentageUsed(totalSpent, totalAllocated),
	}

	return overall, byCategory
}
