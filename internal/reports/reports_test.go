package reports

import (
	"budget_tracker/internal/models"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func budget(id, categoryID int, categoryName, allocated string) models.Budget {
	return models.Budget{
		ID:              id,
		UserID:          1,
		CategoryID:      categoryID,
		CategoryName:    categoryName,
		Month:           6,
		Year:            2025,
		AllocatedAmount: dec(allocated),
	}
}

func TestPercentageUsed(t *testing.T) {
	tests := []struct {
		name      string
		spent     string
		allocated string
		want      float64
	}{
		{name: "partial use", spent: "5000", allocated: "8000", want: 62.5},
		{name: "zero allocation guard", spent: "500", allocated: "0", want: 0},
		{name: "zero spent", spent: "0", allocated: "8000", want: 0},
		{name: "over budget", spent: "150", allocated: "100", want: 150},
		{name: "rounds to two decimals", spent: "1", allocated: "3", want: 33.33},
		{name: "rounds up", spent: "2", allocated: "3", want: 66.67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PercentageUsed(dec(tt.spent), dec(tt.allocated))
			assert.InDelta(t, tt.want, got, 0.0001)
		})
	}
}

func TestBuildBudgetUsage(t *testing.T) {
	budgets := []models.Budget{
		budget(1, 10, "Groceries", "8000"),
		budget(2, 11, "Transport", "1000"),
	}
	spent := map[int]decimal.Decimal{
		10: dec("5000"),
	}

	usage := BuildBudgetUsage(budgets, spent)
	require.Len(t, usage, 2)

	groceries := usage[0]
	assert.True(t, groceries.SpentAmount.Equal(dec("5000")))
	assert.True(t, groceries.RemainingAmount.Equal(dec("3000")))
	assert.InDelta(t, 62.5, groceries.PercentageUsed, 0.0001)

	// Budget with no transactions in period.
	transport := usage[1]
	assert.True(t, transport.SpentAmount.IsZero())
	assert.True(t, transport.RemainingAmount.Equal(dec("1000")))
	assert.Zero(t, transport.PercentageUsed)
}

func TestBuildBudgetUsage_RemainingIsExact(t *testing.T) {
	budgets := []models.Budget{budget(1, 10, "Groceries", "100.10")}
	spent := map[int]decimal.Decimal{10: dec("33.33")}

	usage := BuildBudgetUsage(budgets, spent)
	require.Len(t, usage, 1)

	// Decimal arithmetic, no float drift.
	assert.True(t, usage[0].RemainingAmount.Equal(dec("66.77")),
		"remaining = %s", usage[0].RemainingAmount)
}

func TestBuildBudgetUsage_NegativeRemaining(t *testing.T) {
	budgets := []models.Budget{budget(1, 10, "Dining", "200")}
	spent := map[int]decimal.Decimal{10: dec("350.50")}

	usage := BuildBudgetUsage(budgets, spent)
	require.Len(t, usage, 1)
	assert.True(t, usage[0].RemainingAmount.Equal(dec("-150.50")))
}

func TestBuildComparison_Overall(t *testing.T) {
	budgets := []models.Budget{
		budget(1, 10, "Groceries", "8000"),
		budget(2, 11, "Transport", "12000"),
	}
	spent := map[int]decimal.Decimal{
		10: dec("5000"),
		11: dec("4000"),
	}
	// Total expense spend includes categories without a budget.
	totalSpent := dec("12000")

	overall, byCategory := BuildComparison(budgets, spent, totalSpent)

	assert.True(t, overall.TotalAllocated.Equal(dec("20000")))
	assert.True(t, overall.TotalSpent.Equal(dec("12000")))
	assert.True(t, overall.TotalRemaining.Equal(dec("8000")))
	assert.InDelta(t, 60.0, overall.PercentageUsed, 0.0001)

	// Breakdown is budget-driven: only the two budgeted categories appear,
	// and the overall total can exceed their sum.
	require.Len(t, byCategory, 2)
	breakdownSum := byCategory[0].Spent.Add(byCategory[1].Spent)
	assert.True(t, overall.TotalSpent.GreaterThanOrEqual(breakdownSum))
}

func TestBuildComparison_StatusBoundary(t *testing.T) {
	tests := []struct {
		name      string
		allocated string
		spent     string
		want      string
	}{
		{name: "under when below", allocated: "100", spent: "99.99", want: StatusUnder},
		{name: "under when exactly equal", allocated: "100", spent: "100.00", want: StatusUnder},
		{name: "over when strictly greater", allocated: "100", spent: "100.01", want: StatusOver},
		{name: "under with zero allocation and zero spend", allocated: "0", spent: "0", want: StatusUnder},
		{name: "over with zero allocation and any spend", allocated: "0", spent: "0.01", want: StatusOver},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			budgets := []models.Budget{budget(1, 10, "Misc", tt.allocated)}
			spent := map[int]decimal.Decimal{10: dec(tt.spent)}

			_, byCategory := BuildComparison(budgets, spent, dec(tt.spent))
			require.Len(t, byCategory, 1)
			assert.Equal(t, tt.want, byCategory[0].Status)
		})
	}
}

func TestBuildComparison_NoBudgets(t *testing.T) {
	overall, byCategory := BuildComparison(nil, nil, dec("500"))

	assert.Empty(t, byCategory)
	assert.True(t, overall.TotalAllocated.IsZero())
	assert.True(t, overall.TotalSpent.Equal(dec("500")))
	assert.True(t, overall.TotalRemaining.Equal(dec("-500")))
	// Zero allocation guards the overall percentage too.
	assert.Zero(t, overall.PercentageUsed)
}

func TestBuildComparison_CategoryFields(t *testing.T) {
	budgets := []models.Budget{budget(1, 10, "Groceries", "8000")}
	spent := map[int]decimal.Decimal{10: dec("5000")}

	_, byCategory := BuildComparison(budgets, spent, dec("5000"))
	require.Len(t, byCategory, 1)

	row := byCategory[0]
	assert.Equal(t, "Groceries", row.Category)
	assert.True(t, row.Allocated.Equal(dec("8000")))
	assert.True(t, row.Spent.Equal(dec("5000")))
	assert.True(t, row.Remaining.Equal(dec("3000")))
	assert.InDelta(t, 62.5, row.PercentageUsed, 0.0001)
	assert.Equal(t, StatusUnder, row.Status)
}

func TestBuildSummary(t *testing.T) {
	s := BuildSummary(dec("1500.25"), dec("420.75"), 17)

	assert.True(t, s.TotalIncome.Equal(dec("1500.25")))
	assert.True(t, s.TotalExpenses.Equal(dec("420.75")))
	assert.True(t, s.Balance.Equal(dec("1079.50")))
	assert.Equal(t, 17, s.TransactionCount)
}

func TestBuildSummary_NegativeBalance(t *testing.T) {
	s := BuildSummary(dec("100"), dec("250.50"), 3)
	assert.True(t, s.Balance.Equal(dec("-150.50")))
}
