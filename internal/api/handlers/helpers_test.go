package handlers

import (
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

func fieldNames(errs []FieldError) []string {
	names := make([]string, 0, len(errs))
	for _, e := range errs {
		names = append(names, e.Field)
	}
	return names
}

func TestValidTransactionType(t *testing.T) {
	assert.True(t, ValidTransactionType("INCOME"))
	assert.True(t, ValidTransactionType("EXPENSE"))
	assert.False(t, ValidTransactionType("income"))
	assert.False(t, ValidTransactionType("TRANSFER"))
	assert.False(t, ValidTransactionType(""))
}

func TestValidDate(t *testing.T) {
	assert.True(t, ValidDate("2025-06-15"))
	assert.False(t, ValidDate("2025-13-01"))
	assert.False(t, ValidDate("15/06/2025"))
	assert.False(t, ValidDate("not-a-date"))
}

func TestValidateCategoryInput(t *testing.T) {
	assert.Empty(t, ValidateCategoryInput("Groceries", "EXPENSE"))

	errs := ValidateCategoryInput("", "EXPENSE")
	assert.Contains(t, fieldNames(errs), "name")

	errs = ValidateCategoryInput("Salary", "WAGES")
	assert.Contains(t, fieldNames(errs), "type")

	long := make([]byte, 101)
	for i := range long {
		long[i] = 'a'
	}
	errs = ValidateCategoryInput(string(long), "INCOME")
	assert.Contains(t, fieldNames(errs), "name")
}

func TestValidateTransactionInput(t *testing.T) {
	expense := "EXPENSE"
	income := "INCOME"

	assert.Empty(t, ValidateTransactionInput("EXPENSE", dec("0.01"), "2025-06-15", &expense))
	assert.Empty(t, ValidateTransactionInput("INCOME", dec("2500"), "2025-06-01", nil))

	t.Run("amount below minimum", func(t *testing.T) {
		errs := ValidateTransactionInput("EXPENSE", dec("0.009"), "2025-06-15", nil)
		assert.Contains(t, fieldNames(errs), "amount")
	})

	t.Run("zero amount", func(t *testing.T) {
		errs := ValidateTransactionInput("EXPENSE", decimal.Zero, "2025-06-15", nil)
		assert.Contains(t, fieldNames(errs), "amount")
	})

	t.Run("category type mismatch", func(t *testing.T) {
		errs := ValidateTransactionInput("EXPENSE", dec("10"), "2025-06-15", &income)
		assert.Contains(t, fieldNames(errs), "category")
	})

	t.Run("bad date", func(t *testing.T) {
		errs := ValidateTransactionInput("EXPENSE", dec("10"), "June 15th", nil)
		assert.Contains(t, fieldNames(errs), "date")
	})

	t.Run("multiple failures reported together", func(t *testing.T) {
		errs := ValidateTransactionInput("TRANSFER", decimal.Zero, "bad", &income)
		names := fieldNames(errs)
		assert.Contains(t, names, "type")
		assert.Contains(t, names, "amount")
		assert.Contains(t, names, "date")
	})
}

func TestValidateBudgetInput(t *testing.T) {
	assert.Empty(t, ValidateBudgetInput(6, 2025, dec("8000"), "EXPENSE"))
	assert.Empty(t, ValidateBudgetInput(1, 2025, decimal.Zero, "EXPENSE"))

	t.Run("month out of range", func(t *testing.T) {
		for _, month := range []int{0, 13, -1} {
			errs := ValidateBudgetInput(month, 2025, dec("100"), "EXPENSE")
			assert.Contains(t, fieldNames(errs), "month")
		}
	})

	t.Run("year out of range", func(t *testing.T) {
		for _, year := range []int{1999, 2101} {
			errs := ValidateBudgetInput(6, year, dec("100"), "EXPENSE")
			assert.Contains(t, fieldNames(errs), "year")
		}
	})

	t.Run("negative allocation", func(t *testing.T) {
		errs := ValidateBudgetInput(6, 2025, dec("-0.01"), "EXPENSE")
		assert.Contains(t, fieldNames(errs), "allocated_amount")
	})

	t.Run("income category rejected", func(t *testing.T) {
		errs := ValidateBudgetInput(6, 2025, dec("100"), "INCOME")
		require.Len(t, errs, 1)
		assert.Equal(t, "category", errs[0].Field)
	})
}

func TestValidationMessage(t *testing.T) {
	errs := []FieldError{
		{Field: "month", Message: "month must be between 1 and 12"},
		{Field: "category", Message: "budget can only be set for expense categories"},
	}
	msg := ValidationMessage(errs)
	assert.Equal(t, "month: month must be between 1 and 12; category: budget can only be set for expense categories", msg)
}
