package handlers

import (
	"budget_tracker/internal/models"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Plausible year range for budgets.
const (
	MinBudgetYear = 2000
	MaxBudgetYear = 2100
)

var minTransactionAmount = decimal.NewFromFloat(0.01)

// FieldError is a single field-scoped validation failure. Validators return
// a slice of these; an empty slice means the input is acceptable.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func ValidationMessage(errs []FieldError) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Field+": "+e.Message)
	}
	return strings.Join(parts, "; ")
}

func ValidTransactionType(t string) bool {
	return t == models.TypeIncome || t == models.TypeExpense
}

func ValidDate(date string) bool {
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}

func ValidateCategoryInput(name, categoryType string) []FieldError {
	var errs []FieldError

	name = strings.TrimSpace(name)
	if name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "name is required"})
	} else if len(name) > 100 {
		errs = append(errs, FieldError{Field: "name", Message: "name must be at most 100 characters"})
	}

	if !ValidTransactionType(categoryType) {
		errs = append(errs, FieldError{Field: "type", Message: "type must be INCOME or EXPENSE"})
	}

	return errs
}

// ValidateTransactionInput checks a transaction create/update payload.
// categoryType is the type of the referenced category when one is given,
// nil otherwise.
func ValidateTransactionInput(transactionType string, amount decimal.Decimal, date string, categoryType *string) []FieldError {
	var errs []FieldError

	if !ValidTransactionType(transactionType) {
		errs = append(errs, FieldError{Field: "type", Message: "type must be INCOME or EXPENSE"})
	}

	if amount.LessThan(minTransactionAmount) {
		errs = append(errs, FieldError{Field: "amount", Message: "amount must be at least 0.01"})
	}

	if !ValidDate(date) {
		errs = append(errs, FieldError{Field: "date", Message: "date must be in YYYY-MM-DD format"})
	}

	if categoryType != nil && *categoryType != transactionType {
		errs = append(errs, FieldError{Field: "category", Message: "category type must match transaction type"})
	}

	return errs
}

// ValidateBudgetInput checks a budget create payload. categoryType is the
// type of the referenced category; budgets only make sense for EXPENSE
// categories.
func ValidateBudgetInput(month, year int, allocated decimal.Decimal, categoryType string) []FieldError {
	var errs []FieldError

	if month < 1 || month > 12 {
		errs = append(errs, FieldError{Field: "month", Message: "month must be between 1 and 12"})
	}

	if year < MinBudgetYear || year > MaxBudgetYear {
		errs = append(errs, FieldError{Field: "year", Message: "year is out of range"})
	}

	if allocated.IsNegative() {
		errs = append(errs, FieldError{Field: "allocated_amount", Message: "allocated amount cannot be negative"})
	}

	if categoryType != models.TypeExpense {
		errs = append(errs, FieldError{Field: "category", Message: "budget can only be set for expense categories"})
	}

	return errs
}
