package budgets

import (
	"budget_tracker/internal/models"
	"budget_tracker/internal/reports"
	"budget_tracker/internal/repositories/sqlconnect"
	"budget_tracker/pkg/utils"
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// CurrentHandler serves GET /budgets/current: every budget for the period
// annotated with spent, remaining and percentage used.
func CurrentHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	db := sqlconnect.DB
	if db == nil {
		utils.Logger.Error("DB is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	userID, ok := utils.UserIDFromRequest(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	month, year, ok := periodParams(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	budgets, err := fetchPeriodBudgets(ctx, db, userID, month, year)
	if err != nil {
		utils.Logger.Errorf("error fetching budgets for period: %v", err)
		utils.WriteError(w, "error fetching budgets", http.StatusInternalServerError)
		return
	}

	spentByCategory, err := fetchSpentByCategory(ctx, db, userID, month, year)
	if err != nil {
		utils.Logger.Errorf("error aggregating spending: %v", err)
		utils.WriteError(w, "error computing budget usage", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status":  "success",
		"month":   month,
		"year":    year,
		"budgets": reports.BuildBudgetUsage(budgets, spentByCategory),
	})
}

// ComparisonHandler serves GET /budgets/comparison: per-category over/under
// breakdown plus overall totals. The overall spent figure covers all EXPENSE
// transactions in the period, budgeted or not.
func ComparisonHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	db := sqlconnect.DB
	if db == nil {
		utils.Logger.Error("DB is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	userID, ok := utils.UserIDFromRequest(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	month, year, ok := periodParams(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	budgets, err := fetchPeriodBudgets(ctx, db, userID, month, year)
	if err != nil {
		utils.Logger.Errorf("error fetching budgets for period: %v", err)
		utils.WriteError(w, "error fetching budgets", http.StatusInternalServerError)
		return
	}

	spentByCategory, err := fetchSpentByCategory(ctx, db, userID, month, year)
	if err != nil {
		utils.Logger.Errorf("error aggregating spending: %v", err)
		utils.WriteError(w, "error computing comparison", http.StatusInternalServerError)
		return
	}

	var totalSpent decimal.Decimal
	err = db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE user_id = ? AND type = 'EXPENSE' AND MONTH(date) = ? AND YEAR(date) = ?`,
		userID, month, year).Scan(&totalSpent)
	if err != nil {
		utils.Logger.Errorf("error computing total spent: %v", err)
		utils.WriteError(w, "error computing comparison", http.StatusInternalServerError)
		return
	}

	overall, byCategory := reports.BuildComparison(budgets, spentByCategory, totalSpent)

	utils.WriteJSON(w, map[string]interface{}{
		"status":      "success",
		"period":      fmt.Sprintf("%d/%d", month, year),
		"overall":     overall,
		"by_category": byCategory,
	})
}

// periodParams reads month/year query params, defaulting to the server's
// current date. Writes a 400 and returns ok=false on malformed input.
func periodParams(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	today := time.Now()
	month := int(today.Month())
	year := today.Year()

	if m := r.URL.Query().Get("month"); m != "" {
		n, err := strconv.Atoi(m)
		if err != nil || n < 1 || n > 12 {
			utils.WriteError(w, "month must be a number between 1 and 12", http.StatusBadRequest)
			return 0, 0, false
		}
		month = n
	}
	if y := r.URL.Query().Get("year"); y != "" {
		n, err := strconv.Atoi(y)
		if err != nil {
			utils.WriteError(w, "year must be a number", http.StatusBadRequest)
			return 0, 0, false
		}
		year = n
	}

	return month, year, true
}

func fetchPeriodBudgets(ctx context.Context, db *sql.DB, userID, month, year int) ([]models.Budget, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT b.id, b.user_id, b.category_id, c.name, b.month, b.year, b.allocated_amount, b.created_at, b.updated_at
		FROM budgets b
		JOIN categories c ON c.id = b.category_id
		WHERE b.user_id = ? AND b.month = ? AND b.year = ?
		ORDER BY c.name`, userID, month, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var budgets []models.Budget
	for rows.Next() {
		var b models.Budget
		err = rows.Scan(&b.ID, &b.UserID, &b.CategoryID, &b.CategoryName, &b.Month, &b.Year, &b.AllocatedAmount, &b.CreatedAt, &b.UpdatedAt)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, b)
	}

	return budgets, rows.Err()
}

// fetchSpentByCategory runs one grouped aggregation for the whole period
// instead of a query per budget row.
func fetchSpentByCategory(ctx context.Context, db *sql.DB, userID, month, year int) (map[int]decimal.Decimal, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT category_id, SUM(amount)
		FROM transactions
		WHERE user_id = ? AND type = 'EXPENSE' AND category_id IS NOT NULL
			AND MONTH(date) = ? AND YEAR(date) = ?
		GROUP BY category_id`, userID, month, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	spent := make(map[int]decimal.Decimal)
	for rows.Next() {
		var categoryID int
		var total decimal.Decimal
		if err = rows.Scan(&categoryID, &total); err != nil {
			return nil, err
		}
		spent[categoryID] = total
	}

	return spent, rows.Err()
}
