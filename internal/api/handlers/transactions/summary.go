package transactions

import (
	"budget_tracker/internal/api/handlers"
	"budget_tracker/internal/reports"
	"budget_tracker/internal/repositories/sqlconnect"
	"budget_tracker/pkg/utils"
	"context"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// SummaryHandler serves GET /transactions/summary: dashboard totals plus a
// per-(category, type) breakdown for a date range. Defaults to the current
// month so far.
func SummaryHandler(w http.ResponseWriter, r *http.Request) {
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

	today := time.Now()
	startDate := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location()).Format("2006-01-02")
	endDate := today.Format("2006-01-02")

	if s := r.URL.Query().Get("start_date"); s != "" {
		if !handlers.ValidDate(s) {
			utils.WriteError(w, "start_date must be in YYYY-MM-DD format", http.StatusBadRequest)
			return
		}
		startDate = s
	}
	if e := r.URL.Query().Get("end_date"); e != "" {
		if !handlers.ValidDate(e) {
			utils.WriteError(w, "end_date must be in YYYY-MM-DD format", http.StatusBadRequest)
			return
		}
		endDate = e
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var income, expenses decimal.Decimal
	var count int
	err := db.QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(CASE WHEN type = 'INCOME' THEN amount END), 0),
			COALESCE(SUM(CASE WHEN type = 'EXPENSE' THEN amount END), 0),
			COUNT(*)
		FROM transactions
		WHERE user_id = ? AND date BETWEEN ? AND ?`, userID, startDate, endDate).
		Scan(&income, &expenses, &count)
	if err != nil {
		utils.Logger.Errorf("error computing summary totals: %v", err)
		utils.WriteError(w, "error computing summary", http.StatusInternalServerError)
		return
	}

	rows, err := db.QueryContext(ctx, `
		SELECT c.name, t.type, SUM(t.amount) AS total, COUNT(*)
		FROM transactions t
		LEFT JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = ? AND t.date BETWEEN ? AND ?
		GROUP BY c.name, t.type
		ORDER BY total DESC`, userID, startDate, endDate)
	if err != nil {
		utils.Logger.Errorf("error computing category breakdown: %v", err)
		utils.WriteError(w, "error computing summary", http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	breakdown := []reports.BreakdownRow{}
	for rows.Next() {
		var row reports.BreakdownRow
		if err = rows.Scan(&row.CategoryName, &row.Type, &row.Total, &row.Count); err != nil {
			utils.Logger.Errorf("error scanning breakdown row: %v", err)
			utils.WriteError(w, "error computing summary", http.StatusInternalServerError)
			return
		}
		breakdown = append(breakdown, row)
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status": "success",
		"period": map[string]string{
			"start_date": startDate,
			"end_date":   endDate,
		},
		"summary":            reports.BuildSummary(income, expenses, count),
		"category_breakdown": breakdown,
	})
}
