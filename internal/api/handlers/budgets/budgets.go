package budgets

import (
	"budget_tracker/internal/api/handlers"
	"budget_tracker/internal/models"
	"budget_tracker/internal/repositories/sqlconnect"
	"budget_tracker/pkg/utils"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var orderingColumns = map[string]string{
	"month":            "b.month",
	"year":             "b.year",
	"allocated_amount": "b.allocated_amount",
}

// Dispatches /budgets (list, create).
func BudgetsHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		listBudgets(w, r)
	case http.MethodPost:
		createBudget(w, r)
	default:
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}

// Dispatches /budgets/{id} (get, update, delete).
func BudgetHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		getBudget(w, r)
	case http.MethodPut:
		updateBudget(w, r)
	case http.MethodDelete:
		deleteBudget(w, r)
	default:
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}

func createBudget(w http.ResponseWriter, r *http.Request) {
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

	type request struct {
		Category        int             `json:"category"`
		Month           int             `json:"month"`
		Year            int             `json:"year"`
		AllocatedAmount decimal.Decimal `json:"allocated_amount"`
	}

	var req request
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		utils.WriteError(w, "invalid or unexpected fields in body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var categoryType string
	err := db.QueryRowContext(ctx, "SELECT type FROM categories WHERE id = ? AND user_id = ?", req.Category, userID).Scan(&categoryType)
	if err != nil {
		if err == sql.ErrNoRows {
			utils.WriteError(w, "category: category not found", http.StatusBadRequest)
			return
		}
		utils.Logger.Errorf("error fetching category type: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if errs := handlers.ValidateBudgetInput(req.Month, req.Year, req.AllocatedAmount, categoryType); len(errs) > 0 {
		utils.WriteError(w, handlers.ValidationMessage(errs), http.StatusBadRequest)
		return
	}

	// The unique key on (user_id, category_id, month, year) is the
	// authoritative guard against concurrent duplicate creates.
	query := `INSERT INTO budgets (user_id, category_id, month, year, allocated_amount) VALUES (?, ?, ?, ?, ?)`
	res, err := db.ExecContext(ctx, query, userID, req.Category, req.Month, req.Year, req.AllocatedAmount)
	if err != nil {
		if strings.Contains(err.Error(), "Duplicate entry") {
			utils.WriteError(w, "budget already exists for this category and period", http.StatusConflict)
			return
		}
		utils.Logger.Errorf("failed to create budget: %v", err)
		utils.WriteError(w, "failed to create budget", http.StatusInternalServerError)
		return
	}

	id, err := res.LastInsertId()
	if err != nil {
		utils.Logger.Errorf("failed to get last insert ID: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	budget, err := fetchBudget(ctx, int(id), userID)
	if err != nil {
		utils.Logger.Errorf("failed to load created budget: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status": "success",
		"data":   budget,
	})
}

func listBudgets(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	page, limit := utils.GetPaginationParams(r)
	offset := (page - 1) * limit

	query := `
		SELECT b.id, b.user_id, b.category_id, c.name, b.month, b.year, b.allocated_amount, b.created_at, b.updated_at
		FROM budgets b
		JOIN categories c ON c.id = b.category_id
		WHERE b.user_id = ?
	`
	args := []interface{}{userID}

	q := r.URL.Query()

	intFilters := []struct {
		param  string
		column string
	}{
		{"month", "b.month"},
		{"year", "b.year"},
		{"category", "b.category_id"},
	}
	for _, f := range intFilters {
		if v := q.Get(f.param); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				utils.WriteError(w, f.param+" must be a number", http.StatusBadRequest)
				return
			}
			query += " AND " + f.column + " = ?"
			args = append(args, n)
		}
	}

	query += utils.OrderClause(r, orderingColumns, "b.year DESC, b.month DESC")
	query += " LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		utils.Logger.Errorf("error fetching budgets: %v", err)
		utils.WriteError(w, "error fetching budgets", http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	budgets := []models.Budget{}
	for rows.Next() {
		var b models.Budget
		err = rows.Scan(&b.ID, &b.UserID, &b.CategoryID, &b.CategoryName, &b.Month, &b.Year, &b.AllocatedAmount, &b.CreatedAt, &b.UpdatedAt)
		if err != nil {
			utils.Logger.Errorf("error scanning budget row: %v", err)
			utils.WriteError(w, "error fetching budgets", http.StatusInternalServerError)
			return
		}
		budgets = append(budgets, b)
	}

	response := struct {
		Status   string          `json:"status"`
		Count    int             `json:"count"`
		Page     int             `json:"page"`
		PageSize int             `json:"page_size"`
		Data     []models.Budget `json:"data"`
	}{
		Status:   "success",
		Count:    len(budgets),
		Page:     page,
		PageSize: limit,
		Data:     budgets,
	}

	utils.WriteJSON(w, response)
}

func getBudget(w http.ResponseWriter, r *http.Request) {
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

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, "invalid budget ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	budget, err := fetchBudget(ctx, id, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			utils.WriteError(w, "budget not found", http.StatusNotFound)
			return
		}
		utils.Logger.Errorf("error fetching budget: %v", err)
		utils.WriteError(w, "error fetching budget", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status": "success",
		"data":   budget,
	})
}

// updateBudget only ever changes allocated_amount. Category, month, year and
// user are immutable after creation; any such fields in the body are ignored
// rather than rejected, so the decoder deliberately allows unknown fields.
func updateBudget(w http.ResponseWriter, r *http.Request) {
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

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, "invalid budget ID", http.StatusBadRequest)
		return
	}

	type request struct {
		AllocatedAmount *decimal.Decimal `json:"allocated_amount"`
	}

	var req request
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if req.AllocatedAmount == nil {
		utils.WriteError(w, "allocated_amount is required", http.StatusBadRequest)
		return
	}
	if req.AllocatedAmount.IsNegative() {
		utils.WriteError(w, "allocated_amount: allocated amount cannot be negative", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.ExecContext(ctx, "UPDATE budgets SET allocated_amount = ? WHERE id = ? AND user_id = ?", req.AllocatedAmount, id, userID)
	if err != nil {
		utils.Logger.Errorf("failed to update budget: %v", err)
		utils.WriteError(w, "failed to update budget", http.StatusInternalServerError)
		return
	}

	affected, err := res.RowsAffected()
	if err != nil {
		utils.Logger.Errorf("failed to read rows affected: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if affected == 0 {
		if _, err = fetchBudget(ctx, id, userID); err == sql.ErrNoRows {
			utils.WriteError(w, "budget not found", http.StatusNotFound)
			return
		}
	}

	budget, err := fetchBudget(ctx, id, userID)
	if err != nil {
		utils.Logger.Errorf("failed to load updated budget: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status": "success",
		"data":   budget,
	})
}

func deleteBudget(w http.ResponseWriter, r *http.Request) {
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

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, "invalid budget ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.ExecContext(ctx, "DELETE FROM budgets WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		utils.Logger.Errorf("failed to delete budget: %v", err)
		utils.WriteError(w, "failed to delete budget", http.StatusInternalServerError)
		return
	}

	affected, err := res.RowsAffected()
	if err != nil {
		utils.Logger.Errorf("failed to read rows affected: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if affected == 0 {
		utils.WriteError(w, "budget not found", http.StatusNotFound)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status":  "success",
		"message": "budget deleted successfully",
	})
}

func fetchBudget(ctx context.Context, id, userID int) (models.Budget, error) {
	var b models.Budget
	err := sqlconnect.DB.QueryRowContext(ctx, `
		SELECT b.id, b.user_id, b.category_id, c.name, b.month, b.year, b.allocated_amount, b.created_at, b.updated_at
		FROM budgets b
		JOIN categories c ON c.id = b.category_id
		WHERE b.id = ? AND b.user_id = ?`, id, userID).
		Scan(&b.ID, &b.UserID, &b.CategoryID, &b.CategoryName, &b.Month, &b.Year, &b.AllocatedAmount, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}
