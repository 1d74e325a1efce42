package transactions

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
	"time"

	"github.com/shopspring/decimal"
)

var orderingColumns = map[string]string{
	"date":       "t.date",
	"amount":     "t.amount",
	"created_at": "t.created_at",
}

// Dispatches /transactions (list, create).
func TransactionsHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		listTransactions(w, r)
	case http.MethodPost:
		createTransaction(w, r)
	default:
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}

// Dispatches /transactions/{id} (get, update, delete).
func TransactionHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		getTransaction(w, r)
	case http.MethodPut:
		updateTransaction(w, r)
	case http.MethodDelete:
		deleteTransaction(w, r)
	default:
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}

type transactionRequest struct {
	Category    *int            `json:"category"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
}

// validateAgainstCategory runs the pure validators, resolving the referenced
// category's type first when one is given. Returns false after writing the
// error response when validation fails.
func validateAgainstCategory(ctx context.Context, w http.ResponseWriter, userID int, req transactionRequest) bool {
	var categoryType *string
	if req.Category != nil {
		var ct string
		err := sqlconnect.DB.QueryRowContext(ctx, "SELECT type FROM categories WHERE id = ? AND user_id = ?", *req.Category, userID).Scan(&ct)
		if err != nil {
			if err == sql.ErrNoRows {
				utils.WriteError(w, "category: category not found", http.StatusBadRequest)
				return false
			}
			utils.Logger.Errorf("error fetching category type: %v", err)
			utils.WriteError(w, "internal server error", http.StatusInternalServerError)
			return false
		}
		categoryType = &ct
	}

	if errs := handlers.ValidateTransactionInput(req.Type, req.Amount, req.Date, categoryType); len(errs) > 0 {
		utils.WriteError(w, handlers.ValidationMessage(errs), http.StatusBadRequest)
		return false
	}

	return true
}

func createTransaction(w http.ResponseWriter, r *http.Request) {
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

	var req transactionRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		utils.WriteError(w, "invalid or unexpected fields in body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if !validateAgainstCategory(ctx, w, userID, req) {
		return
	}

	query := `INSERT INTO transactions (user_id, category_id, type, amount, description, date) VALUES (?, ?, ?, ?, ?, ?)`
	res, err := db.ExecContext(ctx, query, userID, req.Category, req.Type, req.Amount, req.Description, req.Date)
	if err != nil {
		utils.Logger.Errorf("failed to create transaction: %v", err)
		utils.WriteError(w, "failed to create transaction", http.StatusInternalServerError)
		return
	}

	id, err := res.LastInsertId()
	if err != nil {
		utils.Logger.Errorf("failed to get last insert ID: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	transaction, err := fetchTransaction(ctx, int(id), userID)
	if err != nil {
		utils.Logger.Errorf("failed to load created transaction: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status": "success",
		"data":   transaction,
	})
}

func listTransactions(w http.ResponseWriter, r *http.Request) {
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
		SELECT t.id, t.user_id, t.category_id, c.name, t.type, t.amount, t.description, t.date, t.created_at, t.updated_at
		FROM transactions t
		LEFT JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = ?
	`
	args := []interface{}{userID}

	q := r.URL.Query()

	if t := q.Get("type"); t != "" {
		if !handlers.ValidTransactionType(t) {
			utils.WriteError(w, "type must be INCOME or EXPENSE", http.StatusBadRequest)
			return
		}
		query += " AND t.type = ?"
		args = append(args, t)
	}

	if c := q.Get("category"); c != "" {
		categoryID, err := strconv.Atoi(c)
		if err != nil {
			utils.WriteError(w, "category must be a numeric ID", http.StatusBadRequest)
			return
		}
		query += " AND t.category_id = ?"
		args = append(args, categoryID)
	}

	if start := q.Get("start_date"); start != "" {
		if !handlers.ValidDate(start) {
			utils.WriteError(w, "start_date must be in YYYY-MM-DD format", http.StatusBadRequest)
			return
		}
		query += " AND t.date >= ?"
		args = append(args, start)
	}

	if end := q.Get("end_date"); end != "" {
		if !handlers.ValidDate(end) {
			utils.WriteError(w, "end_date must be in YYYY-MM-DD format", http.StatusBadRequest)
			return
		}
		query += " AND t.date <= ?"
		args = append(args, end)
	}

	if min := q.Get("min_amount"); min != "" {
		minAmount, err := decimal.NewFromString(min)
		if err != nil {
			utils.WriteError(w, "min_amount must be a number", http.StatusBadRequest)
			return
		}
		query += " AND t.amount >= ?"
		args = append(args, minAmount)
	}

	if max := q.Get("max_amount"); max != "" {
		maxAmount, err := decimal.NewFromString(max)
		if err != nil {
			utils.WriteError(w, "max_amount must be a number", http.StatusBadRequest)
			return
		}
		query += " AND t.amount <= ?"
		args = append(args, maxAmount)
	}

	if search := q.Get("search"); search != "" {
		query += " AND t.description LIKE ?"
		args = append(args, "%"+search+"%")
	}

	query += utils.OrderClause(r, orderingColumns, "t.date DESC, t.created_at DESC")
	query += " LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		utils.Logger.Errorf("error fetching transactions: %v", err)
		utils.WriteError(w, "error fetching transactions", http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		var t models.Transaction
		err = rows.Scan(&t.ID, &t.UserID, &t.CategoryID, &t.CategoryName, &t.Type, &t.Amount, &t.Description, &t.Date, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			utils.Logger.Errorf("error scanning transaction row: %v", err)
			utils.WriteError(w, "error fetching transactions", http.StatusInternalServerError)
			return
		}
		transactions = append(transactions, t)
	}

	response := struct {
		Status   string               `json:"status"`
		Count    int                  `json:"count"`
		Page     int                  `json:"page"`
		PageSize int                  `json:"page_size"`
		Data     []models.Transaction `json:"data"`
	}{
		Status:   "success",
		Count:    len(transactions),
		Page:     page,
		PageSize: limit,
		Data:     transactions,
	}

	utils.WriteJSON(w, response)
}

func getTransaction(w http.ResponseWriter, r *http.Request) {
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
		utils.WriteError(w, "invalid transaction ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	transaction, err := fetchTransaction(ctx, id, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			utils.WriteError(w, "transaction not found", http.StatusNotFound)
			return
		}
		utils.Logger.Errorf("error fetching transaction: %v", err)
		utils.WriteError(w, "error fetching transaction", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status": "success",
		"data":   transaction,
	})
}

func updateTransaction(w http.ResponseWriter, r *http.Request) {
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
		utils.WriteError(w, "invalid transaction ID", http.StatusBadRequest)
		return
	}

	var req transactionRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err = decoder.Decode(&req); err != nil {
		utils.WriteError(w, "invalid or unexpected fields in body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if !validateAgainstCategory(ctx, w, userID, req) {
		return
	}

	query := `UPDATE transactions SET category_id = ?, type = ?, amount = ?, description = ?, date = ? WHERE id = ? AND user_id = ?`
	res, err := db.ExecContext(ctx, query, req.Category, req.Type, req.Amount, req.Description, req.Date, id, userID)
	if err != nil {
		utils.Logger.Errorf("failed to update transaction: %v", err)
		utils.WriteError(w, "failed to update transaction", http.StatusInternalServerError)
		return
	}

	affected, err := res.RowsAffected()
	if err != nil {
		utils.Logger.Errorf("failed to read rows affected: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if affected == 0 {
		if _, err = fetchTransaction(ctx, id, userID); err == sql.ErrNoRows {
			utils.WriteError(w, "transaction not found", http.StatusNotFound)
			return
		}
	}

	transaction, err := fetchTransaction(ctx, id, userID)
	if err != nil {
		utils.Logger.Errorf("failed to load updated transaction: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status": "success",
		"data":   transaction,
	})
}

func deleteTransaction(w http.ResponseWriter, r *http.Request) {
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
		utils.WriteError(w, "invalid transaction ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.ExecContext(ctx, "DELETE FROM transactions WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		utils.Logger.Errorf("failed to delete transaction: %v", err)
		utils.WriteError(w, "failed to delete transaction", http.StatusInternalServerError)
		return
	}

	affected, err := res.RowsAffected()
	if err != nil {
		utils.Logger.Errorf("failed to read rows affected: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if affected == 0 {
		utils.WriteError(w, "transaction not found", http.StatusNotFound)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status":  "success",
		"message": "transaction deleted successfully",
	})
}

func fetchTransaction(ctx context.Context, id, userID int) (models.Transaction, error) {
	var t models.Transaction
	err := sqlconnect.DB.QueryRowContext(ctx, `
		SELECT t.id, t.user_id, t.category_id, c.name, t.type, t.amount, t.description, t.date, t.created_at, t.updated_at
		FROM transactions t
		LEFT JOIN categories c ON c.id = t.category_id
		WHERE t.id = ? AND t.user_id = ?`, id, userID).
		Scan(&t.ID, &t.UserID, &t.CategoryID, &t.CategoryName, &t.Type, &t.Amount, &t.Description, &t.Date, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}
