package categories

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
)

var orderingColumns = map[string]string{
	"name":       "name",
	"type":       "type",
	"created_at": "created_at",
}

// Dispatches /categories (list, create).
func CategoriesHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		listCategories(w, r)
	case http.MethodPost:
		createCategory(w, r)
	default:
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}

// Dispatches /categories/{id} (get, update, delete).
func CategoryHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		getCategory(w, r)
	case http.MethodPut, http.MethodPatch:
		updateCategory(w, r)
	case http.MethodDelete:
		deleteCategory(w, r)
	default:
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}

func createCategory(w http.ResponseWriter, r *http.Request) {
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

	var req models.Category
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		utils.WriteError(w, "invalid or unexpected fields in body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	req.Name = strings.TrimSpace(req.Name)
	if errs := handlers.ValidateCategoryInput(req.Name, req.Type); len(errs) > 0 {
		utils.WriteError(w, handlers.ValidationMessage(errs), http.StatusBadRequest)
		return
	}

	if req.Color == "" {
		req.Color = "#000000"
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	query := `INSERT INTO categories (user_id, name, type, icon, color) VALUES (?, ?, ?, ?, ?)`
	res, err := db.ExecContext(ctx, query, userID, req.Name, req.Type, req.Icon, req.Color)
	if err != nil {
		if strings.Contains(err.Error(), "Duplicate entry") {
			utils.WriteError(w, "category with this name and type already exists", http.StatusConflict)
			return
		}
		utils.Logger.Errorf("failed to create category: %v", err)
		utils.WriteError(w, "failed to create category", http.StatusInternalServerError)
		return
	}

	id, err := res.LastInsertId()
	if err != nil {
		utils.Logger.Errorf("failed to get last insert ID: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	category, err := fetchCategory(ctx, int(id), userID)
	if err != nil {
		utils.Logger.Errorf("failed to load created category: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status": "success",
		"data":   category,
	})
}

func listCategories(w http.ResponseWriter, r *http.Request) {
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
		SELECT id, user_id, name, type, icon, color, is_active, created_at, updated_at
		FROM categories
		WHERE user_id = ?
	`
	args := []interface{}{userID}

	q := r.URL.Query()

	if t := q.Get("type"); t != "" {
		if !handlers.ValidTransactionType(t) {
			utils.WriteError(w, "type must be INCOME or EXPENSE", http.StatusBadRequest)
			return
		}
		query += " AND type = ?"
		args = append(args, t)
	}

	if active := q.Get("is_active"); active != "" {
		isActive, err := strconv.ParseBool(active)
		if err != nil {
			utils.WriteError(w, "is_active must be true or false", http.StatusBadRequest)
			return
		}
		query += " AND is_active = ?"
		args = append(args, isActive)
	}

	if search := q.Get("search"); search != "" {
		query += " AND name LIKE ?"
		args = append(args, "%"+search+"%")
	}

	query += utils.OrderClause(r, orderingColumns, "type, name")
	query += " LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		utils.Logger.Errorf("error fetching categories: %v", err)
		utils.WriteError(w, "error fetching categories", http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		err = rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Type, &c.Icon, &c.Color, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			utils.Logger.Errorf("error scanning category row: %v", err)
			utils.WriteError(w, "error fetching categories", http.StatusInternalServerError)
			return
		}
		categories = append(categories, c)
	}

	response := struct {
		Status   string            `json:"status"`
		Count    int               `json:"count"`
		Page     int               `json:"page"`
		PageSize int               `json:"page_size"`
		Data     []models.Category `json:"data"`
	}{
		Status:   "success",
		Count:    len(categories),
		Page:     page,
		PageSize: limit,
		Data:     categories,
	}

	utils.WriteJSON(w, response)
}

func getCategory(w http.ResponseWriter, r *http.Request) {
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
		utils.WriteError(w, "invalid category ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	category, err := fetchCategory(ctx, id, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			utils.WriteError(w, "category not found", http.StatusNotFound)
			return
		}
		utils.Logger.Errorf("error fetching category: %v", err)
		utils.WriteError(w, "error fetching category", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status": "success",
		"data":   category,
	})
}

func updateCategory(w http.ResponseWriter, r *http.Request) {
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
		utils.WriteError(w, "invalid category ID", http.StatusBadRequest)
		return
	}

	type request struct {
		Name     *string `json:"name"`
		Icon     *string `json:"icon"`
		Color    *string `json:"color"`
		IsActive *bool   `json:"is_active"`
	}

	var req request
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err = decoder.Decode(&req); err != nil {
		utils.WriteError(w, "invalid or unexpected fields in body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	fields := []string{}
	args := []interface{}{}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			utils.WriteError(w, "name cannot be empty or whitespace", http.StatusBadRequest)
			return
		}
		if len(name) > 100 {
			utils.WriteError(w, "name must be at most 100 characters", http.StatusBadRequest)
			return
		}
		fields = append(fields, "name = ?")
		args = append(args, name)
	}
	if req.Icon != nil {
		fields = append(fields, "icon = ?")
		args = append(args, *req.Icon)
	}
	if req.Color != nil {
		fields = append(fields, "color = ?")
		args = append(args, *req.Color)
	}
	if req.IsActive != nil {
		fields = append(fields, "is_active = ?")
		args = append(args, *req.IsActive)
	}

	if len(fields) == 0 {
		utils.WriteError(w, "no fields to update", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	query := "UPDATE categories SET " + strings.Join(fields, ", ") + " WHERE id = ? AND user_id = ?"
	args = append(args, id, userID)

	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		if strings.Contains(err.Error(), "Duplicate entry") {
			utils.WriteError(w, "category with this name and type already exists", http.StatusConflict)
			return
		}
		utils.Logger.Errorf("failed to update category: %v", err)
		utils.WriteError(w, "failed to update category", http.StatusInternalServerError)
		return
	}

	affected, err := res.RowsAffected()
	if err != nil {
		utils.Logger.Errorf("failed to read rows affected: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if affected == 0 {
		if _, err = fetchCategory(ctx, id, userID); err == sql.ErrNoRows {
			utils.WriteError(w, "category not found", http.StatusNotFound)
			return
		}
	}

	category, err := fetchCategory(ctx, id, userID)
	if err != nil {
		utils.Logger.Errorf("failed to load updated category: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status": "success",
		"data":   category,
	})
}

// deleteCategory removes a category; the schema cascades dependent budgets
// and nulls category_id on dependent transactions.
func deleteCategory(w http.ResponseWriter, r *http.Request) {
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
		utils.WriteError(w, "invalid category ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.ExecContext(ctx, "DELETE FROM categories WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		utils.Logger.Errorf("failed to delete category: %v", err)
		utils.WriteError(w, "failed to delete category", http.StatusInternalServerError)
		return
	}

	affected, err := res.RowsAffected()
	if err != nil {
		utils.Logger.Errorf("failed to read rows affected: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if affected == 0 {
		utils.WriteError(w, "category not found", http.StatusNotFound)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status":  "success",
		"message": "category deleted successfully",
	})
}

func fetchCategory(ctx context.Context, id, userID int) (models.Category, error) {
	var c models.Category
	err := sqlconnect.DB.QueryRowContext(ctx, `
		SELECT id, user_id, name, type, icon, color, is_active, created_at, updated_at
		FROM categories
		WHERE id = ? AND user_id = ?`, id, userID).
		Scan(&c.ID, &c.UserID, &c.Name, &c.Type, &c.Icon, &c.Color, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}
