package auth

import (
	"budget_tracker/internal/models"
	"budget_tracker/internal/repositories/sqlconnect"
	"budget_tracker/pkg/utils"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

// FUNC TO REGISTER USERS
func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	db := sqlconnect.DB
	if db == nil {
		utils.Logger.Error("DB is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var newUser models.User
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&newUser); err != nil {
		utils.WriteError(w, "invalid or unexpected fields in body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	newUser.Email = strings.ToLower(strings.TrimSpace(newUser.Email))
	newUser.FirstName = strings.TrimSpace(newUser.FirstName)
	newUser.LastName = strings.TrimSpace(newUser.LastName)

	if newUser.FirstName == "" || newUser.LastName == "" || newUser.Email == "" || newUser.Password == "" {
		utils.WriteError(w, "first_name, last_name, email and password are required", http.StatusBadRequest)
		return
	}
	if !strings.Contains(newUser.Email, "@") {
		utils.WriteError(w, "email: invalid email address", http.StatusBadRequest)
		return
	}
	if len(newUser.Password) < 8 {
		utils.WriteError(w, "password: password must be at least 8 characters", http.StatusBadRequest)
		return
	}

	hashedPwd, err := utils.HashPassword(newUser.Password)
	if err != nil {
		utils.Logger.Errorf("error hashing password: %v", err)
		utils.WriteError(w, "error signing up", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	query := `INSERT INTO users (first_name, last_name, email, password) VALUES (?, ?, ?, ?)`
	res, err := db.ExecContext(ctx, query, newUser.FirstName, newUser.LastName, newUser.Email, hashedPwd)
	if err != nil {
		if strings.Contains(err.Error(), "Duplicate entry") {
			utils.WriteError(w, "email already exists", http.StatusConflict)
			return
		}
		utils.Logger.Errorf("failed to insert user: %v", err)
		utils.WriteError(w, "error signing up", http.StatusInternalServerError)
		return
	}

	id, err := res.LastInsertId()
	if err != nil {
		utils.Logger.Errorf("failed to get last insert ID: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	newUser.ID = int(id)
	newUser.Password = ""

	tokenString, err := utils.SignToken(newUser.ID, newUser.Email)
	if err != nil {
		utils.Logger.Errorf("could not create login token: %v", err)
		utils.WriteError(w, "error signing up", http.StatusInternalServerError)
		return
	}

	setBearerCookie(w, tokenString)

	go func(email, firstName string) {
		if err := utils.SendWelcomeEmail(email, firstName); err != nil {
			utils.Logger.Errorf("failed to send welcome email to %s: %v", email, err)
		}
	}(newUser.Email, newUser.FirstName)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status": "success",
		"token":  tokenString,
		"data":   newUser,
	})
}

// FUNC TO LOG USERS IN
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	db := sqlconnect.DB
	if db == nil {
		utils.Logger.Error("DB is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	type loginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if req.Email == "" || req.Password == "" {
		utils.WriteError(w, "email and password are required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user := &models.User{}
	query := "SELECT id, first_name, last_name, email, password, inactive_status FROM users WHERE email = ?"
	err := db.QueryRowContext(ctx, query, strings.ToLower(req.Email)).
		Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.Password, &user.InactiveStatus)
	if err != nil {
		if err == sql.ErrNoRows {
			utils.WriteError(w, "invalid email or password", http.StatusUnauthorized)
			return
		}
		utils.Logger.Errorf("database query error: %v", err)
		utils.WriteError(w, "internal error", http.StatusInternalServerError)
		return
	}

	if user.InactiveStatus {
		utils.WriteError(w, "user account is not active", http.StatusForbidden)
		return
	}

	if err := utils.VerifyPassword(req.Password, user.Password); err != nil {
		utils.WriteError(w, "invalid email or password", http.StatusUnauthorized)
		return
	}

	tokenString, err := utils.SignToken(user.ID, user.Email)
	if err != nil {
		utils.Logger.Errorf("could not create login token: %v", err)
		utils.WriteError(w, "error signing in", http.StatusInternalServerError)
		return
	}

	setBearerCookie(w, tokenString)

	user.Password = ""

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "success",
		"message": "login successful",
		"token":   tokenString,
		"user":    user,
	})
}

// FUNC FOR LOGOUT
func LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "Bearer",
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		Expires:  time.Unix(0, 0),
		SameSite: http.SameSiteStrictMode,
	})

	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status": "success", "message": "logged out successfully"}`))
}

// FUNC FOR PROFILE (GET / PUT / PATCH)
func ProfileHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		getProfile(w, r)
	case http.MethodPut, http.MethodPatch:
		updateProfile(w, r)
	default:
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}

func getProfile(w http.ResponseWriter, r *http.Request) {
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

	var user models.User
	query := "SELECT id, first_name, last_name, email, created_at, updated_at FROM users WHERE id = ?"
	err := db.QueryRowContext(ctx, query, userID).
		Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			utils.WriteError(w, "user not found", http.StatusNotFound)
			return
		}
		utils.Logger.Errorf("error fetching profile: %v", err)
		utils.WriteError(w, "error fetching profile", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status": "success",
		"data":   user,
	})
}

func updateProfile(w http.ResponseWriter, r *http.Request) {
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
		FirstName *string `json:"first_name"`
		LastName  *string `json:"last_name"`
	}

	var req request
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		utils.WriteError(w, "invalid or unexpected fields in body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	fields := []string{}
	args := []interface{}{}

	if req.FirstName != nil {
		if strings.TrimSpace(*req.FirstName) == "" {
			utils.WriteError(w, "first_name cannot be empty", http.StatusBadRequest)
			return
		}
		fields = append(fields, "first_name = ?")
		args = append(args, strings.TrimSpace(*req.FirstName))
	}
	if req.LastName != nil {
		if strings.TrimSpace(*req.LastName) == "" {
			utils.WriteError(w, "last_name cannot be empty", http.StatusBadRequest)
			return
		}
		fields = append(fields, "last_name = ?")
		args = append(args, strings.TrimSpace(*req.LastName))
	}

	if len(fields) == 0 {
		utils.WriteError(w, "no fields to update", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	query := "UPDATE users SET " + strings.Join(fields, ", ") + " WHERE id = ?"
	args = append(args, userID)

	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		utils.Logger.Errorf("failed to update profile: %v", err)
		utils.WriteError(w, "failed to update profile", http.StatusInternalServerError)
		return
	}

	getProfile(w, r)
}

func setBearerCookie(w http.ResponseWriter, tokenString string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "Bearer",
		Value:    tokenString,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		Expires:  time.Now().Add(24 * time.Hour),
		SameSite: http.SameSiteStrictMode,
	})
}
