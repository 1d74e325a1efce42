package routers

import (
	"budget_tracker/internal/api/handlers/auth"
	"net/http"
)

func authRouter() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/auth/register", auth.RegisterHandler)
	mux.HandleFunc("/auth/login", auth.LoginHandler)
	mux.HandleFunc("/auth/logout", auth.LogoutHandler)
	mux.HandleFunc("/auth/profile", auth.ProfileHandler)

	return mux
}
