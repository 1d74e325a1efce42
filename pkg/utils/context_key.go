package utils

import "net/http"

type ContextKey string

// UserIDFromRequest pulls the authenticated user id injected by the JWT
// middleware. JWT numeric claims decode as float64.
func UserIDFromRequest(r *http.Request) (int, bool) {
	idFloat, ok := r.Context().Value(ContextKey("userId")).(float64)
	if !ok {
		return 0, false
	}
	return int(idFloat), true
}
