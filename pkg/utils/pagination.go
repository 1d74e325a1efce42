package utils

import (
	"net/http"
	"strconv"
	"strings"
)

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

func GetPaginationParams(r *http.Request) (int, int) {
	page := defaultPage
	limit := defaultLimit

	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		page = p
	}
	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 {
		limit = l
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return page, limit
}

// OrderClause builds an ORDER BY clause from the "ordering" query param.
// A leading "-" means descending. Only columns in allowed are honoured;
// anything else falls back to def. allowed maps the client-facing field
// name to the column used in SQL.
func OrderClause(r *http.Request, allowed map[string]string, def string) string {
	ordering := r.URL.Query().Get("ordering")
	if ordering == "" {
		return " ORDER BY " + def
	}

	direction := " ASC"
	if strings.HasPrefix(ordering, "-") {
		direction = " DESC"
		ordering = strings.TrimPrefix(ordering, "-")
	}

	column, ok := allowed[ordering]
	if !ok {
		return " ORDER BY " + def
	}

	return " ORDER BY " + column + direction
}
