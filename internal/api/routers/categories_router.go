package routers

import (
	"budget_tracker/internal/api/handlers/categories"
	"net/http"
)

func categoriesRouter() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/categories", categories.CategoriesHandler)
	mux.HandleFunc("/categories/{id}", categories.CategoryHandler)

	return mux
}
