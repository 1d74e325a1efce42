package routers

import (
	"budget_tracker/internal/api/handlers/budgets"
	"net/http"
)

func budgetsRouter() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/budgets", budgets.BudgetsHandler)
	mux.HandleFunc("/budgets/current", budgets.CurrentHandler)
	mux.HandleFunc("/budgets/comparison", budgets.ComparisonHandler)
	mux.HandleFunc("/budgets/{id}", budgets.BudgetHandler)

	return mux
}
