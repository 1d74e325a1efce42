package routers

import (
	"budget_tracker/internal/api/handlers/transactions"
	"net/http"
)

func transactionsRouter() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/transactions", transactions.TransactionsHandler)
	mux.HandleFunc("/transactions/summary", transactions.SummaryHandler)
	mux.HandleFunc("/transactions/{id}", transactions.TransactionHandler)

	return mux
}
