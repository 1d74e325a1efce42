package routers

import (
	"net/http"
)

func MainRouter() *http.ServeMux {

	mux := http.NewServeMux()

	aRouter := authRouter()
	mux.Handle("/auth/", aRouter)

	cRouter := categoriesRouter()
	mux.Handle("/categories", cRouter)
	mux.Handle("/categories/", cRouter)

	tRouter := transactionsRouter()
	mux.Handle("/transactions", tRouter)
	mux.Handle("/transactions/", tRouter)

	bRouter := budgetsRouter()
	mux.Handle("/budgets", bRouter)
	mux.Handle("/budgets/", bRouter)

	return mux
}
