package routers

import (
	"net/http"
)

func MainRouter() *http.ServeMux {

	mux := http.NewServeMux()

	uRouter := usersRouter()
	mux.Handle("/auth/", uRouter)

	wRouter := walletsRouter()
	mux.Handle("/wallets/", wRouter)
	mux.Handle("/wallets", wRouter)

	cRouter := categoriesRouter()
	mux.Handle("/categories/", cRouter)
	mux.Handle("/categories", cRouter)

	tRouter := transactionsRouter()
	mux.Handle("/transactions/", tRouter)
	mux.Handle("/transactions", tRouter)

	rRouter := reportsRouter()
	mux.Handle("/reports/", rRouter)

	return mux
}
