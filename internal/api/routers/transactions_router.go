package routers

import (
	"net/http"

	"fintrack/internal/api/handlers/transactions"
)

func transactionsRouter() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /transactions", transactions.GetAllTransactions)
	mux.HandleFunc("POST /transactions", transactions.CreateTransaction)
	mux.HandleFunc("GET /transactions/{id}", transactions.GetTransactionById)
	mux.HandleFunc("DELETE /transactions/{id}", transactions.DeleteTransactionById)

	return mux
}
