package routers

import (
	"net/http"

	"fintrack/internal/api/handlers/wallets"
)

func walletsRouter() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /wallets", wallets.GetAllWallets)
	mux.HandleFunc("POST /wallets", wallets.CreateWallet)
	mux.HandleFunc("POST /wallets/transfer", wallets.TransferFunds)
	mux.HandleFunc("GET /wallets/{id}", wallets.GetWalletById)
	mux.HandleFunc("PATCH /wallets/{id}", wallets.UpdateWallet)
	mux.HandleFunc("DELETE /wallets/{id}", wallets.DeleteWallet)

	return mux
}
