package wallets

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/repositories/datastore"
	"fintrack/internal/services"
	"fintrack/pkg/utils"

	"github.com/shopspring/decimal"
)

// FUNC TO GET ALL WALLETS
func GetAllWallets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	ds := datastore.Store
	if ds == nil {
		utils.Logger.Error("datastore is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	wallets, err := ds.ListWallets(ctx)
	if err != nil {
		utils.Logger.Errorf("error fetching wallets: %v", err)
		utils.WriteError(w, "error fetching wallets", http.StatusInternalServerError)
		return
	}
	if wallets == nil {
		wallets = []models.Wallet{}
	}

	response := struct {
		Status string          `json:"status"`
		Count  int             `json:"count"`
		Data   []models.Wallet `json:"data"`
	}{
		Status: "success",
		Count:  len(wallets),
		Data:   wallets,
	}

	utils.WriteJSON(w, response)
}

// FUNC TO GET ONE WALLET WITH ITS RECENT TRANSACTIONS
func GetWalletById(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	walletID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, "invalid wallet ID", http.StatusBadRequest)
		return
	}

	ds := datastore.Store
	if ds == nil {
		utils.Logger.Error("datastore is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	wallet, err := ds.GetWallet(ctx, walletID)
	if err != nil {
		if errors.Is(err, datastore.ErrNotFound) {
			utils.WriteError(w, "wallet not found", http.StatusNotFound)
			return
		}
		utils.Logger.Errorf("error fetching wallet: %v", err)
		utils.WriteError(w, "error fetching wallet", http.StatusInternalServerError)
		return
	}

	transactions, err := ds.ListTransactions(ctx, datastore.TransactionFilter{
		WalletID: walletID,
		Limit:    10,
	})
	if err != nil {
		utils.Logger.Errorf("error fetching wallet transactions: %v", err)
		utils.WriteError(w, "error fetching wallet", http.StatusInternalServerError)
		return
	}
	if transactions == nil {
		transactions = []models.Transaction{}
	}

	response := struct {
		Status       string               `json:"status"`
		Data         models.Wallet        `json:"data"`
		Transactions []models.Transaction `json:"transactions"`
	}{
		Status:       "success",
		Data:         wallet,
		Transactions: transactions,
	}

	utils.WriteJSON(w, response)
}

// FUNC TO CREATE A WALLET
func CreateWallet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	ds := datastore.Store
	if ds == nil {
		utils.Logger.Error("datastore is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	type request struct {
		Name    string          `json:"name"`
		Balance decimal.Decimal `json:"balance"`
	}

	var req request
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		utils.WriteError(w, "invalid or unexpected fields in body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if req.Name == "" {
		utils.WriteError(w, "wallet name is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	wallet, err := ds.InsertWallet(ctx, req.Name, req.Balance)
	if err != nil {
		utils.Logger.Errorf("error creating wallet: %v", err)
		utils.WriteError(w, "error creating wallet", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status": "success",
		"data":   wallet,
	})
}

// FUNC TO UPDATE A WALLET NAME OR BALANCE
func UpdateWallet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	walletID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, "invalid wallet ID", http.StatusBadRequest)
		return
	}

	ds := datastore.Store
	if ds == nil {
		utils.Logger.Error("datastore is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	type request struct {
		Name    string           `json:"name"`
		Balance *decimal.Decimal `json:"balance"`
	}

	var req request
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		utils.WriteError(w, "invalid or unexpected fields in body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if req.Name == "" && req.Balance == nil {
		utils.WriteError(w, "nothing to update", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if req.Name != "" {
		if err := ds.UpdateWalletName(ctx, walletID, req.Name); err != nil {
			if errors.Is(err, datastore.ErrNotFound) {
				utils.WriteError(w, "wallet not found", http.StatusNotFound)
				return
			}
			utils.Logger.Errorf("error renaming wallet: %v", err)
			utils.WriteError(w, "error updating wallet", http.StatusInternalServerError)
			return
		}
	}

	if req.Balance != nil {
		wallet, err := ds.GetWallet(ctx, walletID)
		if err != nil {
			if errors.Is(err, datastore.ErrNotFound) {
				utils.WriteError(w, "wallet not found", http.StatusNotFound)
				return
			}
			utils.Logger.Errorf("error fetching wallet: %v", err)
			utils.WriteError(w, "error updating wallet", http.StatusInternalServerError)
			return
		}

		if err := ds.UpdateWalletBalance(ctx, walletID, wallet.Balance, *req.Balance); err != nil {
			if errors.Is(err, datastore.ErrConflict) {
				utils.WriteError(w, "wallet was updated concurrently, retry", http.StatusConflict)
				return
			}
			utils.Logger.Errorf("error updating wallet balance: %v", err)
			utils.WriteError(w, "error updating wallet", http.StatusInternalServerError)
			return
		}
	}

	wallet, err := ds.GetWallet(ctx, walletID)
	if err != nil {
		utils.Logger.Errorf("error fetching updated wallet: %v", err)
		utils.WriteError(w, "error updating wallet", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status": "success",
		"data":   wallet,
	})
}

// FUNC TO DELETE A WALLET
func DeleteWallet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	walletID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, "invalid wallet ID", http.StatusBadRequest)
		return
	}

	ds := datastore.Store
	if ds == nil {
		utils.Logger.Error("datastore is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	count, err := ds.CountWalletTransactions(ctx, walletID)
	if err != nil {
		utils.Logger.Errorf("error counting wallet transactions: %v", err)
		utils.WriteError(w, "error deleting wallet", http.StatusInternalServerError)
		return
	}
	if count > 0 {
		utils.WriteError(w, "cannot delete wallet with transactions, delete all transactions first", http.StatusConflict)
		return
	}

	if err := ds.DeleteWallet(ctx, walletID); err != nil {
		if errors.Is(err, datastore.ErrNotFound) {
			utils.WriteError(w, "wallet not found", http.StatusNotFound)
			return
		}
		utils.Logger.Errorf("error deleting wallet: %v", err)
		utils.WriteError(w, "error deleting wallet", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status":  "success",
		"message": "wallet deleted",
	})
}

// FUNC TO TRANSFER FUNDS BETWEEN TWO WALLETS
func TransferFunds(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	ds := datastore.Store
	if ds == nil {
		utils.Logger.Error("datastore is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var req services.TransferRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		utils.WriteError(w, "invalid or unexpected fields in body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	coordinator := services.NewTransferCoordinator(ds)
	result, err := coordinator.Transfer(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidAmount),
			errors.Is(err, services.ErrSameWallet),
			errors.Is(err, services.ErrWalletNotFound),
			errors.Is(err, services.ErrInsufficientFunds):
			utils.WriteError(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, datastore.ErrConflict):
			utils.WriteError(w, "wallet was updated concurrently, retry", http.StatusConflict)
		default:
			utils.Logger.Errorf("transfer failed: %v", err)
			utils.WriteError(w, "failed to transfer funds", http.StatusInternalServerError)
		}
		return
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status": "success",
		"data":   result,
	})
}
