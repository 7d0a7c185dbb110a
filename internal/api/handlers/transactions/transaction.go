package transactions

import (
	"context"
	"database/sql"
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

// FUNC TO GET ALL TRANSACTIONS WITH FILTERS
func GetAllTransactions(w http.ResponseWriter, r *http.Request) {
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

	page, limit := utils.GetPaginationParams(r)

	filter := datastore.TransactionFilter{
		Type:     r.URL.Query().Get("type"),
		DateFrom: r.URL.Query().Get("from"),
		DateTo:   r.URL.Query().Get("to"),
		SortBy:   r.URL.Query().Get("sortBy"),
		SortAsc:  r.URL.Query().Get("sortOrder") == "asc",
		Limit:    limit,
		Offset:   (page - 1) * limit,
	}
	if filter.Type != "" && !models.ValidType(filter.Type) {
		utils.WriteError(w, "type must be income or expense", http.StatusBadRequest)
		return
	}
	if v := r.URL.Query().Get("wallet_id"); v != "" {
		walletID, err := strconv.Atoi(v)
		if err != nil {
			utils.WriteError(w, "invalid wallet_id", http.StatusBadRequest)
			return
		}
		filter.WalletID = walletID
	}
	if v := r.URL.Query().Get("category_id"); v != "" {
		categoryID, err := strconv.Atoi(v)
		if err != nil {
			utils.WriteError(w, "invalid category_id", http.StatusBadRequest)
			return
		}
		filter.CategoryID = categoryID
	}

	transactions, err := ds.ListTransactions(ctx, filter)
	if err != nil {
		utils.Logger.Errorf("error fetching transactions: %v", err)
		utils.WriteError(w, "error fetching transactions", http.StatusInternalServerError)
		return
	}

	if len(transactions) == 0 {
		w.Header().Set("Content-Type", "application/json")
		response := map[string]interface{}{
			"status":  "success",
			"message": "no transaction found",
			"data":    []models.Transaction{},
		}
		json.NewEncoder(w).Encode(response)
		return
	}

	response := struct {
		Status   string               `json:"status"`
		Count    int                  `json:"count"`
		Page     int                  `json:"page"`
		PageSize int                  `json:"page_size"`
		Data     []models.Transaction `json:"data"`
	}{
		Status:   "success",
		Count:    len(transactions),
		Page:     page,
		PageSize: limit,
		Data:     transactions,
	}

	utils.WriteJSON(w, response)
}

// FUNC TO GET ONE TRANSACTION BY ID
func GetTransactionById(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	transactionID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, "invalid transaction ID", http.StatusBadRequest)
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

	transaction, err := ds.GetTransaction(ctx, transactionID)
	if err != nil {
		if errors.Is(err, datastore.ErrNotFound) {
			utils.WriteError(w, "no transaction found", http.StatusNotFound)
			return
		}
		utils.Logger.Errorf("error fetching transaction: %v", err)
		utils.WriteError(w, "error fetching transaction", http.StatusInternalServerError)
		return
	}

	response := struct {
		Status string             `json:"status"`
		Data   models.Transaction `json:"data"`
	}{
		Status: "success",
		Data:   transaction,
	}

	utils.WriteJSON(w, response)
}

// FUNC TO ADD A TRANSACTION AND ADJUST THE WALLET BALANCE
func CreateTransaction(w http.ResponseWriter, r *http.Request) {
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
		Amount      decimal.Decimal `json:"amount"`
		Description string          `json:"description"`
		Type        string          `json:"type"`
		CategoryID  int             `json:"category_id"`
		WalletID    int             `json:"wallet_id"`
		Date        string          `json:"date"`
	}

	var req request
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		utils.WriteError(w, "invalid or unexpected fields in body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if !req.Amount.IsPositive() {
		utils.WriteError(w, "amount must be greater than 0", http.StatusBadRequest)
		return
	}
	if !models.ValidType(req.Type) {
		utils.WriteError(w, "type must be income or expense", http.StatusBadRequest)
		return
	}
	if req.Date == "" {
		req.Date = time.Now().Format(services.DateLayout)
	} else if _, err := time.Parse(services.DateLayout, req.Date); err != nil {
		utils.WriteError(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	wallet, err := ds.GetWallet(ctx, req.WalletID)
	if err != nil {
		if errors.Is(err, datastore.ErrNotFound) {
			utils.WriteError(w, "wallet not found", http.StatusNotFound)
			return
		}
		utils.Logger.Errorf("error fetching wallet: %v", err)
		utils.WriteError(w, "error adding transaction", http.StatusInternalServerError)
		return
	}

	transaction := models.Transaction{
		Amount:      req.Amount,
		Description: req.Description,
		WalletID:    req.WalletID,
		Type:        req.Type,
		Reference:   services.GenerateReference("TXN"),
		Date:        req.Date,
	}
	if req.CategoryID != 0 {
		transaction.CategoryID = sql.NullInt64{Int64: int64(req.CategoryID), Valid: true}
	}

	id, err := ds.InsertTransaction(ctx, transaction)
	if err != nil {
		utils.Logger.Errorf("error inserting transaction: %v", err)
		utils.WriteError(w, "error adding transaction", http.StatusInternalServerError)
		return
	}
	transaction.ID = id

	newBalance := wallet.Balance.Add(transaction.SignedAmount())
	if err := ds.UpdateWalletBalance(ctx, wallet.ID, wallet.Balance, newBalance); err != nil {
		if errors.Is(err, datastore.ErrConflict) {
			utils.WriteError(w, "wallet was updated concurrently, retry", http.StatusConflict)
			return
		}
		utils.Logger.Errorf("error updating wallet balance: %v", err)
		utils.WriteError(w, "error adding transaction", http.StatusInternalServerError)
		return
	}

	// best-effort, the transaction is already committed
	if err := services.RecordBalanceSnapshot(ctx, ds); err != nil {
		utils.Logger.Errorf("failed to record balance history: %v", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status": "success",
		"data":   transaction,
	})
}

// FUNC TO DELETE A TRANSACTION WITH A COMPENSATING BALANCE ADJUSTMENT
func DeleteTransactionById(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	transactionID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, "invalid transaction ID", http.StatusBadRequest)
		return
	}

	ds := datastore.Store
	if ds == nil {
		utils.Logger.Error("datastore is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	transaction, err := ds.GetTransaction(ctx, transactionID)
	if err != nil {
		if errors.Is(err, datastore.ErrNotFound) {
			utils.WriteError(w, "no transaction found", http.StatusNotFound)
			return
		}
		utils.Logger.Errorf("error fetching transaction: %v", err)
		utils.WriteError(w, "error deleting transaction", http.StatusInternalServerError)
		return
	}

	wallet, err := ds.GetWallet(ctx, transaction.WalletID)
	if err != nil {
		utils.Logger.Errorf("error fetching wallet: %v", err)
		utils.WriteError(w, "error deleting transaction", http.StatusInternalServerError)
		return
	}

	// undo the transaction's effect: deleting income subtracts, deleting
	// expense adds back
	newBalance := wallet.Balance.Sub(transaction.SignedAmount())
	if err := ds.UpdateWalletBalance(ctx, wallet.ID, wallet.Balance, newBalance); err != nil {
		if errors.Is(err, datastore.ErrConflict) {
			utils.WriteError(w, "wallet was updated concurrently, retry", http.StatusConflict)
			return
		}
		utils.Logger.Errorf("error updating wallet balance: %v", err)
		utils.WriteError(w, "error deleting transaction", http.StatusInternalServerError)
		return
	}

	if err := ds.DeleteTransaction(ctx, transactionID); err != nil {
		utils.Logger.Errorf("error deleting transaction: %v", err)
		utils.WriteError(w, "error deleting transaction", http.StatusInternalServerError)
		return
	}

	if err := services.RecordBalanceSnapshot(ctx, ds); err != nil {
		utils.Logger.Errorf("failed to record balance history: %v", err)
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status":  "success",
		"message": "transaction deleted",
	})
}
