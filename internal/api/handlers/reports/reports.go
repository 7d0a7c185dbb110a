package reports

import (
	"context"
	"net/http"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/repositories/datastore"
	"fintrack/internal/services"
	"fintrack/pkg/utils"
)

// FUNC TO GET THE TOTAL BALANCE ACROSS ALL WALLETS
func GetTotalBalance(w http.ResponseWriter, r *http.Request) {
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

	total, err := ds.TotalBalance(ctx)
	if err != nil {
		utils.Logger.Errorf("error fetching total balance: %v", err)
		utils.WriteError(w, "error fetching total balance", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status":        "success",
		"total_balance": total,
	})
}

// FUNC TO GET THE RAW BALANCE HISTORY SNAPSHOTS
func GetBalanceHistory(w http.ResponseWriter, r *http.Request) {
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

	history, err := ds.ListBalanceHistory(ctx)
	if err != nil {
		utils.Logger.Errorf("error fetching balance history: %v", err)
		utils.WriteError(w, "error fetching balance history", http.StatusInternalServerError)
		return
	}
	if history == nil {
		history = []models.BalanceHistory{}
	}

	response := struct {
		Status string                  `json:"status"`
		Count  int                     `json:"count"`
		Data   []models.BalanceHistory `json:"data"`
	}{
		Status: "success",
		Count:  len(history),
		Data:   history,
	}

	utils.WriteJSON(w, response)
}

// FUNC TO RECONSTRUCT THE HISTORICAL BALANCE SERIES FOR A CADENCE
func GetHistoricalBalance(w http.ResponseWriter, r *http.Request) {
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

	cadence, err := services.ParseCadence(r.URL.Query().Get("range"))
	if err != nil {
		utils.WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	history, err := ds.ListBalanceHistory(ctx)
	if err != nil {
		utils.Logger.Errorf("error fetching balance history: %v", err)
		utils.WriteError(w, "error fetching historical balance", http.StatusInternalServerError)
		return
	}

	transactions, err := ds.ListTransactions(ctx, datastore.TransactionFilter{SortAsc: true})
	if err != nil {
		utils.Logger.Errorf("error fetching transactions: %v", err)
		utils.WriteError(w, "error fetching historical balance", http.StatusInternalServerError)
		return
	}

	currentBalance, err := ds.TotalBalance(ctx)
	if err != nil {
		utils.Logger.Errorf("error fetching total balance: %v", err)
		utils.WriteError(w, "error fetching historical balance", http.StatusInternalServerError)
		return
	}

	points := services.ReconstructBalanceSeries(cadence, history, transactions, currentBalance, time.Now())

	response := struct {
		Status string                  `json:"status"`
		Range  services.Cadence        `json:"range"`
		Count  int                     `json:"count"`
		Data   []services.BalancePoint `json:"data"`
	}{
		Status: "success",
		Range:  cadence,
		Count:  len(points),
		Data:   points,
	}

	utils.WriteJSON(w, response)
}

// FUNC TO SUMMARIZE TRANSACTIONS BY CATEGORY
func GetCategorySummary(w http.ResponseWriter, r *http.Request) {
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

	txType := r.URL.Query().Get("type")
	if txType == "" {
		txType = models.TypeExpense
	}
	if !models.ValidType(txType) {
		utils.WriteError(w, "type must be income or expense", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	transactions, err := ds.ListTransactions(ctx, datastore.TransactionFilter{
		Type:     txType,
		DateFrom: r.URL.Query().Get("from"),
		DateTo:   r.URL.Query().Get("to"),
	})
	if err != nil {
		utils.Logger.Errorf("error fetching transactions: %v", err)
		utils.WriteError(w, "error fetching category summary", http.StatusInternalServerError)
		return
	}

	categories, err := ds.ListCategories(ctx)
	if err != nil {
		utils.Logger.Errorf("error fetching categories: %v", err)
		utils.WriteError(w, "error fetching category summary", http.StatusInternalServerError)
		return
	}

	summaries := services.SummarizeByCategory(transactions, categories, txType)

	response := struct {
		Status string                     `json:"status"`
		Type   string                     `json:"type"`
		Count  int                        `json:"count"`
		Data   []services.CategorySummary `json:"data"`
	}{
		Status: "success",
		Type:   txType,
		Count:  len(summaries),
		Data:   summaries,
	}

	utils.WriteJSON(w, response)
}
