package routers

import (
	"net/http"

	"fintrack/internal/api/handlers/reports"
)

func reportsRouter() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /reports/total-balance", reports.GetTotalBalance)
	mux.HandleFunc("GET /reports/balance-history", reports.GetBalanceHistory)
	mux.HandleFunc("GET /reports/historical-balance", reports.GetHistoricalBalance)
	mux.HandleFunc("GET /reports/category-summary", reports.GetCategorySummary)

	return mux
}
