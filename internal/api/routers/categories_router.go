package routers

import (
	"net/http"

	"fintrack/internal/api/handlers/categories"
)

func categoriesRouter() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /categories", categories.GetAllCategories)
	mux.HandleFunc("POST /categories", categories.CreateCategory)

	return mux
}
