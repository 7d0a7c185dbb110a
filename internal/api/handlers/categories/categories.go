package categories

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/repositories/datastore"
	"fintrack/internal/services"
	"fintrack/pkg/utils"
)

// FUNC TO GET ALL CATEGORIES, OPTIONALLY FILTERED BY TYPE
func GetAllCategories(w http.ResponseWriter, r *http.Request) {
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

	categoryType := r.URL.Query().Get("type")
	if categoryType != "" && !models.ValidType(categoryType) {
		utils.WriteError(w, "type must be income or expense", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	categories, err := ds.ListCategories(ctx)
	if err != nil {
		utils.Logger.Errorf("error fetching categories: %v", err)
		utils.WriteError(w, "error fetching categories", http.StatusInternalServerError)
		return
	}

	categories = services.FilterCategoriesByType(categories, categoryType)
	if categories == nil {
		categories = []models.Category{}
	}

	response := struct {
		Status string            `json:"status"`
		Count  int               `json:"count"`
		Data   []models.Category `json:"data"`
	}{
		Status: "success",
		Count:  len(categories),
		Data:   categories,
	}

	utils.WriteJSON(w, response)
}

// FUNC TO CREATE A CATEGORY
func CreateCategory(w http.ResponseWriter, r *http.Request) {
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
		Name string `json:"name"`
		Type string `json:"type"`
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
		utils.WriteError(w, "category name is required", http.StatusBadRequest)
		return
	}
	if !models.ValidType(req.Type) {
		utils.WriteError(w, "type must be income or expense", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	category, err := ds.InsertCategory(ctx, req.Name, req.Type)
	if err != nil {
		utils.Logger.Errorf("error creating category: %v", err)
		utils.WriteError(w, "error creating category", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status": "success",
		"data":   category,
	})
}
