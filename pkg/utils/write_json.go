package utils

import (
	"encoding/json"
	"net/http"
)

// WriteJSON encodes data as the 200 response body. Every success envelope
// in the API goes through here so the Content-Type is set consistently.
func WriteJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "failed to encode JSON response", http.StatusInternalServerError)
	}
}
