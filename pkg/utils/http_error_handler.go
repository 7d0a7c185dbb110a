package utils

import (
	"encoding/json"
	"net/http"
)

// errorResponse is the uniform error envelope: status is always "error",
// message is safe to show to the user.
type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// WriteError sends message under the given HTTP status code.
func WriteError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(errorResponse{
		Status:  "error",
		Message: message,
	})
}
