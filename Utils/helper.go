package utils

import (
	"encoding/json"
	"log"
	"net/http"
)

// ErrorResponse is the body of every failed request: at minimum an "error"
// field. Internal detail stays in the server log.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SendJSONResponse sends a JSON response with proper headers.
func SendJSONResponse(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode JSON response: %v", err)
	}
}

// SendErrorResponse sends a standardized error response. Use this for all
// error responses to maintain consistency.
func SendErrorResponse(w http.ResponseWriter, status int, message string) {
	SendJSONResponse(w, status, ErrorResponse{Error: message})
}
