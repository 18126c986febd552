package utils

import (
	"encoding/json"
	"net/http"
)

// ErrorEnvelope is the uniform error response shape:
// {"success": false, "error": <status>, "message": "<string>"}
type ErrorEnvelope struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return nil
	}

	return json.NewEncoder(w).Encode(data)
}

// WriteError writes the uniform error envelope with the given status code
func WriteError(w http.ResponseWriter, status int, message string) error {
	return WriteJSON(w, status, ErrorEnvelope{
		Success: false,
		Error:   status,
		Message: message,
	})
}
