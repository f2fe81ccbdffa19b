package utils

import (
	"encoding/json"
	"net/http"

	"cozyconnect_server/apperror"
)

// WriteJSON writes v with the success envelope the frontend expects.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// WriteError maps err to an HTTP status through the apperror taxonomy
// and writes the failure envelope. Store and internal failures keep
// their detail out of the response body.
func WriteError(w http.ResponseWriter, err error) {
	WriteJSON(w, apperror.ToHTTPStatus(err), map[string]interface{}{
		"success": false,
		"error":   apperror.UserMessage(err),
	})
}
