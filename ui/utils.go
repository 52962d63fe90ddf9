package ui

import (
	"encoding/json"
	"net/http"

	"log/slog"
)

// writeJSON encodes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("json encode failed", "error", err)
	}
}

// writeJSONError encodes the error contract the upload endpoint uses.
func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
