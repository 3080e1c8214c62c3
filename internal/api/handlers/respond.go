package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/wonny/finsim/backend/pkg/logger"
)

// maxBodyBytes caps request bodies; simulation requests are tiny
const maxBodyBytes = 1 << 20

// respondJSON writes a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, `{"error":"Failed to encode response"}`, http.StatusInternalServerError)
	}
}

// respondError writes a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// decodeLenient fills v from the request body. Empty and malformed bodies
// are tolerated: every field falls back to its documented default, matching
// how the chart front ends have always called these endpoints. Parsed values
// are still validated afterwards.
func decodeLenient(r *http.Request, v interface{}, log *logger.Logger) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		log.WithError(err).Warn("Failed to read request body, using defaults")
		return
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return
	}

	if err := json.Unmarshal(body, v); err != nil {
		log.WithError(err).Warn("Malformed request body, using defaults")
	}
}
