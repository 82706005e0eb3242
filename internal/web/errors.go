package web

// errors.go provides unified JSON response handling for the API layer.
// Technical details are logged server-side with the request id; clients get
// a stable error/code pair.

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/greenspot/grocer/internal/logging"
)

// ErrorResponse is the JSON structure for API error responses.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// respondJSON writes v as a JSON response.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are gone at this point; nothing to do but log.
		slog.Error("encode response", "error", err)
	}
}

// respondError logs the technical error and writes a generic JSON error.
func respondError(w http.ResponseWriter, r *http.Request, err error, status int, code string) {
	logging.FromContext(r.Context()).Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err,
	)
	respondJSON(w, status, ErrorResponse{Error: http.StatusText(status), Code: code})
}
