package shared

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

// ErrorResponse defines the standard error response structure.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithError writes a JSON error response with the given status code
// and message, attaching the request ID for correlation when present.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	resp := ErrorResponse{
		Error:     message,
		RequestID: middleware.GetReqID(r.Context()),
	}

	slog.Debug("sending error response",
		"status_code", status,
		"message", message,
		"request_id", resp.RequestID)

	RespondWithJSON(w, r, status, resp)
}
