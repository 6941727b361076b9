package web

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
)

// ErrorResponse is the body of every non-validation error.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// ValidationErrorResponse maps each rejected field to the rule it failed.
type ValidationErrorResponse struct {
	ValidationErrors map[string]string `json:"validation_errors"`
}

// RespondJSON encodes payload before writing the status so an encoding failure
// can still be reported as a 500.
func RespondJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to encode response", "status", status, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// RespondError writes an ErrorResponse tagged with the request id.
func RespondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	RespondJSON(w, r, status, ErrorResponse{Error: message, RequestID: RequestIDFrom(r.Context())})
}

// PathInt parses the named path parameter as an int.
func PathInt(r *http.Request, name string) (int, error) {
	raw := r.PathValue(name)
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: not an integer", name, raw)
	}
	return value, nil
}
