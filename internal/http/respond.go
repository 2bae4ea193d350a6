package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sbvanyo/expense-tracker-server/internal/core"
	"github.com/sbvanyo/expense-tracker-server/internal/storage"
)

// writeJSON serializes v with the given status. A nil v writes no body,
// which is how 204 responses are produced.
func writeJSON(w http.ResponseWriter, status int, v any) {
	if v == nil {
		w.WriteHeader(status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeMessage writes {"message": msg}, the standard error envelope.
func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

// writeErrorKey writes {"error": msg}; the trip attach/detach endpoints use
// this envelope instead of "message".
func writeErrorKey(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func isValidationError(err error) bool {
	return errors.Is(err, core.ErrInvalidAmount) ||
		errors.Is(err, core.ErrInvalidDate) ||
		errors.Is(err, core.ErrEmptyName) ||
		errors.Is(err, core.ErrEmptyUID) ||
		errors.Is(err, core.ErrNameTooLong)
}

// handleError translates service errors into the HTTP taxonomy: NotFound
// naming the entity, 400 for validation failures, 500 otherwise. The key
// argument selects the response envelope ("message" or "error").
func handleError(w http.ResponseWriter, r *http.Request, err error, key string) {
	write := writeMessage
	if key == "error" {
		write = writeErrorKey
	}

	switch {
	case errors.Is(err, storage.ErrNotAssociated):
		write(w, http.StatusNotFound, "Expense not associated with trip.")
	case errors.Is(err, storage.ErrNotFound):
		msg := "Not found"
		var nf *storage.NotFoundError
		if errors.As(err, &nf) {
			msg = nf.Error()
		}
		write(w, http.StatusNotFound, msg)
	case isValidationError(err):
		write(w, http.StatusBadRequest, err.Error())
	default:
		slog.ErrorContext(r.Context(), "Request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err)
		write(w, http.StatusInternalServerError, "An error occurred: "+err.Error())
	}
}
