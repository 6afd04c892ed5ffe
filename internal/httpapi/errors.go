package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"motiond/internal/offload"
	"motiond/internal/runtime"
	"motiond/pkg/types"
)

// statusForError maps runtime errors to HTTP status codes and client-safe
// messages. Validation and backpressure details are safe to echo; runtime
// failures return a generic message and go to the log only.
func statusForError(err error) (int, string) {
	switch {
	case runtime.IsValidation(err):
		return http.StatusBadRequest, err.Error()
	case runtime.IsTooBusy(err):
		return http.StatusServiceUnavailable, err.Error()
	case runtime.IsUnavailable(err), offload.IsInsufficientMemory(err):
		return http.StatusServiceUnavailable, "service unavailable"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "generation timed out"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

// backpressureReason labels 503 responses for the backpressure counter.
func backpressureReason(err error) string {
	switch {
	case runtime.IsTooBusy(err):
		return "queue_full"
	case offload.IsInsufficientMemory(err):
		return "memory"
	case runtime.IsUnavailable(err):
		return "unavailable"
	default:
		return "unspecified"
	}
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg, Code: status})
}
