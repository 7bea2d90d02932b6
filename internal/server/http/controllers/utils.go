package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/NEARFoundation/events-platform/internal/fault"
)

// Helper functions for common HTTP responses

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// writeJSON writes a JSON response with the given data.
func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(data)
}

// writeFault maps a kinded error to its HTTP status. Payment shortfalls
// carry the attached/required/shortfall amounts in the body so clients can
// retry with the right deposit.
func writeFault(w http.ResponseWriter, err error) {
	fe, ok := fault.As(err)
	if !ok {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	status := http.StatusInternalServerError
	switch fe.Kind {
	case fault.KindNotFound:
		status = http.StatusNotFound
	case fault.KindForbidden:
		status = http.StatusForbidden
	case fault.KindConflict:
		status = http.StatusConflict
	case fault.KindInvalidArgument:
		status = http.StatusBadRequest
	case fault.KindInsufficientPayment:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusPaymentRequired)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error":     fe.Error(),
			"kind":      fe.Kind.String(),
			"attached":  fe.Attached,
			"required":  fe.Required,
			"shortfall": fe.Shortfall,
		})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": fe.Error(),
		"kind":  fe.Kind.String(),
	})
}

// parseLimit parses a limit query value.
//
// Returns 0 (no limit) for empty strings, and -1 for values that do not
// parse as integers so the service layer can reject them.
func parseLimit(limitStr string) int {
	if limitStr == "" {
		return 0
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil {
		return -1
	}
	return limit
}
