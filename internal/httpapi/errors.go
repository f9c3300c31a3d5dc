package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"splashd/internal/event"
	"splashd/internal/splash"
	"splashd/pkg/types"
)

// HTTPError allows services to provide an HTTP status code for an error.
type HTTPError interface {
	error
	StatusCode() int
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg, Code: status})
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	var he HTTPError
	switch {
	case errors.As(err, &he):
		return he.StatusCode()
	case splash.IsGameNotFound(err):
		return http.StatusNotFound
	case event.IsInvalidArgument(err):
		return http.StatusBadRequest
	default:
		// listener failures included
		return http.StatusInternalServerError
	}
}

func writeServiceError(w http.ResponseWriter, err error) int {
	status := statusFor(err)
	writeJSONError(w, status, err.Error())
	return status
}
