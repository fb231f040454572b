// Package handler holds helpers shared by all HTTP handlers.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/asifratul/dokan/internal/domain"
)

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// RespondJSON writes v as a JSON response with the given status.
func RespondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Error("failed to encode response", "error", err)
	}
}

// RespondError maps a domain error to an HTTP status and writes the
// error body. Internal errors are logged; their message is replaced so
// internals never leak to clients.
func RespondError(w http.ResponseWriter, logger *slog.Logger, err error) {
	code := domain.ErrorCode(err)
	message := domain.ErrorMessage(err)

	status := StatusFromCode(code)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed",
			slog.String("code", code),
			slog.String("error", err.Error()))
		message = "An internal error has occurred."
	}

	RespondJSON(w, status, ErrorResponse{Error: message, Code: code})
}

// StatusFromCode maps domain error codes to HTTP status codes.
func StatusFromCode(code string) int {
	switch code {
	case domain.EINVALID:
		return http.StatusUnprocessableEntity
	case domain.ENOTFOUND:
		return http.StatusNotFound
	case domain.ECONFLICT:
		return http.StatusConflict
	case domain.EUNAUTHORIZED:
		return http.StatusUnauthorized
	case domain.EUNVERIFIED:
		return http.StatusForbidden
	case domain.ERATELIMIT:
		return http.StatusTooManyRequests
	case domain.EUNAVAILABLE:
		return http.StatusServiceUnavailable
	case domain.ENOTIMPL:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
