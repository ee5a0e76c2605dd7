package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/roach88/tablestate/internal/logging"
	"github.com/roach88/tablestate/internal/session"
	"github.com/roach88/tablestate/internal/table"
)

// ErrorResponse is the JSON body of every error answer.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// Codes for failures that are not table operation errors.
const (
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeUnavailable    = "SESSION_CLOSED"
	CodeTimeout        = "TIMEOUT"
	CodeInternal       = "INTERNAL"
)

// statusFor maps a table error code to an HTTP status.
func statusFor(code table.OpErrorCode) int {
	switch code {
	case table.ErrCodeUnknownColumn, table.ErrCodeUnknownSelection:
		return http.StatusNotFound
	case table.ErrCodeSelectionDisabled, table.ErrCodePaginationDisabled,
		table.ErrCodeNotSortable, table.ErrCodeNotFilterable:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := http.StatusInternalServerError, CodeInternal

	var opErr *table.OpError
	switch {
	case errors.As(err, &opErr):
		status, code = statusFor(opErr.Code), string(opErr.Code)
	case errors.Is(err, session.ErrInvalidCommand):
		status, code = http.StatusBadRequest, CodeInvalidRequest
	case errors.Is(err, session.ErrClosed):
		status, code = http.StatusServiceUnavailable, CodeUnavailable
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		status, code = http.StatusGatewayTimeout, CodeTimeout
	}

	logging.FromContext(r.Context(), s.logger).Warn("request error",
		"path", r.URL.Path,
		"status", status,
		"code", code,
		"error", err.Error(),
	)
	writeJSON(w, status, ErrorResponse{Error: err.Error(), Code: code})
}

func (s *Server) badRequest(w http.ResponseWriter, r *http.Request, msg string) {
	logging.FromContext(r.Context(), s.logger).Warn("bad request", "path", r.URL.Path, "error", msg)
	writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: msg, Code: CodeInvalidRequest})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
