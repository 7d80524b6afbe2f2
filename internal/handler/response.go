package handler

// RESPONSE ENVELOPE:
// Every endpoint answers with one of two shapes, so the frontend can branch
// on a single `success` flag:
//
//   success: {"success": true, "data": ..., "message": "..."}   (message optional)
//   failure: {"success": false, "error": "..."}
//
// The error string is the user-facing message; the HTTP status carries the
// machine-readable category (400/401/404/409/500).

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/game-wiki/internal/apperror"
)

// successResponse is the success envelope.
type successResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Message string `json:"message,omitempty"`
}

// errorResponse is the failure envelope.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// writeJSON sends a JSON body with the given status code. Headers must be
// set before the first write; once Encode runs, the status is committed.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeSuccess wraps data in the success envelope.
func writeSuccess(w http.ResponseWriter, status int, data any, message string) {
	writeJSON(w, status, successResponse{Success: true, Data: data, Message: message})
}

// writeError maps a domain error to its HTTP status and failure envelope.
//
// The service layer returns apperror sentinels; this is the single place
// they become status codes. Anything without a recognized sentinel is a 500
// with a generic message — the raw error may contain SQL text or file paths
// and never reaches the client.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError

		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest
		case errors.Is(err, apperror.ErrUnauthorized):
			status = http.StatusUnauthorized
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
		case errors.Is(err, apperror.ErrConflict):
			status = http.StatusConflict
		case errors.Is(err, apperror.ErrNotConfigured):
			status = http.StatusInternalServerError
		}

		writeJSON(w, status, errorResponse{Success: false, Error: appErr.Message})
		return
	}

	writeJSON(w, http.StatusInternalServerError, errorResponse{
		Success: false,
		Error:   "요청을 처리하는 중 오류가 발생했습니다",
	})
}
