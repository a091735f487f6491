package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"safetrack/pkg/apperrors"
	"safetrack/pkg/logger"
)

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps an error from the service layer onto an HTTP status.
// Anything outside the known families is logged in full and reported to
// the caller as a plain 500.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var status int
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperrors.ErrDuplicate):
		status = http.StatusConflict
	case errors.Is(err, apperrors.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, apperrors.ErrAuthentication):
		status = http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrPermissionDenied):
		status = http.StatusForbidden
	default:
		s.log.Error("unhandled error", logger.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
		return
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperrors.Validation("invalid request body: %v", err)
	}
	return nil
}
