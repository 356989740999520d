package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/team-roster-service/internal/domain"
	"github.com/preston-bernstein/team-roster-service/internal/http/middleware"
	"github.com/preston-bernstein/team-roster-service/internal/http/requestutil"
	"github.com/preston-bernstein/team-roster-service/internal/logging"
)

const (
	msgCorrupt     = "stored data is corrupt"
	msgUnavailable = "storage unavailable"
	msgInternal    = "something went wrong, please try again"
)

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Error("failed to encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	reqID := middleware.RequestIDFromContext(r.Context())
	if reqID == "" {
		reqID = r.Header.Get(requestutil.HeaderRequestID)
	}
	body := map[string]string{"error": message}
	if reqID != "" {
		body["requestId"] = reqID
	}
	writeJSON(w, status, body, logger)
}

// writeServiceError maps a repository error onto a status and message. Known
// errors carry their own message; anything else gets a generic one.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	status, message := statusFor(err)
	if status >= http.StatusInternalServerError {
		logging.Error(r.Context(), logger, "request failed", err)
	}
	writeError(w, r, status, message, logger)
}

func statusFor(err error) (int, string) {
	if _, ok := domain.AsCorruptDataError(err); ok {
		return http.StatusInternalServerError, msgCorrupt
	}
	if _, ok := domain.AsStorageError(err); ok {
		return http.StatusServiceUnavailable, msgUnavailable
	}
	for _, known := range []struct {
		err    error
		status int
	}{
		{domain.ErrDuplicateGroup, http.StatusConflict},
		{domain.ErrDuplicatePlayer, http.StatusConflict},
		{domain.ErrGroupNotFound, http.StatusNotFound},
		{domain.ErrPlayerNotFound, http.StatusNotFound},
		{domain.ErrInvalidName, http.StatusBadRequest},
		{domain.ErrInvalidTeam, http.StatusBadRequest},
	} {
		if errors.Is(err, known.err) {
			return known.status, known.err.Error()
		}
	}
	return http.StatusInternalServerError, msgInternal
}
