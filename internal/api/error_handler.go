package api

import (
	"net/http"

	"github.com/bporter/mcattrainer/internal/errors"
	"github.com/bporter/mcattrainer/internal/logger"
)

// handleError centralizes error handling for HTTP responses. Everything this
// API serves is JSON, so the body is always `{"detail": ...}` plus the code.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	appErr, ok := err.(*errors.AppError)
	if !ok {
		appErr = errors.NewInternalError(err)
	}

	if appErr.Status >= 500 {
		log.Error("server error: %v", appErr)
	} else {
		log.Warn("client error: %v", appErr)
	}

	respondJSON(w, appErr.Status, map[string]string{
		"code":   appErr.Code,
		"detail": appErr.Message,
	})
}
