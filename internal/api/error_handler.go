package api

import (
	"encoding/json"
	"net/http"
	"runtime/debug"

	"github.com/olenak/lingocards/internal/errors"
	"github.com/olenak/lingocards/internal/logger"
)

// handleError centralizes error rendering. Every error becomes the JSON
// envelope with status "error"; unknown errors are wrapped as internal.
func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
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

	data := map[string]any{
		"statusCode": appErr.Status,
		"code":       appErr.Code,
	}
	if s.DevMode && appErr.Status >= 500 {
		data["stack"] = string(debug.Stack())
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.Status)
	if encErr := json.NewEncoder(w).Encode(envelope{
		Status:  "error",
		Message: appErr.Message,
		Data:    data,
	}); encErr != nil {
		log.Error("failed to encode error response: %v", encErr)
	}
}
