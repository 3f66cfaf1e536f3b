package common

import (
	"net/http"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// WriteJSON serializes payload to JSON with status and logs on failure.
func WriteJSON(logger *zap.Logger, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Warn("JSON エンコードに失敗", zap.Error(err))
	}
}

// WriteError maps err to a status and a user-facing message. 5xx errors are logged with op.
func WriteError(logger *zap.Logger, w http.ResponseWriter, op string, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError && logger != nil {
		logger.Error(op+" failed", zap.Error(err))
	}
	WriteJSON(logger, w, status, ErrorResponse{Error: MessageFor(err)})
}
