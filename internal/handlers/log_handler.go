package handlers

import (
	"net/http"
	"strings"
)

// FrontendLogPayload defines the structure for logs coming from the browser.
type FrontendLogPayload struct {
	Level   string `json:"level"`
	Message string `json:"message"`
	Context any    `json:"context,omitempty"`
}

type LogHandler struct {
	logger Logger
}

func NewLogHandler(logger Logger) *LogHandler {
	return &LogHandler{logger: logger}
}

// LogFrontendEvent handles POST /api/log.
func (h *LogHandler) LogFrontendEvent(w http.ResponseWriter, r *http.Request) {
	var payload FrontendLogPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	kv := []interface{}{"client_level", payload.Level, "client_message", payload.Message}
	if payload.Context != nil {
		kv = append(kv, "context", payload.Context)
	}

	switch strings.ToLower(payload.Level) {
	case "error":
		h.logger.Error("CLIENT_LOG", kv...)
	case "warn", "warning":
		h.logger.Warn("CLIENT_LOG", kv...)
	case "debug":
		h.logger.Debug("CLIENT_LOG", kv...)
	default:
		h.logger.Info("CLIENT_LOG", kv...)
	}

	w.WriteHeader(http.StatusNoContent)
}
