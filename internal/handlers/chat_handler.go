// File: internal/handlers/chat_handler.go
package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/zelig/zelig-backend/internal/services"
)

const chatUnavailable = "⚠️ Service RAG indisponible."

// ChatAnswerer answers travel questions.
type ChatAnswerer interface {
	Ask(ctx context.Context, query string) services.ChatResponse
}

type ChatHandler struct {
	chat   ChatAnswerer
	logger Logger
}

// NewChatHandler builds the handler. A nil chat makes every request answer
// with the unavailable message.
func NewChatHandler(chat ChatAnswerer, logger Logger) *ChatHandler {
	return &ChatHandler{chat: chat, logger: logger}
}

type chatRequest struct {
	Query string `json:"query"`
}

// Chat handles POST /api/chat.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(w, "query is required", http.StatusBadRequest)
		return
	}

	if h.chat == nil {
		writeJSON(w, http.StatusOK, map[string]string{"result": chatUnavailable})
		return
	}

	writeJSON(w, http.StatusOK, h.chat.Ask(r.Context(), req.Query))
}
