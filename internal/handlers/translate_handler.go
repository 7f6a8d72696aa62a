package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/zelig/zelig-backend/internal/services/translate"
)

const translateUnavailable = "⚠️ Service Traduction indisponible."

// Translator serves translation requests.
type Translator interface {
	Translate(ctx context.Context, text, direction string) translate.Result
}

type TranslateHandler struct {
	translator Translator
	logger     Logger
}

func NewTranslateHandler(translator Translator, logger Logger) *TranslateHandler {
	return &TranslateHandler{translator: translator, logger: logger}
}

type translateRequest struct {
	Text      string  `json:"text"`
	Direction *string `json:"direction"`
}

// direction applies the default only when the field is absent.
func (r translateRequest) direction() string {
	if r.Direction == nil {
		return string(translate.EnglishToDarija)
	}
	return *r.Direction
}

// Translate handles POST /api/translate.
func (h *TranslateHandler) Translate(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, "text is required", http.StatusBadRequest)
		return
	}

	if h.translator == nil {
		writeJSON(w, http.StatusOK, map[string]string{"translation": translateUnavailable})
		return
	}

	writeJSON(w, http.StatusOK, h.translator.Translate(r.Context(), req.Text, req.direction()))
}
