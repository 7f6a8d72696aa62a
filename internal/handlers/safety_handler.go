package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/zelig/zelig-backend/internal/services/safety"
)

const safetyUnavailable = "⚠️ Service Sécurité indisponible."

// SafetyAnalyzer grades recent safety news for a location.
type SafetyAnalyzer interface {
	Analyze(ctx context.Context, location string) safety.Report
}

type SafetyHandler struct {
	agent  SafetyAnalyzer
	logger Logger
}

func NewSafetyHandler(agent SafetyAnalyzer, logger Logger) *SafetyHandler {
	return &SafetyHandler{agent: agent, logger: logger}
}

type safetyRequest struct {
	City string `json:"city"`
}

// Check handles POST /api/security.
func (h *SafetyHandler) Check(w http.ResponseWriter, r *http.Request) {
	var req safetyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	city := strings.TrimSpace(req.City)
	if city == "" {
		writeError(w, "city is required", http.StatusBadRequest)
		return
	}

	if h.agent == nil {
		writeJSON(w, http.StatusOK, map[string]string{"error": safetyUnavailable})
		return
	}

	report := h.agent.Analyze(r.Context(), city)
	if report.Error != "" {
		h.logger.Warn("safety search failed", "city", city, "error", report.Error)
	}
	writeJSON(w, http.StatusOK, report)
}
