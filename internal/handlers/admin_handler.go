// File: internal/handlers/admin_handler.go
package handlers

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/zelig/zelig-backend/internal/auth"
	"github.com/zelig/zelig-backend/internal/domain"
)

// PlaceAdmin manages the knowledge base behind the chat assistant.
type PlaceAdmin interface {
	Places(ctx context.Context) ([]domain.Place, error)
	SavePlace(ctx context.Context, place *domain.Place) error
	Reindex(ctx context.Context) (int, error)
	RetrievalActive() bool
}

// TranslationHistory lists recently served translations.
type TranslationHistory interface {
	History(ctx context.Context, limit int) ([]domain.TranslationRecord, error)
}

type AdminHandler struct {
	places       PlaceAdmin
	translations TranslationHistory
	secret       []byte
	passwordHash string
	logger       Logger
}

func NewAdminHandler(places PlaceAdmin, translations TranslationHistory, secret []byte, passwordHash string, logger Logger) *AdminHandler {
	return &AdminHandler{
		places:       places,
		translations: translations,
		secret:       secret,
		passwordHash: passwordHash,
		logger:       logger,
	}
}

type loginRequest struct {
	Password string `json:"password"`
}

// Login exchanges the admin password for a bearer token.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Password == "" {
		writeError(w, "password is required", http.StatusBadRequest)
		return
	}
	if h.passwordHash == "" {
		writeError(w, "Admin login is not configured", http.StatusServiceUnavailable)
		return
	}

	if err := auth.CheckPassword(h.passwordHash, req.Password); err != nil {
		h.logger.Warn("admin login failed", "error", err)
		writeError(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := auth.GenerateAdminToken("admin", h.secret, auth.AdminTokenTTL)
	if err != nil {
		h.logger.Error("failed to sign admin token", "error", err)
		writeError(w, "Could not create session", http.StatusInternalServerError)
		return
	}

	h.logger.Info("admin logged in")
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token":      token,
		"expires_in": int(auth.AdminTokenTTL.Seconds()),
	})
}

// ListPlaces returns every stored place.
func (h *AdminHandler) ListPlaces(w http.ResponseWriter, r *http.Request) {
	places, err := h.places.Places(r.Context())
	if err != nil {
		h.logger.Error("failed to list places", "error", err)
		writeError(w, "Could not retrieve places", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"places":    places,
		"total":     len(places),
		"retrieval": h.places.RetrievalActive(),
	})
}

// SavePlace creates or updates a place by name and reindexes the engine.
func (h *AdminHandler) SavePlace(w http.ResponseWriter, r *http.Request) {
	var place domain.Place
	if err := decodeJSON(w, r, &place); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	place.ID = 0
	if strings.TrimSpace(place.Name) == "" {
		writeError(w, "name is required", http.StatusBadRequest)
		return
	}

	if err := h.places.SavePlace(r.Context(), &place); err != nil {
		h.logger.Error("failed to save place", "name", place.Name, "error", err)
		writeError(w, "Could not save place", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"place":     place,
		"retrieval": h.places.RetrievalActive(),
	})
}

// Reindex rebuilds the vector index from the stored places.
func (h *AdminHandler) Reindex(w http.ResponseWriter, r *http.Request) {
	n, err := h.places.Reindex(r.Context())
	resp := map[string]interface{}{
		"places":    n,
		"retrieval": h.places.RetrievalActive(),
	}
	if err != nil {
		resp["error"] = err.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListTranslations returns the newest translations, ?limit=N.
func (h *AdminHandler) ListTranslations(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = n
	}

	records, err := h.translations.History(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list translations", "error", err)
		writeError(w, "Could not retrieve translations", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"translations": records,
		"total":        len(records),
	})
}

// ExportPlacesCSV streams the knowledge base as a CSV attachment.
func (h *AdminHandler) ExportPlacesCSV(w http.ResponseWriter, r *http.Request) {
	places, err := h.places.Places(r.Context())
	if err != nil {
		h.logger.Error("failed to export places", "error", err)
		writeError(w, "Failed to export places", http.StatusInternalServerError)
		return
	}

	fileName := fmt.Sprintf("places_export_%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))

	writer := csv.NewWriter(w)
	_ = writer.Write([]string{"ID", "Name", "City", "Category", "Description", "SafetyTips"})
	for _, p := range places {
		_ = writer.Write([]string{
			strconv.FormatUint(uint64(p.ID), 10),
			p.Name,
			p.City,
			p.Category,
			p.Description,
			p.SafetyTips,
		})
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		h.logger.Error("failed to write places CSV", "error", err)
	}
}
