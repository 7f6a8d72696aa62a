package rag

import (
	"strings"

	"github.com/zelig/zelig-backend/internal/domain"
)

const (
	fallbackPrefix = "Info rapide (Hors ligne) : "
	noInfoMessage  = "Désolé, je n'ai pas l'information pour le moment."
)

// KeywordSearch returns the first place whose text contains the query,
// case-insensitively. A blank query matches nothing.
func KeywordSearch(places []domain.Place, query string) (domain.Place, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return domain.Place{}, false
	}
	for _, p := range places {
		if strings.Contains(p.SearchText(), q) {
			return p, true
		}
	}
	return domain.Place{}, false
}

func fallbackAnswer(places []domain.Place, query string) Answer {
	if p, ok := KeywordSearch(places, query); ok {
		return Answer{Result: fallbackPrefix + p.Description, Mode: ModeFallback, Sources: []string{p.Name}}
	}
	return Answer{Result: noInfoMessage, Mode: ModeNone, Sources: []string{}}
}
