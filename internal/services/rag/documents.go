package rag

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/zelig/zelig-backend/internal/domain"
)

// Document is the indexable rendering of a place.
type Document struct {
	ID      string
	Source  string
	Content string
}

const (
	metaSource  = "source"
	metaContent = "content"

	defaultSafetyTip = "Standard"
)

// NewDocument renders a place into the text that gets embedded.
func NewDocument(p domain.Place) Document {
	tips := strings.TrimSpace(p.SafetyTips)
	if tips == "" {
		tips = defaultSafetyTip
	}
	return Document{
		ID:      DocumentID(p.Name),
		Source:  p.Name,
		Content: fmt.Sprintf("Lieu: %s\nDescription: %s\nConseil Sécurité: %s", p.Name, p.Description, tips),
	}
}

// DocumentID is the vector ID for a place. The slug keeps it readable and the
// name hash keeps it unique when slugs collide.
func DocumentID(name string) string {
	sum := uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()
	return Slug(name) + "-" + sum[:8]
}

// Slug turns a place name into a stable ASCII identifier: accents are
// stripped, runs of other characters collapse to a single dash.
func Slug(name string) string {
	decomposed := norm.NFD.String(strings.ToLower(strings.TrimSpace(name)))

	var b strings.Builder
	dash := false
	for _, r := range decomposed {
		switch {
		case unicode.Is(unicode.Mn, r):
			continue
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		return "place"
	}
	return slug
}
