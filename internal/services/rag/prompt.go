package rag

import (
	"fmt"
	"strings"

	"github.com/zelig/zelig-backend/internal/services/vector"
)

const promptTemplate = `Tu es Zelig, un guide expert du Maroc.
Réponds à la question en utilisant le contexte ci-dessous.
Si la réponse n'y est pas, utilise tes connaissances générales.

<contexte>
%s
</contexte>

Question: %s`

// BuildContext joins retrieved document contents with a blank line and
// collects their sources in rank order.
func BuildContext(matches []vector.Match) (string, []string) {
	parts := make([]string, 0, len(matches))
	sources := make([]string, 0, len(matches))
	for _, m := range matches {
		content := m.Metadata[metaContent]
		if content == "" {
			continue
		}
		parts = append(parts, content)
		if src := m.Metadata[metaSource]; src != "" {
			sources = append(sources, src)
		}
	}
	return strings.Join(parts, "\n\n"), sources
}

func BuildPrompt(context, question string) string {
	return fmt.Sprintf(promptTemplate, context, question)
}
