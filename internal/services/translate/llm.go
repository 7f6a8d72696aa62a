package translate

import (
	"context"
	"fmt"
	"strings"
)

const (
	toDarijaPrompt     = "Translate to Moroccan Darija: %s"
	backToDarijaPrompt = "Translate this English text to Moroccan Darija: %s"
	toEnglishPrompt    = `You are a professional translator.
Translate this Moroccan Darija text (Arabic or Latin script) into standard English.
Only return the English translation.
Text: %s`
)

// LLMTranslator builds translation prompts for a general model.
// Every result is whitespace-trimmed.
type LLMTranslator struct {
	llm Completer
}

func NewLLMTranslator(llm Completer) *LLMTranslator {
	return &LLMTranslator{llm: llm}
}

func (t *LLMTranslator) ToDarija(ctx context.Context, text string) (string, error) {
	return t.complete(ctx, fmt.Sprintf(toDarijaPrompt, text))
}

func (t *LLMTranslator) ToEnglish(ctx context.Context, text string) (string, error) {
	return t.complete(ctx, fmt.Sprintf(toEnglishPrompt, text))
}

// BackToDarija re-translates English produced by ToEnglish, for the
// consistency check.
func (t *LLMTranslator) BackToDarija(ctx context.Context, english string) (string, error) {
	return t.complete(ctx, fmt.Sprintf(backToDarijaPrompt, english))
}

func (t *LLMTranslator) complete(ctx context.Context, prompt string) (string, error) {
	out, err := t.llm.GetCompletion(ctx, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
