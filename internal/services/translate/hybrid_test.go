package translate

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{})  {}

type fakeEngine struct {
	mu    sync.Mutex
	out   string
	err   error
	calls []string
}

func (f *fakeEngine) Name() string { return "fake-local" }

func (f *fakeEngine) Translate(ctx context.Context, text string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, text)
	return f.out, f.err
}

// promptLLM answers by the first matching prompt prefix.
type promptLLM struct {
	mu      sync.Mutex
	answers map[string]string
	errs    map[string]error
	prompts []string
}

func (p *promptLLM) GetCompletion(ctx context.Context, prompt string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.prompts = append(p.prompts, prompt)
	for prefix, err := range p.errs {
		if strings.HasPrefix(prompt, prefix) {
			return "", err
		}
	}
	for prefix, ans := range p.answers {
		if strings.HasPrefix(prompt, prefix) {
			return ans, nil
		}
	}
	return "", errors.New("unexpected prompt")
}

const (
	forwardPrefix = "You are a professional translator."
	backPrefix    = "Translate this English text to Moroccan Darija:"
	toDarPrefix   = "Translate to Moroccan Darija:"
)

func intPtr(i int) *int { return &i }

func TestHybrid_EnglishToDarija(t *testing.T) {
	t.Run("local engine succeeds", func(t *testing.T) {
		h := NewHybrid(&fakeEngine{out: "صباح الخير"}, nil, nopLogger{})
		got := h.Translate(context.Background(), "Good morning", EnglishToDarija)

		assert.Equal(t, Result{
			Translation: "صباح الخير",
			Verification: &Verification{
				Verified: true,
				Status:   "Terjman v2.0 🚀",
				Score:    intPtr(100),
				Details:  "Traduction directe par le modèle local.",
				Label:    LabelRobust,
			},
			Engine: EngineTerjman,
		}, got)
	})

	t.Run("local engine fails without trying the LLM", func(t *testing.T) {
		llm := &promptLLM{answers: map[string]string{toDarPrefix: "x"}}
		h := NewHybrid(&fakeEngine{err: errors.New("cold start timeout")}, llm, nopLogger{})
		got := h.Translate(context.Background(), "Good morning", EnglishToDarija)

		assert.Equal(t, "Erreur Terjman Local", got.Translation)
		assert.Nil(t, got.Verification)
		assert.Empty(t, llm.prompts)
	})

	t.Run("LLM only", func(t *testing.T) {
		llm := &promptLLM{answers: map[string]string{toDarPrefix: "  صباح الخير \n"}}
		h := NewHybrid(nil, llm, nopLogger{})
		got := h.Translate(context.Background(), "Good morning", EnglishToDarija)

		assert.Equal(t, "صباح الخير", got.Translation)
		assert.Nil(t, got.Verification)
		assert.Equal(t, []string{"Translate to Moroccan Darija: Good morning"}, llm.prompts)
	})

	t.Run("no engine", func(t *testing.T) {
		h := NewHybrid(nil, nil, nopLogger{})
		assert.False(t, h.Available())
		got := h.Translate(context.Background(), "Good morning", EnglishToDarija)
		assert.Equal(t, Result{Translation: "Service indisponible", Engine: EngineNone}, got)
	})
}

func TestHybrid_DarijaToEnglish(t *testing.T) {
	t.Run("no LLM", func(t *testing.T) {
		h := NewHybrid(&fakeEngine{out: "x"}, nil, nopLogger{})
		got := h.Translate(context.Background(), "salam", DarijaToEnglish)
		assert.Equal(t, "Erreur : Clé API Google invalide", got.Translation)
		assert.Nil(t, got.Verification)
	})

	t.Run("forward failure", func(t *testing.T) {
		llm := &promptLLM{errs: map[string]error{forwardPrefix: errors.New("quota exceeded")}}
		h := NewHybrid(nil, llm, nopLogger{})
		got := h.Translate(context.Background(), "salam", DarijaToEnglish)
		assert.Equal(t, "Erreur de traduction : quota exceeded", got.Translation)
		assert.Nil(t, got.Verification)
	})

	t.Run("unverified without local engine", func(t *testing.T) {
		llm := &promptLLM{answers: map[string]string{forwardPrefix: " Hello, how are you? "}}
		h := NewHybrid(nil, llm, nopLogger{})
		got := h.Translate(context.Background(), "salam, labas?", DarijaToEnglish)

		assert.Equal(t, "Hello, how are you?", got.Translation)
		assert.Equal(t, &Verification{Verified: false, Status: "Non vérifié"}, got.Verification)
		require.Len(t, llm.prompts, 1)
		assert.True(t, strings.HasSuffix(llm.prompts[0], "Text: salam, labas?"))
	})

	t.Run("back translations agree", func(t *testing.T) {
		local := &fakeEngine{out: "labas 3lik"}
		llm := &promptLLM{answers: map[string]string{
			forwardPrefix: "Are you fine?",
			backPrefix:    "labas alik",
		}}
		h := NewHybrid(local, llm, nopLogger{})
		got := h.Translate(context.Background(), "labas 3lik?", DarijaToEnglish)

		assert.Equal(t, "Are you fine?", got.Translation)
		assert.Equal(t, &Verification{
			Verified: true,
			Status:   "Certifié Robuste ✅",
			Score:    intPtr(90),
			Details:  "Cohérence Back-Translation : 90%",
			Label:    LabelRobust,
		}, got.Verification)
		assert.Equal(t, EngineHybrid, got.Engine)
		assert.Equal(t, []string{"Are you fine?"}, local.calls, "local engine back-translates the English output")
		assert.Contains(t, llm.prompts, "Translate this English text to Moroccan Darija: Are you fine?")
	})

	t.Run("back translation failure keeps unverified default", func(t *testing.T) {
		local := &fakeEngine{err: errors.New("lambda throttled")}
		llm := &promptLLM{answers: map[string]string{forwardPrefix: "Thanks", backPrefix: "شكرا"}}
		h := NewHybrid(local, llm, nopLogger{})
		got := h.Translate(context.Background(), "shukran", DarijaToEnglish)

		assert.Equal(t, "Thanks", got.Translation)
		assert.Equal(t, &Verification{Verified: false, Status: "Non vérifié"}, got.Verification)
		assert.Equal(t, EngineLLM, got.Engine)
	})
}
