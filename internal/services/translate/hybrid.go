package translate

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Confidence labels for back-translation agreement.
const (
	LabelRobust    = "robust"
	LabelValidated = "validated"
	LabelUncertain = "uncertain"
)

const (
	robustThreshold    = 60.0
	validatedThreshold = 30.0
)

// Engine names recorded with each translation.
const (
	EngineTerjman = "terjman"
	EngineLLM     = "llm"
	EngineHybrid  = "hybrid"
	EngineNone    = "none"
)

const (
	msgLocalFailure   = "Erreur Terjman Local"
	msgNoService      = "Service indisponible"
	msgNoLLM          = "Erreur : Clé API Google invalide"
	msgForwardFailure = "Erreur de traduction : %v"

	statusLocal      = "Terjman v2.0 🚀"
	detailsLocal     = "Traduction directe par le modèle local."
	statusUnverified = "Non vérifié"
	statusRobust     = "Certifié Robuste ✅"
	statusValidated  = "Validé 👌"
	statusUncertain  = "Nuance Incertaine ⚠️"
	detailsBackCheck = "Cohérence Back-Translation : %d%%"
)

// Verification describes how much the translation can be trusted.
type Verification struct {
	Verified bool   `json:"verified"`
	Status   string `json:"status"`
	Score    *int   `json:"score,omitempty"`
	Details  string `json:"details,omitempty"`
	Label    string `json:"label,omitempty"`
}

// Result is the outcome of one translation request. Verification is nil
// when no check applies.
type Result struct {
	Translation  string        `json:"translation"`
	Verification *Verification `json:"verification"`

	Engine string `json:"-"`
}

// Hybrid routes requests between the local Terjman engine and a general LLM,
// and cross-checks Darija to English output by back-translating it both ways.
type Hybrid struct {
	local  Engine
	llm    *LLMTranslator
	logger Logger
}

// NewHybrid builds the router. local and llm may each be nil.
func NewHybrid(local Engine, llm Completer, logger Logger) *Hybrid {
	h := &Hybrid{local: local, logger: logger}
	if llm != nil {
		h.llm = NewLLMTranslator(llm)
	}
	return h
}

// Available reports whether at least one engine is configured.
func (h *Hybrid) Available() bool {
	return h.local != nil || h.llm != nil
}

func (h *Hybrid) Translate(ctx context.Context, text string, direction Direction) Result {
	if direction == EnglishToDarija {
		return h.toDarija(ctx, text)
	}
	return h.toEnglish(ctx, text)
}

func (h *Hybrid) toDarija(ctx context.Context, text string) Result {
	if h.local != nil {
		out, err := h.local.Translate(ctx, text)
		if err != nil {
			h.logger.Error("local translation failed", "engine", h.local.Name(), "error", err)
			return Result{Translation: msgLocalFailure, Engine: EngineTerjman}
		}
		score := 100
		return Result{
			Translation: out,
			Verification: &Verification{
				Verified: true,
				Status:   statusLocal,
				Score:    &score,
				Details:  detailsLocal,
				Label:    LabelRobust,
			},
			Engine: EngineTerjman,
		}
	}

	if h.llm != nil {
		out, err := h.llm.ToDarija(ctx, text)
		if err != nil {
			h.logger.Error("LLM translation failed", "direction", EnglishToDarija, "error", err)
			return Result{Translation: fmt.Sprintf(msgForwardFailure, err), Engine: EngineLLM}
		}
		return Result{Translation: out, Engine: EngineLLM}
	}

	return Result{Translation: msgNoService, Engine: EngineNone}
}

func (h *Hybrid) toEnglish(ctx context.Context, text string) Result {
	if h.llm == nil {
		return Result{Translation: msgNoLLM, Engine: EngineNone}
	}

	english, err := h.llm.ToEnglish(ctx, text)
	if err != nil {
		h.logger.Error("LLM translation failed", "direction", DarijaToEnglish, "error", err)
		return Result{Translation: fmt.Sprintf(msgForwardFailure, err), Engine: EngineLLM}
	}

	result := Result{
		Translation:  english,
		Verification: &Verification{Verified: false, Status: statusUnverified},
		Engine:       EngineLLM,
	}
	if h.local == nil {
		return result
	}

	v, err := h.backTranslationCheck(ctx, english)
	if err != nil {
		h.logger.Warn("back-translation check skipped", "error", err)
		return result
	}
	result.Verification = v
	result.Engine = EngineHybrid
	return result
}

// backTranslationCheck sends english back to Darija through both engines
// concurrently and scores their agreement.
func (h *Hybrid) backTranslationCheck(ctx context.Context, english string) (*Verification, error) {
	var fromLocal, fromLLM string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		fromLocal, err = h.local.Translate(gctx, english)
		return err
	})
	g.Go(func() error {
		var err error
		fromLLM, err = h.llm.BackToDarija(gctx, english)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return Verify(fromLocal, fromLLM), nil
}

// Verify grades the agreement between two back-translations.
func Verify(a, b string) *Verification {
	score := Similarity(a, b)
	rounded := RoundScore(score)

	v := &Verification{
		Verified: true,
		Score:    &rounded,
		Details:  fmt.Sprintf(detailsBackCheck, rounded),
	}
	switch {
	case score > robustThreshold:
		v.Status, v.Label = statusRobust, LabelRobust
	case score > validatedThreshold:
		v.Status, v.Label = statusValidated, LabelValidated
	default:
		v.Status, v.Label = statusUncertain, LabelUncertain
	}
	return v
}
