package chatanalysis

import (
	"context"
	"math"
	"time"
)

// A PolarityScorer estimates whole-sentence positivity in [0,1]
// (0 = negative, 1 = positive). The core consumes the score but never
// computes it; implementations typically wrap an external model or
// service and must be safe for concurrent use.
type PolarityScorer interface {
	Score(ctx context.Context, sentence string) (float64, error)
}

// PolarityFunc adapts a plain function to the PolarityScorer interface.
type PolarityFunc func(ctx context.Context, sentence string) (float64, error)

// Score implements PolarityScorer.
func (f PolarityFunc) Score(ctx context.Context, sentence string) (float64, error) {
	return f(ctx, sentence)
}

// NeutralPolarity returns a scorer that reports 0.5 for every sentence.
// It is the default when no collaborator is injected.
func NeutralPolarity() PolarityScorer {
	return FixedPolarity(0.5)
}

// FixedPolarity returns a scorer that always reports p. Intended for
// tests and deterministic replays.
func FixedPolarity(p float64) PolarityScorer {
	return PolarityFunc(func(context.Context, string) (float64, error) {
		return p, nil
	})
}

const neutralPolarity = 0.5

// scorePolarity calls the collaborator under its own timeout. Errors,
// timeouts, NaN, and out-of-range values all collapse to the neutral
// score.
func scorePolarity(ctx context.Context, scorer PolarityScorer, sentence string, timeout time.Duration) float64 {
	if scorer == nil {
		return neutralPolarity
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	p, err := scorer.Score(ctx, sentence)
	if err != nil || math.IsNaN(p) {
		return neutralPolarity
	}
	return math.Min(1, math.Max(0, p))
}

// A Translator converts text between languages for collaborators that
// render localized reports. Implementations return the original text on
// failure rather than an error the pipeline would have to handle.
type Translator interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}

// PassthroughTranslator returns input text unchanged. It is the default
// collaborator and the fallback behavior translators should degrade to.
type PassthroughTranslator struct{}

// Translate implements Translator.
func (PassthroughTranslator) Translate(_ context.Context, text, _, _ string) (string, error) {
	return text, nil
}

// translate invokes the collaborator with a timeout, falling back to
// the original text on any failure.
func translate(ctx context.Context, tr Translator, text, source, target string, timeout time.Duration) string {
	if tr == nil {
		return text
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	out, err := tr.Translate(ctx, text, source, target)
	if err != nil || out == "" {
		return text
	}
	return out
}
