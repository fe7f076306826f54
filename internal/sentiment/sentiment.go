// Package sentiment labels free text as positive, negative or neutral.
package sentiment

import (
	"context"
	"fmt"
	"strings"
)

// Labels produced by the analyzer.
const (
	Positive     = "Positive"
	Negative     = "Negative"
	Neutral      = "Neutral"
	VeryPositive = "Very Positive"
	VeryNegative = "Very Negative"
)

// Result is a labelled polarity in [-1, 1].
type Result struct {
	Sentiment string  `json:"sentiment"`
	Score     float64 `json:"score"`
}

// Scorer returns the polarity of text in [-1, 1].
type Scorer interface {
	Score(ctx context.Context, text string) (float64, error)
}

type override struct {
	phrase string
	score  float64
}

// overrides are checked in order against the lower-cased, trimmed text.
var overrides = []override{
	{"love you", 0.95},
	{"i love", 0.9},
	{"hate you", -0.99},
	{"i hate", -0.95},
	{"amazing", 0.85},
	{"terrible", -0.8},
}

// Analyzer labels scorer output.
type Analyzer struct {
	scorer Scorer
}

func New(s Scorer) *Analyzer {
	if s == nil {
		s = NewLexicon()
	}
	return &Analyzer{scorer: s}
}

// Predict labels text by scorer polarity: above 0.1 is Positive, below -0.1
// Negative, otherwise Neutral.
func (a *Analyzer) Predict(ctx context.Context, text string) (Result, error) {
	score, err := a.scorer.Score(ctx, text)
	if err != nil {
		return Result{}, fmt.Errorf("score text: %w", err)
	}
	return Result{Sentiment: label(score), Score: score}, nil
}

// PredictCustom consults the keyword overrides before falling back to Predict.
func (a *Analyzer) PredictCustom(ctx context.Context, text string) (Result, error) {
	lower := strings.ToLower(strings.TrimSpace(text))
	for _, o := range overrides {
		if strings.Contains(lower, o.phrase) {
			l := VeryNegative
			if o.score > 0.5 {
				l = VeryPositive
			}
			return Result{Sentiment: l, Score: o.score}, nil
		}
	}
	return a.Predict(ctx, text)
}

func label(score float64) string {
	switch {
	case score > 0.1:
		return Positive
	case score < -0.1:
		return Negative
	default:
		return Neutral
	}
}

func clamp(x float64) float64 {
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}
	return x
}
