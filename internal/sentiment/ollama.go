package sentiment

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/KaramelBytes/autoinsight/internal/ai"
)

const systemPrompt = "You rate the sentiment of user text. Reply with a single number between -1 (very negative) and 1 (very positive) and nothing else."

var numberRe = regexp.MustCompile(`[-+]?\d*\.?\d+`)

// ModelScorer asks a chat runtime for a polarity.
type ModelScorer struct {
	rt    ai.Runtime
	model string
}

func NewModelScorer(rt ai.Runtime, model string) *ModelScorer {
	return &ModelScorer{rt: rt, model: model}
}

func (s *ModelScorer) Score(ctx context.Context, text string) (float64, error) {
	resp, err := s.rt.Generate(ctx, ai.GenerateRequest{
		Model: s.model,
		Messages: []ai.Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: text},
		},
		MaxTokens:   8,
		Temperature: 0.01,
	})
	if err != nil {
		return 0, err
	}
	out := resp.Text()
	m := numberRe.FindString(out)
	if m == "" {
		return 0, fmt.Errorf("model reply %q has no score", out)
	}
	x, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, fmt.Errorf("parse model score %q: %w", m, err)
	}
	return clamp(x), nil
}
