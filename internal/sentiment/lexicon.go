package sentiment

import (
	"context"
	"strings"
	"unicode"
)

// polarity of common English opinion words.
var polarity = map[string]float64{
	"good": 0.7, "great": 0.8, "excellent": 1, "awesome": 1, "amazing": 0.6,
	"wonderful": 1, "fantastic": 0.4, "nice": 0.6, "happy": 0.8, "love": 0.5,
	"lovely": 0.5, "like": 0.2, "best": 1, "better": 0.5, "beautiful": 0.85,
	"perfect": 1, "glad": 0.5, "fun": 0.3, "pleasant": 0.73, "enjoy": 0.4,
	"helpful": 0.5, "useful": 0.3, "fast": 0.2, "easy": 0.43, "clean": 0.37,
	"bad": -0.7, "terrible": -1, "awful": -1, "horrible": -1, "worst": -1,
	"worse": -0.4, "hate": -0.8, "poor": -0.4, "sad": -0.5, "angry": -0.5,
	"ugly": -0.7, "boring": -1, "slow": -0.3, "broken": -0.4, "useless": -0.5,
	"disappointing": -0.6, "disappointed": -0.75, "annoying": -0.8, "wrong": -0.5,
	"difficult": -0.5, "hard": -0.29, "dirty": -0.6, "stupid": -0.8, "fail": -0.5,
}

var intensifiers = map[string]float64{
	"very": 1.3, "really": 1.2, "extremely": 1.5, "so": 1.2, "super": 1.3,
}

// Lexicon averages word polarities. A negation flips and halves the next
// opinion word; an intensifier scales it.
type Lexicon struct {
	words map[string]float64
}

func NewLexicon() *Lexicon { return &Lexicon{words: polarity} }

func (l *Lexicon) Score(_ context.Context, text string) (float64, error) {
	var sum float64
	var n int
	negate := false
	mult := 1.0
	for _, tok := range tokenize(text) {
		if isNegation(tok) {
			negate = true
			continue
		}
		if m, ok := intensifiers[tok]; ok {
			mult *= m
			continue
		}
		p, ok := l.words[tok]
		if !ok {
			continue
		}
		p *= mult
		if negate {
			p *= -0.5
		}
		sum += clamp(p)
		n++
		negate = false
		mult = 1
	}
	if n == 0 {
		return 0, nil
	}
	return clamp(sum / float64(n)), nil
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})
}

func isNegation(tok string) bool {
	switch tok {
	case "not", "no", "never", "nothing", "neither", "nor":
		return true
	}
	return strings.HasSuffix(tok, "n't")
}
