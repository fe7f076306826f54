package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/KaramelBytes/autoinsight/internal/ai"
	cfgpkg "github.com/KaramelBytes/autoinsight/internal/config"
	"github.com/KaramelBytes/autoinsight/internal/insight"
	"github.com/KaramelBytes/autoinsight/internal/sentiment"
)

// insightOptions maps configuration onto pipeline options.
func insightOptions(c *cfgpkg.Global) (insight.Options, error) {
	opt := insight.DefaultOptions()
	opt.Table.MaxRows = c.MaxRows
	if c.CSVEncoding != "" {
		opt.Table.Encoding = c.CSVEncoding
	}
	d, err := parseDelimiter(c.CSVDelimiter)
	if err != nil {
		return opt, err
	}
	opt.Table.Delimiter = d
	if c.CategoryThreshold > 0 {
		opt.Analysis.CategoryThreshold = c.CategoryThreshold
	}
	opt.ChartsEnabled = c.ChartsEnabled
	if c.ChartWidthIn > 0 {
		opt.Charts.Width = c.ChartWidthIn
	}
	if c.ChartHeightIn > 0 {
		opt.Charts.Height = c.ChartHeightIn
	}
	if c.HeatmapHeightIn > 0 {
		opt.Charts.HeatmapHeight = c.HeatmapHeightIn
	}
	if c.PreviewRows >= 0 {
		opt.PreviewRows = c.PreviewRows
	}
	return opt, nil
}

func parseDelimiter(s string) (rune, error) {
	switch s {
	case "", ",":
		return ',', nil
	case "\t", "tab", `\t`:
		return '\t', nil
	case ";":
		return ';', nil
	case "|", "pipe":
		return '|', nil
	default:
		return 0, fmt.Errorf("unsupported delimiter: %q (use ',' | ';' | 'tab' | 'pipe')", s)
	}
}

// newSentimentAnalyzer builds the analyzer for the configured provider.
func newSentimentAnalyzer(c *cfgpkg.Global, provider string) (*sentiment.Analyzer, error) {
	if provider == "" {
		provider = c.SentimentProvider
	}
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "", "lexicon":
		return sentiment.New(sentiment.NewLexicon()), nil
	case ai.ProviderOllama, "local":
		rt, ok := ai.GetRuntime(ai.ProviderOllama, ai.RuntimeConfig{
			Host:        c.OllamaHost,
			HTTPTimeout: time.Duration(c.HTTPTimeoutSec) * time.Second,
			RetryMax:    c.RetryMaxAttempts,
			BaseDelay:   time.Duration(c.RetryBaseDelayMs) * time.Millisecond,
			MaxDelay:    time.Duration(c.RetryMaxDelayMs) * time.Millisecond,
		})
		if !ok {
			return nil, fmt.Errorf("sentiment provider %q is not registered", provider)
		}
		bopt := sentiment.DefaultBreakerOptions()
		if c.BreakerOpenSec > 0 {
			bopt.OpenTimeout = time.Duration(c.BreakerOpenSec) * time.Second
		}
		scorer := sentiment.NewBreakerScorer(sentiment.NewModelScorer(rt, c.SentimentModel), bopt, nil)
		return sentiment.New(scorer), nil
	default:
		return nil, fmt.Errorf("invalid sentiment provider: %s (use lexicon or ollama)", provider)
	}
}
