package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	cfgpkg "github.com/KaramelBytes/autoinsight/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set AutoInsight configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		printConfig(cmd.OutOrStdout(), currentConfig())
		return nil
	},
}

func printConfig(w io.Writer, c *cfgpkg.Global) {
	fmt.Fprintf(w, "addr: %s\n", c.Addr)
	fmt.Fprintf(w, "log_level: %s\n", c.LogLevel)
	fmt.Fprintf(w, "max_upload_mb: %d\n", c.MaxUploadMB)
	fmt.Fprintf(w, "preview_rows: %d\n", c.PreviewRows)
	fmt.Fprintf(w, "rate_limit_rps: %g\n", c.RateLimitRPS)
	fmt.Fprintf(w, "rate_limit_burst: %d\n", c.RateLimitBurst)
	fmt.Fprintf(w, "max_concurrent_analyses: %d\n", c.MaxConcurrentAnalyses)
	fmt.Fprintf(w, "category_threshold: %d\n", c.CategoryThreshold)
	fmt.Fprintf(w, "max_rows: %d\n", c.MaxRows)
	fmt.Fprintf(w, "csv_encoding: %s\n", c.CSVEncoding)
	fmt.Fprintf(w, "csv_delimiter: %q\n", c.CSVDelimiter)
	fmt.Fprintf(w, "charts_enabled: %t\n", c.ChartsEnabled)
	fmt.Fprintf(w, "chart_width_in: %.1f\n", c.ChartWidthIn)
	fmt.Fprintf(w, "chart_height_in: %.1f\n", c.ChartHeightIn)
	fmt.Fprintf(w, "heatmap_height_in: %.1f\n", c.HeatmapHeightIn)
	fmt.Fprintf(w, "sentiment_provider: %s\n", c.SentimentProvider)
	if c.SentimentProvider == "ollama" {
		fmt.Fprintf(w, "sentiment_model: %s\n", c.SentimentModel)
		fmt.Fprintf(w, "ollama_host: %s\n", c.OllamaHost)
		fmt.Fprintf(w, "breaker_open_sec: %d\n", c.BreakerOpenSec)
	}
	fmt.Fprintf(w, "http_timeout_sec: %d\n", c.HTTPTimeoutSec)
	fmt.Fprintf(w, "retry_max_attempts: %d\n", c.RetryMaxAttempts)
	fmt.Fprintf(w, "retry_base_delay_ms: %d\n", c.RetryBaseDelayMs)
	fmt.Fprintf(w, "retry_max_delay_ms: %d\n", c.RetryMaxDelayMs)
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := currentConfig()
		if err := setConfigValue(c, args[0], args[1]); err != nil {
			return err
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		cfg = c
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Saved config")
		return nil
	},
}

func setConfigValue(c *cfgpkg.Global, key, val string) error {
	// setInt and setInches leave dst untouched when val is rejected.
	setInt := func(dst *int, lo int) error {
		i, err := strconv.Atoi(val)
		if err != nil || i < lo {
			return fmt.Errorf("invalid int for %s: %v", key, val)
		}
		*dst = i
		return nil
	}
	setInches := func(dst *float64) error {
		f, err := strconv.ParseFloat(val, 64)
		if err != nil || f <= 0 {
			return fmt.Errorf("invalid size for %s: %v", key, val)
		}
		*dst = f
		return nil
	}
	var err error
	switch key {
	case "addr":
		c.Addr = val
	case "log_level":
		switch strings.ToLower(val) {
		case "debug", "info", "warn", "warning", "error":
			c.LogLevel = strings.ToLower(val)
		default:
			return fmt.Errorf("invalid log_level: %s (use debug|info|warn|error)", val)
		}
	case "max_upload_mb":
		err = setInt(&c.MaxUploadMB, 1)
	case "preview_rows":
		err = setInt(&c.PreviewRows, 0)
	case "rate_limit_rps":
		f, perr := strconv.ParseFloat(val, 64)
		if perr != nil || f < 0 {
			return fmt.Errorf("invalid rate for rate_limit_rps: %v", val)
		}
		c.RateLimitRPS = f
	case "rate_limit_burst":
		err = setInt(&c.RateLimitBurst, 1)
	case "max_concurrent_analyses":
		err = setInt(&c.MaxConcurrentAnalyses, 0)
	case "category_threshold":
		err = setInt(&c.CategoryThreshold, 1)
	case "max_rows":
		err = setInt(&c.MaxRows, 0)
	case "csv_encoding":
		switch strings.ToLower(val) {
		case "latin1", "iso-8859-1", "utf-8", "utf8", "windows-1252", "cp1252":
			c.CSVEncoding = strings.ToLower(val)
		default:
			return fmt.Errorf("invalid csv_encoding: %s (use latin1|utf-8|windows-1252)", val)
		}
	case "csv_delimiter":
		if _, err := parseDelimiter(val); err != nil {
			return err
		}
		c.CSVDelimiter = val
	case "charts_enabled":
		b, perr := strconv.ParseBool(val)
		if perr != nil {
			return fmt.Errorf("invalid bool for charts_enabled: %v", val)
		}
		c.ChartsEnabled = b
	case "chart_width_in":
		err = setInches(&c.ChartWidthIn)
	case "chart_height_in":
		err = setInches(&c.ChartHeightIn)
	case "heatmap_height_in":
		err = setInches(&c.HeatmapHeightIn)
	case "sentiment_provider":
		switch strings.ToLower(val) {
		case "lexicon":
			c.SentimentProvider = "lexicon"
		case "ollama", "local":
			c.SentimentProvider = "ollama"
		default:
			return fmt.Errorf("invalid sentiment_provider: %s (use lexicon or ollama)", val)
		}
	case "sentiment_model":
		c.SentimentModel = val
	case "ollama_host":
		c.OllamaHost = val
	case "breaker_open_sec":
		err = setInt(&c.BreakerOpenSec, 1)
	case "http_timeout_sec":
		err = setInt(&c.HTTPTimeoutSec, 1)
	case "retry_max_attempts":
		err = setInt(&c.RetryMaxAttempts, 1)
	case "retry_base_delay_ms":
		err = setInt(&c.RetryBaseDelayMs, 0)
	case "retry_max_delay_ms":
		err = setInt(&c.RetryMaxDelayMs, 0)
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return err
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
