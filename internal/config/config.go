package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Server
	Addr        string `mapstructure:"addr" yaml:"addr"`
	LogLevel    string `mapstructure:"log_level" yaml:"log_level"`
	MaxUploadMB int    `mapstructure:"max_upload_mb" yaml:"max_upload_mb"`
	PreviewRows int    `mapstructure:"preview_rows" yaml:"preview_rows"`

	// Traffic control; a zero rate disables the limiter
	RateLimitRPS          float64 `mapstructure:"rate_limit_rps" yaml:"rate_limit_rps"`
	RateLimitBurst        int     `mapstructure:"rate_limit_burst" yaml:"rate_limit_burst"`
	MaxConcurrentAnalyses int     `mapstructure:"max_concurrent_analyses" yaml:"max_concurrent_analyses"`

	// Ingestion and analysis
	CategoryThreshold int    `mapstructure:"category_threshold" yaml:"category_threshold"`
	MaxRows           int    `mapstructure:"max_rows" yaml:"max_rows"`
	CSVEncoding       string `mapstructure:"csv_encoding" yaml:"csv_encoding"`
	CSVDelimiter      string `mapstructure:"csv_delimiter" yaml:"csv_delimiter"`

	// Charts
	ChartsEnabled   bool    `mapstructure:"charts_enabled" yaml:"charts_enabled"`
	ChartWidthIn    float64 `mapstructure:"chart_width_in" yaml:"chart_width_in"`
	ChartHeightIn   float64 `mapstructure:"chart_height_in" yaml:"chart_height_in"`
	HeatmapHeightIn float64 `mapstructure:"heatmap_height_in" yaml:"heatmap_height_in"`

	// Sentiment
	SentimentProvider string `mapstructure:"sentiment_provider" yaml:"sentiment_provider"`
	SentimentModel    string `mapstructure:"sentiment_model" yaml:"sentiment_model"`
	OllamaHost        string `mapstructure:"ollama_host" yaml:"ollama_host"`
	BreakerOpenSec    int    `mapstructure:"breaker_open_sec" yaml:"breaker_open_sec"`

	// HTTP/Retry configuration
	HTTPTimeoutSec   int `mapstructure:"http_timeout_sec" yaml:"http_timeout_sec"`
	RetryMaxAttempts int `mapstructure:"retry_max_attempts" yaml:"retry_max_attempts"`
	RetryBaseDelayMs int `mapstructure:"retry_base_delay_ms" yaml:"retry_base_delay_ms"`
	RetryMaxDelayMs  int `mapstructure:"retry_max_delay_ms" yaml:"retry_max_delay_ms"`
}

// DefaultDir is ~/.autoinsight.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".autoinsight"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.autoinsight/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		dir, err := DefaultDir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("addr", ":8000")
	v.SetDefault("log_level", "info")
	v.SetDefault("max_upload_mb", 32)
	v.SetDefault("preview_rows", 5)
	v.SetDefault("rate_limit_rps", 0.0)
	v.SetDefault("rate_limit_burst", 10)
	v.SetDefault("max_concurrent_analyses", 8)
	v.SetDefault("category_threshold", 20)
	v.SetDefault("max_rows", 0)
	v.SetDefault("csv_encoding", "latin1")
	v.SetDefault("csv_delimiter", ",")
	v.SetDefault("charts_enabled", true)
	v.SetDefault("chart_width_in", 10.0)
	v.SetDefault("chart_height_in", 6.0)
	v.SetDefault("heatmap_height_in", 8.0)
	v.SetDefault("sentiment_provider", "lexicon")
	v.SetDefault("sentiment_model", "llama3.2")
	v.SetDefault("ollama_host", "http://127.0.0.1:11434")
	v.SetDefault("breaker_open_sec", 30)
	// HTTP/retry defaults
	v.SetDefault("http_timeout_sec", 60)
	v.SetDefault("retry_max_attempts", 3)
	v.SetDefault("retry_base_delay_ms", 500)
	v.SetDefault("retry_max_delay_ms", 4000)
}

// Defaults returns the built-in configuration without reading files or env.
func Defaults() *Global {
	v := viper.New()
	setDefaults(v)
	var c Global
	_ = v.Unmarshal(&c)
	return &c
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults; flags are applied by the caller.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("AUTOINSIGHT")
	v.AutomaticEnv()

	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
		case cfgFile != "" && errors.Is(err, fs.ErrNotExist):
			// config set creates it
		default:
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
