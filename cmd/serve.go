package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	cfgpkg "github.com/KaramelBytes/autoinsight/internal/config"
	"github.com/KaramelBytes/autoinsight/internal/insight"
	"github.com/KaramelBytes/autoinsight/internal/observability/logging"
	"github.com/KaramelBytes/autoinsight/internal/observability/metrics"
	"github.com/KaramelBytes/autoinsight/internal/server"
	"github.com/spf13/cobra"
)

var (
	serveAddr      string
	serveProvider  string
	serveNoCharts  bool
	serveMaxUpload int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP analysis service",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := currentConfig()
		f := cmd.Flags()
		if f.Changed("addr") {
			c.Addr = serveAddr
		}
		if f.Changed("max-upload-mb") && serveMaxUpload > 0 {
			c.MaxUploadMB = serveMaxUpload
		}
		if serveNoCharts {
			c.ChartsEnabled = false
		}

		logger := logging.NewJSONLogger("autoinsight", c.LogLevel)
		slog.SetDefault(logger)

		opt, err := insightOptions(c)
		if err != nil {
			return err
		}
		analyzer, err := newSentimentAnalyzer(c, serveProvider)
		if err != nil {
			return err
		}
		m := metrics.New("autoinsight")
		srv := server.New(server.Config{
			Insight:               insight.New(opt, logger, m),
			Sentiment:             analyzer,
			Metrics:               m,
			Logger:                logger,
			MaxUploadBytes:        int64(c.MaxUploadMB) << 20,
			RateLimitRPS:          c.RateLimitRPS,
			RateLimitBurst:        c.RateLimitBurst,
			MaxConcurrentAnalyses: c.MaxConcurrentAnalyses,
		})

		ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
		defer stop()
		logger.Info("autoinsight_starting",
			"addr", c.Addr,
			"charts_enabled", opt.ChartsEnabled,
			"category_threshold", opt.Analysis.CategoryThreshold,
			"sentiment_provider", providerName(c, serveProvider),
			"rate_limit_rps", c.RateLimitRPS,
			"max_concurrent_analyses", c.MaxConcurrentAnalyses,
		)
		if err := srv.Serve(ctx, c.Addr); err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		logger.Info("autoinsight_stopped")
		return nil
	},
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func providerName(c *cfgpkg.Global, override string) string {
	if override != "" {
		return override
	}
	return c.SentimentProvider
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :8000)")
	serveCmd.Flags().StringVar(&serveProvider, "sentiment-provider", "", "sentiment scorer: lexicon | ollama (overrides config)")
	serveCmd.Flags().BoolVar(&serveNoCharts, "no-charts", false, "disable chart rendering")
	serveCmd.Flags().IntVar(&serveMaxUpload, "max-upload-mb", 0, "upload size limit in MiB (overrides config)")
}
