// Package server exposes the profiling and sentiment endpoints over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/KaramelBytes/autoinsight/internal/insight"
	"github.com/KaramelBytes/autoinsight/internal/observability/metrics"
	"github.com/KaramelBytes/autoinsight/internal/sentiment"
)

const serviceName = "autoinsight"

// Config wires the server's collaborators.
type Config struct {
	Insight   *insight.Service
	Sentiment *sentiment.Analyzer
	Metrics   *metrics.Metrics
	Logger    *slog.Logger
	// MaxUploadBytes bounds request bodies; 0 means 32 MiB.
	MaxUploadBytes int64
	// RateLimitRPS limits analysis and prediction requests; 0 disables it.
	RateLimitRPS   float64
	RateLimitBurst int
	// MaxConcurrentAnalyses caps in-flight analyses; 0 means unlimited.
	MaxConcurrentAnalyses int
	// QueueWait is how long an analysis may wait for a slot; 0 means 2s.
	QueueWait time.Duration
}

// Server routes requests to the analysis and sentiment services.
type Server struct {
	insight   *insight.Service
	sentiment *sentiment.Analyzer
	metrics   *metrics.Metrics
	log       *slog.Logger
	maxUpload int64
	limiter   *rate.Limiter
	maxActive int
	queueWait time.Duration
}

func New(cfg Config) *Server {
	s := &Server{
		insight:   cfg.Insight,
		sentiment: cfg.Sentiment,
		metrics:   cfg.Metrics,
		log:       cfg.Logger,
		maxUpload: cfg.MaxUploadBytes,
		maxActive: cfg.MaxConcurrentAnalyses,
		queueWait: cfg.QueueWait,
	}
	if cfg.RateLimitRPS > 0 {
		burst := cfg.RateLimitBurst
		if burst <= 0 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), burst)
	}
	if s.queueWait <= 0 {
		s.queueWait = 2 * time.Second
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	if s.maxUpload <= 0 {
		s.maxUpload = 32 << 20
	}
	if s.metrics == nil {
		s.metrics = metrics.New(serviceName)
	}
	if s.insight == nil {
		s.insight = insight.New(insight.DefaultOptions(), s.log, s.metrics)
	}
	if s.sentiment == nil {
		s.sentiment = sentiment.New(nil)
	}
	return s
}

// Handler builds the chi router with the middleware chain.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(
		requestIDMiddleware,
		s.accessLogMiddleware,
		corsMiddleware,
		middleware.Recoverer,
		s.metrics.Middleware(serviceName),
	)

	r.Get("/", s.landing)
	r.Get("/healthz", s.healthz)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Group(func(r chi.Router) {
		if s.limiter != nil {
			r.Use(rateLimitMiddleware(s.limiter))
		}
		r.Group(func(r chi.Router) {
			if s.maxActive > 0 {
				r.Use(concurrencyMiddleware(s.maxActive, s.queueWait))
			}
			r.Post("/analyze", s.analyzeCategorical)
			r.Post("/analyzes", s.analyzeNumerical)
			r.Post("/v1/analyze/categorical", s.analyzeCategorical)
			r.Post("/v1/analyze/numerical", s.analyzeNumerical)
		})
		r.Post("/predict", s.predict)
		r.Post("/predictes", s.predictCustom)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	return r
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.serve(ctx, ln)
}

func (s *Server) serve(ctx context.Context, ln net.Listener) error {
	eg, egctx := errgroup.WithContext(ctx)
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
	}

	eg.Go(func() error {
		s.log.Info("http_server_started", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.log.Info("http_server_stopping")
		return srv.Shutdown(shutdownCtx)
	})
	return eg.Wait()
}
