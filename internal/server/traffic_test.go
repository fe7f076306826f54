package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/KaramelBytes/autoinsight/internal/sentiment"
	"github.com/KaramelBytes/autoinsight/internal/table"
)

func TestRateLimitReturns429(t *testing.T) {
	s := New(Config{
		Sentiment:      sentiment.New(fixedScorer{score: 0.5}),
		RateLimitRPS:   1,
		RateLimitBurst: 1,
	})
	h := s.Handler()

	if res := postJSON(h, "/predict", `{"text":"good"}`); res.Code != http.StatusOK {
		t.Fatalf("first request expected 200, got %d", res.Code)
	}
	res := postJSON(h, "/predict", `{"text":"good"}`)
	if res.Code != http.StatusTooManyRequests {
		t.Fatalf("second request expected 429, got %d", res.Code)
	}
	if res.Header().Get("Retry-After") == "" {
		t.Fatalf("expected Retry-After header for 429 response")
	}

	// health checks bypass the limiter
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	hres := httptest.NewRecorder()
	h.ServeHTTP(hres, req)
	if hres.Code != http.StatusOK {
		t.Fatalf("healthz expected 200, got %d", hres.Code)
	}
}

func TestConcurrencyLimitReturns503WhenSaturated(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan int, 1)

	base := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started <- struct{}{}
		<-release
		w.WriteHeader(http.StatusNoContent)
	})
	handler := concurrencyMiddleware(1, 20*time.Millisecond)(base)

	go func() {
		req := httptest.NewRequest(http.MethodPost, "/analyze", nil)
		res := httptest.NewRecorder()
		handler.ServeHTTP(res, req)
		done <- res.Code
	}()
	<-started

	req := httptest.NewRequest(http.MethodPost, "/analyze", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)
	if res.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 for saturated gate, got %d", res.Code)
	}
	if res.Header().Get("Retry-After") != "1" {
		t.Fatalf("Retry-After = %q", res.Header().Get("Retry-After"))
	}
	var body map[string]any
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil || body["error"] == "" {
		t.Fatalf("expected overload error body, got %v (%v)", body, err)
	}

	close(release)
	select {
	case code := <-done:
		if code != http.StatusNoContent {
			t.Fatalf("first request expected 204, got %d", code)
		}
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for first request")
	}
}

func TestConcurrencyLimitReleasesSlots(t *testing.T) {
	handler := concurrencyMiddleware(1, 10*time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	for i := 0; i < 3; i++ {
		res := httptest.NewRecorder()
		handler.ServeHTTP(res, httptest.NewRequest(http.MethodPost, "/analyze", nil))
		if res.Code != http.StatusNoContent {
			t.Fatalf("request %d: status %d", i, res.Code)
		}
	}
}

func TestPredictOpenCircuitReturns503(t *testing.T) {
	next := fixedScorer{err: errors.New("connection refused")}
	b := sentiment.NewBreakerScorer(next, sentiment.BreakerOptions{MinRequests: 1, FailureRatio: 0.5, OpenTimeout: time.Minute}, nil)
	h := newTestServer(b, 0).Handler()

	if res := postJSON(h, "/predict", `{"text":"hi"}`); res.Code != http.StatusBadGateway {
		t.Fatalf("first failure expected 502, got %d", res.Code)
	}
	res := postJSON(h, "/predict", `{"text":"hi"}`)
	if res.Code != http.StatusServiceUnavailable || res.Header().Get("Retry-After") == "" {
		t.Fatalf("open circuit expected 503 with Retry-After, got %d", res.Code)
	}
}

func TestMapErrorToHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{table.WrapError(table.ErrParseFailure, "read csv", errors.New("unsupported csv encoding: ebcdic")), http.StatusBadRequest},
		{table.WrapError(table.ErrUnsupportedFileType, "read table", errors.New("x.txt")), http.StatusBadRequest},
		{errMissingFile, http.StatusBadRequest},
		{&http.MaxBytesError{Limit: 10}, http.StatusRequestEntityTooLarge},
		{fmt.Errorf("categorical: %w", context.Canceled), statusClientClosedRequest},
		{fmt.Errorf("numerical: %w", context.DeadlineExceeded), http.StatusGatewayTimeout},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := mapErrorToHTTPStatus(tt.err); got != tt.want {
			t.Errorf("mapErrorToHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
