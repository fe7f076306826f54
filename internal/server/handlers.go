package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/KaramelBytes/autoinsight/internal/insight"
	"github.com/KaramelBytes/autoinsight/internal/sentiment"
)

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) landing(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, landingPage)
}

func (s *Server) analyzeCategorical(w http.ResponseWriter, r *http.Request) {
	req, ok := s.readUpload(w, r)
	if !ok {
		return
	}
	rep, err := s.insight.Categorical(r.Context(), req)
	if err != nil {
		writeError(w, mapErrorToHTTPStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) analyzeNumerical(w http.ResponseWriter, r *http.Request) {
	req, ok := s.readUpload(w, r)
	if !ok {
		return
	}
	rep, err := s.insight.Numerical(r.Context(), req)
	if err != nil {
		writeError(w, mapErrorToHTTPStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// readUpload extracts the multipart "file" field and the optional sheet
// selectors. It writes the error response itself and reports false on failure.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (insight.Request, bool) {
	var req insight.Request
	if v := strings.TrimSpace(r.URL.Query().Get("sheet_index")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "sheet_index must be a positive integer")
			return req, false
		}
		req.SheetIndex = n
	}
	req.Sheet = strings.TrimSpace(r.URL.Query().Get("sheet"))

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		s.uploadError(w, err)
		return req, false
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		s.uploadError(w, err)
		return req, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.uploadError(w, err)
		return req, false
	}
	req.Filename = header.Filename
	req.Data = data
	return req, true
}

func (s *Server) uploadError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("upload exceeds %d bytes", tooLarge.Limit))
		return
	}
	writeError(w, mapErrorToHTTPStatus(errMissingFile), errMissingFile.Error())
}

type predictRequest struct {
	Text string `json:"text"`
}

func (s *Server) predict(w http.ResponseWriter, r *http.Request) {
	s.handlePredict(w, r, "predict", s.sentiment.Predict)
}

func (s *Server) predictCustom(w http.ResponseWriter, r *http.Request) {
	s.handlePredict(w, r, "predictes", s.sentiment.PredictCustom)
}

type predictFunc func(ctx context.Context, text string) (sentiment.Result, error)

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request, endpoint string, fn predictFunc) {
	var req predictRequest
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	res, err := fn(r.Context(), req.Text)
	if err != nil {
		s.metrics.RecordSentiment(endpoint, "")
		s.log.Warn("sentiment_failed", "endpoint", endpoint, "request_id", requestIDFromContext(r.Context()), "error", err.Error())
		if sentiment.IsCircuitOpen(err) {
			writeRetryAfter(w, time.Second)
			writeError(w, http.StatusServiceUnavailable, "sentiment backend unavailable: "+err.Error())
			return
		}
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	s.metrics.RecordSentiment(endpoint, res.Sentiment)
	writeJSON(w, http.StatusOK, res)
}
