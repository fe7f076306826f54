package insight

import (
	"context"
	"log/slog"
	"time"

	"github.com/KaramelBytes/autoinsight/internal/analysis"
	"github.com/KaramelBytes/autoinsight/internal/charts"
	"github.com/KaramelBytes/autoinsight/internal/summary"
	"github.com/KaramelBytes/autoinsight/internal/table"
)

// Analysis kinds, used as metric labels and in log lines.
const (
	KindCategorical = "categorical"
	KindNumerical   = "numerical"
)

// Options configures one analysis pipeline.
type Options struct {
	Table         table.Options
	Analysis      analysis.Options
	Charts        charts.Options
	ChartsEnabled bool
	// PreviewRows bounds dataset_preview.
	PreviewRows int
}

// DefaultOptions returns the pipeline defaults.
func DefaultOptions() Options {
	return Options{
		Table:         table.DefaultOptions(),
		Analysis:      analysis.DefaultOptions(),
		Charts:        charts.DefaultOptions(),
		ChartsEnabled: true,
		PreviewRows:   5,
	}
}

// Request is one uploaded file. Sheet and SheetIndex override the XLSX sheet
// selection from Options when set.
type Request struct {
	Filename   string
	Data       []byte
	Sheet      string
	SheetIndex int
}

// Recorder receives per-analysis outcomes.
type Recorder interface {
	RecordAnalysis(kind string, rows int, err error)
}

// Service runs the read → classify → analyze → summarize → chart pipeline.
// It holds no per-request state and is safe for concurrent use.
type Service struct {
	opt     Options
	log     *slog.Logger
	metrics Recorder
}

// New creates a service. A nil logger uses slog.Default.
func New(opt Options, log *slog.Logger, rec Recorder) *Service {
	if log == nil {
		log = slog.Default()
	}
	if opt.PreviewRows < 0 {
		opt.PreviewRows = 0
	}
	return &Service{opt: opt, log: log, metrics: rec}
}

// Options returns the configured options.
func (s *Service) Options() Options { return s.opt }

func (s *Service) read(req Request) (*table.Table, error) {
	opt := s.opt.Table
	if req.Sheet != "" {
		opt.SheetName = req.Sheet
	}
	if req.SheetIndex > 0 {
		opt.SheetIndex = req.SheetIndex
	}
	return table.Read(req.Filename, req.Data, opt)
}

// Categorical profiles the categorical columns of the uploaded table.
func (s *Service) Categorical(ctx context.Context, req Request) (rep *CategoricalReport, err error) {
	start := time.Now()
	rows := 0
	defer func() { s.finish(KindCategorical, req.Filename, rows, start, err) }()

	t, err := s.read(req)
	if err != nil {
		return nil, err
	}
	rows = t.Rows
	cols, err := analysis.Classify(t, s.opt.Analysis).RequireCategorical()
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	a := analysis.AnalyzeCategorical(t, cols)
	sentences := summary.ForCategorical(a)

	rep = newCategoricalReport(t, a, s.opt.PreviewRows, sentences)
	if s.opt.ChartsEnabled {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cs, err := charts.Categorical(a, s.opt.Charts)
		if err != nil {
			return nil, err
		}
		rep.setCharts(cs)
	}
	return rep, nil
}

// Numerical profiles the numerical columns of the uploaded table.
func (s *Service) Numerical(ctx context.Context, req Request) (rep *NumericalReport, err error) {
	start := time.Now()
	rows := 0
	defer func() { s.finish(KindNumerical, req.Filename, rows, start, err) }()

	t, err := s.read(req)
	if err != nil {
		return nil, err
	}
	rows = t.Rows
	cols, err := analysis.Classify(t, s.opt.Analysis).RequireNumerical()
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	a := analysis.AnalyzeNumerical(t, cols)
	sentences := summary.ForNumerical(a)

	rep = newNumericalReport(t, a, s.opt.PreviewRows, sentences)
	if s.opt.ChartsEnabled {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cs, err := charts.Numerical(a, s.opt.Charts)
		if err != nil {
			return nil, err
		}
		rep.setCharts(cs)
	}
	return rep, nil
}

func (s *Service) finish(kind, file string, rows int, start time.Time, err error) {
	if s.metrics != nil {
		s.metrics.RecordAnalysis(kind, rows, err)
	}
	attrs := []any{
		slog.String("kind", kind),
		slog.String("file", file),
		slog.Int("rows", rows),
		slog.Duration("duration", time.Since(start)),
	}
	if err != nil {
		s.log.Warn("analysis_failed", append(attrs, slog.String("error", err.Error()))...)
		return
	}
	s.log.Info("analysis_completed", attrs...)
}
