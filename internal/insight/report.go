package insight

import (
	"github.com/KaramelBytes/autoinsight/internal/analysis"
	"github.com/KaramelBytes/autoinsight/internal/charts"
	"github.com/KaramelBytes/autoinsight/internal/summary"
	"github.com/KaramelBytes/autoinsight/internal/table"
)

// CategoricalTypes lists the columns the categorical report covers.
type CategoricalTypes struct {
	Categorical []string `json:"categorical"`
}

// CategoricalStats is the per-column frequency table and missing counts.
type CategoricalStats struct {
	ValueCounts   map[string]map[string]int `json:"value_counts"`
	MissingValues map[string]int            `json:"missing_values"`
}

// CategoricalReport is the response of the categorical endpoint.
type CategoricalReport struct {
	Preview          []map[string]any  `json:"dataset_preview"`
	ColumnTypes      CategoricalTypes  `json:"column_types"`
	Analysis         CategoricalStats  `json:"analysis"`
	Plots            map[string]string `json:"plots"`
	Summary          string            `json:"summary"`
	SummarySentences []string          `json:"summary_sentences"`
	Warnings         []string          `json:"warnings"`

	Name   string                        `json:"-"`
	Rows   int                           `json:"-"`
	Result *analysis.CategoricalAnalysis `json:"-"`
	Charts []charts.Chart                `json:"-"`
	head   [][]string
	cols   []string
}

// NumericalTypes lists the columns the numerical report covers.
type NumericalTypes struct {
	Numerical []string `json:"numerical"`
}

// NumericalStats holds describe, missing counts, correlations and outliers.
type NumericalStats struct {
	SummaryStats      map[string]analysis.Describe         `json:"summary_stats"`
	MissingValues     map[string]int                       `json:"missing_values"`
	CorrelationMatrix map[string]map[string]analysis.Float `json:"correlation_matrix"`
	Outliers          map[string]int                       `json:"outliers"`
}

// NumericalReport is the response of the numerical endpoint.
type NumericalReport struct {
	Preview          []map[string]any  `json:"dataset_preview"`
	ColumnTypes      NumericalTypes    `json:"column_types"`
	Analysis         NumericalStats    `json:"analysis"`
	Plots            map[string]string `json:"plots"`
	Summary          string            `json:"summary"`
	SummarySentences []string          `json:"summary_sentences"`
	Warnings         []string          `json:"warnings"`

	Name   string                      `json:"-"`
	Rows   int                         `json:"-"`
	Result *analysis.NumericalAnalysis `json:"-"`
	Charts []charts.Chart              `json:"-"`
	head   [][]string
	cols   []string
}

func newCategoricalReport(t *table.Table, a *analysis.CategoricalAnalysis, previewRows int, sentences []string) *CategoricalReport {
	rep := &CategoricalReport{
		Preview:     preview(t, previewRows),
		ColumnTypes: CategoricalTypes{Categorical: a.Names()},
		Analysis: CategoricalStats{
			ValueCounts:   make(map[string]map[string]int, len(a.Columns)),
			MissingValues: make(map[string]int, len(a.Columns)),
		},
		Plots:            map[string]string{},
		Summary:          summary.Join(sentences),
		SummarySentences: nonNil(sentences),
		Warnings:         nonNil(t.Warnings),
		Name:             t.Name,
		Rows:             t.Rows,
		Result:           a,
		head:             headRows(t, previewRows),
		cols:             t.Names(),
	}
	for _, c := range a.Columns {
		counts := make(map[string]int, len(c.Counts))
		for _, cc := range c.Counts {
			counts[cc.Value] = cc.Count
		}
		rep.Analysis.ValueCounts[c.Name] = counts
		rep.Analysis.MissingValues[c.Name] = c.Missing
	}
	return rep
}

func newNumericalReport(t *table.Table, a *analysis.NumericalAnalysis, previewRows int, sentences []string) *NumericalReport {
	rep := &NumericalReport{
		Preview:     preview(t, previewRows),
		ColumnTypes: NumericalTypes{Numerical: a.Names()},
		Analysis: NumericalStats{
			SummaryStats:      make(map[string]analysis.Describe, len(a.Columns)),
			MissingValues:     make(map[string]int, len(a.Columns)),
			CorrelationMatrix: make(map[string]map[string]analysis.Float, len(a.Columns)),
			Outliers:          make(map[string]int, len(a.Columns)),
		},
		Plots:            map[string]string{},
		Summary:          summary.Join(sentences),
		SummarySentences: nonNil(sentences),
		Warnings:         nonNil(t.Warnings),
		Name:             t.Name,
		Rows:             t.Rows,
		Result:           a,
		head:             headRows(t, previewRows),
		cols:             t.Names(),
	}
	for _, c := range a.Columns {
		rep.Analysis.SummaryStats[c.Name] = c.Stats
		rep.Analysis.MissingValues[c.Name] = c.Missing
		rep.Analysis.Outliers[c.Name] = c.Outliers
	}
	for i, a1 := range a.Corr.Columns {
		row := make(map[string]analysis.Float, len(a.Corr.Columns))
		for j, a2 := range a.Corr.Columns {
			row[a2] = a.Corr.Values[i][j]
		}
		rep.Analysis.CorrelationMatrix[a1] = row
	}
	return rep
}

func (r *CategoricalReport) setCharts(cs []charts.Chart) {
	r.Charts = cs
	r.Plots = charts.Map(cs)
}

func (r *NumericalReport) setCharts(cs []charts.Chart) {
	r.Charts = cs
	r.Plots = charts.Map(cs)
}

func preview(t *table.Table, n int) []map[string]any {
	out := t.Preview(n)
	if out == nil {
		return []map[string]any{}
	}
	return out
}

func headRows(t *table.Table, n int) [][]string {
	if n > t.Rows {
		n = t.Rows
	}
	out := make([][]string, 0, max(n, 0))
	for i := 0; i < n; i++ {
		row := make([]string, len(t.Columns))
		for j, c := range t.Columns {
			row[j] = c.Values[i].String()
		}
		out = append(out, row)
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
