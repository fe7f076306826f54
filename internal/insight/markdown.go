package insight

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/KaramelBytes/autoinsight/internal/analysis"
	"github.com/KaramelBytes/autoinsight/internal/charts"
)

// Markdown renders a compact categorical report for terminals or docs.
func (r *CategoricalReport) Markdown() string {
	var b strings.Builder
	writeHeader(&b, r.Name, r.Rows, "categorical", len(r.ColumnTypes.Categorical))

	b.WriteString("[SCHEMA]\n")
	for _, c := range r.Result.Columns {
		fmt.Fprintf(&b, "- %s: categorical (non-null %d, missing %.1f%%)", safeName(c.Name), c.NonNull, missPct(c.NonNull, c.Missing))
		if len(c.Counts) > 0 {
			b.WriteString(" - top: ")
			for i, cc := range c.Counts {
				if i == 5 {
					break
				}
				if i > 0 {
					b.WriteString(", ")
				}
				fmt.Fprintf(&b, "%s(%d)", safeVal(cc.Value), cc.Count)
			}
			if len(c.Counts) > 5 {
				fmt.Fprintf(&b, "; unique=%d", len(c.Counts))
			}
		}
		b.WriteString("\n")
	}
	writeTail(&b, r.SummarySentences, r.cols, r.head, r.Warnings, chartNames(r.Charts))
	return b.String()
}

// Markdown renders a compact numerical report for terminals or docs.
func (r *NumericalReport) Markdown() string {
	var b strings.Builder
	writeHeader(&b, r.Name, r.Rows, "numerical", len(r.ColumnTypes.Numerical))

	b.WriteString("[SCHEMA]\n")
	for _, c := range r.Result.Columns {
		s := c.Stats
		fmt.Fprintf(&b, "- %s: numeric (non-null %d, missing %.1f%%)", safeName(c.Name), s.Count, missPct(s.Count, c.Missing))
		if s.Count > 0 {
			fmt.Fprintf(&b, " - min %s, q1 %s, median %s, q3 %s, max %s, mean %s, std %s",
				num(s.Min), num(s.Q1), num(s.Median), num(s.Q3), num(s.Max), num(s.Mean), num(s.Std))
		}
		fmt.Fprintf(&b, "; outliers: %d outside Tukey fences\n", c.Outliers)
	}

	m := r.Result.Corr
	if len(m.Columns) >= 2 {
		b.WriteString("\n[CORRELATIONS]\n")
		pairs := topPairs(m, 10)
		if len(pairs) == 0 {
			b.WriteString("- no finite correlations\n")
		}
		for _, p := range pairs {
			fmt.Fprintf(&b, "- %s ~ %s: r=%.3f\n", p.A, p.B, p.R)
		}
	}
	writeTail(&b, r.SummarySentences, r.cols, r.head, r.Warnings, chartNames(r.Charts))
	return b.String()
}

func writeHeader(b *strings.Builder, name string, rows int, kind string, cols int) {
	b.WriteString("[DATASET SUMMARY]\n")
	if name != "" {
		fmt.Fprintf(b, "File: %s\n", name)
	}
	fmt.Fprintf(b, "Rows: %d\n", rows)
	fmt.Fprintf(b, "Columns: %d %s\n\n", cols, kind)
}

func writeTail(b *strings.Builder, sentences, cols []string, head [][]string, warnings, plots []string) {
	if len(sentences) > 0 {
		b.WriteString("\n[SUMMARY]\n")
		for _, s := range sentences {
			fmt.Fprintf(b, "- %s\n", s)
		}
	}
	if len(head) > 0 {
		b.WriteString("\n[HEAD ROWS]\n| ")
		for i, c := range cols {
			if i > 0 {
				b.WriteString(" | ")
			}
			b.WriteString(safeName(c))
		}
		b.WriteString(" |\n| ")
		for i := range cols {
			if i > 0 {
				b.WriteString(" | ")
			}
			b.WriteString("---")
		}
		b.WriteString(" |\n")
		for _, row := range head {
			b.WriteString("| ")
			for i, val := range row {
				if i > 0 {
					b.WriteString(" | ")
				}
				if len(val) > 80 {
					val = val[:77] + "..."
				}
				b.WriteString(safeVal(val))
			}
			b.WriteString(" |\n")
		}
	}
	if len(plots) > 0 {
		b.WriteString("\n[CHARTS]\n")
		for _, p := range plots {
			fmt.Fprintf(b, "- %s\n", p)
		}
	}
	if len(warnings) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, w := range warnings {
			fmt.Fprintf(b, "- %s\n", w)
		}
	}
}

// topPairs lists off-diagonal pairs by descending |r|; NaN pairs are skipped.
func topPairs(m analysis.CorrMatrix, limit int) []analysis.PairCorr {
	var pairs []analysis.PairCorr
	n := len(m.Columns)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			v := m.Values[i][j]
			if !v.Valid() {
				continue
			}
			pairs = append(pairs, analysis.PairCorr{A: m.Columns[i], B: m.Columns[j], R: float64(v)})
		}
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		return math.Abs(pairs[i].R) > math.Abs(pairs[j].R)
	})
	if len(pairs) > limit {
		pairs = pairs[:limit]
	}
	return pairs
}

func chartNames(cs []charts.Chart) []string {
	names := make([]string, len(cs))
	for i, c := range cs {
		names[i] = c.Name
	}
	return names
}

func missPct(nonNull, missing int) float64 {
	total := nonNull + missing
	if total == 0 {
		return 0
	}
	return float64(missing) * 100.0 / float64(total)
}

func num(f analysis.Float) string {
	if !f.Valid() {
		return "n/a"
	}
	return fmt.Sprintf("%.4g", float64(f))
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return s
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
