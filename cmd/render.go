package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/KaramelBytes/autoinsight/internal/analysis"
	"github.com/KaramelBytes/autoinsight/internal/insight"
	"github.com/KaramelBytes/autoinsight/internal/observability/logging"
)

const maxTableValues = 10

func renderCategoricalTable(w io.Writer, r *insight.CategoricalReport) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Column", "Value", "Count", "Missing"})
	for _, c := range r.Result.Columns {
		if len(c.Counts) == 0 {
			t.AppendRow(table.Row{c.Name, "(none)", 0, c.Missing})
		}
		for i, cc := range c.Counts {
			if i == maxTableValues {
				t.AppendRow(table.Row{c.Name, fmt.Sprintf("… %d more", len(c.Counts)-maxTableValues), "", ""})
				break
			}
			missing := any("")
			if i == 0 {
				missing = c.Missing
			}
			t.AppendRow(table.Row{c.Name, cc.Value, cc.Count, missing})
		}
		t.AppendSeparator()
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, AutoMerge: true},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	t.Render()
	writeSummary(w, r.Rows, r.SummarySentences)
}

func renderNumericalTable(w io.Writer, r *insight.NumericalReport) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Column", "Count", "Mean", "Std", "Min", "25%", "50%", "75%", "Max", "Outliers", "Missing"})
	for _, c := range r.Result.Columns {
		s := c.Stats
		t.AppendRow(table.Row{
			c.Name, s.Count,
			formatFloat(s.Mean), formatFloat(s.Std), formatFloat(s.Min),
			formatFloat(s.Q1), formatFloat(s.Median), formatFloat(s.Q3), formatFloat(s.Max),
			c.Outliers, c.Missing,
		})
	}
	t.Render()

	m := r.Result.Corr
	if len(m.Columns) >= 2 {
		ct := table.NewWriter()
		ct.SetOutputMirror(w)
		ct.SetStyle(table.StyleLight)
		ct.SetTitle("Correlation matrix")
		header := table.Row{""}
		for _, name := range m.Columns {
			header = append(header, name)
		}
		ct.AppendHeader(header)
		for i, name := range m.Columns {
			row := table.Row{name}
			for j := range m.Columns {
				row = append(row, formatFloat(m.Values[i][j]))
			}
			ct.AppendRow(row)
		}
		ct.Render()
	}
	writeSummary(w, r.Rows, r.SummarySentences)
}

func writeSummary(w io.Writer, rows int, sentences []string) {
	_, _ = fmt.Fprintf(w, "(%d rows)\n\n", rows)
	for _, s := range sentences {
		_, _ = fmt.Fprintln(w, s)
	}
}

func formatFloat(f analysis.Float) string {
	if !f.Valid() {
		return "NaN"
	}
	return fmt.Sprintf("%.4g", float64(f))
}

// newCLILogger keeps pipeline logs quiet unless --debug is set.
func newCLILogger() *slog.Logger {
	level := "error"
	if debug {
		level = "debug"
	}
	return logging.New(os.Stderr, "autoinsight-cli", level)
}
