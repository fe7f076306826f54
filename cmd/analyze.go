package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/autoinsight/internal/charts"
	"github.com/KaramelBytes/autoinsight/internal/insight"
	"github.com/KaramelBytes/autoinsight/internal/table"
	"github.com/KaramelBytes/autoinsight/internal/utils"
	"github.com/spf13/cobra"
)

var (
	anaFormat      string
	anaOutputPath  string
	anaChartsDir   string
	anaSheetName   string
	anaSheetIndex  int
	anaMaxRows     int
	anaThreshold   int
	anaEncoding    string
	anaDelimiter   string
	anaPreviewRows int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Profile a CSV/XLSX file",
}

var analyzeCategoricalCmd = &cobra.Command{
	Use:   "categorical <file>",
	Short: "Frequencies, missing values and majority/rare categories",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalyze(cmd, insight.KindCategorical, args[0])
	},
}

var analyzeNumericalCmd = &cobra.Command{
	Use:   "numerical <file>",
	Short: "Descriptive statistics, correlations and outliers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalyze(cmd, insight.KindNumerical, args[0])
	},
}

// analysisOptions applies analyze flags on top of the loaded config.
func analysisOptions(cmd *cobra.Command) (insight.Options, error) {
	opt, err := insightOptions(currentConfig())
	if err != nil {
		return opt, err
	}
	f := cmd.Flags()
	if f.Changed("max-rows") {
		if anaMaxRows < 0 {
			return opt, fmt.Errorf("--max-rows must be >= 0")
		}
		opt.Table.MaxRows = anaMaxRows
	}
	if f.Changed("threshold") {
		if anaThreshold < 1 {
			return opt, fmt.Errorf("--threshold must be >= 1")
		}
		opt.Analysis.CategoryThreshold = anaThreshold
	}
	if f.Changed("encoding") {
		opt.Table.Encoding = anaEncoding
	}
	if f.Changed("delimiter") {
		d, err := parseDelimiter(anaDelimiter)
		if err != nil {
			return opt, err
		}
		opt.Table.Delimiter = d
	}
	if f.Changed("preview-rows") && anaPreviewRows >= 0 {
		opt.PreviewRows = anaPreviewRows
	}
	opt.Table.SheetName = anaSheetName
	opt.Table.SheetIndex = anaSheetIndex
	// Charts are only drawn when something will consume them.
	opt.ChartsEnabled = anaChartsDir != "" || (anaFormat == "json" && opt.ChartsEnabled)
	return opt, nil
}

func runAnalyze(cmd *cobra.Command, kind, path string) error {
	format := strings.ToLower(strings.TrimSpace(anaFormat))
	switch format {
	case "markdown", "md", "json", "table":
	default:
		return fmt.Errorf("unsupported --format: %s (use markdown|json|table)", anaFormat)
	}
	opt, err := analysisOptions(cmd)
	if err != nil {
		return err
	}
	svc := insight.New(opt, newCLILogger(), nil)

	out, cs, warnings, err := analyzeFile(cmdContext(cmd), svc, kind, path, format)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "⚠ Warning: %s\n", w)
	}
	if anaChartsDir != "" {
		n, err := writeCharts(anaChartsDir, cs)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "✓ Wrote %d charts to %s\n", n, anaChartsDir)
	}
	if anaOutputPath != "" {
		if err := utils.SafeWriteFile(anaOutputPath, []byte(out)); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote analysis to %s\n", anaOutputPath)
		return nil
	}
	_, err = io.WriteString(cmd.OutOrStdout(), out)
	return err
}

// analyzeFile runs one analysis and renders it in the requested format.
func analyzeFile(ctx context.Context, svc *insight.Service, kind, path, format string) (string, []charts.Chart, []string, error) {
	if !table.Supported(path) {
		return "", nil, nil, table.WrapError(table.ErrUnsupportedFileType, "read table",
			fmt.Errorf("%q: file must be CSV or XLSX", filepath.Base(path)))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, nil, fmt.Errorf("read file: %w", err)
	}
	req := insight.Request{Filename: path, Data: data}

	var (
		rep      any
		md       func() string
		tbl      func(io.Writer)
		cs       []charts.Chart
		warnings []string
	)
	switch kind {
	case insight.KindCategorical:
		r, err := svc.Categorical(ctx, req)
		if err != nil {
			return "", nil, nil, err
		}
		rep, md, cs, warnings = r, r.Markdown, r.Charts, r.Warnings
		tbl = func(w io.Writer) { renderCategoricalTable(w, r) }
	case insight.KindNumerical:
		r, err := svc.Numerical(ctx, req)
		if err != nil {
			return "", nil, nil, err
		}
		rep, md, cs, warnings = r, r.Markdown, r.Charts, r.Warnings
		tbl = func(w io.Writer) { renderNumericalTable(w, r) }
	default:
		return "", nil, nil, fmt.Errorf("unknown analysis kind: %s", kind)
	}

	switch format {
	case "json":
		b, err := utils.PrettyJSON(rep)
		if err != nil {
			return "", nil, nil, err
		}
		return string(b) + "\n", cs, warnings, nil
	case "table":
		var b strings.Builder
		tbl(&b)
		return b.String(), cs, warnings, nil
	default:
		return md(), cs, warnings, nil
	}
}

func writeCharts(dir string, cs []charts.Chart) (int, error) {
	if err := utils.EnsureDir(dir); err != nil {
		return 0, fmt.Errorf("create charts dir: %w", err)
	}
	for _, c := range cs {
		path := filepath.Join(dir, utils.SanitizeFilename(c.Name)+".png")
		if err := utils.SafeWriteFile(path, c.PNG); err != nil {
			return 0, fmt.Errorf("write chart %s: %w", c.Name, err)
		}
	}
	return len(cs), nil
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.AddCommand(analyzeCategoricalCmd)
	analyzeCmd.AddCommand(analyzeNumericalCmd)

	f := analyzeCmd.PersistentFlags()
	f.StringVarP(&anaFormat, "format", "f", "markdown", "output format: markdown | json | table")
	f.StringVarP(&anaOutputPath, "output", "o", "", "optional path to write the analysis")
	f.StringVar(&anaChartsDir, "charts-dir", "", "directory to write chart PNGs")
	f.StringVar(&anaSheetName, "sheet-name", "", "XLSX: sheet name to analyze")
	f.IntVar(&anaSheetIndex, "sheet-index", 0, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
	f.IntVar(&anaMaxRows, "max-rows", 0, "reject inputs with more rows (0 = unlimited; default from config)")
	f.IntVar(&anaThreshold, "threshold", 0, "distinct-value count below which a column is categorical (default from config)")
	f.StringVar(&anaEncoding, "encoding", "", "CSV text encoding: latin1 | utf-8 | windows-1252 (default from config)")
	f.StringVar(&anaDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' | 'pipe' (default from config)")
	f.IntVar(&anaPreviewRows, "preview-rows", 5, "number of leading rows to include")
}
