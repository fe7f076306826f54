package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/KaramelBytes/autoinsight/internal/insight"
	"github.com/KaramelBytes/autoinsight/internal/utils"
	"github.com/spf13/cobra"
)

var (
	abOutDir string
	abQuiet  bool
)

var analyzeBatchCmd = &cobra.Command{
	Use:   "batch <categorical|numerical> <files...>",
	Short: "Analyze multiple CSV/XLSX files with progress output",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := strings.ToLower(args[0])
		if kind != insight.KindCategorical && kind != insight.KindNumerical {
			return fmt.Errorf("unknown analysis kind: %s (use categorical or numerical)", args[0])
		}
		files := expandInputs(args[1:])
		if len(files) == 0 {
			return fmt.Errorf("no input files matched")
		}
		format := strings.ToLower(strings.TrimSpace(anaFormat))
		ext, err := formatExt(format)
		if err != nil {
			return err
		}
		if abOutDir == "" && anaChartsDir != "" {
			return fmt.Errorf("--charts-dir requires --out-dir in batch mode")
		}
		opt, err := analysisOptions(cmd)
		if err != nil {
			return err
		}
		svc := insight.New(opt, newCLILogger(), nil)

		used := map[string]int{}
		total := len(files)
		for i, path := range files {
			if !abQuiet {
				fmt.Fprintf(cmd.ErrOrStderr(), "[%d/%d] Processing %s...\n", i+1, total, filepath.Base(path))
			}
			out, cs, warnings, err := analyzeFile(cmdContext(cmd), svc, kind, path, format)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			for _, w := range warnings {
				fmt.Fprintf(cmd.ErrOrStderr(), "⚠ Warning: %s: %s\n", filepath.Base(path), w)
			}
			if abOutDir == "" {
				fmt.Fprintf(cmd.OutOrStdout(), "==> %s <==\n%s\n", path, out)
				continue
			}
			base := uniqueBase(used, path)
			outFile := filepath.Join(abOutDir, base+"."+kind+ext)
			if err := utils.SafeWriteFile(outFile, []byte(out)); err != nil {
				return fmt.Errorf("write summary: %w", err)
			}
			if anaChartsDir != "" {
				if _, err := writeCharts(filepath.Join(anaChartsDir, base), cs); err != nil {
					return err
				}
			}
			if !abQuiet {
				fmt.Fprintf(cmd.ErrOrStderr(), "✓ Wrote %s\n", outFile)
			}
		}
		return nil
	},
}

// expandInputs resolves globs, keeps literal paths that exist, de-duplicates
// and sorts.
func expandInputs(args []string) []string {
	var files []string
	seen := map[string]struct{}{}
	for _, arg := range args {
		matches, _ := filepath.Glob(arg)
		if len(matches) == 0 {
			if _, err := os.Stat(arg); err == nil {
				matches = []string{arg}
			}
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}
	sort.Strings(files)
	return files
}

// uniqueBase strips the extension and suffixes repeated names with __2, __3, ...
func uniqueBase(used map[string]int, path string) string {
	base := filepath.Base(path)
	safe := utils.SanitizeFilename(strings.TrimSuffix(base, filepath.Ext(base)))
	used[safe]++
	if n := used[safe]; n > 1 {
		return fmt.Sprintf("%s__%d", safe, n)
	}
	return safe
}

func formatExt(format string) (string, error) {
	switch format {
	case "markdown", "md":
		return ".md", nil
	case "json":
		return ".json", nil
	case "table":
		return ".txt", nil
	default:
		return "", fmt.Errorf("unsupported --format: %s (use markdown|json|table)", format)
	}
}

func init() {
	analyzeCmd.AddCommand(analyzeBatchCmd)
	analyzeBatchCmd.Flags().StringVar(&abOutDir, "out-dir", "", "directory to write one summary per input (default: stdout)")
	analyzeBatchCmd.Flags().BoolVar(&abQuiet, "quiet", false, "suppress progress output")
}
