package summary

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/KaramelBytes/autoinsight/internal/analysis"
)

// Sentence renders a single fact.
func Sentence(f Fact) string {
	switch f := f.(type) {
	case RowCount:
		return fmt.Sprintf("The dataset contains %d rows and %d %s columns.", f.Rows, f.Columns, f.Scope)
	case MajorityCategory:
		if len(f.Entries) == 0 {
			return "The dataset does not show clear dominant categories."
		}
		parts := make([]string, len(f.Entries))
		for i, m := range f.Entries {
			parts[i] = fmt.Sprintf("%s: %s (%d rows)", m.Column, m.Value, m.Count)
		}
		return "Most columns have clear majority categories such as: " + strings.Join(parts, ", ") + "."
	case RareCategories:
		if len(f.Entries) == 0 {
			return "No extremely rare categories were detected."
		}
		parts := make([]string, len(f.Entries))
		for i, r := range f.Entries {
			parts[i] = fmt.Sprintf("%s: [%s]", r.Column, strings.Join(r.Values, ", "))
		}
		return "Some columns contain rare categories occurring only once, such as: " + strings.Join(parts, ", ") + "."
	case ColumnMeans:
		parts := make([]string, len(f.Means))
		for i, m := range f.Means {
			parts[i] = m.Column + ": " + formatMean(m.Value)
		}
		return "Typical averages include: {" + strings.Join(parts, ", ") + "}."
	case TopCorrelation:
		return fmt.Sprintf("The strongest correlation is between %s and %s (correlation: %.2f).", f.A, f.B, f.R)
	case MissingCount:
		return missingSentence(f)
	case OutlierFlag:
		if f.Present {
			return "Some outliers were detected in the dataset."
		}
		return "No major outliers were found in the numerical columns."
	case Closing:
		if f.Scope == Numerical {
			return "Overall, the dataset is clean and suitable for analysis or ML tasks."
		}
		return "Overall, the dataset is clean and suitable for exploratory analysis or simple classification tasks."
	default:
		panic(fmt.Sprintf("summary: unknown fact %T", f))
	}
}

func missingSentence(f MissingCount) string {
	switch {
	case f.Scope == Numerical && f.Total == 0:
		return "All numerical columns are complete with no missing values."
	case f.Scope == Numerical:
		return fmt.Sprintf("There are %d missing values in the numerical columns.", f.Total)
	case f.Total == 0:
		return "There are no missing values in the categorical columns."
	default:
		return fmt.Sprintf("The dataset contains %d missing values across categorical columns.", f.Total)
	}
}

func formatMean(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "nan"
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// Render turns facts into sentences, preserving order.
func Render(facts []Fact) []string {
	out := make([]string, len(facts))
	for i, f := range facts {
		out[i] = Sentence(f)
	}
	return out
}

// Join concatenates sentences into a paragraph.
func Join(sentences []string) string { return strings.Join(sentences, " ") }

// ForCategorical summarizes a categorical analysis.
func ForCategorical(a *analysis.CategoricalAnalysis) []string {
	return Render(CategoricalFacts(a))
}

// ForNumerical summarizes a numerical analysis.
func ForNumerical(a *analysis.NumericalAnalysis) []string {
	return Render(NumericalFacts(a))
}
