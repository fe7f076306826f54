package analysis

import (
	"github.com/KaramelBytes/autoinsight/internal/table"
)

// Options controls column classification.
type Options struct {
	// CategoryThreshold: columns with fewer distinct non-null values than
	// this are categorical regardless of type.
	CategoryThreshold int
}

// DefaultOptions returns the classification defaults.
func DefaultOptions() Options {
	return Options{CategoryThreshold: 20}
}

// Classification lists categorical and numerical column names in table order.
// A low-cardinality numeric column appears in both lists.
type Classification struct {
	Categorical []string
	Numerical   []string
}

// Classify tags every column of t.
func Classify(t *table.Table, opt Options) Classification {
	thr := opt.CategoryThreshold
	if thr <= 0 {
		thr = DefaultOptions().CategoryThreshold
	}
	var c Classification
	for _, col := range t.Columns {
		if isCategorical(col, thr) {
			c.Categorical = append(c.Categorical, col.Name)
		}
		if isNumerical(col) {
			c.Numerical = append(c.Numerical, col.Name)
		}
	}
	return c
}

func isCategorical(col *table.Column, threshold int) bool {
	switch col.Kind {
	case table.Text:
		return true
	case table.Null, table.Integer, table.Float:
		return col.Distinct() < threshold
	default:
		return false
	}
}

func isNumerical(col *table.Column) bool {
	switch col.Kind {
	case table.Integer, table.Float:
		return true
	case table.Null, table.Text:
		return false
	default:
		return false
	}
}

// RequireCategorical returns the categorical columns or ErrNoMatchingColumns.
func (c Classification) RequireCategorical() ([]string, error) {
	if len(c.Categorical) == 0 {
		return nil, noColumnsError("No categorical columns detected. Use numerical analyzer.")
	}
	return c.Categorical, nil
}

// RequireNumerical returns the numerical columns or ErrNoMatchingColumns.
func (c Classification) RequireNumerical() ([]string, error) {
	if len(c.Numerical) == 0 {
		return nil, noColumnsError("No numerical columns detected. Use categorical analyzer.")
	}
	return c.Numerical, nil
}
