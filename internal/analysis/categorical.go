package analysis

import (
	"sort"

	"github.com/KaramelBytes/autoinsight/internal/table"
)

// CategoryCount is one row of a frequency table.
type CategoryCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// CategoricalColumn holds the frequency table of one column, sorted by count
// descending then value ascending.
type CategoricalColumn struct {
	Name    string
	Counts  []CategoryCount
	NonNull int
	Missing int
}

// CategoricalAnalysis is the categorical profile of a table.
type CategoricalAnalysis struct {
	Rows    int
	Columns []CategoricalColumn
}

// AnalyzeCategorical counts values of the named columns. Unknown names are
// skipped.
func AnalyzeCategorical(t *table.Table, names []string) *CategoricalAnalysis {
	a := &CategoricalAnalysis{Rows: t.Rows}
	for _, name := range names {
		col := t.Column(name)
		if col == nil {
			continue
		}
		a.Columns = append(a.Columns, countValues(col))
	}
	return a
}

func countValues(col *table.Column) CategoricalColumn {
	out := CategoricalColumn{Name: col.Name}
	counts := make(map[string]int)
	for _, v := range col.Values {
		if v.IsNull() {
			out.Missing++
			continue
		}
		out.NonNull++
		counts[col.Label(v)]++
	}
	tops := make([]CategoryCount, 0, len(counts))
	for k, v := range counts {
		tops = append(tops, CategoryCount{Value: k, Count: v})
	}
	sort.Slice(tops, func(i, j int) bool {
		if tops[i].Count == tops[j].Count {
			return tops[i].Value < tops[j].Value
		}
		return tops[i].Count > tops[j].Count
	})
	out.Counts = tops
	return out
}

// Majority returns the most frequent value; false for an empty distribution.
func (c CategoricalColumn) Majority() (CategoryCount, bool) {
	if len(c.Counts) == 0 {
		return CategoryCount{}, false
	}
	return c.Counts[0], true
}

// Rare lists values seen exactly once, in frequency-table order.
func (c CategoricalColumn) Rare() []string {
	var out []string
	for _, cc := range c.Counts {
		if cc.Count == 1 {
			out = append(out, cc.Value)
		}
	}
	return out
}

// TotalMissing sums null cells across the analyzed columns.
func (a *CategoricalAnalysis) TotalMissing() int {
	n := 0
	for _, c := range a.Columns {
		n += c.Missing
	}
	return n
}

// Names lists the analyzed columns.
func (a *CategoricalAnalysis) Names() []string {
	out := make([]string, len(a.Columns))
	for i, c := range a.Columns {
		out[i] = c.Name
	}
	return out
}
