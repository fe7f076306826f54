package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/KaramelBytes/autoinsight/internal/table"
)

// Describe holds the descriptive statistics of one numeric column.
// Quartiles interpolate linearly between closest ranks.
type Describe struct {
	Count  int   `json:"count"`
	Mean   Float `json:"mean"`
	Std    Float `json:"std"`
	Min    Float `json:"min"`
	Q1     Float `json:"25%"`
	Median Float `json:"50%"`
	Q3     Float `json:"75%"`
	Max    Float `json:"max"`
}

// NumericalColumn is the profile of one numeric column.
type NumericalColumn struct {
	Name     string
	Stats    Describe
	Outliers int
	Missing  int
	// Values are the non-null cells in row order.
	Values []float64
}

// CorrMatrix holds a symmetric Pearson correlation matrix across numeric columns.
type CorrMatrix struct {
	Columns []string
	Values  [][]Float // row-major, Values[i][j]
}

// PairCorr is a simple correlation pair summary.
type PairCorr struct {
	A, B string
	R    float64
}

// NumericalAnalysis is the numerical profile of a table.
type NumericalAnalysis struct {
	Rows    int
	Columns []NumericalColumn
	Corr    CorrMatrix
}

// AnalyzeNumerical profiles the named columns. Unknown or non-numeric names
// are skipped.
func AnalyzeNumerical(t *table.Table, names []string) *NumericalAnalysis {
	a := &NumericalAnalysis{Rows: t.Rows}
	var cols []*table.Column
	for _, name := range names {
		col := t.Column(name)
		if col == nil || !col.Kind.Numeric() {
			continue
		}
		cols = append(cols, col)
		vals := col.Floats()
		a.Columns = append(a.Columns, NumericalColumn{
			Name:     col.Name,
			Stats:    describe(vals),
			Outliers: tukeyOutliers(vals),
			Missing:  col.NullCount(),
			Values:   vals,
		})
	}
	a.Corr = correlate(cols)
	return a
}

func describe(vals []float64) Describe {
	d := Describe{Count: len(vals)}
	if len(vals) == 0 {
		d.Mean, d.Std, d.Min, d.Q1, d.Median, d.Q3, d.Max = NaN(), NaN(), NaN(), NaN(), NaN(), NaN(), NaN()
		return d
	}
	sorted := sortedCopy(vals)
	d.Mean = Float(stat.Mean(vals, nil))
	d.Std = NaN()
	if len(vals) > 1 {
		d.Std = Float(stat.StdDev(vals, nil))
	}
	d.Min = Float(sorted[0])
	d.Q1 = Float(quantile(sorted, 0.25))
	d.Median = Float(quantile(sorted, 0.5))
	d.Q3 = Float(quantile(sorted, 0.75))
	d.Max = Float(sorted[len(sorted)-1])
	return d
}

// tukeyOutliers counts values outside [Q1-1.5*IQR, Q3+1.5*IQR].
func tukeyOutliers(vals []float64) int {
	if len(vals) == 0 {
		return 0
	}
	lo, hi := Fences(sortedCopy(vals))
	n := 0
	for _, v := range vals {
		if v < lo || v > hi {
			n++
		}
	}
	return n
}

// Fences returns the Tukey bounds of an ascending slice.
func Fences(sorted []float64) (lo, hi float64) {
	q1 := quantile(sorted, 0.25)
	q3 := quantile(sorted, 0.75)
	iqr := q3 - q1
	return q1 - 1.5*iqr, q3 + 1.5*iqr
}

// correlate computes pairwise Pearson coefficients over rows where both
// cells are present. Pairs with fewer than two rows or zero variance are NaN.
func correlate(cols []*table.Column) CorrMatrix {
	n := len(cols)
	m := CorrMatrix{Columns: make([]string, n), Values: make([][]Float, n)}
	for i, c := range cols {
		m.Columns[i] = c.Name
		m.Values[i] = make([]Float, n)
	}
	for i := 0; i < n; i++ {
		vals := cols[i].Floats()
		if len(vals) >= 2 && stat.Variance(vals, nil) > 0 {
			m.Values[i][i] = 1
		} else {
			m.Values[i][i] = NaN()
		}
		for j := i + 1; j < n; j++ {
			r := pearson(cols[i], cols[j])
			m.Values[i][j] = r
			m.Values[j][i] = r
		}
	}
	return m
}

func pearson(a, b *table.Column) Float {
	xs := make([]float64, 0, len(a.Values))
	ys := make([]float64, 0, len(a.Values))
	for k := range a.Values {
		x, okx := a.Values[k].Float()
		y, oky := b.Values[k].Float()
		if okx && oky {
			xs = append(xs, x)
			ys = append(ys, y)
		}
	}
	if len(xs) < 2 {
		return NaN()
	}
	if stat.Variance(xs, nil) == 0 || stat.Variance(ys, nil) == 0 {
		return NaN()
	}
	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return NaN()
	}
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	return Float(r)
}

// Strongest returns the off-diagonal pair with the largest |r|. Ties keep
// the first pair in row-major order; NaN entries are skipped.
func (m CorrMatrix) Strongest() (PairCorr, bool) {
	var best PairCorr
	found := false
	for i := range m.Values {
		for j := range m.Values[i] {
			if i == j || !m.Values[i][j].Valid() {
				continue
			}
			r := float64(m.Values[i][j])
			if !found || math.Abs(r) > math.Abs(best.R) {
				best = PairCorr{A: m.Columns[i], B: m.Columns[j], R: r}
				found = true
			}
		}
	}
	return best, found
}

// TotalMissing sums null cells across the analyzed columns.
func (a *NumericalAnalysis) TotalMissing() int {
	n := 0
	for _, c := range a.Columns {
		n += c.Missing
	}
	return n
}

// AnyOutliers reports whether any column has a Tukey outlier.
func (a *NumericalAnalysis) AnyOutliers() bool {
	for _, c := range a.Columns {
		if c.Outliers > 0 {
			return true
		}
	}
	return false
}

// Names lists the analyzed columns.
func (a *NumericalAnalysis) Names() []string {
	out := make([]string, len(a.Columns))
	for i, c := range a.Columns {
		out[i] = c.Name
	}
	return out
}

func sortedCopy(vals []float64) []float64 {
	cp := make([]float64, len(vals))
	copy(cp, vals)
	sort.Float64s(cp)
	return cp
}
