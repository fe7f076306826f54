// Package summary turns analysis results into typed facts and renders each
// fact as one English sentence.
package summary

import (
	"github.com/KaramelBytes/autoinsight/internal/analysis"
)

// Scope names the column family a summary describes.
type Scope string

const (
	Categorical Scope = "categorical"
	Numerical   Scope = "numerical"
)

// Fact is one salient observation about a dataset. The concrete types below
// are the only implementations.
type Fact interface {
	isFact()
}

type RowCount struct {
	Scope   Scope
	Rows    int
	Columns int
}

// Majority is the top value of one column.
type Majority struct {
	Column string
	Value  string
	Count  int
}

// MajorityCategory is empty when no column has a distribution.
type MajorityCategory struct {
	Entries []Majority
}

// Rare lists the values of one column that occur exactly once.
type Rare struct {
	Column string
	Values []string
}

type RareCategories struct {
	Entries []Rare
}

// Mean is the average of one column.
type Mean struct {
	Column string
	Value  float64
}

type ColumnMeans struct {
	Means []Mean
}

// TopCorrelation is the off-diagonal pair with the largest |r|; R is signed.
type TopCorrelation struct {
	A, B string
	R    float64
}

type MissingCount struct {
	Scope Scope
	Total int
}

type OutlierFlag struct {
	Present bool
}

type Closing struct {
	Scope Scope
}

func (RowCount) isFact()         {}
func (MajorityCategory) isFact() {}
func (RareCategories) isFact()   {}
func (ColumnMeans) isFact()      {}
func (TopCorrelation) isFact()   {}
func (MissingCount) isFact()     {}
func (OutlierFlag) isFact()      {}
func (Closing) isFact()          {}

// maxMeans bounds the averages quoted in a numerical summary.
const maxMeans = 3

// CategoricalFacts selects facts in sentence order: rows, majority, rare,
// missing, closing.
func CategoricalFacts(a *analysis.CategoricalAnalysis) []Fact {
	var maj MajorityCategory
	var rare RareCategories
	for _, c := range a.Columns {
		if m, ok := c.Majority(); ok {
			maj.Entries = append(maj.Entries, Majority{Column: c.Name, Value: m.Value, Count: m.Count})
		}
		if vals := c.Rare(); len(vals) > 0 {
			rare.Entries = append(rare.Entries, Rare{Column: c.Name, Values: vals})
		}
	}
	return []Fact{
		RowCount{Scope: Categorical, Rows: a.Rows, Columns: len(a.Columns)},
		maj,
		rare,
		MissingCount{Scope: Categorical, Total: a.TotalMissing()},
		Closing{Scope: Categorical},
	}
}

// NumericalFacts selects facts in sentence order: rows, means, strongest
// correlation (when one exists), missing, outliers, closing.
func NumericalFacts(a *analysis.NumericalAnalysis) []Fact {
	facts := []Fact{RowCount{Scope: Numerical, Rows: a.Rows, Columns: len(a.Columns)}}
	var means ColumnMeans
	for i, c := range a.Columns {
		if i == maxMeans {
			break
		}
		means.Means = append(means.Means, Mean{Column: c.Name, Value: float64(c.Stats.Mean)})
	}
	facts = append(facts, means)
	if p, ok := a.Corr.Strongest(); ok {
		facts = append(facts, TopCorrelation{A: p.A, B: p.B, R: p.R})
	}
	return append(facts,
		MissingCount{Scope: Numerical, Total: a.TotalMissing()},
		OutlierFlag{Present: a.AnyOutliers()},
		Closing{Scope: Numerical},
	)
}
