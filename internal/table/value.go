package table

import (
	"math"
	"strconv"
	"strings"
)

// Kind is the scalar type of a single cell, decided once at ingestion.
type Kind uint8

const (
	Null Kind = iota
	Integer
	Float
	Text
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Integer:
		return "integer"
	case Float:
		return "float"
	case Text:
		return "text"
	default:
		return "unknown"
	}
}

// Numeric reports whether the kind carries a number.
func (k Kind) Numeric() bool { return k == Integer || k == Float }

// Value is a typed cell.
type Value struct {
	Kind Kind
	Int  int64
	Num  float64
	Str  string
}

// nullTokens mirrors the markers spreadsheet and CSV exports commonly use for
// a missing cell.
var nullTokens = map[string]struct{}{
	"":     {},
	"NA":   {},
	"N/A":  {},
	"n/a":  {},
	"NaN":  {},
	"nan":  {},
	"-NaN": {},
	"null": {},
	"NULL": {},
	"None": {},
	"#N/A": {},
	"<NA>": {},
}

// ParseValue types a raw cell.
func ParseValue(raw string) Value {
	s := strings.TrimSpace(raw)
	if _, ok := nullTokens[s]; ok {
		return Value{Kind: Null}
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Value{Kind: Integer, Int: i, Num: float64(i)}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return Value{Kind: Float, Num: f}
	}
	return Value{Kind: Text, Str: s}
}

// IsNull reports whether the cell is missing.
func (v Value) IsNull() bool { return v.Kind == Null }

// Float returns the numeric value and whether the cell is numeric.
func (v Value) Float() (float64, bool) {
	switch v.Kind {
	case Integer, Float:
		return v.Num, true
	default:
		return 0, false
	}
}

// String renders the value as a category label.
func (v Value) String() string {
	switch v.Kind {
	case Integer:
		return strconv.FormatInt(v.Int, 10)
	case Float:
		s := strconv.FormatFloat(v.Num, 'f', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		return s
	case Text:
		return v.Str
	default:
		return ""
	}
}

// Native converts the value for JSON encoding; nulls become nil.
func (v Value) Native() any {
	switch v.Kind {
	case Integer:
		return v.Int
	case Float:
		return v.Num
	case Text:
		return v.Str
	default:
		return nil
	}
}
