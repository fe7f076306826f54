package analysis

import (
	"encoding/json"
	"math"
	"strconv"
)

// Float is a float64 that encodes NaN and infinities as JSON null.
type Float float64

// NaN returns a missing statistic.
func NaN() Float { return Float(math.NaN()) }

// Valid reports whether f is finite.
func (f Float) Valid() bool {
	x := float64(f)
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func (f Float) MarshalJSON() ([]byte, error) {
	if !f.Valid() {
		return []byte("null"), nil
	}
	return json.Marshal(float64(f))
}

func (f *Float) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = NaN()
		return nil
	}
	x, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return err
	}
	*f = Float(x)
	return nil
}
