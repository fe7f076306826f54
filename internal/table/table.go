package table

// Column is a named, typed sequence of cells.
type Column struct {
	Name   string
	Values []Value
	// Kind summarizes the non-null cells: Null if there are none, Text if any
	// cell is text, Float if any is a float, else Integer.
	Kind Kind
}

// Table is an ordered set of equal-length columns.
type Table struct {
	Name     string
	Columns  []*Column
	Rows     int
	Warnings []string
}

// New builds a table from a header and raw string records. Records shorter
// than the header are padded with nulls; callers reject longer records.
func New(name string, header []string, records [][]string) *Table {
	names := normalizeHeader(header)
	t := &Table{Name: name, Rows: len(records)}
	t.Columns = make([]*Column, len(names))
	for j, n := range names {
		t.Columns[j] = &Column{Name: n, Values: make([]Value, len(records))}
	}
	for i, rec := range records {
		for j, c := range t.Columns {
			if j < len(rec) {
				c.Values[i] = ParseValue(rec[j])
			}
		}
	}
	for _, c := range t.Columns {
		c.Kind = columnKind(c.Values)
	}
	return t
}

func columnKind(vals []Value) Kind {
	kind := Null
	for _, v := range vals {
		switch v.Kind {
		case Text:
			return Text
		case Float:
			kind = Float
		case Integer:
			if kind == Null {
				kind = Integer
			}
		case Null:
		}
	}
	return kind
}

// Column returns the column with the given name, or nil.
func (t *Table) Column(name string) *Column {
	for _, c := range t.Columns {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Names lists column names in table order.
func (t *Table) Names() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Name
	}
	return out
}

// Preview returns up to n leading rows as column→value records.
func (t *Table) Preview(n int) []map[string]any {
	if n > t.Rows {
		n = t.Rows
	}
	if n < 0 {
		n = 0
	}
	out := make([]map[string]any, n)
	for i := 0; i < n; i++ {
		row := make(map[string]any, len(t.Columns))
		for _, c := range t.Columns {
			row[c.Name] = c.Values[i].Native()
		}
		out[i] = row
	}
	return out
}

// NullCount counts missing cells.
func (c *Column) NullCount() int {
	n := 0
	for _, v := range c.Values {
		if v.IsNull() {
			n++
		}
	}
	return n
}

// Label renders a cell as a category label. Integers in a float column are
// printed as floats so that 3 and 3.0 share a label.
func (c *Column) Label(v Value) string {
	if c.Kind == Float && v.Kind == Integer {
		return Value{Kind: Float, Num: v.Num}.String()
	}
	return v.String()
}

// Distinct counts distinct non-null labels.
func (c *Column) Distinct() int {
	seen := make(map[string]struct{})
	for _, v := range c.Values {
		if v.IsNull() {
			continue
		}
		seen[c.Label(v)] = struct{}{}
	}
	return len(seen)
}

// Floats returns the non-null numeric cells in row order.
func (c *Column) Floats() []float64 {
	out := make([]float64, 0, len(c.Values))
	for _, v := range c.Values {
		if x, ok := v.Float(); ok {
			out = append(out, x)
		}
	}
	return out
}
