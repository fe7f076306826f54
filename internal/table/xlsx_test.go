package table

import (
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, sheets map[string][][]any, order ...string) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, name := range order {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				t.Fatalf("rename sheet: %v", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			t.Fatalf("new sheet: %v", err)
		}
		for r, row := range sheets[name] {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			row := row
			if err := f.SetSheetRow(name, cell, &row); err != nil {
				t.Fatalf("set row: %v", err)
			}
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func TestReadXLSXFirstSheet(t *testing.T) {
	data := buildWorkbook(t, map[string][][]any{
		"Sales": {
			{"region", "units", "price"},
			{"north", 3, 2.5},
			{"south", 5, 4},
			{"east", nil, 1.25},
		},
		"Other": {{"x"}, {"y"}},
	}, "Sales", "Other")

	tb, err := Read("book.xlsx", data, DefaultOptions())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if tb.Rows != 3 {
		t.Fatalf("rows = %d, want 3", tb.Rows)
	}
	if got := strings.Join(tb.Names(), ","); got != "region,units,price" {
		t.Fatalf("names = %s", got)
	}
	if c := tb.Column("units"); c.Kind != Integer || c.NullCount() != 1 {
		t.Fatalf("units kind=%s nulls=%d", c.Kind, c.NullCount())
	}
	if c := tb.Column("price"); c.Kind != Float {
		t.Fatalf("price kind = %s", c.Kind)
	}
}

func TestReadXLSXSheetSelection(t *testing.T) {
	data := buildWorkbook(t, map[string][][]any{
		"First":  {{"a"}, {1}},
		"Second": {{"b"}, {"z"}},
	}, "First", "Second")

	opt := DefaultOptions()
	opt.SheetName = "second"
	tb, err := Read("book.xlsx", data, opt)
	if err != nil {
		t.Fatalf("Read by name: %v", err)
	}
	if tb.Column("b") == nil {
		t.Fatalf("expected sheet Second, got %v", tb.Names())
	}

	opt = DefaultOptions()
	opt.SheetIndex = 2
	tb, err = Read("book.xlsx", data, opt)
	if err != nil {
		t.Fatalf("Read by index: %v", err)
	}
	if tb.Column("b") == nil {
		t.Fatalf("expected sheet Second, got %v", tb.Names())
	}
}

func TestReadXLSXSheetErrors(t *testing.T) {
	data := buildWorkbook(t, map[string][][]any{"Only": {{"a"}, {1}}}, "Only")

	opt := DefaultOptions()
	opt.SheetName = "Missing"
	_, err := Read("book.xlsx", data, opt)
	if !errors.Is(err, ErrParseFailure) {
		t.Fatalf("err = %v, want ErrParseFailure", err)
	}
	if !strings.Contains(err.Error(), "available sheets: Only") {
		t.Fatalf("err = %v, want sheet listing", err)
	}

	opt = DefaultOptions()
	opt.SheetIndex = 3
	if _, err := Read("book.xlsx", data, opt); !errors.Is(err, ErrParseFailure) {
		t.Fatalf("err = %v, want ErrParseFailure", err)
	}
}

func TestReadXLSXCorrupt(t *testing.T) {
	_, err := Read("broken.xlsx", []byte("not a zip archive"), DefaultOptions())
	if !errors.Is(err, ErrParseFailure) {
		t.Fatalf("err = %v, want ErrParseFailure", err)
	}
}

func TestReadXLSXEmptySheet(t *testing.T) {
	data := buildWorkbook(t, map[string][][]any{"Blank": nil}, "Blank")
	_, err := Read("empty.xlsx", data, DefaultOptions())
	if !errors.Is(err, ErrParseFailure) {
		t.Fatalf("err = %v, want ErrParseFailure", err)
	}
}

func TestReadXLSXBooleanCellsAreText(t *testing.T) {
	data := buildWorkbook(t, map[string][][]any{
		"Flags": {
			{"active", "score"},
			{true, 1},
			{false, 0},
			{true, 1},
		},
	}, "Flags")
	tb, err := Read("flags.xlsx", data, DefaultOptions())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	active := tb.Column("active")
	if active.Kind != Text || active.Label(active.Values[0]) != "TRUE" || active.Label(active.Values[1]) != "FALSE" {
		t.Fatalf("active kind=%s values=%v", active.Kind, active.Values)
	}
	if c := tb.Column("score"); c.Kind != Integer {
		t.Fatalf("score kind = %s, want integer", c.Kind)
	}
}

func TestReadXLSXHeaderlessColumnsWarn(t *testing.T) {
	data := buildWorkbook(t, map[string][][]any{
		"Data": {{"a"}, {1, "stray"}, {2}},
	}, "Data")
	tb, err := Read("wide.xlsx", data, DefaultOptions())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if tb.Column("Unnamed: 1") == nil {
		t.Fatalf("names = %v", tb.Names())
	}
	if len(tb.Warnings) != 1 || !strings.Contains(tb.Warnings[0], "1 column(s) without a header") {
		t.Fatalf("warnings = %#v", tb.Warnings)
	}
}
