package table

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestReadCSV(t *testing.T) {
	data := []byte("color,size,price\nred,S,1.5\nblue,M,2\n\ngreen,L\n")
	tb, err := Read("shop.csv", data, DefaultOptions())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if tb.Name != "shop.csv" {
		t.Fatalf("name = %q", tb.Name)
	}
	if tb.Rows != 3 {
		t.Fatalf("rows = %d, want 3 (blank line skipped)", tb.Rows)
	}
	if c := tb.Column("price"); c.Kind != Float || c.NullCount() != 1 {
		t.Fatalf("price kind=%s nulls=%d", c.Kind, c.NullCount())
	}
}

func TestReadCSVLatin1(t *testing.T) {
	// "café" encoded as ISO-8859-1.
	data := []byte("name\ncaf\xe9\n")
	tb, err := Read("l.csv", data, DefaultOptions())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got := tb.Column("name").Values[0].Str; got != "café" {
		t.Fatalf("decoded = %q, want café", got)
	}
}

func TestReadCSVUTF8BOM(t *testing.T) {
	opt := DefaultOptions()
	opt.Encoding = "utf-8"
	data := []byte("\xef\xbb\xbfcity\nZürich\n")
	tb, err := Read("u.csv", data, opt)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	c := tb.Column("city")
	if c == nil {
		t.Fatalf("BOM not stripped from header: %v", tb.Names())
	}
	if c.Values[0].Str != "Zürich" {
		t.Fatalf("value = %q", c.Values[0].Str)
	}
}

func TestReadCSVDelimiter(t *testing.T) {
	opt := DefaultOptions()
	opt.Delimiter = ';'
	tb, err := Read("semi.csv", []byte("a;b\n1;2\n"), opt)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(tb.Columns) != 2 || tb.Column("b").Values[0].Int != 2 {
		t.Fatalf("columns = %v", tb.Names())
	}
}

func TestReadCSVFailures(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"too many fields", "a,b\n1,2,3\n"},
		{"bad quote", "a,b\n\"x,1\n2,\"y\"z\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read("bad.csv", []byte(tt.data), DefaultOptions())
			if !errors.Is(err, ErrParseFailure) {
				t.Fatalf("err = %v, want ErrParseFailure", err)
			}
		})
	}
}

func TestReadCSVMaxRows(t *testing.T) {
	opt := DefaultOptions()
	opt.MaxRows = 2
	if _, err := Read("m.csv", []byte("x\n1\n2\n3\n"), opt); !errors.Is(err, ErrParseFailure) {
		t.Fatalf("err = %v, want ErrParseFailure", err)
	}
	tb, err := Read("m.csv", []byte("x\n1\n2\n"), opt)
	if err != nil || tb.Rows != 2 {
		t.Fatalf("at the limit: rows=%v err=%v", tb, err)
	}
	if DefaultOptions().MaxRows != 0 {
		t.Fatalf("default MaxRows = %d, want unlimited", DefaultOptions().MaxRows)
	}
}

func TestReadCSVUnknownEncoding(t *testing.T) {
	opt := DefaultOptions()
	opt.Encoding = "ebcdic"
	if _, err := Read("e.csv", []byte("a\n1\n"), opt); !errors.Is(err, ErrParseFailure) {
		t.Fatalf("err = %v, want ErrParseFailure", err)
	}
}

func TestReadFileCSV(t *testing.T) {
	p := filepath.Join(t.TempDir(), "disk.csv")
	if err := os.WriteFile(p, []byte("k\nv\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	tb, err := ReadFile(p, DefaultOptions())
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if tb.Name != "disk.csv" || tb.Rows != 1 {
		t.Fatalf("table = %+v", tb)
	}
	if _, err := ReadFile(filepath.Join(t.TempDir(), "x.parquet"), DefaultOptions()); !errors.Is(err, ErrUnsupportedFileType) {
		t.Fatalf("err = %v, want ErrUnsupportedFileType", err)
	}
}
