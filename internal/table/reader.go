package table

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Options controls how uploaded bytes become a Table.
type Options struct {
	// MaxRows rejects inputs with more data rows; 0 means unlimited.
	MaxRows int
	// Encoding of CSV input: "latin1" (default), "utf-8" or "windows-1252".
	Encoding string
	// Delimiter for CSV. If 0, ',' is used.
	Delimiter rune
	// SheetName selects an XLSX sheet; empty means SheetIndex.
	SheetName string
	// SheetIndex is the 1-based XLSX sheet position (0 means first).
	SheetIndex int
}

// DefaultOptions returns the ingestion defaults.
func DefaultOptions() Options {
	return Options{
		Encoding:  "latin1",
		Delimiter: ',',
	}
}

// Reader turns raw file bytes into a Table.
type Reader interface {
	CanRead(filename string) bool
	Read(name string, data []byte, opt Options) (*Table, error)
}

var registry []Reader

// Register adds a reader implementation to the registry.
func Register(r Reader) {
	registry = append(registry, r)
}

func init() {
	Register(csvReader{})
	Register(xlsxReader{})
}

// Supported reports whether some registered reader accepts the filename.
func Supported(filename string) bool {
	for _, r := range registry {
		if r.CanRead(filename) {
			return true
		}
	}
	return false
}

// Read selects a reader by filename extension and parses data.
func Read(filename string, data []byte, opt Options) (*Table, error) {
	name := filepath.Base(filename)
	for _, r := range registry {
		if r.CanRead(name) {
			return r.Read(name, data, opt)
		}
	}
	return nil, WrapError(ErrUnsupportedFileType, "read table",
		fmt.Errorf("%q: file must be CSV or XLSX", name))
}

// ReadFile reads a table from disk.
func ReadFile(path string, opt Options) (*Table, error) {
	if !Supported(path) {
		return nil, WrapError(ErrUnsupportedFileType, "read table",
			fmt.Errorf("%q: file must be CSV or XLSX", filepath.Base(path)))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return Read(path, data, opt)
}

func hasExt(filename string, exts ...string) bool {
	lower := strings.ToLower(filename)
	for _, e := range exts {
		if strings.HasSuffix(lower, e) {
			return true
		}
	}
	return false
}

// build assembles a table. Inputs over the row limit are rejected whole.
func build(name string, header []string, records [][]string, opt Options) (*Table, error) {
	if len(header) == 0 {
		return nil, WrapError(ErrParseFailure, "read table", errors.New("no columns to parse from file"))
	}
	if opt.MaxRows > 0 && len(records) > opt.MaxRows {
		return nil, WrapError(ErrParseFailure, "read table",
			fmt.Errorf("%d rows exceed the limit of %d (max_rows)", len(records), opt.MaxRows))
	}
	return New(name, header, records), nil
}

// normalizeHeader names blank headers "Unnamed: i" and suffixes repeated
// names with ".1", ".2", ...
func normalizeHeader(header []string) []string {
	out := make([]string, len(header))
	seen := make(map[string]int, len(header))
	taken := make(map[string]struct{}, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}
		base := name
		for {
			if _, dup := taken[name]; !dup {
				break
			}
			seen[base]++
			name = base + "." + strconv.Itoa(seen[base])
		}
		taken[name] = struct{}{}
		out[i] = name
	}
	return out
}
