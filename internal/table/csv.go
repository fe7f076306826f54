package table

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

type csvReader struct{}

func (csvReader) CanRead(filename string) bool { return hasExt(filename, ".csv") }

func (csvReader) Read(name string, data []byte, opt Options) (*Table, error) {
	enc, err := lookupEncoding(opt.Encoding)
	if err != nil {
		return nil, WrapError(ErrParseFailure, "read csv", err)
	}
	r := csv.NewReader(transform.NewReader(bytes.NewReader(data), enc.NewDecoder()))
	r.FieldsPerRecord = -1
	r.Comma = opt.Delimiter
	if r.Comma == 0 {
		r.Comma = ','
	}

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, WrapError(ErrParseFailure, "read csv", errors.New("no columns to parse from file"))
		}
		return nil, WrapError(ErrParseFailure, "read csv header", err)
	}
	var records [][]string
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, WrapError(ErrParseFailure, fmt.Sprintf("read csv row %d", len(records)+1), err)
		}
		if len(rec) > len(header) {
			line, _ := r.FieldPos(0)
			return nil, WrapError(ErrParseFailure, "read csv",
				fmt.Errorf("expected %d fields in line %d, saw %d", len(header), line, len(rec)))
		}
		records = append(records, rec)
	}
	return build(name, header, records, opt)
}

// lookupEncoding maps a configured encoding name to a decoder. UTF-8 input
// has its byte order mark stripped.
func lookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "latin1", "latin-1", "iso-8859-1", "iso8859-1":
		return charmap.ISO8859_1, nil
	case "utf-8", "utf8":
		return unicode.UTF8BOM, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	default:
		return nil, fmt.Errorf("unsupported csv encoding: %s (use latin1|utf-8|windows-1252)", name)
	}
}
