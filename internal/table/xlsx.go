package table

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

type xlsxReader struct{}

func (xlsxReader) CanRead(filename string) bool { return hasExt(filename, ".xlsx") }

// Read parses the selected worksheet. If SheetName is empty and SheetIndex <= 0,
// the first sheet is used. SheetIndex is 1-based.
func (xlsxReader) Read(name string, data []byte, opt Options) (*Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, WrapError(ErrParseFailure, "open xlsx", err)
	}
	defer f.Close()

	sheet, err := selectSheet(f.GetSheetList(), name, opt)
	if err != nil {
		return nil, err
	}
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, WrapError(ErrParseFailure, "read xlsx sheet", err)
	}
	if len(rows) == 0 {
		return nil, WrapError(ErrParseFailure, "read xlsx", errors.New("no columns to parse from file"))
	}
	if err := labelBoolCells(f, sheet, rows); err != nil {
		return nil, err
	}
	header := rows[0]
	records := rows[1:]
	// Cells to the right of the header become unnamed columns.
	width := len(header)
	for _, rec := range records {
		if len(rec) > width {
			width = len(rec)
		}
	}
	extra := width - len(header)
	if extra > 0 {
		padded := make([]string, width)
		copy(padded, header)
		header = padded
	}
	t, err := build(name, header, records, opt)
	if err != nil {
		return nil, err
	}
	if extra > 0 {
		t.Warnings = append(t.Warnings, fmt.Sprintf("sheet '%s': %d column(s) without a header were named Unnamed: <index>", sheet, extra))
	}
	return t, nil
}

func selectSheet(sheets []string, name string, opt Options) (string, error) {
	if len(sheets) == 0 {
		return "", WrapError(ErrParseFailure, "read xlsx", errors.New("workbook has no sheets"))
	}
	if opt.SheetName != "" {
		for _, s := range sheets {
			if strings.EqualFold(s, opt.SheetName) {
				return s, nil
			}
		}
		return "", WrapError(ErrParseFailure, "read xlsx",
			fmt.Errorf("sheet '%s' not found in workbook '%s'; available sheets: %s",
				opt.SheetName, name, strings.Join(sheets, ", ")))
	}
	idx := opt.SheetIndex
	if idx <= 0 {
		idx = 1
	}
	if idx > len(sheets) {
		return "", WrapError(ErrParseFailure, "read xlsx",
			fmt.Errorf("sheet index %d out of range; workbook '%s' has %d sheet(s)", idx, name, len(sheets)))
	}
	return sheets[idx-1], nil
}

// labelBoolCells rewrites boolean cells, which raw reads return as "1"/"0",
// to TRUE/FALSE so they are typed as text rather than integers.
func labelBoolCells(f *excelize.File, sheet string, rows [][]string) error {
	for r, row := range rows {
		for c, v := range row {
			if v != "0" && v != "1" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return WrapError(ErrParseFailure, "read xlsx", err)
			}
			typ, err := f.GetCellType(sheet, cell)
			if err != nil {
				return WrapError(ErrParseFailure, "read xlsx cell "+cell, err)
			}
			if typ != excelize.CellTypeBool {
				continue
			}
			if v == "1" {
				row[c] = "TRUE"
			} else {
				row[c] = "FALSE"
			}
		}
	}
	return nil
}
