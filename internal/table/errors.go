package table

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFileType is returned for uploads that are neither CSV nor XLSX.
	ErrUnsupportedFileType = errors.New("unsupported file type")
	// ErrParseFailure is returned when the bytes do not form a table.
	ErrParseFailure = errors.New("malformed input")
)

// WrapError keeps the error kind matchable with errors.Is while adding the
// operation that failed.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}
