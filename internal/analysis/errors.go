package analysis

import "errors"

// ErrNoMatchingColumns is returned when a table has no column of the
// requested kind.
var ErrNoMatchingColumns = errors.New("no matching columns")

// noColumnsError carries the caller-facing hint while matching
// ErrNoMatchingColumns.
type noColumnsError string

func (e noColumnsError) Error() string { return string(e) }

func (e noColumnsError) Is(target error) bool { return target == ErrNoMatchingColumns }
