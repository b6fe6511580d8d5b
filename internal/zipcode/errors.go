package zipcode

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyLine means there was nothing to parse. Callers skip these lines.
	ErrEmptyLine = errors.New("empty line")

	// ErrHeaderRow means the line is the dataset's column header.
	ErrHeaderRow = errors.New("header row")

	// ErrTruncatedRecord means the line has fewer columns than the dialect needs.
	ErrTruncatedRecord = errors.New("truncated record")

	// ErrInvalidNumeric means a coordinate column is not a number.
	ErrInvalidNumeric = errors.New("invalid numeric field")
)

// ParseError describes why a line could not be decoded into a Record.
type ParseError struct {
	Line  int    // 1-based line number, header included; 0 when unknown
	Field string // column name, empty for whole-line failures
	Token string // offending token as read, quotes included
	Err   error  // one of the Err* sentinels
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("parse zipcode record: %v", e.Err)
	if e.Field != "" {
		msg = fmt.Sprintf("parse zipcode record: %s %q: %v", e.Field, e.Token, e.Err)
	}
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, msg)
	}
	return msg
}

func (e *ParseError) Unwrap() error { return e.Err }

// Reason returns a short label for a parse failure, suitable for metrics.
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrEmptyLine):
		return "empty_line"
	case errors.Is(err, ErrHeaderRow):
		return "header_row"
	case errors.Is(err, ErrTruncatedRecord):
		return "truncated_record"
	case errors.Is(err, ErrInvalidNumeric):
		return "invalid_numeric"
	default:
		return "unknown"
	}
}
