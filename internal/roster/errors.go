package roster

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by FindByID when no employee has the requested ID.
var ErrNotFound = errors.New("employee not found")

// ParseError reports a row field that could not be parsed.
// Line is 1-based and counts only the rows passed to Load.
type ParseError struct {
	Line  int
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("row %d: invalid %s %q: %v", e.Line, e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("row %d: invalid %s %q", e.Line, e.Field, e.Value)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError reports a parsed value outside its allowed range.
type ValidationError struct {
	Line   int
	Field  string
	Value  float64
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("row %d: %s %v %s", e.Line, e.Field, e.Value, e.Reason)
}

var errMissingPercent = errors.New("missing trailing %")
