package design

import "errors"

// Sentinel errors for design record validation and corpus scanning.
var (
	// ErrMissingField indicates a required record field is absent.
	ErrMissingField = errors.New("required field missing")
	// ErrUnknownComponent indicates a connection references a component
	// instance that does not exist in the design.
	ErrUnknownComponent = errors.New("connection references unknown component instance")
	// ErrNoRecord indicates a design directory has no record file.
	ErrNoRecord = errors.New("design record file not found")
)

// MalformedDesignError records a structural problem in one design record.
// A malformed design is skipped from a corpus run; it never aborts the
// analysis of other designs.
type MalformedDesignError struct {
	Design string // design identifier (directory name)
	Field  string // offending field name
	Err    error
}

// Error returns a human-readable string naming the design and field.
func (e *MalformedDesignError) Error() string {
	if e.Field != "" {
		return e.Design + ": field " + e.Field + ": " + e.Err.Error()
	}
	return e.Design + ": " + e.Err.Error()
}

// Unwrap returns the underlying error for use with errors.Is/As.
func (e *MalformedDesignError) Unwrap() error {
	return e.Err
}
