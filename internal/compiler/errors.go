package compiler

import (
	"errors"
	"fmt"
)

// Sentinel errors for each compile failure kind.
var (
	ErrDanglingEscape    = errors.New("trailing backslash")
	ErrUnterminatedClass = errors.New("missing closing ]")
	ErrPatternTooComplex = errors.New("too many pattern elements")
	ErrClassTooLarge     = errors.New("character classes too large")
)

// Error describes why a pattern could not be compiled.
type Error struct {
	Kind    error  // One of the Err* sentinels
	Offset  int    // Byte offset in Pattern where the problem was found
	Pattern string // Pattern being compiled
}

// Error returns a formatted message with the offending offset.
func (e *Error) Error() string {
	return fmt.Sprintf("%s at offset %d in %q", e.Kind, e.Offset, e.Pattern)
}

// Unwrap returns the sentinel kind so errors.Is works on *Error.
func (e *Error) Unwrap() error {
	return e.Kind
}

func errorAt(kind error, offset int, pattern string) *Error {
	return &Error{Kind: kind, Offset: offset, Pattern: pattern}
}
