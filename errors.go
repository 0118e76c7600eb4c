package gsgrep

import (
	"errors"
	"fmt"

	"github.com/pkclsoft/gsgrep/internal/compiler"
	"github.com/pkclsoft/gsgrep/internal/runtime"
	"github.com/pkclsoft/gsgrep/internal/search"
)

// Compile error kinds. Use errors.Is to test a *CompileError against them.
var (
	ErrDanglingEscape    = compiler.ErrDanglingEscape
	ErrUnterminatedClass = compiler.ErrUnterminatedClass
	ErrPatternTooComplex = compiler.ErrPatternTooComplex
	ErrClassTooLarge     = compiler.ErrClassTooLarge

	// ErrNoPatterns is returned when a search is started without a pattern.
	ErrNoPatterns = runtime.ErrNoPatterns
)

// CompileError represents a pattern that could not be compiled.
type CompileError struct {
	Pattern string // Pattern as given
	Offset  int    // Byte offset of the problem, -1 if unknown
	Kind    error  // One of the Err* kinds, or the coregex error
}

func (e *CompileError) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("compile error in %q: %v", e.Pattern, e.Kind)
	}
	return fmt.Sprintf("compile error in %q at offset %d: %v", e.Pattern, e.Offset, e.Kind)
}

func (e *CompileError) Unwrap() error {
	return e.Kind
}

// FileError represents an input that could not be read.
// It is reported and counted by Search without stopping other inputs.
type FileError = search.FileError

// convertCompileError maps an engine construction error to the public type.
func convertCompileError(pattern string, err error) error {
	if errors.Is(err, ErrNoPatterns) {
		return err
	}
	var ce *compiler.Error
	if errors.As(err, &ce) {
		return &CompileError{Pattern: ce.Pattern, Offset: ce.Offset, Kind: ce.Kind}
	}
	return &CompileError{Pattern: pattern, Offset: -1, Kind: err}
}
