package search

import "fmt"

// FileError is an I/O failure on one input. It is reported and counted but
// never stops the other inputs.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}
