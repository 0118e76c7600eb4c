package search

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// StdinName is the label used for standard input.
const StdinName = "(standard input)"

// ErrIsDirectory is reported for a directory operand without recursion.
var ErrIsDirectory = errors.New("is a directory")

// Input is one stream to scan.
type Input struct {
	// Name is the label printed in front of matching lines.
	Name string

	// Path is the file to open. Empty for standard input.
	Path string
}

// IsStdin reports whether the input is standard input.
func (in Input) IsStdin() bool {
	return in.Path == ""
}

// Expand turns command-line operands into inputs. No operands or "-" mean
// standard input. Directories are walked in lexical order when recursive is
// set and reported as errors otherwise. Expansion errors do not stop the
// remaining operands.
func Expand(paths []string, recursive bool) ([]Input, []error) {
	if len(paths) == 0 {
		return []Input{{Name: StdinName}}, nil
	}

	var (
		inputs []Input
		errs   []error
	)
	for _, p := range paths {
		if p == "-" {
			inputs = append(inputs, Input{Name: StdinName})
			continue
		}

		info, err := os.Stat(p)
		if err != nil {
			// Let the scan report it so ordering with other output is kept.
			inputs = append(inputs, Input{Name: p, Path: p})
			continue
		}
		if !info.IsDir() {
			inputs = append(inputs, Input{Name: p, Path: p})
			continue
		}
		if !recursive {
			errs = append(errs, &FileError{Path: p, Err: ErrIsDirectory})
			continue
		}

		walkErr := filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				errs = append(errs, &FileError{Path: path, Err: unwrapPathError(err)})
				return nil
			}
			if d.Type().IsRegular() {
				inputs = append(inputs, Input{Name: path, Path: path})
			}
			return nil
		})
		if walkErr != nil {
			errs = append(errs, &FileError{Path: p, Err: walkErr})
		}
	}
	return inputs, errs
}

// unwrapPathError strips the *fs.PathError wrapper so the path is not
// repeated when a FileError is printed.
func unwrapPathError(err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return pe.Err
	}
	return err
}
