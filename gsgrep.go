package gsgrep

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pkclsoft/gsgrep/internal/compiler"
	"github.com/pkclsoft/gsgrep/internal/output"
	"github.com/pkclsoft/gsgrep/internal/runtime"
	"github.com/pkclsoft/gsgrep/internal/search"
)

// Version is the gsgrep version string.
const Version = "0.1.0"

// Options controls pattern compilation.
type Options struct {
	// DotAll lets '.' match '\n' and '\r'.
	DotAll bool

	// IgnoreCase folds ASCII letters in the pattern and searched lines.
	IgnoreCase bool
}

// Result summarizes a Search.
type Result = search.Result

// Compile compiles a pattern with default options.
//
// Example:
//
//	p, err := gsgrep.Compile(`\d+`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	m, ok := p.Find("room 42b") // m == Match{Start: 5, Length: 2}, ok == true
func Compile(pattern string) (*Pattern, error) {
	return CompileWithOptions(pattern, Options{})
}

// CompileWithOptions compiles a pattern. Errors are *CompileError values
// that match one of the Err* kinds with errors.Is.
func CompileWithOptions(pattern string, opts Options) (*Pattern, error) {
	src := pattern
	if opts.IgnoreCase {
		src = runtime.FoldPattern(pattern)
	}
	prog, err := compiler.Compile(src, compiler.Options{DotAll: opts.DotAll})
	if err != nil {
		var ce *compiler.Error
		if errors.As(err, &ce) {
			return nil, &CompileError{Pattern: pattern, Offset: ce.Offset, Kind: ce.Kind}
		}
		return nil, err
	}
	return &Pattern{prog: prog, source: pattern, fold: opts.IgnoreCase}, nil
}

// MustCompile is like Compile but panics if the pattern cannot be compiled.
// It simplifies initialization of global pattern variables.
func MustCompile(pattern string) *Pattern {
	p, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return p
}

// Run searches input for pattern and returns the output.
// This is a convenience function for one stream; input is labelled
// "(standard input)" when file names are enabled.
//
// If config is nil, default configuration is used.
// If config.Output is set, output is written there and the returned
// string will be empty.
//
// Example:
//
//	out, err := gsgrep.Run("err", strings.NewReader("ok\nerror\n"), nil)
//	// out: "error\n"
func Run(pattern string, input io.Reader, config *Config) (string, error) {
	cfg := Config{}
	if config != nil {
		cfg = *config
	}

	var buf *bytes.Buffer
	if cfg.Output == nil {
		buf = &bytes.Buffer{}
		cfg.Output = buf
	}
	cfg.Stdin = input

	s, err := newSearcher([]string{pattern}, &cfg)
	if err != nil {
		return "", err
	}
	if _, err := s.Search(context.Background(), []search.Input{{Name: search.StdinName}}, cfg.Output); err != nil {
		return "", err
	}

	if buf != nil {
		return buf.String(), nil
	}
	return "", nil
}

// Exec searches input for pattern and writes the output to output.
//
// Example:
//
//	err := gsgrep.Exec(`^\s*#`, os.Stdin, os.Stdout, &gsgrep.Config{Invert: true})
func Exec(pattern string, input io.Reader, output io.Writer, config *Config) error {
	cfg := Config{}
	if config != nil {
		cfg = *config
	}
	cfg.Output = output
	_, err := Run(pattern, input, &cfg)
	return err
}

// Search runs a full search of paths for any of patterns, as the command
// line tool does. No paths, or "-", mean config.Stdin. Unreadable inputs are
// reported to config.Stderr as "gsgrep: <path>: <err>" and counted in
// Result.Errors; the returned error is reserved for bad patterns,
// cancellation of ctx and output failures.
func Search(ctx context.Context, patterns []string, paths []string, config *Config) (*Result, error) {
	cfg := Config{}
	if config != nil {
		cfg = *config
	}

	s, err := newSearcher(patterns, &cfg)
	if err != nil {
		return nil, err
	}

	inputs, errs := search.Expand(paths, cfg.Recursive)
	for _, err := range errs {
		fmt.Fprintf(cfg.Stderr, "gsgrep: %v\n", err)
	}

	res, err := s.Search(ctx, inputs, cfg.Output)
	if res != nil {
		res.Errors += len(errs)
	}
	return res, err
}

// newSearcher applies defaults to cfg and builds the engine and driver.
func newSearcher(patterns []string, cfg *Config) (*search.Searcher, error) {
	cfg.applyDefaults()

	kind, err := runtime.ParseKind(cfg.Engine)
	if err != nil {
		return nil, err
	}
	engine, err := runtime.New(patterns, runtime.Config{
		Kind:       kind,
		Fixed:      cfg.FixedStrings,
		IgnoreCase: cfg.IgnoreCase,
		DotAll:     cfg.DotAll,
	})
	if err != nil {
		return nil, convertCompileError(strings.Join(patterns, "|"), err)
	}
	if te, ok := engine.(*runtime.TinyEngine); ok {
		cfg.Logger.Debug("compiled patterns", "count", len(patterns), "program", te.Disassemble())
	}

	printer := output.NewPrinter(output.Options{
		LineNumbers:  cfg.LineNumbers,
		OnlyMatching: cfg.OnlyMatching,
		Color:        cfg.Color,
	})

	return search.New(search.Config{
		Engine:           engine,
		Printer:          printer,
		Filenames:        cfg.filenames(),
		Invert:           cfg.Invert,
		Count:            cfg.Count,
		FilesWithMatches: cfg.FilesWithMatches,
		Quiet:            cfg.Quiet,
		Binary:           cfg.Binary,
		Workers:          cfg.Workers,
		Stdin:            cfg.Stdin,
		Stderr:           cfg.Stderr,
		Logger:           cfg.Logger,
	}), nil
}
