// Package search drives a compiled engine over files and streams.
//
// Inputs are scanned concurrently on a bounded pool and the output of each
// input is buffered and written strictly in input order, so the result is the
// same as a sequential scan.
package search

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	goruntime "runtime"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/pkclsoft/gsgrep/internal/output"
	"github.com/pkclsoft/gsgrep/internal/runtime"
)

// sniffSize is how much of an input is inspected for binary content.
const sniffSize = 8 * 1024

// cancelCheckInterval is how many lines are scanned between context checks.
const cancelCheckInterval = 1024

// BinaryMode selects how inputs with binary content are handled.
type BinaryMode int

const (
	// BinaryMatches prints "Binary file X matches" instead of the lines.
	BinaryMatches BinaryMode = iota
	// BinaryText treats binary input as text.
	BinaryText
	// BinarySkip treats binary input as if it never matches.
	BinarySkip
)

// ParseBinaryMode maps a --binary-files value to a BinaryMode.
func ParseBinaryMode(s string) (BinaryMode, error) {
	switch s {
	case "", "binary":
		return BinaryMatches, nil
	case "text":
		return BinaryText, nil
	case "without-match":
		return BinarySkip, nil
	}
	return BinaryMatches, fmt.Errorf("unknown binary files type %q", s)
}

func (m BinaryMode) String() string {
	switch m {
	case BinaryMatches:
		return "binary"
	case BinaryText:
		return "text"
	case BinarySkip:
		return "without-match"
	default:
		return fmt.Sprintf("BinaryMode(%d)", int(m))
	}
}

// FilenameMode selects when lines are prefixed with the input name.
type FilenameMode int

const (
	// FilenamesDefault labels named files but not standard input.
	FilenamesDefault FilenameMode = iota
	// FilenamesAlways labels every input, standard input included.
	FilenamesAlways
	// FilenamesNever labels nothing.
	FilenamesNever
)

// Config holds the settings of a search.
type Config struct {
	// Engine finds matches in a line. Required.
	Engine runtime.Engine

	// Printer formats output. Default: plain lines.
	Printer *output.Printer

	Filenames FilenameMode

	// Invert selects lines that do not match.
	Invert bool

	// Count prints the number of selected lines per input.
	Count bool

	// FilesWithMatches prints only the names of inputs with a selected line.
	FilesWithMatches bool

	// Quiet prints nothing and stops at the first selected line.
	Quiet bool

	Binary BinaryMode

	// Workers is the number of inputs scanned at once.
	// Default: runtime.NumCPU()
	Workers int

	// Stdin is read for standard input operands. Default: empty.
	Stdin io.Reader

	// Stderr receives per-input error reports. Default: discarded.
	Stderr io.Writer

	// Logger receives debug traces. Default: discarded.
	Logger *slog.Logger
}

// Result summarizes a search.
type Result struct {
	// Matched reports whether any input had a selected line.
	Matched bool

	// Errors is the number of inputs that could not be read.
	Errors int
}

// Searcher scans inputs with one engine and configuration.
type Searcher struct {
	cfg Config
	log *slog.Logger

	// stdinMu serializes readers of standard input when "-" is given twice.
	stdinMu sync.Mutex
}

// New creates a searcher. It panics if cfg.Engine is nil.
func New(cfg Config) *Searcher {
	if cfg.Engine == nil {
		panic("search: nil engine")
	}
	if cfg.Printer == nil {
		cfg.Printer = output.NewPrinter(output.Options{})
	}
	if cfg.Workers <= 0 {
		cfg.Workers = goruntime.NumCPU()
	}
	if cfg.Stdin == nil {
		cfg.Stdin = strings.NewReader("")
	}
	if cfg.Stderr == nil {
		cfg.Stderr = io.Discard
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	return &Searcher{cfg: cfg, log: cfg.Logger}
}

// fileResult is the buffered outcome of scanning one input.
type fileResult struct {
	out     []byte
	matched bool
	err     error
}

// Search scans inputs and writes their output to out in input order.
// Errors on single inputs are reported to Stderr and counted in the result.
// The returned error is non-nil only if ctx is cancelled or out fails.
func (s *Searcher) Search(ctx context.Context, inputs []Input, out io.Writer) (*Result, error) {
	res := &Result{}
	if len(inputs) == 0 {
		return res, nil
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(runCtx)
	g.SetLimit(s.cfg.Workers)
	s.log.Debug("search started", "inputs", len(inputs), "workers", s.cfg.Workers, "engine", s.cfg.Engine.Name())

	slots := make([]chan fileResult, len(inputs))
	for i := range slots {
		slots[i] = make(chan fileResult, 1)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i, in := range inputs {
			g.Go(func() error {
				slots[i] <- s.scan(gctx, in)
				return nil
			})
		}
		_ = g.Wait()
	}()

	var firstErr error
	for i := range inputs {
		r := <-slots[i]
		if len(r.out) > 0 {
			if _, err := out.Write(r.out); err != nil {
				firstErr = fmt.Errorf("write output: %w", err)
				break
			}
		}
		if r.err != nil {
			if errors.Is(r.err, context.Canceled) || errors.Is(r.err, context.DeadlineExceeded) {
				break
			}
			fmt.Fprintf(s.cfg.Stderr, "gsgrep: %v\n", r.err)
			res.Errors++
		}
		if r.matched {
			res.Matched = true
			if s.cfg.Quiet {
				break
			}
		}
	}

	cancel()
	<-done

	if firstErr != nil {
		return res, firstErr
	}
	if err := ctx.Err(); err != nil {
		return res, err
	}
	s.log.Debug("search finished", "matched", res.Matched, "errors", res.Errors)
	return res, nil
}

// scan reads one input and buffers everything it would print.
func (s *Searcher) scan(ctx context.Context, in Input) fileResult {
	if err := ctx.Err(); err != nil {
		return fileResult{err: err}
	}

	var r io.Reader
	if in.IsStdin() {
		s.stdinMu.Lock()
		defer s.stdinMu.Unlock()
		r = s.cfg.Stdin
	} else {
		f, err := os.Open(in.Path)
		if err != nil {
			return fileResult{err: &FileError{Path: in.Path, Err: unwrapPathError(err)}}
		}
		defer f.Close()
		r = f
	}

	br := bufio.NewReaderSize(r, sniffSize)
	sample, _ := br.Peek(sniffSize)
	binary := s.cfg.Binary != BinaryText && runtime.IsBinary(sample)
	if binary && s.cfg.Binary == BinarySkip {
		s.log.Debug("skipping binary input", "input", in.Name)
		return fileResult{}
	}
	s.log.Debug("scanning", "input", in.Name, "binary", binary)

	var (
		buf     bytes.Buffer
		label   = s.label(in)
		opts    = s.cfg.Printer.Options()
		count   int
		lineNum int
	)
	scanner := runtime.NewLineScanner(br)
	for scanner.Scan() {
		lineNum++
		if lineNum%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return fileResult{err: err}
			}
		}

		line := scanner.Text()
		if _, found := s.cfg.Engine.Find(line); found == s.cfg.Invert {
			continue
		}
		count++

		if s.cfg.Quiet || s.cfg.FilesWithMatches || (binary && !s.cfg.Count) {
			break
		}
		if s.cfg.Count {
			continue
		}

		var matches []runtime.Match
		if !s.cfg.Invert && (opts.Color || opts.OnlyMatching) {
			matches = s.cfg.Engine.FindAll(line)
		}
		if err := s.cfg.Printer.Line(&buf, label, lineNum, line, matches); err != nil {
			return fileResult{out: buf.Bytes(), matched: true, err: fmt.Errorf("format %s: %w", in.Name, err)}
		}
	}
	if err := scanner.Err(); err != nil {
		name := in.Path
		if in.IsStdin() {
			name = in.Name
		}
		return fileResult{out: buf.Bytes(), matched: count > 0, err: &FileError{Path: name, Err: err}}
	}

	var err error
	switch {
	case s.cfg.Quiet:
	case s.cfg.FilesWithMatches:
		if count > 0 {
			err = s.cfg.Printer.FileName(&buf, in.Name)
		}
	case s.cfg.Count:
		err = s.cfg.Printer.Count(&buf, label, count)
	case binary && count > 0:
		err = s.cfg.Printer.Binary(&buf, in.Name)
	}
	if err != nil {
		return fileResult{out: buf.Bytes(), matched: count > 0, err: fmt.Errorf("format %s: %w", in.Name, err)}
	}

	s.log.Debug("scanned", "input", in.Name, "lines", lineNum, "selected", count)
	return fileResult{out: buf.Bytes(), matched: count > 0}
}

// label returns the name prefix for lines of in, or "" for none.
func (s *Searcher) label(in Input) string {
	switch s.cfg.Filenames {
	case FilenamesAlways:
		return in.Name
	case FilenamesNever:
		return ""
	default:
		if in.IsStdin() {
			return ""
		}
		return in.Name
	}
}
