package runtime

import (
	"errors"
	"strings"

	"github.com/pkclsoft/gsgrep/internal/compiler"
	"github.com/pkclsoft/gsgrep/internal/matcher"
)

// TinyEngine runs one or more compiled programs with the backtracking matcher.
// With several programs the leftmost match wins; ties go to the longer match.
type TinyEngine struct {
	progs   []*compiler.Program
	filters []*LiteralInfo // Per-program prefilter, nil when nothing is required
	fold    bool           // Lines are ASCII-folded before matching
}

// NewTiny compiles patterns for the built-in matcher.
// The first pattern that fails to compile aborts construction.
func NewTiny(patterns []string, config Config) (*TinyEngine, error) {
	e := &TinyEngine{
		progs:   make([]*compiler.Program, 0, len(patterns)),
		filters: make([]*LiteralInfo, 0, len(patterns)),
		fold:    config.IgnoreCase,
	}
	opts := compiler.Options{DotAll: config.DotAll}

	for _, p := range patterns {
		src := p
		if config.IgnoreCase {
			src = FoldPattern(p)
		}
		prog, err := compiler.Compile(src, opts)
		if err != nil {
			var ce *compiler.Error
			if errors.As(err, &ce) {
				ce.Pattern = p
			}
			return nil, err
		}
		e.progs = append(e.progs, prog)
		e.filters = append(e.filters, ExtractLiterals(prog))
	}
	return e, nil
}

// Programs returns the compiled programs, one per pattern.
func (e *TinyEngine) Programs() []*compiler.Program {
	return e.progs
}

// Name implements Engine.
func (e *TinyEngine) Name() string {
	return string(Tiny)
}

// Find implements Engine.
func (e *TinyEngine) Find(line string) (Match, bool) {
	if e.fold {
		line = FoldASCII(line)
	}
	return e.findAt(line, 0)
}

// FindAll implements Engine.
func (e *TinyEngine) FindAll(line string) []Match {
	if e.fold {
		line = FoldASCII(line)
	}
	var matches []Match
	for from := 0; from <= len(line); {
		m, ok := e.findAt(line, from)
		if !ok {
			break
		}
		matches = append(matches, m)
		if m.Length == 0 {
			from = m.Start + 1
		} else {
			from = m.End()
		}
	}
	return matches
}

func (e *TinyEngine) findAt(line string, from int) (Match, bool) {
	var (
		best  Match
		found bool
	)
	for i, prog := range e.progs {
		if e.filters[i].CanReject(line) {
			continue
		}
		m, ok := matcher.FindAt(prog, line, from)
		if !ok {
			continue
		}
		if !found || m.Start < best.Start || (m.Start == best.Start && m.Length > best.Length) {
			best, found = m, true
		}
	}
	return best, found
}

// Disassemble returns the listing of every compiled program.
func (e *TinyEngine) Disassemble() string {
	var sb strings.Builder
	for _, prog := range e.progs {
		sb.WriteString(prog.Disassemble())
	}
	return sb.String()
}
