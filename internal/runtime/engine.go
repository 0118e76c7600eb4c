// Package runtime provides the line-matching engines used by the search
// driver: the built-in backtracking matcher, coregex for extended syntax,
// and Aho-Corasick for fixed strings.
package runtime

import (
	"errors"
	"fmt"

	"github.com/pkclsoft/gsgrep/internal/matcher"
)

// Match is the location of a match within a line.
type Match = matcher.Match

// Kind selects the matching engine.
type Kind string

const (
	// Tiny is the built-in compiler and backtracking matcher.
	Tiny Kind = "tiny"
	// Coregex accepts full RE2 syntax.
	Coregex Kind = "coregex"
)

// ParseKind converts an engine name to a Kind.
func ParseKind(name string) (Kind, error) {
	switch Kind(name) {
	case Tiny, "":
		return Tiny, nil
	case Coregex:
		return Coregex, nil
	default:
		return "", fmt.Errorf("unknown engine %q (want %q or %q)", name, Tiny, Coregex)
	}
}

// ErrNoPatterns is returned when an engine is built without patterns.
var ErrNoPatterns = errors.New("no patterns given")

// Config controls engine construction.
type Config struct {
	// Kind selects the engine for regular expressions. Ignored when Fixed is set.
	Kind Kind

	// Fixed treats every pattern as a literal string.
	Fixed bool

	// IgnoreCase folds ASCII letters in patterns and lines.
	IgnoreCase bool

	// DotAll makes . match line terminators.
	DotAll bool
}

// Engine finds pattern matches within a single line.
// Implementations are read-only after construction and safe for concurrent use.
type Engine interface {
	// Find returns the leftmost match in line.
	Find(line string) (Match, bool)

	// FindAll returns successive non-overlapping matches in line.
	FindAll(line string) []Match

	// Name identifies the engine in debug output.
	Name() string
}

// New builds an engine matching any of patterns.
func New(patterns []string, config Config) (Engine, error) {
	if len(patterns) == 0 {
		return nil, ErrNoPatterns
	}

	var (
		e   Engine
		err error
	)
	switch {
	case config.Fixed:
		e, err = NewLiteral(patterns, config.IgnoreCase)
	case config.Kind == Coregex:
		e, err = NewCoregex(patterns, config)
	default:
		e, err = NewTiny(patterns, config)
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}
