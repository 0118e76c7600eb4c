package runtime

import (
	"github.com/coregx/ahocorasick"
)

// LiteralEngine matches fixed strings with a single Aho-Corasick automaton.
type LiteralEngine struct {
	auto       *ahocorasick.Automaton
	matchEmpty bool // An empty pattern matches every line at offset 0
	fold       bool
}

// NewLiteral builds an automaton over patterns.
// With ignoreCase, patterns and lines are ASCII-folded.
func NewLiteral(patterns []string, ignoreCase bool) (*LiteralEngine, error) {
	e := &LiteralEngine{fold: ignoreCase}

	builder := ahocorasick.NewBuilder()
	added := 0
	for _, p := range patterns {
		if p == "" {
			e.matchEmpty = true
			continue
		}
		if ignoreCase {
			p = FoldASCII(p)
		}
		builder.AddPattern([]byte(p))
		added++
	}
	if added == 0 {
		return e, nil
	}

	auto, err := builder.Build()
	if err != nil {
		return nil, err
	}
	e.auto = auto
	return e, nil
}

// Name implements Engine.
func (e *LiteralEngine) Name() string {
	return "fixed"
}

// Find implements Engine.
func (e *LiteralEngine) Find(line string) (Match, bool) {
	if e.matchEmpty {
		return Match{}, true
	}
	if e.auto == nil {
		return Match{}, false
	}
	if e.fold {
		line = FoldASCII(line)
	}
	m := e.auto.Find([]byte(line), 0)
	if m == nil {
		return Match{}, false
	}
	return Match{Start: m.Start, Length: m.End - m.Start}, true
}

// FindAll implements Engine.
func (e *LiteralEngine) FindAll(line string) []Match {
	if e.matchEmpty {
		return []Match{{}}
	}
	if e.auto == nil {
		return nil
	}
	if e.fold {
		line = FoldASCII(line)
	}

	haystack := []byte(line)
	var matches []Match
	for at := 0; at < len(haystack); {
		m := e.auto.Find(haystack, at)
		if m == nil {
			break
		}
		matches = append(matches, Match{Start: m.Start, Length: m.End - m.Start})
		at = m.End
	}
	return matches
}
