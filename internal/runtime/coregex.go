package runtime

import (
	"strings"

	"github.com/coregx/coregex"
)

// CoregexEngine wraps coregex for patterns that need more than the built-in
// syntax (alternation, groups, bounded repetition).
type CoregexEngine struct {
	pattern string
	re      *coregex.Regexp
}

// NewCoregex compiles patterns into a single coregex alternation.
// IgnoreCase and DotAll map to the (?i) and (?s) flags.
func NewCoregex(patterns []string, config Config) (*CoregexEngine, error) {
	var sb strings.Builder
	if config.IgnoreCase || config.DotAll {
		sb.WriteString("(?")
		if config.IgnoreCase {
			sb.WriteByte('i')
		}
		if config.DotAll {
			sb.WriteByte('s')
		}
		sb.WriteByte(')')
	}
	if len(patterns) == 1 {
		sb.WriteString(patterns[0])
	} else {
		for i, p := range patterns {
			if i > 0 {
				sb.WriteByte('|')
			}
			sb.WriteString("(?:")
			sb.WriteString(p)
			sb.WriteByte(')')
		}
	}

	pattern := sb.String()
	re, err := coregex.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return &CoregexEngine{pattern: pattern, re: re}, nil
}

// Pattern returns the combined pattern given to coregex.
func (e *CoregexEngine) Pattern() string {
	return e.pattern
}

// Name implements Engine.
func (e *CoregexEngine) Name() string {
	return string(Coregex)
}

// Find implements Engine.
func (e *CoregexEngine) Find(line string) (Match, bool) {
	loc := e.re.FindStringIndex(line)
	if loc == nil {
		return Match{}, false
	}
	return Match{Start: loc[0], Length: loc[1] - loc[0]}, true
}

// FindAll implements Engine.
func (e *CoregexEngine) FindAll(line string) []Match {
	locs := e.re.FindAllStringIndex(line, -1)
	if len(locs) == 0 {
		return nil
	}
	matches := make([]Match, len(locs))
	for i, loc := range locs {
		matches[i] = Match{Start: loc[0], Length: loc[1] - loc[0]}
	}
	return matches
}
