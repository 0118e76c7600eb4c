// Package matcher runs compiled pattern programs against text with a
// backtracking search.
//
// The matcher walks the program with an instruction cursor and peeks one
// instruction ahead to see whether the current instruction is quantified.
// Every match function returns the number of bytes it consumed together with
// its success flag, so a failed attempt never leaves partial length behind.
package matcher

import "github.com/pkclsoft/gsgrep/internal/compiler"

// Match is the location of a successful match within a line.
type Match struct {
	Start  int // Byte offset of the first matched byte
	Length int // Number of bytes consumed by the match
}

// End returns the offset just past the match.
func (m Match) End() int {
	return m.Start + m.Length
}

// machine pairs a program with the text being searched.
type machine struct {
	prog *compiler.Program
	text string
}

// Find returns the leftmost match of prog in text.
// The second result is false when there is no match.
func Find(prog *compiler.Program, text string) (Match, bool) {
	return FindAt(prog, text, 0)
}

// MatchString reports whether prog matches anywhere in text.
func MatchString(prog *compiler.Program, text string) bool {
	_, ok := Find(prog, text)
	return ok
}

// FindAll returns successive non-overlapping matches of prog in text.
// After an empty match the search resumes one byte later.
// A start-anchored program yields at most one match.
func FindAll(prog *compiler.Program, text string) []Match {
	var matches []Match
	for from := 0; from <= len(text); {
		m, ok := FindAt(prog, text, from)
		if !ok {
			break
		}
		matches = append(matches, m)
		if prog.Anchored() {
			break
		}
		if m.Length == 0 {
			from = m.Start + 1
		} else {
			from = m.End()
		}
	}
	return matches
}

// FindAt returns the leftmost match that starts at or after from.
// Anchors still refer to the whole text, so a start-anchored program
// can only match when from is 0.
func FindAt(prog *compiler.Program, text string, from int) (Match, bool) {
	m := &machine{prog: prog, text: text}

	if prog.Anchored() {
		if from != 0 {
			return Match{}, false
		}
		if n, ok := m.match(1, 0); ok {
			return Match{Start: 0, Length: n}, true
		}
		return Match{}, false
	}

	// Offsets run up to and including len(text): a match may start at end of text.
	for start := from; start <= len(text); start++ {
		if n, ok := m.match(0, start); ok {
			return Match{Start: start, Length: n}, true
		}
	}
	return Match{}, false
}

// match runs the program from instruction pc against text from offset t.
// It returns the number of bytes consumed on success.
func (m *machine) match(pc, t int) (int, bool) {
	n := 0
	for {
		in := m.prog.At(pc)
		next := m.prog.At(pc + 1).Op

		var (
			rest int
			ok   bool
		)
		switch {
		case in.Op == compiler.End || next == compiler.ZeroOrOne:
			rest, ok = m.optional(in, pc+2, t)
		case next == compiler.ZeroOrMore:
			rest, ok = m.repeat(in, pc+2, t, 0)
		case next == compiler.OneOrMore:
			rest, ok = m.repeat(in, pc+2, t, 1)
		case in.Op == compiler.EndAnchor && next == compiler.End:
			if t == len(m.text) {
				return n, true
			}
			return 0, false
		case t < len(m.text) && matchOne(m.prog, in, m.text[t]):
			n++
			t++
			pc++
			continue
		default:
			return 0, false
		}

		// A quantified or terminal rule decides the rest of the run.
		if !ok {
			return 0, false
		}
		return n + rest, true
	}
}

// optional matches in zero or one times, preferring zero, followed by the
// program from rest. The End sentinel matches trivially.
func (m *machine) optional(in compiler.Inst, rest, t int) (int, bool) {
	if in.Op == compiler.End {
		return 0, true
	}
	if n, ok := m.match(rest, t); ok {
		return n, true
	}
	if t < len(m.text) && matchOne(m.prog, in, m.text[t]) {
		if n, ok := m.match(rest, t+1); ok {
			return n + 1, true
		}
	}
	return 0, false
}

// repeat matches in greedily at least atLeast times followed by the program
// from rest, giving back one byte at a time until the rest matches.
func (m *machine) repeat(in compiler.Inst, rest, t, atLeast int) (int, bool) {
	run := 0
	for t+run < len(m.text) && matchOne(m.prog, in, m.text[t+run]) {
		run++
	}
	for k := run; k >= atLeast; k-- {
		if n, ok := m.match(rest, t+k); ok {
			return k + n, true
		}
	}
	return 0, false
}
