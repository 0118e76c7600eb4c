package gsgrep

import (
	"github.com/pkclsoft/gsgrep/internal/compiler"
	"github.com/pkclsoft/gsgrep/internal/matcher"
	"github.com/pkclsoft/gsgrep/internal/runtime"
)

// Match is the position of a match: Start is a byte offset in the searched
// line and Length the number of bytes matched. Length may be zero.
type Match = matcher.Match

// Pattern represents a compiled pattern.
// It is immutable and safe for concurrent use. Two compilations never share
// storage, so a Pattern is unaffected by later calls to Compile.
type Pattern struct {
	prog   *compiler.Program
	source string
	fold   bool
}

// Find returns the leftmost match of the pattern in line.
// The boolean is false if there is no match.
func (p *Pattern) Find(line string) (Match, bool) {
	return matcher.Find(p.prog, p.prepare(line))
}

// FindAll returns successive non-overlapping matches in line.
func (p *Pattern) FindAll(line string) []Match {
	return matcher.FindAll(p.prog, p.prepare(line))
}

// MatchString reports whether line contains a match.
func (p *Pattern) MatchString(line string) bool {
	return matcher.MatchString(p.prog, p.prepare(line))
}

// Source returns the pattern text as given to Compile.
func (p *Pattern) Source() string {
	return p.source
}

// String implements fmt.Stringer.
func (p *Pattern) String() string {
	return p.source
}

// Disassemble returns a human-readable listing of the compiled program.
func (p *Pattern) Disassemble() string {
	return p.prog.Disassemble()
}

func (p *Pattern) prepare(line string) string {
	if p.fold {
		return runtime.FoldASCII(line)
	}
	return line
}
