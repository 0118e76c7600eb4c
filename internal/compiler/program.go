package compiler

import (
	"fmt"
	"strings"
)

// Capacity limits for a single compiled program.
const (
	// MaxInstructions is the maximum number of instructions, End sentinel included.
	MaxInstructions = 30

	// MaxClassBytes is the maximum size of the character-class arena,
	// including the leading NUL and every class terminator.
	MaxClassBytes = 40
)

// Inst is a single compiled pattern element.
type Inst struct {
	Op Opcode

	// Char is the byte matched by a Literal.
	Char byte

	// Lo and Hi delimit the members of a CharClass or NegatedCharClass
	// in the program arena: members are Arena[Lo:Hi] and Arena[Hi] is NUL.
	Lo, Hi int
}

// Program is a compiled pattern ready for the matcher.
// A Program owns its storage and is never modified after Compile returns,
// so it is safe for concurrent use.
type Program struct {
	// Code is the instruction sequence, always terminated by exactly one End.
	Code []Inst

	// Arena holds the members of every character class, each NUL-terminated.
	// Arena[0] is always NUL.
	Arena []byte

	// DotAll makes AnyChar match line terminators too.
	DotAll bool

	// Source is the pattern the program was compiled from.
	Source string
}

// At returns the instruction at index i, or an End instruction past the sentinel.
func (p *Program) At(i int) Inst {
	if i < 0 || i >= len(p.Code) {
		return Inst{Op: End}
	}
	return p.Code[i]
}

// Members returns the arena bytes of a class instruction.
func (p *Program) Members(in Inst) []byte {
	if !in.Op.IsClass() {
		return nil
	}
	return p.Arena[in.Lo:in.Hi]
}

// Anchored reports whether the program starts with StartAnchor.
func (p *Program) Anchored() bool {
	return len(p.Code) > 0 && p.Code[0].Op == StartAnchor
}

// Len returns the number of instructions excluding the End sentinel.
func (p *Program) Len() int {
	return len(p.Code) - 1
}

// Disassemble returns a human-readable listing of the program.
func (p *Program) Disassemble() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "; pattern %q\n", p.Source)
	if p.DotAll {
		sb.WriteString("; dotall\n")
	}
	for i, in := range p.Code {
		fmt.Fprintf(&sb, "%04d  %s", i, in.Op)
		switch {
		case in.Op == Literal:
			fmt.Fprintf(&sb, " %q", in.Char)
		case in.Op.IsClass():
			fmt.Fprintf(&sb, " [%s] (arena %d:%d)", p.Arena[in.Lo:in.Hi], in.Lo, in.Hi)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
