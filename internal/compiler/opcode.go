// Package compiler compiles a pattern string into an instruction program for the matcher.
package compiler

import "fmt"

// Opcode identifies the kind of a single pattern instruction.
type Opcode uint8

const (
	// End terminates every program. It is never matched against text.
	End Opcode = iota

	// Anchors
	StartAnchor // ^ (zero-width, only meaningful as the first instruction)
	EndAnchor   // $ (zero-width, only meaningful as the last instruction)

	// Quantifiers modify the preceding instruction
	ZeroOrOne  // ?
	ZeroOrMore // *
	OneOrMore  // +

	// Single-byte matchers
	AnyChar          // .
	Literal          // Literal c
	CharClass        // [...]: CharClass lo hi (arena range)
	NegatedCharClass // [^...]: NegatedCharClass lo hi (arena range)
	Digit            // \d
	NotDigit         // \D
	Word             // \w
	NotWord          // \W
	Whitespace       // \s
	NotWhitespace    // \S
)

// String returns a human-readable name for the opcode.
func (op Opcode) String() string {
	switch op {
	case End:
		return "End"
	case StartAnchor:
		return "StartAnchor"
	case EndAnchor:
		return "EndAnchor"
	case ZeroOrOne:
		return "ZeroOrOne"
	case ZeroOrMore:
		return "ZeroOrMore"
	case OneOrMore:
		return "OneOrMore"
	case AnyChar:
		return "AnyChar"
	case Literal:
		return "Literal"
	case CharClass:
		return "CharClass"
	case NegatedCharClass:
		return "NegatedCharClass"
	case Digit:
		return "Digit"
	case NotDigit:
		return "NotDigit"
	case Word:
		return "Word"
	case NotWord:
		return "NotWord"
	case Whitespace:
		return "Whitespace"
	case NotWhitespace:
		return "NotWhitespace"
	default:
		return fmt.Sprintf("Opcode(%d)", op)
	}
}

// IsQuantifier reports whether op modifies the instruction before it.
func (op Opcode) IsQuantifier() bool {
	return op == ZeroOrOne || op == ZeroOrMore || op == OneOrMore
}

// IsClass reports whether op carries an arena range.
func (op Opcode) IsClass() bool {
	return op == CharClass || op == NegatedCharClass
}

// escapeOps maps the byte after a backslash to its class opcode.
var escapeOps = map[byte]Opcode{
	'd': Digit,
	'D': NotDigit,
	'w': Word,
	'W': NotWord,
	's': Whitespace,
	'S': NotWhitespace,
}

// IsMetaMarker reports whether c names a meta class when escaped (\d, \w, \s and complements).
func IsMetaMarker(c byte) bool {
	_, ok := escapeOps[c]
	return ok
}
