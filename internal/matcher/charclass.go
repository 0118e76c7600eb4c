package matcher

import "github.com/pkclsoft/gsgrep/internal/compiler"

// Byte classification tables, indexed by byte value.
var (
	digitTable [256]bool // \d: 0-9
	spaceTable [256]bool // \s: space, \t, \n, \v, \f, \r
	wordTable  [256]bool // \w: a-z, A-Z, 0-9, _
)

func init() {
	for c := '0'; c <= '9'; c++ {
		digitTable[c] = true
		wordTable[c] = true
	}
	for c := 'a'; c <= 'z'; c++ {
		wordTable[c] = true
	}
	for c := 'A'; c <= 'Z'; c++ {
		wordTable[c] = true
	}
	wordTable['_'] = true

	for _, c := range []byte{' ', '\t', '\n', '\v', '\f', '\r'} {
		spaceTable[c] = true
	}
}

// matchMeta matches c against the class named by an escaped marker byte.
// Any other marker is an escaped literal.
func matchMeta(c, marker byte) bool {
	switch marker {
	case 'd':
		return digitTable[c]
	case 'D':
		return !digitTable[c]
	case 'w':
		return wordTable[c]
	case 'W':
		return !wordTable[c]
	case 's':
		return spaceTable[c]
	case 'S':
		return !spaceTable[c]
	default:
		return c == marker
	}
}

// inClass reports whether c is a member of a bracket expression.
// Members are scanned positionally: an escape pair, a lo-hi range, or a literal byte.
// A '-' that cannot form a range (first, last, or after a range) is a literal.
func inClass(c byte, members []byte) bool {
	for i := 0; i < len(members); {
		m := members[i]
		switch {
		case m == '\\' && i+1 < len(members):
			if matchMeta(c, members[i+1]) {
				return true
			}
			i += 2
		case m != '-' && i+2 < len(members) && members[i+1] == '-':
			if c != '-' && c >= m && c <= members[i+2] {
				return true
			}
			i += 3
		default:
			if c == m {
				return true
			}
			i++
		}
	}
	return false
}

// matchOne applies the single-byte rules of a non-quantifier instruction.
func matchOne(prog *compiler.Program, in compiler.Inst, c byte) bool {
	switch in.Op {
	case compiler.AnyChar:
		return prog.DotAll || (c != '\n' && c != '\r')
	case compiler.Literal:
		return c == in.Char
	case compiler.CharClass:
		return inClass(c, prog.Members(in))
	case compiler.NegatedCharClass:
		return !inClass(c, prog.Members(in))
	case compiler.Digit:
		return digitTable[c]
	case compiler.NotDigit:
		return !digitTable[c]
	case compiler.Word:
		return wordTable[c]
	case compiler.NotWord:
		return !wordTable[c]
	case compiler.Whitespace:
		return spaceTable[c]
	case compiler.NotWhitespace:
		return !spaceTable[c]
	default:
		// Anchors, quantifiers and End never consume a byte.
		return false
	}
}
