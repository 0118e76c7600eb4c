package runtime

import (
	"strings"

	"github.com/pkclsoft/gsgrep/internal/compiler"
)

// LiteralInfo holds literal substrings every match of a program must contain.
// They allow a line to be rejected with plain string searches before the
// backtracking matcher runs.
type LiteralInfo struct {
	Prefix   string   // Anchored prefix (^prefix) - use HasPrefix
	Suffix   string   // Anchored suffix (suffix$) - use HasSuffix
	Required []string // Must appear somewhere - use strings.Contains
}

// ExtractLiterals collects the mandatory literal runs of prog.
// Returns nil if the program has none.
//
// It is conservative: a literal followed by ? or * is optional and ends the
// current run; a literal followed by + is required once and also ends it.
// It must never reject a line that matches.
//
// Examples:
//   - "^error.*failed$" -> prefix="error", suffix="failed"
//   - "colou?r" -> required=["colo", "r"]
//   - "\d+x" -> required=["x"]
func ExtractLiterals(prog *compiler.Program) *LiteralInfo {
	code := prog.Code[:len(prog.Code)-1] // drop End
	info := &LiteralInfo{}

	start := 0
	if prog.Anchored() {
		start = 1
		info.Prefix, _ = literalRun(code, start)
	}

	if n := len(code); n > 0 && code[n-1].Op == compiler.EndAnchor {
		info.Suffix = literalSuffix(code[start : n-1])
	}

	for i := start; i < len(code); {
		run, next := literalRun(code, i)
		if run != "" {
			info.Required = append(info.Required, run)
		}
		if next == i {
			next++
		}
		i = next
	}

	if info.Prefix == "" && info.Suffix == "" && len(info.Required) == 0 {
		return nil
	}
	return info
}

// literalRun returns the mandatory literal bytes starting at code[i] and the
// index where scanning should resume.
func literalRun(code []compiler.Inst, i int) (string, int) {
	var sb strings.Builder
	for i < len(code) && code[i].Op == compiler.Literal {
		var next compiler.Opcode = compiler.End
		if i+1 < len(code) {
			next = code[i+1].Op
		}
		switch next {
		case compiler.ZeroOrOne, compiler.ZeroOrMore:
			return sb.String(), i + 2
		case compiler.OneOrMore:
			sb.WriteByte(code[i].Char)
			return sb.String(), i + 2
		}
		sb.WriteByte(code[i].Char)
		i++
	}
	return sb.String(), i
}

// literalSuffix returns the unquantified literal bytes at the end of code.
func literalSuffix(code []compiler.Inst) string {
	j := len(code)
	for j > 0 && code[j-1].Op == compiler.Literal {
		j--
	}
	b := make([]byte, 0, len(code)-j)
	for _, in := range code[j:] {
		b = append(b, in.Char)
	}
	return string(b)
}

// CanReject checks if the literal info can definitely reject the string
// without running the matcher. Returns true if the string cannot match.
// A nil LiteralInfo never rejects.
func (li *LiteralInfo) CanReject(s string) bool {
	if li == nil {
		return false
	}
	if li.Prefix != "" && !strings.HasPrefix(s, li.Prefix) {
		return true
	}
	if li.Suffix != "" && !strings.HasSuffix(s, li.Suffix) {
		return true
	}
	for _, req := range li.Required {
		if !strings.Contains(s, req) {
			return true
		}
	}
	return false
}
