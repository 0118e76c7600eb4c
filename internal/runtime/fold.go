package runtime

import "github.com/pkclsoft/gsgrep/internal/compiler"

// FoldASCII lowercases ASCII letters in s. It returns s unchanged, without
// allocating, when there is nothing to fold. Byte offsets are preserved.
func FoldASCII(s string) string {
	i := 0
	for i < len(s) && !isUpper(s[i]) {
		i++
	}
	if i == len(s) {
		return s
	}

	b := []byte(s)
	for ; i < len(b); i++ {
		if isUpper(b[i]) {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}

// FoldPattern lowercases the literal letters of a pattern so it matches
// FoldASCII'd lines. Escaped meta markers (\D, \W, \S and their lowercase
// forms) keep their case since it changes their meaning.
func FoldPattern(pattern string) string {
	b := []byte(pattern)
	for i := 0; i < len(b); i++ {
		if b[i] == '\\' && i+1 < len(b) {
			i++
			if compiler.IsMetaMarker(b[i]) {
				continue
			}
		}
		if isUpper(b[i]) {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}

func isUpper(c byte) bool {
	return c >= 'A' && c <= 'Z'
}
