// Package gsgrep provides a small line-oriented search tool and the regular
// expression compiler and matcher behind it.
//
// The pattern dialect is deliberately compact:
//   - '.' any byte except '\n' and '\r' (see [Options.DotAll])
//   - '^' and '$' anchor to the start and end of the line
//   - '*', '+' greedy repetition, '?' optional
//   - '[abc]', '[a-z]', '[^...]' character classes
//   - '\d', '\w', '\s' and their complements '\D', '\W', '\S'
//   - '\' before any other byte matches that byte literally
//
// Patterns compile to at most 29 elements and 40 bytes of class storage.
// Matching is byte-oriented and backtracking, and reports the leftmost match.
//
// # Quick Start
//
// Matching a single line:
//
//	p := gsgrep.MustCompile(`\d+`)
//	m, ok := p.Find("room 42b")
//	// m.Start == 5, m.Length == 2, ok == true
//
// Filtering a stream:
//
//	out, err := gsgrep.Run("^error", os.Stdin, &gsgrep.Config{LineNumbers: true})
//
// # Searching Files
//
// [Search] runs a full search over files and directories the way the gsgrep
// command does: inputs are scanned in parallel and printed in order.
//
//	res, err := gsgrep.Search(ctx, []string{"TODO"}, []string{"."}, &gsgrep.Config{
//	    Recursive: true,
//	    Output:    os.Stdout,
//	    Stderr:    os.Stderr,
//	})
//
// # Engines
//
// The built-in engine ("tiny") implements the dialect above. Setting
// [Config.Engine] to "coregex" uses the coregex RE2-syntax engine instead,
// and [Config.FixedStrings] searches for literal strings with Aho-Corasick.
// The coregex engine reports whatever coregex matches, including the
// library's own defects.
//
// # Error Handling
//
// Bad patterns are reported as [*CompileError], which matches one of
// [ErrDanglingEscape], [ErrUnterminatedClass], [ErrPatternTooComplex] or
// [ErrClassTooLarge] with errors.Is. Unreadable inputs are [*FileError]
// values, reported and counted by [Search] without stopping it.
//
// # Thread Safety
//
// A compiled [Pattern] is immutable and safe for concurrent use.
// Separate compilations never share storage.
package gsgrep
