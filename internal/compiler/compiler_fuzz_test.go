package compiler

import (
	"errors"
	"testing"
)

// FuzzCompile checks that Compile never panics and that every accepted
// program is well formed for the matcher.
func FuzzCompile(f *testing.F) {
	seeds := []string{
		"",
		"abc",
		"^abc$",
		"a*b+c?",
		`\d+\s*\w`,
		"[a-z]+[^0-9]",
		`[\d\-]`,
		`[\]`,
		`\`,
		"[",
		"[^",
		"***",
		"^*$",
		"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, pattern string) {
		prog, err := Compile(pattern, Options{})
		if err != nil {
			if prog != nil {
				t.Fatalf("non-nil program with error %v", err)
			}
			var ce *Error
			if !errors.As(err, &ce) {
				t.Fatalf("error %T is not *Error", err)
			}
			if ce.Offset < 0 || ce.Offset > len(pattern) {
				t.Fatalf("offset %d outside pattern of length %d", ce.Offset, len(pattern))
			}
			return
		}

		if len(prog.Code) == 0 || len(prog.Code) > MaxInstructions {
			t.Fatalf("len(Code) = %d", len(prog.Code))
		}
		if len(prog.Arena) > MaxClassBytes {
			t.Fatalf("len(Arena) = %d", len(prog.Arena))
		}
		for i, in := range prog.Code {
			last := i == len(prog.Code)-1
			if (in.Op == End) != last {
				t.Fatalf("End at %d in program of %d", i, len(prog.Code))
			}
			if in.Op.IsClass() {
				if in.Lo < 1 || in.Lo > in.Hi || in.Hi >= len(prog.Arena) || prog.Arena[in.Hi] != 0 {
					t.Fatalf("bad class range %d:%d (arena %d)", in.Lo, in.Hi, len(prog.Arena))
				}
			}
			if in.Op.IsQuantifier() {
				if i == 0 {
					t.Fatal("quantifier at start of program")
				}
				prev := prog.Code[i-1].Op
				if prev == StartAnchor || prev.IsQuantifier() {
					t.Fatalf("quantifier after %v", prev)
				}
			}
		}
	})
}
