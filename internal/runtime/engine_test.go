package runtime

import (
	"errors"
	"strings"
	"testing"

	"github.com/pkclsoft/gsgrep/internal/compiler"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		name    string
		want    Kind
		wantErr bool
	}{
		{"", Tiny, false},
		{"tiny", Tiny, false},
		{"coregex", Coregex, false},
		{"pcre", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseKind(tt.name)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %q", tt.name)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseKind(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestNewSelectsEngine(t *testing.T) {
	tests := []struct {
		config Config
		want   string
	}{
		{Config{}, "tiny"},
		{Config{Kind: Tiny}, "tiny"},
		{Config{Kind: Coregex}, "coregex"},
		{Config{Kind: Coregex, Fixed: true}, "fixed"},
	}

	for _, tt := range tests {
		e, err := New([]string{"abc"}, tt.config)
		if err != nil {
			t.Fatalf("New(%+v): %v", tt.config, err)
		}
		if e.Name() != tt.want {
			t.Errorf("New(%+v).Name() = %q, want %q", tt.config, e.Name(), tt.want)
		}
	}

	if _, err := New(nil, Config{}); !errors.Is(err, ErrNoPatterns) {
		t.Errorf("New(nil) error = %v, want ErrNoPatterns", err)
	}
}

func TestNewTinyCompileError(t *testing.T) {
	_, err := New([]string{"ok", "[abc"}, Config{})
	if !errors.Is(err, compiler.ErrUnterminatedClass) {
		t.Errorf("error = %v, want ErrUnterminatedClass", err)
	}
}

func TestNewCoregexCompileError(t *testing.T) {
	if _, err := New([]string{"(unclosed"}, Config{Kind: Coregex}); err == nil {
		t.Error("expected error for unbalanced group")
	}
}

func TestEngineFind(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		config   Config
		input    string
		want     Match
		found    bool
	}{
		{"tiny digits", []string{`\d+`}, Config{}, "room 42b", Match{Start: 5, Length: 2}, true},
		{"tiny no match", []string{"xyz"}, Config{}, "abc", Match{}, false},
		{"tiny ignore case", []string{"HeLLo"}, Config{IgnoreCase: true}, "say hello", Match{Start: 4, Length: 5}, true},
		{"tiny ignore case keeps meta", []string{`\D+`}, Config{IgnoreCase: true}, "12AB3", Match{Start: 2, Length: 2}, true},
		{"tiny ignore case class", []string{"[A-C]+"}, Config{IgnoreCase: true}, "xxAbC", Match{Start: 2, Length: 3}, true},
		{"tiny multi leftmost", []string{"world", "hello"}, Config{}, "hello world", Match{Start: 0, Length: 5}, true},
		{"tiny multi longest tie", []string{"ab", "abc"}, Config{}, "xabc", Match{Start: 1, Length: 3}, true},
		{"tiny dotall", []string{"a.b"}, Config{DotAll: true}, "a\rb", Match{Start: 0, Length: 3}, true},
		{"coregex alternation", []string{"cat|dog"}, Config{Kind: Coregex}, "hotdog", Match{Start: 3, Length: 3}, true},
		{"coregex multi", []string{"x{2}", "q"}, Config{Kind: Coregex}, "axxq", Match{Start: 1, Length: 2}, true},
		{"coregex ignore case", []string{"abc"}, Config{Kind: Coregex, IgnoreCase: true}, "xABC", Match{Start: 1, Length: 3}, true},
		{"fixed", []string{"a.c"}, Config{Fixed: true}, "abc a.c", Match{Start: 4, Length: 3}, true},
		{"fixed ignore case", []string{"NEEDLE"}, Config{Fixed: true, IgnoreCase: true}, "hay needle", Match{Start: 4, Length: 6}, true},
		{"fixed no match", []string{"zzz"}, Config{Fixed: true}, "abc", Match{}, false},
		{"fixed empty pattern", []string{""}, Config{Fixed: true}, "abc", Match{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := New(tt.patterns, tt.config)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			got, ok := e.Find(tt.input)
			if ok != tt.found {
				t.Fatalf("Find(%q) found = %v, want %v", tt.input, ok, tt.found)
			}
			if ok && got != tt.want {
				t.Errorf("Find(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestEngineFindAll(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		config   Config
		input    string
		want     []Match
	}{
		{"tiny", []string{`\d+`}, Config{}, "a1b23", []Match{{Start: 1, Length: 1}, {Start: 3, Length: 2}}},
		{"tiny multi", []string{"a", "b"}, Config{}, "xaby", []Match{{Start: 1, Length: 1}, {Start: 2, Length: 1}}},
		{"tiny anchored", []string{"^a"}, Config{}, "aaa", []Match{{Start: 0, Length: 1}}},
		{"coregex", []string{"[0-9]+"}, Config{Kind: Coregex}, "a1b23", []Match{{Start: 1, Length: 1}, {Start: 3, Length: 2}}},
		{"fixed", []string{"ab"}, Config{Fixed: true}, "abxab", []Match{{Start: 0, Length: 2}, {Start: 3, Length: 2}}},
		{"fixed none", []string{"q"}, Config{Fixed: true}, "abc", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := New(tt.patterns, tt.config)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			got := e.FindAll(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("FindAll(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("FindAll(%q)[%d] = %+v, want %+v", tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestTinyDisassemble(t *testing.T) {
	e, err := NewTiny([]string{"ab", "[0-9]"}, Config{})
	if err != nil {
		t.Fatalf("NewTiny: %v", err)
	}
	if len(e.Programs()) != 2 {
		t.Fatalf("Programs() = %d, want 2", len(e.Programs()))
	}
	out := e.Disassemble()
	if !strings.Contains(out, `; pattern "ab"`) || !strings.Contains(out, "CharClass [0-9]") {
		t.Errorf("Disassemble() =\n%s", out)
	}
}

func TestCoregexPattern(t *testing.T) {
	e, err := NewCoregex([]string{"a", "b"}, Config{IgnoreCase: true, DotAll: true})
	if err != nil {
		t.Fatalf("NewCoregex: %v", err)
	}
	if got, want := e.Pattern(), "(?is)(?:a)|(?:b)"; got != want {
		t.Errorf("Pattern() = %q, want %q", got, want)
	}
}
