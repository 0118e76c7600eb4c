package search

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkclsoft/gsgrep/internal/output"
	"github.com/pkclsoft/gsgrep/internal/runtime"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func engine(t *testing.T, pattern string) runtime.Engine {
	t.Helper()
	e, err := runtime.New([]string{pattern}, runtime.Config{})
	if err != nil {
		t.Fatalf("runtime.New(%q): %v", pattern, err)
	}
	return e
}

func TestSearch(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.txt": "alpha\nbeta\ngamma\n",
		"b.txt": "delta\nalphabet\n",
	})
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")

	tests := []struct {
		name    string
		pattern string
		cfg     Config
		opts    output.Options
		want    string
		matched bool
	}{
		{
			name:    "default labels",
			pattern: "alpha",
			want:    a + ":alpha\n" + b + ":alphabet\n",
			matched: true,
		},
		{
			name:    "no filenames with line numbers",
			pattern: "a$",
			cfg:     Config{Filenames: FilenamesNever},
			opts:    output.Options{LineNumbers: true},
			want:    "1:alpha\n2:beta\n3:gamma\n1:delta\n",
			matched: true,
		},
		{
			name:    "invert",
			pattern: "alpha",
			cfg:     Config{Invert: true, Filenames: FilenamesNever},
			want:    "beta\ngamma\ndelta\n",
			matched: true,
		},
		{
			name:    "count",
			pattern: "l",
			cfg:     Config{Count: true},
			want:    a + ":1\n" + b + ":2\n",
			matched: true,
		},
		{
			name:    "files with matches",
			pattern: "^g",
			cfg:     Config{FilesWithMatches: true},
			want:    a + "\n",
			matched: true,
		},
		{
			name:    "only matching",
			pattern: "[lp]+",
			cfg:     Config{Filenames: FilenamesNever},
			opts:    output.Options{OnlyMatching: true},
			want:    "lp\nl\nlp\n",
			matched: true,
		},
		{
			name:    "quiet",
			pattern: "beta",
			cfg:     Config{Quiet: true},
			want:    "",
			matched: true,
		},
		{
			name:    "no match",
			pattern: "omega",
			want:    "",
			matched: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			cfg.Engine = engine(t, tt.pattern)
			cfg.Printer = output.NewPrinter(tt.opts)
			cfg.Workers = 2

			var out bytes.Buffer
			res, err := New(cfg).Search(context.Background(), []Input{{Name: a, Path: a}, {Name: b, Path: b}}, &out)
			if err != nil {
				t.Fatalf("Search: %v", err)
			}
			if got := out.String(); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
			if res.Matched != tt.matched {
				t.Errorf("Matched = %v, want %v", res.Matched, tt.matched)
			}
			if res.Errors != 0 {
				t.Errorf("Errors = %d, want 0", res.Errors)
			}
		})
	}
}

func TestSearchOrdered(t *testing.T) {
	files := make(map[string]string)
	for i := range 40 {
		files[fmt.Sprintf("f%02d.txt", i)] = strings.Repeat("noise\n", i*50) + fmt.Sprintf("hit %d\n", i)
	}
	dir := writeFiles(t, files)

	inputs, errs := Expand([]string{dir}, true)
	if len(errs) != 0 {
		t.Fatalf("Expand errors: %v", errs)
	}
	if len(inputs) != 40 {
		t.Fatalf("Expand returned %d inputs, want 40", len(inputs))
	}

	var out bytes.Buffer
	cfg := Config{Engine: engine(t, `hit \d+`), Filenames: FilenamesNever, Workers: 8}
	if _, err := New(cfg).Search(context.Background(), inputs, &out); err != nil {
		t.Fatalf("Search: %v", err)
	}

	var want strings.Builder
	for i := range 40 {
		fmt.Fprintf(&want, "hit %d\n", i)
	}
	if out.String() != want.String() {
		t.Errorf("output out of order:\n%s", out.String())
	}
}

func TestSearchStdin(t *testing.T) {
	cfg := Config{
		Engine:  engine(t, "b"),
		Stdin:   strings.NewReader("abc\nxyz\nbbb\n"),
		Printer: output.NewPrinter(output.Options{LineNumbers: true}),
	}
	var out bytes.Buffer
	res, err := New(cfg).Search(context.Background(), []Input{{Name: StdinName}}, &out)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got, want := out.String(), "1:abc\n3:bbb\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
	if !res.Matched {
		t.Error("Matched = false")
	}
}

func TestSearchStdinForcedLabel(t *testing.T) {
	cfg := Config{
		Engine:    engine(t, "x"),
		Stdin:     strings.NewReader("x\n"),
		Filenames: FilenamesAlways,
	}
	var out bytes.Buffer
	if _, err := New(cfg).Search(context.Background(), []Input{{Name: StdinName}}, &out); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got, want := out.String(), StdinName+":x\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestSearchMissingFile(t *testing.T) {
	dir := writeFiles(t, map[string]string{"ok.txt": "found\n"})
	ok := filepath.Join(dir, "ok.txt")
	missing := filepath.Join(dir, "missing.txt")

	var out, stderr bytes.Buffer
	cfg := Config{Engine: engine(t, "found"), Stderr: &stderr}
	res, err := New(cfg).Search(context.Background(), []Input{{Name: missing, Path: missing}, {Name: ok, Path: ok}}, &out)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if res.Errors != 1 {
		t.Errorf("Errors = %d, want 1", res.Errors)
	}
	if !res.Matched {
		t.Error("Matched = false, want true")
	}
	if got, want := out.String(), ok+":found\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
	if !strings.HasPrefix(stderr.String(), "gsgrep: "+missing+": ") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestSearchBinary(t *testing.T) {
	dir := writeFiles(t, map[string]string{"bin": "head\x00\nneedle\n"})
	bin := filepath.Join(dir, "bin")

	tests := []struct {
		mode    BinaryMode
		want    string
		matched bool
	}{
		{BinaryMatches, "Binary file " + bin + " matches\n", true},
		{BinaryText, bin + ":needle\n", true},
		{BinarySkip, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			var out bytes.Buffer
			cfg := Config{Engine: engine(t, "needle"), Binary: tt.mode}
			res, err := New(cfg).Search(context.Background(), []Input{{Name: bin, Path: bin}}, &out)
			if err != nil {
				t.Fatalf("Search: %v", err)
			}
			if out.String() != tt.want {
				t.Errorf("output = %q, want %q", out.String(), tt.want)
			}
			if res.Matched != tt.matched {
				t.Errorf("Matched = %v, want %v", res.Matched, tt.matched)
			}
		})
	}
}

func TestSearchCancelled(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a": "x\n"})
	a := filepath.Join(dir, "a")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	_, err := New(Config{Engine: engine(t, "x")}).Search(ctx, []Input{{Name: a, Path: a}}, &out)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if out.Len() != 0 {
		t.Errorf("output after cancel = %q", out.String())
	}
}

func TestParseBinaryMode(t *testing.T) {
	for _, s := range []string{"binary", "text", "without-match"} {
		m, err := ParseBinaryMode(s)
		if err != nil {
			t.Fatalf("ParseBinaryMode(%q): %v", s, err)
		}
		if m.String() != s {
			t.Errorf("ParseBinaryMode(%q).String() = %q", s, m.String())
		}
	}
	if _, err := ParseBinaryMode("hex"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestExpand(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"top.txt":       "",
		"sub/inner.txt": "",
		"sub/deep/z.go": "",
	})

	inputs, errs := Expand(nil, false)
	if len(errs) != 0 || len(inputs) != 1 || !inputs[0].IsStdin() || inputs[0].Name != StdinName {
		t.Errorf("Expand(nil) = %+v, %v", inputs, errs)
	}

	inputs, errs = Expand([]string{"-"}, false)
	if len(errs) != 0 || len(inputs) != 1 || !inputs[0].IsStdin() {
		t.Errorf(`Expand("-") = %+v, %v`, inputs, errs)
	}

	_, errs = Expand([]string{dir}, false)
	if len(errs) != 1 || !errors.Is(errs[0], ErrIsDirectory) {
		t.Errorf("Expand(dir) errors = %v, want ErrIsDirectory", errs)
	}

	inputs, errs = Expand([]string{dir}, true)
	if len(errs) != 0 {
		t.Fatalf("Expand(dir, recursive) errors = %v", errs)
	}
	var got []string
	for _, in := range inputs {
		rel, _ := filepath.Rel(dir, in.Path)
		got = append(got, filepath.ToSlash(rel))
	}
	if want := "sub/deep/z.go,sub/inner.txt,top.txt"; strings.Join(got, ",") != want {
		t.Errorf("walk order = %v, want %s", got, want)
	}
}
