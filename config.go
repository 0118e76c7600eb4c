package gsgrep

import (
	"io"
	"log/slog"
	goruntime "runtime"

	"github.com/pkclsoft/gsgrep/internal/search"
)

// BinaryMode selects how inputs containing NUL bytes are handled.
type BinaryMode = search.BinaryMode

// Binary input modes, as accepted by --binary-files.
const (
	BinaryMatches = search.BinaryMatches // report "Binary file X matches"
	BinaryText    = search.BinaryText    // treat as text
	BinarySkip    = search.BinarySkip    // never match
)

// ParseBinaryMode maps "binary", "text" or "without-match" to a BinaryMode.
func ParseBinaryMode(s string) (BinaryMode, error) {
	return search.ParseBinaryMode(s)
}

// Engine names accepted by Config.Engine.
const (
	EngineTiny    = "tiny"
	EngineCoregex = "coregex"
)

// Config holds configuration options for a search.
type Config struct {
	// IgnoreCase folds ASCII letters in patterns and input.
	IgnoreCase bool

	// LineNumbers prefixes each output line with its 1-based line number.
	LineNumbers bool

	// WithFilename controls the file name prefix.
	// nil (default) labels named files but not standard input,
	// true labels every input and false labels none.
	WithFilename *bool

	// Recursive descends into directory operands.
	Recursive bool

	// Invert selects non-matching lines.
	Invert bool

	// Count prints only the number of selected lines per input.
	Count bool

	// FilesWithMatches prints only the names of inputs with a selected line.
	FilesWithMatches bool

	// Quiet suppresses output and stops at the first selected line.
	Quiet bool

	// OnlyMatching prints each match on its own line.
	OnlyMatching bool

	// FixedStrings treats patterns as literal strings.
	FixedStrings bool

	// DotAll lets '.' match '\n' and '\r'.
	DotAll bool

	// Engine selects the matcher: "tiny" (default) or "coregex".
	// The coregex engine accepts full RE2 syntax.
	Engine string

	// Color highlights matches with ANSI escapes.
	Color bool

	// Binary selects how binary inputs are handled (default: BinaryMatches).
	Binary BinaryMode

	// Workers is the number of inputs scanned in parallel.
	// Default: runtime.NumCPU()
	Workers int

	// Output receives the search output.
	// Run captures output when nil; Search writes to io.Discard.
	Output io.Writer

	// Stdin is read for "-" operands and when no paths are given.
	// If nil, standard input operands read nothing.
	Stdin io.Reader

	// Stderr receives per-file error reports.
	// If nil, reports are discarded.
	Stderr io.Writer

	// Logger receives debug traces. If nil, nothing is logged.
	Logger *slog.Logger
}

// applyDefaults fills in default values for unset Config fields.
func (c *Config) applyDefaults() {
	if c.Engine == "" {
		c.Engine = EngineTiny
	}
	if c.Workers <= 0 {
		c.Workers = goruntime.NumCPU()
	}
	if c.Output == nil {
		c.Output = io.Discard
	}
	if c.Stderr == nil {
		c.Stderr = io.Discard
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
}

// filenames maps the tri-state WithFilename to the search driver mode.
func (c *Config) filenames() search.FilenameMode {
	switch {
	case c.WithFilename == nil:
		return search.FilenamesDefault
	case *c.WithFilename:
		return search.FilenamesAlways
	default:
		return search.FilenamesNever
	}
}
