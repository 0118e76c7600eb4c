// Package output formats search results the way grep prints them.
package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/pkclsoft/gsgrep/internal/runtime"
)

// Options controls what the printer emits for each matching line.
type Options struct {
	// LineNumbers prefixes each line with its 1-based number.
	LineNumbers bool

	// OnlyMatching prints each match on its own line instead of the whole line.
	OnlyMatching bool

	// Color highlights matches, file names, line numbers and separators.
	Color bool
}

// styles holds the ANSI styles used when color is enabled.
type styles struct {
	match     lipgloss.Style
	filename  lipgloss.Style
	lineNum   lipgloss.Style
	separator lipgloss.Style
}

func newStyles() *styles {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.ANSI)

	return &styles{
		match:     raw(r).Foreground(lipgloss.Color("1")).Bold(true),
		filename:  raw(r).Foreground(lipgloss.Color("5")),
		lineNum:   raw(r).Foreground(lipgloss.Color("2")),
		separator: raw(r).Foreground(lipgloss.Color("6")),
	}
}

// raw returns a style that leaves the rendered bytes untouched apart from
// the escape sequences it adds.
func raw(r *lipgloss.Renderer) lipgloss.Style {
	return r.NewStyle().TabWidth(lipgloss.NoTabConversion)
}

// Printer writes matching lines, counts and file names.
// It holds no per-file state and is safe for concurrent use.
type Printer struct {
	opts   Options
	styles *styles // nil when color is disabled
}

// NewPrinter creates a printer with the given options.
func NewPrinter(opts Options) *Printer {
	p := &Printer{opts: opts}
	if opts.Color {
		p.styles = newStyles()
	}
	return p
}

// Options returns the printer configuration.
func (p *Printer) Options() Options {
	return p.opts
}

// Line prints one selected line. label is the file name prefix ("" for none)
// and matches, if any, are highlighted. With OnlyMatching each non-empty
// match is printed on its own line instead.
func (p *Printer) Line(w io.Writer, label string, lineNum int, line string, matches []runtime.Match) error {
	if p.opts.OnlyMatching {
		for _, m := range matches {
			if m.Length == 0 {
				continue
			}
			text := p.paint(p.matchStyle(), line[m.Start:m.End()])
			if _, err := io.WriteString(w, p.prefix(label, lineNum)+text+"\n"); err != nil {
				return err
			}
		}
		return nil
	}

	_, err := io.WriteString(w, p.prefix(label, lineNum)+p.highlight(line, matches)+"\n")
	return err
}

// Count prints the number of selected lines in a file.
func (p *Printer) Count(w io.Writer, label string, n int) error {
	var sb strings.Builder
	if label != "" {
		sb.WriteString(p.paint(p.filenameStyle(), label))
		sb.WriteString(p.paint(p.separatorStyle(), ":"))
	}
	sb.WriteString(strconv.Itoa(n))
	sb.WriteByte('\n')
	_, err := io.WriteString(w, sb.String())
	return err
}

// FileName prints the name of a file that contains a selected line.
func (p *Printer) FileName(w io.Writer, name string) error {
	_, err := io.WriteString(w, p.paint(p.filenameStyle(), name)+"\n")
	return err
}

// Binary reports a match in a binary file without printing its content.
func (p *Printer) Binary(w io.Writer, name string) error {
	_, err := fmt.Fprintf(w, "Binary file %s matches\n", name)
	return err
}

// prefix renders "label:lineNum:" with the parts that are enabled.
func (p *Printer) prefix(label string, lineNum int) string {
	var sb strings.Builder
	if label != "" {
		sb.WriteString(p.paint(p.filenameStyle(), label))
		sb.WriteString(p.paint(p.separatorStyle(), ":"))
	}
	if p.opts.LineNumbers {
		sb.WriteString(p.paint(p.lineNumStyle(), strconv.Itoa(lineNum)))
		sb.WriteString(p.paint(p.separatorStyle(), ":"))
	}
	return sb.String()
}

// highlight wraps every non-empty match of line in the match style.
func (p *Printer) highlight(line string, matches []runtime.Match) string {
	if p.styles == nil || len(matches) == 0 {
		return line
	}
	var sb strings.Builder
	prev := 0
	for _, m := range matches {
		if m.Length == 0 || m.Start < prev || m.End() > len(line) {
			continue
		}
		sb.WriteString(line[prev:m.Start])
		sb.WriteString(p.paint(p.matchStyle(), line[m.Start:m.End()]))
		prev = m.End()
	}
	sb.WriteString(line[prev:])
	return sb.String()
}

func (p *Printer) paint(style *lipgloss.Style, s string) string {
	if style == nil || s == "" {
		return s
	}
	return style.Render(s)
}

func (p *Printer) matchStyle() *lipgloss.Style {
	if p.styles == nil {
		return nil
	}
	return &p.styles.match
}

func (p *Printer) filenameStyle() *lipgloss.Style {
	if p.styles == nil {
		return nil
	}
	return &p.styles.filename
}

func (p *Printer) lineNumStyle() *lipgloss.Style {
	if p.styles == nil {
		return nil
	}
	return &p.styles.lineNum
}

func (p *Printer) separatorStyle() *lipgloss.Style {
	if p.styles == nil {
		return nil
	}
	return &p.styles.separator
}
