// gsgrep - a small grep
//
// Searches files for lines matching a pattern written in a compact regular
// expression dialect: . ^ $ * + ? [...] [^...] \d \D \w \W \s \S.
// Uses manual argument parsing so options may follow operands and short
// flags may be bundled.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/pkclsoft/gsgrep"
)

// version is set at build time via -ldflags.
// For development builds, it will be "dev".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Exit statuses.
const (
	exitMatch   = 0
	exitNoMatch = 1
	exitError   = 2
)

const (
	shortUsage = "usage: gsgrep [-inHhRvclqoF] [-e pattern] [-j N] [--engine=tiny|coregex] (pattern) [files...]"
	longUsage  = `Matching:
  -e pattern        use pattern (multiple allowed; any may match)
  -i                ignore ASCII case
  -v                select non-matching lines
  -F                patterns are fixed strings
  --dotall          let '.' match '\n' and '\r'
  --engine=NAME     tiny (default) or coregex (RE2 syntax, with coregex's
                    own matching defects)

Output:
  -n                prefix lines with line numbers
  -H                always print file names
  -h                never print file names
  -o                print only the matched parts
  -c                print only a count of selected lines per file
  -l                print only names of files with selected lines
  -q                print nothing, exit 0 on first match
  --color[=WHEN]    highlight matches: auto, always, never

Input:
  -R, -r            search directories recursively
  -j N              scan N files in parallel (default: number of CPUs)
  --binary-files=TYPE
                    binary, text or without-match

Debugging:
  -da               print compiled program to stderr and exit
  --debug           trace the search to stderr

Other:
  --help            show this help message
  --version         show gsgrep version and exit

Exit status is 0 if a line was selected, 1 if none, 2 on error.
`
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command line and returns the exit status.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args)
	if err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(stderr, shortUsage)
		} else {
			fmt.Fprintf(stderr, "gsgrep: %v\n%s\n", err, shortUsage)
		}
		return exitError
	}

	if opts.help {
		fmt.Fprintf(stdout, "gsgrep %s - a small grep\n\n%s\n\n%s", version, shortUsage, longUsage)
		return exitMatch
	}
	if opts.version {
		fmt.Fprintf(stdout, "gsgrep version %s\n", version)
		fmt.Fprintf(stdout, "  commit: %s\n", commit)
		fmt.Fprintf(stdout, "  built:  %s\n", date)
		return exitMatch
	}

	if opts.debugAsm {
		for _, p := range opts.patterns {
			pat, err := gsgrep.CompileWithOptions(p, gsgrep.Options{
				DotAll:     opts.config.DotAll,
				IgnoreCase: opts.config.IgnoreCase,
			})
			if err != nil {
				fmt.Fprintf(stderr, "gsgrep: %v\n", err)
				return exitError
			}
			fmt.Fprint(stderr, pat.Disassemble())
		}
		return exitMatch
	}

	// Buffered output for performance
	out := bufio.NewWriter(stdout)
	defer out.Flush()

	config := opts.config
	config.Output = out
	config.Stdin = stdin
	config.Stderr = stderr
	config.Color = useColor(opts.color, stdout)
	if opts.debug {
		config.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	res, err := gsgrep.Search(ctx, opts.patterns, opts.paths, &config)
	if err != nil {
		fmt.Fprintf(stderr, "gsgrep: %v\n", err)
		return exitError
	}
	return exitStatus(res, config.Quiet)
}

// exitStatus maps a search result to the process exit status. With -q a
// match wins over errors on other files.
func exitStatus(res *gsgrep.Result, quiet bool) int {
	switch {
	case quiet && res.Matched:
		return exitMatch
	case res.Errors > 0:
		return exitError
	case res.Matched:
		return exitMatch
	default:
		return exitNoMatch
	}
}

// useColor resolves --color against the output stream.
func useColor(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
