package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkclsoft/gsgrep"
)

// errUsage is returned when no pattern is given.
var errUsage = errors.New(shortUsage)

// options is the parsed command line.
type options struct {
	patterns []string
	paths    []string
	config   gsgrep.Config

	color    string // auto, always or never
	debug    bool
	debugAsm bool
	help     bool
	version  bool
}

// parseArgs parses command-line arguments (without the program name).
// Options may appear anywhere before "--", so "gsgrep foo -n file" works, and
// short flags may be bundled as in "-inH". The first operand is the pattern
// unless -e was given.
//
//nolint:gocyclo,funlen // CLI argument parsing is inherently complex
func parseArgs(args []string) (*options, error) {
	opts := &options{color: "auto"}
	var operands []string
	explicit := false

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			operands = append(operands, args[i+1:]...)
			break
		}
		if arg == "-" || !strings.HasPrefix(arg, "-") {
			operands = append(operands, arg)
			continue
		}

		if strings.HasPrefix(arg, "--") {
			name, value, hasValue := strings.Cut(arg[2:], "=")
			needValue := func() (string, error) {
				if hasValue {
					return value, nil
				}
				if i+1 >= len(args) {
					return "", fmt.Errorf("option requires an argument: --%s", name)
				}
				i++
				return args[i], nil
			}

			switch name {
			case "engine":
				v, err := needValue()
				if err != nil {
					return nil, err
				}
				if v != gsgrep.EngineTiny && v != gsgrep.EngineCoregex {
					return nil, fmt.Errorf("unknown engine: %s", v)
				}
				opts.config.Engine = v
			case "color", "colour":
				if !hasValue {
					value = "auto"
				}
				switch value {
				case "auto", "always", "never":
					opts.color = value
				default:
					return nil, fmt.Errorf("invalid color mode: %s", value)
				}
			case "binary-files":
				v, err := needValue()
				if err != nil {
					return nil, err
				}
				mode, err := gsgrep.ParseBinaryMode(v)
				if err != nil {
					return nil, err
				}
				opts.config.Binary = mode
			case "dotall":
				opts.config.DotAll = true
			case "debug":
				opts.debug = true
			case "help":
				opts.help = true
			case "version":
				opts.version = true
			default:
				return nil, fmt.Errorf("unknown option: %s", arg)
			}
			continue
		}

		if arg == "-da" {
			opts.debugAsm = true
			continue
		}

		// Bundled short flags: -inH, -e pattern, -epattern, -j4.
		for j := 1; j < len(arg); j++ {
			c := arg[j]
			switch c {
			case 'i':
				opts.config.IgnoreCase = true
			case 'n':
				opts.config.LineNumbers = true
			case 'H':
				t := true
				opts.config.WithFilename = &t
			case 'h':
				f := false
				opts.config.WithFilename = &f
			case 'R', 'r':
				opts.config.Recursive = true
			case 'v':
				opts.config.Invert = true
			case 'c':
				opts.config.Count = true
			case 'l':
				opts.config.FilesWithMatches = true
			case 'q':
				opts.config.Quiet = true
			case 'o':
				opts.config.OnlyMatching = true
			case 'F':
				opts.config.FixedStrings = true
			case 'e', 'j':
				value := arg[j+1:]
				if value == "" {
					if i+1 >= len(args) {
						return nil, fmt.Errorf("option requires an argument: -%c", c)
					}
					i++
					value = args[i]
				}
				if c == 'e' {
					opts.patterns = append(opts.patterns, value)
					explicit = true
				} else {
					n, err := strconv.Atoi(value)
					if err != nil || n < 1 {
						return nil, fmt.Errorf("invalid number of workers: %s", value)
					}
					opts.config.Workers = n
				}
				j = len(arg)
			default:
				return nil, fmt.Errorf("unknown option: -%c", c)
			}
		}
	}

	if opts.help || opts.version {
		return opts, nil
	}
	if !explicit {
		if len(operands) == 0 {
			return nil, errUsage
		}
		opts.patterns = append(opts.patterns, operands[0])
		operands = operands[1:]
	}
	opts.paths = operands
	return opts, nil
}
