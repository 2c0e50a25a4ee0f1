package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"envlist/internal/config"
	"envlist/internal/constants"
	"envlist/internal/logger"
	"envlist/internal/render"
	"envlist/internal/version"

	"github.com/spf13/pflag"
)

// ParseError wraps argument parsing errors and points at the offending argument.
type ParseError struct {
	Args    []string // The full argument list passed to Parse
	Index   int      // The index where the error occurred
	Message string   // The specific error message, %o is replaced by the failing option
}

func (e *ParseError) Error() string {
	indent := "   "

	cmdLineParts := []string{version.CommandName}
	for i := 0; i <= e.Index && i < len(e.Args); i++ {
		cmdLineParts = append(cmdLineParts, e.Args[i])
	}
	cmdLineStr := "'" + strings.Join(cmdLineParts, " ") + "'"

	// Indent + ' + command + space + previous args
	caretOffset := len(indent) + 1 + len(version.CommandName) + 1
	for i := 0; i < e.Index && i < len(e.Args); i++ {
		caretOffset += len(e.Args[i]) + 1
	}
	pointerLine := strings.Repeat(" ", caretOffset) + "^"

	failingOpt := ""
	if e.Index >= 0 && e.Index < len(e.Args) {
		failingOpt = e.Args[e.Index]
	}
	formattedMsg := strings.ReplaceAll(e.Message, "%o", "'"+failingOpt+"'")

	out := fmt.Sprintf("Error in command line:\n\n%s%s\n%s\n\n%s%s\n", indent, cmdLineStr, pointerLine, indent, formattedMsg)
	out += fmt.Sprintf("\n%sRun '%s --help' for usage.\n", indent, version.CommandName)
	return out
}

// Options holds the settings for one run after merging config and flags.
type Options struct {
	Config     config.AppConfig
	LogLevel   slog.Level
	Help       bool
	Version    bool
	ConfigShow bool

	flags *pflag.FlagSet
}

// Usage returns the usage text for the flag set the options were parsed with.
func (o Options) Usage() string {
	if o.flags == nil {
		return GetUsage(NewFlagSet(o.Config))
	}
	return GetUsage(o.flags)
}

// Parse validates args and merges them over conf.
// No arguments at all yields the configuration unchanged.
func Parse(args []string, conf config.AppConfig) (Options, error) {
	fs := NewFlagSet(conf)

	if err := validateArgs(fs, args); err != nil {
		return Options{}, err
	}
	if err := fs.Parse(args); err != nil {
		return Options{}, &ParseError{Args: args, Index: len(args) - 1, Message: err.Error()}
	}
	if fs.NArg() > 0 {
		return Options{}, &ParseError{Args: args, Index: len(args) - fs.NArg(), Message: "Unexpected argument %o"}
	}

	opts := Options{Config: conf, flags: fs}
	opts.Config.Input.EnvFile, _ = fs.GetString("env-file")
	opts.Config.Input.SkipBlank, _ = fs.GetBool("skip-blank")
	opts.Config.Input.Check, _ = fs.GetBool("check")
	opts.Config.Output.Format, _ = fs.GetString("format")
	opts.Config.Output.Service, _ = fs.GetString("service")
	opts.ConfigShow, _ = fs.GetBool("config-show")
	opts.Help, _ = fs.GetBool("help")
	opts.Version, _ = fs.GetBool("version")

	if opts.Config.Input.EnvFile == "" {
		return Options{}, &ParseError{Args: args, Index: flagIndex(args, "env-file", "e"), Message: "%o requires a file name"}
	}
	if fs.Changed("format") && !render.IsFormat(opts.Config.Output.Format) {
		return Options{}, &ParseError{
			Args:    args,
			Index:   valueIndex(args, "format", "o"),
			Message: "Unknown output format %o, expected one of " + strings.Join(constants.Formats, ", "),
		}
	}

	level, err := logger.ParseLevel(conf.Log.Level)
	if err != nil {
		level = logger.LevelNotice
	}
	if verbose, _ := fs.GetBool("verbose"); verbose {
		level = min(level, logger.LevelInfo)
		opts.Config.Log.Level = "info"
	}
	if debug, _ := fs.GetBool("debug"); debug {
		level = min(level, logger.LevelDebug)
		opts.Config.Log.Level = "debug"
	}
	opts.LogLevel = level

	return opts, nil
}

// validateArgs walks args the way pflag will and reports the first argument
// that is not a known flag, or a flag missing its value.
func validateArgs(fs *pflag.FlagSet, args []string) error {
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if arg == "--" {
			if i+1 < len(args) {
				return &ParseError{Args: args, Index: i + 1, Message: "Unexpected argument %o"}
			}
			return nil
		}
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			return &ParseError{Args: args, Index: i, Message: "Unexpected argument %o"}
		}

		if strings.HasPrefix(arg, "--") {
			name, _, hasValue := strings.Cut(arg[2:], "=")
			flag := fs.Lookup(name)
			if flag == nil {
				return &ParseError{Args: args, Index: i, Message: "Invalid option %o"}
			}
			if flag.NoOptDefVal == "" && !hasValue {
				if i+1 >= len(args) {
					return &ParseError{Args: args, Index: i, Message: "%o requires a value"}
				}
				i++
			}
			continue
		}

		// Combined short flags, e.g. -bv or -e.env
		shorts := arg[1:]
		for j := 0; j < len(shorts); j++ {
			flag := fs.ShorthandLookup(shorts[j : j+1])
			if flag == nil {
				return &ParseError{Args: args, Index: i, Message: fmt.Sprintf("Invalid option '-%c' in %%o", shorts[j])}
			}
			if flag.NoOptDefVal != "" {
				continue
			}
			if j+1 == len(shorts) {
				if i+1 >= len(args) {
					return &ParseError{Args: args, Index: i, Message: "%o requires a value"}
				}
				i++
			}
			break
		}
	}
	return nil
}

// flagIndex returns the index of the last occurrence of a flag in args, or the last index.
func flagIndex(args []string, long, short string) int {
	for i := len(args) - 1; i >= 0; i-- {
		arg := args[i]
		if arg == "--"+long || strings.HasPrefix(arg, "--"+long+"=") || strings.HasPrefix(arg, "-"+short) {
			return i
		}
	}
	return len(args) - 1
}

// valueIndex is flagIndex moved onto the separate value argument, if the flag took one.
func valueIndex(args []string, long, short string) int {
	i := flagIndex(args, long, short)
	if i >= 0 && i+1 < len(args) && (args[i] == "--"+long || args[i] == "-"+short) {
		return i + 1
	}
	return i
}
