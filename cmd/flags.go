package cmd

import (
	"io"
	"strings"

	"envlist/internal/config"
	"envlist/internal/constants"
	"envlist/internal/version"

	"github.com/spf13/pflag"
)

// NewFlagSet defines the flags used for argument validation and help.
// Defaults come from conf so that flags only override what they name.
func NewFlagSet(conf config.AppConfig) *pflag.FlagSet {
	fs := pflag.NewFlagSet(version.CommandName, pflag.ContinueOnError)
	fs.SortFlags = false
	fs.SetOutput(io.Discard)

	// Input
	fs.StringP("env-file", "e", conf.Input.EnvFile, "Environment file to read")
	fs.BoolP("skip-blank", "b", conf.Input.SkipBlank, "Drop empty lines as well as comments")
	fs.BoolP("check", "c", conf.Input.Check, "Warn about site poller settings that are missing or invalid")

	// Output
	fs.StringP("format", "o", conf.Output.Format, "Output format ("+strings.Join(constants.Formats, ", ")+")")
	fs.StringP("service", "s", conf.Output.Service, "Service name for compose output")

	// Configuration
	fs.Bool("config-show", false, "Show the effective configuration")

	// Modifiers
	fs.BoolP("verbose", "v", false, "Verbose output")
	fs.BoolP("debug", "x", false, "Debug output")

	fs.BoolP("help", "h", false, "Show help")
	fs.BoolP("version", "V", false, "Show version")

	return fs
}
