package constants

// File Names
const (
	EnvFileName    = ".env"
	ConfigFileName = "envlist.toml"
)

// Output formats
const (
	FormatJSON    = "json"
	FormatYAML    = "yaml"
	FormatCompose = "compose"
)

// Defaults
const (
	DefaultFormat   = FormatJSON
	DefaultService  = "app"
	DefaultLogLevel = "notice"
)

// CommentPrefix marks a line that is dropped from the output.
const CommentPrefix = "#"

// Formats lists every output format in the order shown in usage text.
var Formats = []string{FormatJSON, FormatYAML, FormatCompose}
