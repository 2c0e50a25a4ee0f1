package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/user"
	"strings"

	"envlist/internal/constants"
	"envlist/internal/logger"
	"envlist/internal/paths"

	"github.com/adrg/xdg"
	toml "github.com/pelletier/go-toml/v2"
)

// AppConfig holds the application configuration settings.
type AppConfig struct {
	Input  InputConfig  `toml:"input"`
	Output OutputConfig `toml:"output"`
	Log    LogConfig    `toml:"log"`

	// Path is the file the settings were read from, empty when defaults are used.
	Path string `toml:"-"`
}

// InputConfig holds settings about the env file being read.
type InputConfig struct {
	EnvFile   string `toml:"env_file"`
	SkipBlank bool   `toml:"skip_blank"`
	// Check reports settings the site poller would reject.
	Check bool `toml:"check"`
}

// OutputConfig holds settings about what is written to stdout.
type OutputConfig struct {
	Format  string `toml:"format"`
	Service string `toml:"service"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// Default returns the configuration used when no file exists.
func Default() AppConfig {
	return AppConfig{
		Input: InputConfig{
			EnvFile: constants.EnvFileName,
		},
		Output: OutputConfig{
			Format:  constants.DefaultFormat,
			Service: constants.DefaultService,
		},
		Log: LogConfig{
			Level: constants.DefaultLogLevel,
		},
	}
}

// ExpandVariables expands environment variables in the config values.
// It supports:
// - ${XDG_CONFIG_HOME} -> xdg.ConfigHome
// - ${XDG_DATA_HOME}   -> xdg.DataHome
// - ${XDG_STATE_HOME}  -> xdg.StateHome
// - ${XDG_CACHE_HOME}  -> xdg.CacheHome
// - ${HOME}            -> os.UserHomeDir()
// - ${USER}            -> Current username
//
// Anything else expands to an empty string.
func ExpandVariables(val string) string {
	mapper := func(varName string) string {
		switch varName {
		case "XDG_CONFIG_HOME":
			return xdg.ConfigHome
		case "XDG_DATA_HOME":
			return xdg.DataHome
		case "XDG_STATE_HOME":
			return xdg.StateHome
		case "XDG_CACHE_HOME":
			return xdg.CacheHome
		case "HOME":
			home, err := os.UserHomeDir()
			if err != nil {
				return ""
			}
			return home
		case "USER":
			u, err := user.Current()
			if err != nil {
				return os.Getenv("USERNAME") // Fallback for Windows
			}
			return u.Username
		}
		return ""
	}
	return os.Expand(val, mapper)
}

// LoadAppConfig reads the configuration file and returns the configuration.
// A missing file is not an error and the file is never created.
// An unreadable or invalid file is reported and defaults are used.
func LoadAppConfig(ctx context.Context) AppConfig {
	return LoadAppConfigFrom(ctx, paths.GetConfigFilePath())
}

// LoadAppConfigFrom is LoadAppConfig for an explicit path.
func LoadAppConfigFrom(ctx context.Context, path string) AppConfig {
	conf := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Warn(ctx, "Failed to read config file '%s': %v", path, err)
		}
		return conf
	}

	if err := toml.Unmarshal(data, &conf); err != nil {
		logger.Warn(ctx, "Failed to parse config file '%s': %v", path, err)
		return Default()
	}

	conf.Path = path
	conf.Input.EnvFile = ExpandVariables(strings.TrimSpace(conf.Input.EnvFile))
	conf.Log.File = ExpandVariables(strings.TrimSpace(conf.Log.File))
	conf.fillDefaults()
	if _, err := logger.ParseLevel(conf.Log.Level); err != nil {
		logger.Warn(ctx, "Config file '%s': %v, using '%s'", path, err, constants.DefaultLogLevel)
		conf.Log.Level = constants.DefaultLogLevel
	}
	logger.Debug(ctx, "Loaded config file '%s'", path)
	return conf
}

// fillDefaults restores defaults for keys present but left empty.
func (c *AppConfig) fillDefaults() {
	def := Default()
	if c.Input.EnvFile == "" {
		c.Input.EnvFile = def.Input.EnvFile
	}
	if c.Output.Format == "" {
		c.Output.Format = def.Output.Format
	}
	if c.Output.Service == "" {
		c.Output.Service = def.Output.Service
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
}

// Marshal returns the configuration as a TOML document.
func Marshal(conf AppConfig) ([]byte, error) {
	return toml.Marshal(conf)
}
