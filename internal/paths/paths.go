package paths

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"envlist/internal/constants"
	"envlist/internal/version"

	"github.com/adrg/xdg"
)

var (
	// ConfigHomeOverride allows overriding the config home for tests.
	ConfigHomeOverride string
)

// GetConfigHome returns the base directory holding per-application config folders.
func GetConfigHome() string {
	if ConfigHomeOverride != "" {
		return ConfigHomeOverride
	}
	if runtime.GOOS == "darwin" {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config")
	}
	return xdg.ConfigHome
}

// GetConfigDir returns the absolute path to the envlist configuration directory.
func GetConfigDir() string {
	return filepath.Join(GetConfigHome(), strings.ToLower(version.ApplicationName))
}

// GetConfigFilePath returns the absolute path to the envlist.toml file
// (e.g., ~/.config/envlist/envlist.toml).
func GetConfigFilePath() string {
	return filepath.Join(GetConfigDir(), constants.ConfigFileName)
}

// GetWorkingDir returns the process working directory, or "." if it cannot be determined.
func GetWorkingDir() string {
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}
