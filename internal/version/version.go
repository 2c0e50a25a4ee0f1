package version

import (
	"os"
	"path/filepath"
	"strings"
)

// ApplicationName is the human-readable name of the application.
var ApplicationName = "envlist"

// CommandName is the name of the executable command.
// It is initialized dynamically from the executable filename.
var CommandName = "envlist"

// Version is the current version of the application.
// This is intended to be overwritten at build time using:
// -ldflags "-X envlist/internal/version.Version=v1.YYYYMMDD.N"
var Version = "v0.0.0-dev"

// Commit is the git commit hash of the build.
var Commit = "none"

// BuildDate is the date the binary was built.
var BuildDate = "unknown"

func init() {
	baseName := filepath.Base(os.Args[0])
	// Strip extension (e.g., .exe on Windows)
	CommandName = strings.TrimSuffix(baseName, filepath.Ext(baseName))

	// go run and go test binaries get throwaway names
	if CommandName == "" || strings.EqualFold(CommandName, "main") || strings.HasSuffix(CommandName, ".test") {
		CommandName = "envlist"
	}
}

// String returns the one-line version banner printed by --version.
func String() string {
	return ApplicationName + " " + Version + " (commit " + Commit + ", built " + BuildDate + ")"
}
