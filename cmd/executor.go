package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"envlist/internal/config"
	"envlist/internal/envlines"
	"envlist/internal/logger"
	"envlist/internal/paths"
	"envlist/internal/render"
	"envlist/internal/sitepoll"
	"envlist/internal/version"
)

// Execute runs the command described by opts, writing results to stdout.
// It returns the process exit code.
func Execute(ctx context.Context, opts Options, stdout io.Writer) int {
	defer logger.Recover(ctx)

	logger.Debug(ctx, "Execution Options -> %+v", opts.Config)

	switch {
	case opts.Help:
		fmt.Fprint(stdout, opts.Usage())
		return 0
	case opts.Version:
		fmt.Fprintln(stdout, version.String())
		return 0
	case opts.ConfigShow:
		return handleConfigShow(ctx, opts, stdout)
	}

	return handleEnvList(ctx, opts, stdout)
}

func handleEnvList(ctx context.Context, opts Options, stdout io.Writer) int {
	envFile := opts.Config.Input.EnvFile
	logger.Info(ctx, "Reading '%s'", envFile)

	lines, err := envlines.Read(envFile)
	if err != nil {
		logger.Error(ctx, err)
		return 1
	}
	if opts.Config.Input.SkipBlank {
		lines = envlines.FilterBlank(lines)
	}
	logger.Debug(ctx, "Kept %d lines from '%s'", len(lines), envFile)
	for i, line := range lines {
		logger.Trace(ctx, "%d: %q", i, line)
	}
	if opts.Config.Input.Check {
		checkSitePoll(ctx, envFile, lines)
	}

	renderOpts := render.Options{
		Service:    opts.Config.Output.Service,
		WorkingDir: envFileDir(envFile),
	}
	if err := render.Render(ctx, stdout, opts.Config.Output.Format, lines, renderOpts); err != nil {
		logger.Error(ctx, err)
		return 1
	}
	return 0
}

// checkSitePoll warns about every setting the site poller would reject.
// The list is still printed; the warnings never change the exit code.
func checkSitePoll(ctx context.Context, envFile string, lines []string) {
	problems := sitepoll.Check(lines)
	for _, p := range problems {
		logger.Warn(ctx, "'%s': %s", envFile, p)
	}
	if len(problems) == 0 {
		logger.Info(ctx, "'%s' has every setting the site poller needs", envFile)
	}
}

func handleConfigShow(ctx context.Context, opts Options, stdout io.Writer) int {
	source := opts.Config.Path
	if source == "" {
		source = paths.GetConfigFilePath() + " (not found, using defaults)"
	}
	logger.Notice(ctx, "Configuration file: '%s'", source)

	data, err := config.Marshal(opts.Config)
	if err != nil {
		logger.Error(ctx, "Failed to render configuration: %v", err)
		return 1
	}
	if _, err := stdout.Write(data); err != nil {
		logger.Error(ctx, "Failed to write configuration: %v", err)
		return 1
	}
	return 0
}

// envFileDir returns the absolute directory of envFile, used as the compose working directory.
func envFileDir(envFile string) string {
	dir := filepath.Dir(envFile)
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(paths.GetWorkingDir(), dir)
}
