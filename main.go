package main

import (
	"context"
	"log/slog"
	"os"

	"envlist/cmd"
	"envlist/internal/config"
	"envlist/internal/logger"
)

func main() {
	os.Exit(run())
}

func run() (exitCode int) {
	slog.SetDefault(logger.NewLogger(""))
	ctx := context.Background()

	defer logger.Cleanup()

	// Recover from logger.FatalError so cleanup still runs
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(logger.FatalError); ok {
				exitCode = 1
			} else {
				panic(r)
			}
		}
	}()

	conf := config.LoadAppConfig(ctx)

	opts, err := cmd.Parse(os.Args[1:], conf)
	if err != nil {
		logger.Error(ctx, err.Error())
		return 1
	}

	if opts.Config.Log.File != "" {
		slog.SetDefault(logger.NewLogger(opts.Config.Log.File))
	}
	logger.SetLevel(opts.LogLevel)

	return cmd.Execute(ctx, opts, os.Stdout)
}
