package logger

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"envlist/internal/version"
)

// FatalError is a special error used to panic from Fatal logger calls
// This allows the main run loop to recover and perform cleanup before exiting
type FatalError struct{}

// Fatal logs a message with a stack trace at FatalLevel and panics with FatalError.
func Fatal(ctx context.Context, msg any, args ...any) {
	FatalWithStackSkip(ctx, 1, msg, args...)
}

// FatalWithStackSkip is Fatal with skip extra frames left out of the trace.
func FatalWithStackSkip(ctx context.Context, skip int, msg any, args ...any) {
	now := time.Now()

	pc := make([]uintptr, 32)
	n := runtime.Callers(2+skip, pc)
	frames := runtime.CallersFrames(pc[:n])

	var allFrames []runtime.Frame
	for {
		frame, more := frames.Next()
		allFrames = append(allFrames, frame)
		if !more {
			break
		}
	}

	wd, _ := os.Getwd()
	width := len(fmt.Sprintf("%d", len(allFrames)-1))

	var traceLines []string
	// Main first, the failing call last
	for i := len(allFrames) - 1; i >= 0; i-- {
		frame := allFrames[i]
		if wd != "" {
			if rel, err := filepath.Rel(wd, frame.File); err == nil && !strings.HasPrefix(rel, "..") {
				frame.File = "./" + filepath.ToSlash(rel)
			}
		}
		traceLines = append(traceLines, fmt.Sprintf("  %*d: %s:%d (%s)", width, i, frame.File, frame.Line, filepath.Base(frame.Function)))
	}

	if len(args) > 0 {
		msg = fmt.Sprintf(resolveMsg(msg), args...)
	}

	output := []any{
		"### BEGIN STACK TRACE ###",
		fmt.Sprintf("  %s %s (%s/%s)", version.ApplicationName, version.Version, runtime.GOOS, runtime.GOARCH),
		traceLines,
		"### END STACK TRACE ###",
		"",
		msg,
	}
	logAt(ctx, now, LevelFatal, output)

	panic(FatalError{})
}

// Recover traps panics and reports them through FatalWithStackSkip.
// A FatalError is re-raised untouched so the caller's handler sees it.
// Usage: defer logger.Recover(ctx)
func Recover(ctx context.Context) {
	r := recover()
	if r == nil {
		return
	}
	if _, ok := r.(FatalError); ok {
		panic(r)
	}
	// We skip 2 frames: Recover + runtime.gopanic
	FatalWithStackSkip(ctx, 2, "panic: %v", r)
}
