package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// newLogger builds the process logger: tinted slog output on stderr with
// the level taken from configuration.
func newLogger(level string) *slog.Logger {
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      parseLogLevel(level),
		TimeFormat: time.Kitchen,
	}))
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// engineLogger adapts slog to the engine's printf-style Logger interface.
type engineLogger struct {
	logger *slog.Logger
}

func (a *engineLogger) Debugf(format string, v ...any) { a.logf(slog.LevelDebug, format, v...) }
func (a *engineLogger) Infof(format string, v ...any)  { a.logf(slog.LevelInfo, format, v...) }
func (a *engineLogger) Warnf(format string, v ...any)  { a.logf(slog.LevelWarn, format, v...) }
func (a *engineLogger) Errorf(format string, v ...any) { a.logf(slog.LevelError, format, v...) }

func (a *engineLogger) logf(level slog.Level, format string, v ...any) {
	ctx := context.Background()
	if !a.logger.Enabled(ctx, level) {
		return
	}
	a.logger.Log(ctx, level, fmt.Sprintf(format, v...))
}
