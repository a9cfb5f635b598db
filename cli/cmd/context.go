// Package cmd holds the kong subcommands of the sapling CLI: run, fmt,
// and (in the repl subpackage) the interactive REPL.
package cmd

import (
	"context"

	"github.com/ardnew/sapling/log"
)

type loggerKey struct{}

// WithLogger returns a new context.Context carrying logger, retrievable
// by LoggerFrom.
func WithLogger(ctx context.Context, logger log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// LoggerFrom retrieves the Logger stored by WithLogger. Its zero value
// (a silent no-op, per SPEC_FULL.md §A.1) is returned if none was stored.
func LoggerFrom(ctx context.Context) log.Logger {
	logger, _ := ctx.Value(loggerKey{}).(log.Logger)

	return logger
}
