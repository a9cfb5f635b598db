// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog], used by sapling's CLI commands to report which
// source file is being run and how a compile or runtime error
// classifies. The lexer, parser, and vm do not log.
//
// The package offers configurable time formatting, callsite information,
// and output formats that are applied at logger creation time using
// functional options.
//
// # Basic Usage
//
//	logger := log.Make(os.Stdout)
//	logger.Info("running script", slog.String("file", path))
//	logger.Error("parse failed", slog.Any("error", err))
//
// # Configuration
//
// Configure the logger using functional options:
//
//	logger := log.Make(os.Stdout,
//		log.WithLevel(log.LevelDebug),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCallsite(true))
//
// # Adding Attributes
//
// Attributes can be added to the logger to be included in all subsequent
// log messages using the [Logger.With] method:
//
//	logger = logger.With(slog.String("component", "importer"))
//	logger.Info("module resolved") // includes component=importer
//
// # Context-Aware Logging
//
// The package provides context-aware logging functions and methods.
// Each logging level has both a context-aware and context-unaware variant:
//
//	logger.InfoContext(ctx, "evaluating import", slog.String("name", name))
//	logger.Info("message without context") // uses DefaultContextProvider
//
// Context-unaware functions internally call their context-aware counterparts
// using [DefaultContextProvider], which returns [context.TODO] by default.
//
// cli/cmd.WithLogger and cli/cmd.LoggerFrom thread one Logger value through
// a context.Context for the lifetime of a CLI invocation, so every command
// and the REPL share the same configured sink without a package-level
// global.
//
// # Diagnostics
//
// [Logger.Diagnostic] classifies a sapling *errs.Error by its Kind (a
// syntax or lex error logs at Warn, everything else at Error) and attaches
// structured line/column attributes alongside the formatted message, so a
// JSON log consumer can filter or alert on error kind without re-parsing
// the human-readable report errs.Reporter prints to the terminal.
//
// # Supported Levels
//
// The package supports five log levels: [LevelTrace], [LevelDebug],
// [LevelInfo], [LevelWarn], and [LevelError]. Messages below the
// configured level are discarded.
//
// # Time Formatting
//
// Time formatting is configurable using [WithTimeLayout]. You can
// specify any named layout supported by the [time] package (such as
// "RFC3339" or "RFC3339Nano") or provide a custom layout string.
//
// # Output Formats
//
// Two output formats are supported: [FormatJSON] (default) and
// [FormatText]. Format is set at logger creation time using functional
// options.
package log
