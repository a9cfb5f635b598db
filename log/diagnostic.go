package log

import (
	"context"
	"log/slog"

	"github.com/ardnew/sapling/errs"
)

// Diagnostic logs a sapling compile- or run-time error, tagging the
// record with structured source/line/column attributes and picking a
// severity from the error's Kind, so a JSON log consumer can filter or
// alert on error kind without re-parsing the formatted, human-readable
// report errs.Reporter prints to the terminal. source identifies the
// script or REPL line the error came from.
//
// A lex or syntax error is logged at Warn (the input was malformed, not
// sapling itself); every other *errs.Error kind logs at Error. An err
// that is not an *errs.Error is logged at Error with no position attrs.
func (l Logger) Diagnostic(ctx context.Context, source string, err error) {
	e, ok := err.(*errs.Error)
	if !ok {
		l.ErrorContext(ctx, "diagnostic", slog.String("source", source), slog.Any("error", err))

		return
	}

	pos := e.Position()
	attrs := []slog.Attr{
		slog.String("source", source),
		slog.Int("line", pos.Line),
		slog.Int("column", pos.Column),
		slog.Any("error", e),
	}

	switch e.Kind() {
	case errs.KindLex, errs.KindSyntax:
		l.WarnContext(ctx, "diagnostic", attrs...)
	default:
		l.ErrorContext(ctx, "diagnostic", attrs...)
	}
}
