// Package errs implements Sapling's tagged error hierarchy (spec.md §7).
//
// Every error carries a source [Position] and a [Kind] so the reporter can
// print the offending line with a caret underneath it before the process
// exits. The shape mirrors the teacher's lang.Error: an immutable,
// chainable builder with structured-logging attributes via slog.LogValuer.
package errs

import (
	"errors"
	"log/slog"
)

// Kind classifies an error per spec.md §7's table.
type Kind int

const (
	KindSyntax Kind = iota
	KindName
	KindType
	KindAttribute
	KindIndex
	KindImport
	KindFile
	KindRuntime
	KindOverflow
	KindDecode
	KindLex
)

// String returns the error kind's display name.
func (k Kind) String() string {
	switch k {
	case KindSyntax:
		return "SyntaxError"
	case KindName:
		return "NameError"
	case KindType:
		return "TypeError"
	case KindAttribute:
		return "AttributeError"
	case KindIndex:
		return "IndexError"
	case KindImport:
		return "ImportError"
	case KindFile:
		return "FileError"
	case KindRuntime:
		return "RuntimeError"
	case KindOverflow:
		return "OverflowError"
	case KindDecode:
		return "DecodeError"
	case KindLex:
		return "LexError"
	default:
		return "Error"
	}
}

// Position is a (line, column) pair attached to every token, node, and
// value (spec.md §3.1). Synthesised values use the evaluator's loose
// position.
type Position struct {
	Line   int
	Column int
}

// Error is a Sapling runtime or compile-time error. It implements both
// error and slog.LogValuer.
type Error struct {
	kind  Kind
	pos   Position
	msg   string
	err   error
	attrs []slog.Attr
}

// New creates a new *Error of the given kind at the given position.
func New(kind Kind, pos Position, msg string) *Error {
	return &Error{kind: kind, pos: pos, msg: msg}
}

// Kind returns the error's classification.
func (e *Error) Kind() Kind { return e.kind }

// Position returns the source position the error occurred at.
func (e *Error) Position() Position { return e.pos }

// Error implements the error interface.
func (e *Error) Error() string {
	parts := make([]string, 0, 2)

	if e.msg != "" {
		parts = append(parts, e.msg)
	}

	if e.err != nil {
		parts = append(parts, e.err.Error())
	}

	s := e.kind.String()
	for _, p := range parts {
		s += ": " + p
	}

	return s
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// LogValue implements slog.LogValuer.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+4)
	attrs = append(attrs,
		slog.String("kind", e.kind.String()),
		slog.Int("line", e.pos.Line),
		slog.Int("column", e.pos.Column),
	)

	if e.msg != "" {
		attrs = append(attrs, slog.String("message", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap returns a copy of e wrapping cause, preserving kind/pos/attrs.
func (e *Error) Wrap(cause error) *Error {
	return &Error{kind: e.kind, pos: e.pos, msg: e.msg, err: cause, attrs: e.attrs}
}

// With returns a copy of e with additional structured-logging attributes.
func (e *Error) With(attrs ...slog.Attr) *Error {
	merged := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(merged, e.attrs)
	copy(merged[len(e.attrs):], attrs)

	return &Error{kind: e.kind, pos: e.pos, msg: e.msg, err: e.err, attrs: merged}
}

// Is reports whether target is an *Error of the same Kind, so callers can
// write errors.Is(err, errs.New(errs.KindName, pos, "")) style checks, or
// more commonly compare against a package-level sentinel via KindOf.
func (e *Error) Is(target error) bool {
	var o *Error
	if !errors.As(target, &o) {
		return false
	}

	return e.kind == o.kind
}

// KindOf reports the Kind of err if it is (or wraps) an *Error, and false
// otherwise.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.kind, true
	}

	return 0, false
}

// Convenience constructors, one per kind.

func NewSyntax(pos Position, msg string) *Error    { return New(KindSyntax, pos, msg) }
func NewName(pos Position, msg string) *Error      { return New(KindName, pos, msg) }
func NewType(pos Position, msg string) *Error      { return New(KindType, pos, msg) }
func NewAttribute(pos Position, msg string) *Error { return New(KindAttribute, pos, msg) }
func NewIndex(pos Position, msg string) *Error     { return New(KindIndex, pos, msg) }
func NewImport(pos Position, msg string) *Error    { return New(KindImport, pos, msg) }
func NewFile(pos Position, msg string) *Error      { return New(KindFile, pos, msg) }
func NewRuntime(pos Position, msg string) *Error   { return New(KindRuntime, pos, msg) }
func NewOverflow(pos Position, msg string) *Error  { return New(KindOverflow, pos, msg) }
func NewDecode(pos Position, msg string) *Error    { return New(KindDecode, pos, msg) }
func NewLex(pos Position, msg string) *Error       { return New(KindLex, pos, msg) }
