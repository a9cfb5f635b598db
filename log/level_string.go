package log

import "fmt"

// String returns the lowercase name of the level, matching the word
// `go tool stringer --linecomment` would have emitted from the line
// comments on the Level const block in config.go. Hand-written because
// this module does not carry a stringer toolchain dependency (see
// DESIGN.md) and the generated file was not itself part of the
// retrieved package.
func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "trace"
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}

// String returns the lowercase name of the format, matching the word
// `go tool stringer --linecomment` would have emitted from the line
// comments on the Format const block in config.go.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatText:
		return "text"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}
