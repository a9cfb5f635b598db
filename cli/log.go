package cli

import (
	"os"
	"slices"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/sapling/log"
)

// logConfig declares the logging flags shared by every command, grouped
// under "log-" the same way the teacher's cli package groups its logger
// flags (cli/log.go).
type logConfig struct {
	Level      string `default:"info"    enum:"${logLevelEnum}"  help:"Set log level (${enum})"`
	Format     string `default:"json"    enum:"${logFormatEnum}" help:"Set log format (${enum})"`
	Output     string `                                          help:"Log output file ('-' for stderr)" placeholder:"PATH" short:"o" type:"path"`
	TimeLayout string `default:"RFC3339"                         help:"Set timestamp format"`
	Callsite   bool   `default:"false"                           help:"Include callsite information"     negatable:""`
	Pretty     bool   `default:"true"                            help:"Enable colorized pretty printing" negatable:""`
}

func (*logConfig) vars() kong.Vars {
	return kong.Vars{
		"logLevelEnum":  strings.Join(slices.Collect(log.Levels()), ","),
		"logFormatEnum": strings.Join(slices.Collect(log.Formats()), ","),
	}
}

func (*logConfig) group() kong.Group {
	return kong.Group{Key: "log", Title: "Logging options"}
}

// build constructs the Logger described by the parsed flags, along with a
// cleanup function that closes the output file (a no-op for stderr).
func (f *logConfig) build() (log.Logger, func() error) {
	out := os.Stderr

	cleanup := func() error { return nil }

	if f.Output != "" && f.Output != "-" {
		file, err := os.OpenFile(f.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err == nil {
			out = file
			cleanup = file.Close
		}
	}

	logger := log.Make(out,
		log.WithLevel(log.ParseLevel(f.Level)),
		log.WithFormat(log.ParseFormat(f.Format)),
		log.WithTimeLayout(f.TimeLayout),
		log.WithCallsite(f.Callsite),
		log.WithPretty(f.Pretty),
	)

	return logger, cleanup
}
