// Package cli is the command-line interface for the sapling binary,
// built on github.com/alecthomas/kong exactly as the teacher's cli.go
// builds aenv's CLI: a flat CLI struct with embedded flag groups and
// kong subcommands.
package cli

import (
	"context"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/sapling/cli/cmd"
	"github.com/ardnew/sapling/cli/cmd/repl"
	"github.com/ardnew/sapling/pkg"
)

// CLI is the top-level command-line interface for sapling.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version kong.VersionFlag `help:"Print version and exit" short:"v"`

	Run  cmd.Run   `cmd:"" default:"withargs" help:"Run a source file, a compiled cache, or a directory of sources"`
	Fmt  cmd.Fmt   `cmd:""                    help:"Parse a source file and print its tree as JSON or YAML"`
	Repl repl.Repl `cmd:""                    help:"Start an interactive REPL"`
}

// Run executes the sapling CLI with the given context and arguments. The
// exit function is handed to Kong, which calls it for --help and
// --version; any other failure is returned as an error, which main turns
// into exit status 1 (spec.md §6.1: exit 0 on success, 1 on any reported
// error).
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var c CLI

	if err := mkdirAllRequired(); err != nil {
		return err
	}

	vars := kong.Vars{"version": pkg.Version}.
		CloneWith(c.Log.vars()).
		CloneWith(c.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	parser, err := kong.New(&c,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups([]kong.Group{c.Log.group(), c.Pprof.group()}),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			Summary:             true,
			Tree:                true,
			NoExpandSubcommands: true,
		}),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger, closeLog := c.Log.build()
	defer closeLog() //nolint:errcheck

	defer c.Pprof.start(logger, commandLabel(ktx))()

	ctx = cmd.WithLogger(ctx, logger)

	return ktx.Run(ctx, &c)
}

// commandLabel returns the name of the subcommand ktx resolved to (e.g.
// "run", "fmt", "repl"), used to group pprof output by entry point.
func commandLabel(ktx *kong.Context) string {
	fields := strings.Fields(ktx.Command())
	if len(fields) == 0 {
		return ""
	}

	return fields[0]
}
