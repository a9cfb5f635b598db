//go:build pprof

package cli

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/sapling/log"
	"github.com/ardnew/sapling/profile"
)

type pprofConfig struct {
	Mode string `default:""            enum:",${pprofModeEnum}" help:"Enable profiling"         placeholder:"${enum}" short:"p"`
	Dir  string `default:"${pprofDir}"                          help:"Profile output directory"                                 type:"path"`
}

func (pprofConfig) vars() kong.Vars {
	return kong.Vars{
		"pprofModeEnum": strings.Join(profile.Modes(), ","),
		"pprofDir":      filepath.Join(cacheDir(), profile.Tag),
	}
}

func (pprofConfig) group() kong.Group {
	return kong.Group{Key: "pprof", Title: "Profiling (pprof)"}
}

// start starts profiling if configured. label, normally the active
// subcommand's name (e.g. "run", "fmt", "repl"), groups this invocation's
// profile files under their own subdirectory of f.Dir.
func (f pprofConfig) start(logger log.Logger, label string) (stop func()) {
	if f.Mode == "" {
		return func() {}
	}

	logger.Debug("pprof start",
		slog.String("mode", f.Mode), slog.String("dir", f.Dir), slog.String("label", label))

	var cfg profile.Config = func() (string, string, string, bool) { return "", "", "", false }

	cfg = profile.WithMode(f.Mode)(cfg)
	cfg = profile.WithPath(f.Dir)(cfg)
	cfg = profile.WithLabel(label)(cfg)
	cfg = profile.WithQuiet(true)(cfg)
	profiler := cfg.Start()

	return func() {
		logger.Debug("pprof stop", slog.String("mode", f.Mode), slog.String("dir", f.Dir))
		profiler.Stop()
	}
}
