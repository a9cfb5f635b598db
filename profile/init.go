package profile

// Config functions return all supported pprof configuration parameters.
type Config func() (mode, path, label string, quiet bool)

// Start initializes the profiler and returns an interface for stopping it.
//
// Mode specifies the profiler mode to use, path specifies the default
// output directory where profiling data will be written, and label (if
// non-empty) names a subdirectory of path so that profiling separate
// sapling subcommands (run, fmt, repl) in succession does not overwrite
// a single shared set of .pprof files.
//
// If build tag pprof or c's mode are unset, then Start returns a no-op
// implementation. Both Start and Stop are always safely callable.
func (c Config) Start() interface{ Stop() } {
	mode, path, label, quiet := c()

	if mode == "" {
		return ignore{}
	}

	return start(mode, path, label, quiet)
}

// WithMode returns a functional option for setting a profiler's mode.
func WithMode(mode string) func(Config) Config {
	return func(c Config) Config {
		_, path, label, quiet := c()

		return func() (string, string, string, bool) {
			return mode, path, label, quiet
		}
	}
}

// WithPath returns a functional option for setting a profiler's output path.
func WithPath(path string) func(Config) Config {
	return func(c Config) Config {
		mode, _, label, quiet := c()

		return func() (string, string, string, bool) {
			return mode, path, label, quiet
		}
	}
}

// WithLabel returns a functional option that appends label as a
// subdirectory of the profiler's output path, naming the run that
// produced it (e.g. the sapling subcommand in use).
func WithLabel(label string) func(Config) Config {
	return func(c Config) Config {
		mode, path, _, quiet := c()

		return func() (string, string, string, bool) {
			return mode, path, label, quiet
		}
	}
}

// WithQuiet returns a functional option for setting a profiler's quiet flag.
func WithQuiet(quiet bool) func(Config) Config {
	return func(c Config) Config {
		mode, path, label, _ := c()

		return func() (string, string, string, bool) {
			return mode, path, label, quiet
		}
	}
}

type ignore struct{}

func (ignore) Stop() {}
