//go:build !pprof

package profile

// Modes returns no modes when built without the pprof tag.
func Modes() []string { return nil }

// start is a no-op when built without the pprof tag. init.go's Config.Start
// only reaches it when a caller sets a non-empty mode, which the disabled
// CLI flag group (cli.pprofConfig, built without the pprof tag) never does,
// but the identifier still has to exist for this package to build under
// "go build ./..." with no tag selected.
func start(string, string, string, bool) interface{ Stop() } { return ignore{} }
