// Package pkg holds identifying metadata shared by the cli package and
// the root main package: the canonical command name, a short
// description for help text, and the build version string.
package pkg

const (
	// Name is the canonical command and module identifier, used in help
	// text, default config/cache paths, and the kong application name.
	Name = "sapling"

	// Description is a short, human-readable summary shown in help output.
	Description = "A small dynamically typed scripting language"
)

// Version is the build version string. Overridden at link time with
// -ldflags "-X github.com/ardnew/sapling/pkg.Version=...".
var Version = "dev"
