package builtin

import (
	"fmt"

	"github.com/ardnew/sapling/value"
	"github.com/ardnew/sapling/vm"
)

// Registry is the built-in module registry consulted at step 3 of
// spec.md §4.10's import resolution, after file-based ".sap"/".sapped"
// resolution has already been tried (cache.Importer wraps a Registry to
// complete that chain; a bare Registry alone already satisfies
// vm.Importer for programs that only ever import built-in modules).
type Registry struct {
	modules map[string]func() *value.Lib
}

// NewRegistry returns a Registry seeded with the built-in demo modules
// of SPEC_FULL.md §B: "calc" and "sys".
func NewRegistry() *Registry {
	r := &Registry{modules: make(map[string]func() *value.Lib)}

	r.Register("calc", newCalc)
	r.Register("sys", newSys)

	return r
}

// Register installs or overrides the constructor for a built-in module
// name.
func (r *Registry) Register(name string, ctor func() *value.Lib) {
	r.modules[name] = ctor
}

// Import implements vm.Importer.
func (r *Registry) Import(_ *vm.VM, name string) (*value.Lib, error) {
	ctor, ok := r.modules[name]
	if !ok {
		return nil, fmt.Errorf("no built-in module %q", name)
	}

	return ctor(), nil
}
