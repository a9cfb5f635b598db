package vm

import "github.com/ardnew/sapling/value"

// Env is the ordered name→value mapping of spec.md §3.4. Every binding is
// stored as a *value.Var cell so the constant flag travels with it;
// lookups unwrap the cell transparently. Assignment always replaces the
// cell at a name rather than mutating one in place, which is what makes
// [Env.Clone] a safe, cheap copy-on-enter for call boundaries: cloned
// environments share the cells they start with, but neither side's later
// writes are ever visible to the other.
type Env struct {
	vars map[string]*value.Var
}

// NewEnv returns an empty environment.
func NewEnv() Env {
	return Env{vars: make(map[string]*value.Var)}
}

// Get returns the unwrapped value bound to name, if any.
func (e Env) Get(name string) (value.Value, bool) {
	v, ok := e.vars[name]
	if !ok {
		return nil, false
	}

	return v.Value, true
}

// GetVar returns the raw cell bound to name, exposing the constant flag.
func (e Env) GetVar(name string) (*value.Var, bool) {
	v, ok := e.vars[name]

	return v, ok
}

// Set binds name to a fresh cell, overwriting anything previously bound
// at that name.
func (e Env) Set(name string, v value.Value, constant bool) {
	e.vars[name] = &value.Var{Value: v, Constant: constant}
}

// Delete removes name from the environment. Import isolation does not
// use it: an imported module runs in a child VM with a cloned
// environment, so its names land only on the resulting Lib.
func (e Env) Delete(name string) {
	delete(e.vars, name)
}

// Names returns every bound identifier, in no particular order. Used for
// NameError "did you mean" suggestions (SPEC_FULL.md §B, sahilm/fuzzy).
func (e Env) Names() []string {
	names := make([]string, 0, len(e.vars))
	for n := range e.vars {
		names = append(names, n)
	}

	return names
}

// Attrs returns every binding in e, unwrapped from its cell. Used by
// import resolution (spec.md §4.10 step 4) to build a Lib's attribute
// map from a child VM's final environment.
func (e Env) Attrs() map[string]value.Value {
	out := make(map[string]value.Value, len(e.vars))
	for k, v := range e.vars {
		out[k] = v.Value
	}

	return out
}

// Clone returns a shallow copy of e: a new backing map referencing the
// same cells. Safe under the never-mutate-in-place discipline described
// above — this is the "environment snapshotting at call entry" SPEC_FULL.md
// §A.2/spec.md §9 calls for.
func (e Env) Clone() Env {
	cp := make(map[string]*value.Var, len(e.vars))
	for k, v := range e.vars {
		cp[k] = v
	}

	return Env{vars: cp}
}
