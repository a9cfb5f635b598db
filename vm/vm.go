// Package vm implements Sapling's tree-walking evaluator (spec.md §4,
// "Evaluator / VM"): dispatch on ast node variant, an [Env] for name
// resolution, a call stack kept for diagnostics only, and a "loose
// position" used when synthesising values that have no source node of
// their own (host defaults, imported module attributes).
package vm

import (
	"fmt"

	"github.com/sahilm/fuzzy"

	"github.com/ardnew/sapling/ast"
	"github.com/ardnew/sapling/errs"
	"github.com/ardnew/sapling/value"
)

// maxCallDepth bounds the call stack kept for diagnostics (spec.md §3.5:
// "implementations may bound its depth").
const maxCallDepth = 4096

// VM executes one program against one [Env]. A child VM created for an
// import (spec.md §4.10) or a nested call starts from a clone of its
// parent's environment; writes inside it never propagate back out,
// mirroring Python original's `VM(src, parent_env)` constructor in
// original_source/sapling/vm.py.
type VM struct {
	Env      Env
	Src      string
	Reporter errs.Reporter

	callStack []string
	loosePos  errs.Position

	importer Importer
}

// Importer resolves a module name to a *value.Lib per spec.md §4.10.
// builtin.Registry implements it for the built-in module table and
// cache.Importer for ".sap"/".sapped" files. New uses the importer it is
// given; with a nil importer every import fails (see import.go).
type Importer interface {
	Import(vm *VM, name string) (*value.Lib, error)
}

// New returns a VM ready to run src against a fresh environment seeded
// with parent (nil for a top-level run). Reporter defaults to printing
// to nowhere and calling os.Exit(1) (see errs.Reporter's zero value).
func New(src string, parent Env, importer Importer) *VM {
	env := NewEnv()
	if parent.vars != nil {
		env = parent.Clone()
	}

	return &VM{Env: env, Src: src, Reporter: errs.Reporter{Source: src}, importer: importer}
}

// Fatal reports err via the VM's Reporter, which exits the process
// unless its Hook is set (then Fatal returns after the Hook runs). Every
// exec/eval error surfaced all the way back to Run's caller ends up here
// — Sapling's error model is fatal-by-design (spec.md §7).
func (v *VM) Fatal(err error) {
	v.Reporter.Report(err)
}

// Run executes every top-level statement of code in order, in the style
// of original_source/sapling/vm.py's `run`: a `main` function, if
// present, is invoked automatically after every other top-level
// statement finishes executing.
func (v *VM) Run(code *ast.Code) error {
	var mainDef *ast.FuncDef

	for _, stmt := range code.Stmts {
		v.loosePos = stmt.Position()

		if _, err := v.exec(stmt); err != nil {
			return v.unwrapSignal(err)
		}

		if fd, ok := stmt.(*ast.FuncDef); ok && fd.Name == "main" {
			mainDef = fd
		}
	}

	if mainDef != nil {
		if _, err := v.callFunc(value.Func{Name: mainDef.Name, Params: execParams(mainDef.Params), Body: mainDef.Body}, nil, v.loosePos); err != nil {
			return v.unwrapSignal(err)
		}
	}

	return nil
}

// unwrapSignal converts a stray control-flow signal that escaped every
// loop/function boundary into a RuntimeError (this only happens for a
// bare top-level `return`/`break`/`continue`, which has no enclosing
// construct to catch it).
func (v *VM) unwrapSignal(err error) error {
	switch err.(type) {
	case returnSignal, breakSignal, continueSignal:
		return errs.NewRuntime(v.loosePos, err.Error())
	default:
		return err
	}
}

// pushCaller records name on the call stack for diagnostics (spec.md
// §3.5). It is never automatically popped; callers needing bounded
// memory should construct a fresh VM per top-level Run.
func (v *VM) pushCaller(name string) {
	if len(v.callStack) >= maxCallDepth {
		return
	}

	v.callStack = append(v.callStack, name)
}

// CallStack returns the current diagnostic call stack, outermost first.
func (v *VM) CallStack() []string {
	return append([]string(nil), v.callStack...)
}

// nameError builds a NameError for an undefined identifier, appending a
// fuzzy "did you mean" suggestion against the current environment's
// bound names (SPEC_FULL.md §B, grounded on cli/cmd/repl/completer.go's
// fuzzy.Find usage for REPL completion).
func (v *VM) nameError(pos errs.Position, name string) error {
	msg := fmt.Sprintf("undefined name %q", name)

	candidates := v.Env.Names()
	if matches := fuzzy.Find(name, candidates); len(matches) > 0 {
		msg += fmt.Sprintf(" (did you mean %q?)", candidates[matches[0].Index])
	}

	return errs.NewName(pos, msg)
}
