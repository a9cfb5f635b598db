package vm

import (
	"github.com/ardnew/sapling/ast"
	"github.com/ardnew/sapling/errs"
)

// execImport resolves node.Module through the VM's Importer and binds
// the result per spec.md §4.10: a bare `import "name"` binds the whole
// library under its own name, while `import "a", "b" from "name"` copies
// only the named attributes into the current scope.
func (v *VM) execImport(node *ast.Import) error {
	if v.importer == nil {
		return errs.NewImport(node.Position(), "no module resolver configured")
	}

	lib, err := v.importer.Import(v, node.Module)
	if err != nil {
		if _, ok := err.(*errs.Error); ok {
			return err
		}

		return errs.NewImport(node.Position(), err.Error())
	}

	if len(node.Names) == 0 {
		v.Env.Set(node.Module, lib, false)

		return nil
	}

	for _, name := range node.Names {
		attr, ok := lib.Attr(name)
		if !ok {
			return errs.NewImport(node.Position(), "module '"+node.Module+"' has no member '"+name+"'")
		}

		v.Env.Set(name, attr, false)
	}

	return nil
}
