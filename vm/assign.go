package vm

import (
	"github.com/ardnew/sapling/ast"
	"github.com/ardnew/sapling/errs"
	"github.com/ardnew/sapling/value"
)

// execAssign implements spec.md §4.8's four forms, grounded on
// original_source/sapling/vm.py's execute_assign: evaluate the value,
// apply a compound operator against the existing binding if present,
// enforce the constant flag, then enforce the type annotation, and
// finally rebind a fresh cell.
func (v *VM) execAssign(node *ast.Assign) error {
	val, err := v.eval(node.Value)
	if err != nil {
		return err
	}

	if node.CompoundOp != "" {
		cell, ok := v.Env.GetVar(node.Target)
		if !ok {
			return v.nameError(node.Position(), node.Target)
		}

		if cell.Constant {
			return errs.NewRuntime(node.Position(), "cannot assign to constant '"+node.Target+"'")
		}

		result, err := value.Binary(node.CompoundOp, cell.Value, val)
		if err != nil {
			return wrapOperatorError(node.Position(), err)
		}

		val = result
	} else if cell, ok := v.Env.GetVar(node.Target); ok && cell.Constant {
		return errs.NewRuntime(node.Position(), "cannot assign to constant '"+node.Target+"'")
	}

	if node.Annotation != "" && node.Annotation != "any" && val.Type() != node.Annotation {
		return errs.NewType(node.Position(),
			"assignment does not match annotated type '"+node.Annotation+"'")
	}

	v.Env.Set(node.Target, val, node.Const)

	return nil
}
