package vm

import (
	"github.com/ardnew/sapling/ast"
	"github.com/ardnew/sapling/errs"
	"github.com/ardnew/sapling/value"
)

// exec executes one statement. It returns a non-nil error for both real
// faults and the three control-flow signals (return/break/continue);
// callers that understand a signal recover it with a type switch, every
// other caller just propagates the error upward untouched.
func (v *VM) exec(stmt ast.Stmt) (value.Value, error) {
	v.loosePos = stmt.Position()

	switch node := stmt.(type) {
	case *ast.Body:
		return nil, v.execBody(node)
	case *ast.If:
		return nil, v.execIf(node)
	case *ast.While:
		return nil, v.execWhile(node)
	case *ast.Repeat:
		return nil, v.execRepeat(node)
	case *ast.Return:
		val, err := v.eval(node.Value)
		if err != nil {
			return nil, err
		}

		return nil, returnSignal{value: val}
	case *ast.Break:
		return nil, breakSignal{}
	case *ast.Continue:
		return nil, continueSignal{}
	case *ast.Assign:
		return nil, v.execAssign(node)
	case *ast.FuncDef:
		return nil, v.execFuncDef(node)
	case *ast.AttrFuncDef:
		return nil, v.execAttrFuncDef(node)
	case *ast.Struct:
		return nil, v.execStruct(node)
	case *ast.Enum:
		return nil, v.execEnum(node)
	case *ast.SetSelf:
		return nil, v.execSetSelf(node)
	case *ast.Import:
		return nil, v.execImport(node)
	case ast.Expr:
		return v.eval(node)
	default:
		return nil, errs.NewRuntime(stmt.Position(), "cannot execute this statement")
	}
}

// execBody runs every statement of b in order (spec.md §3.2 invariant:
// "Body statements are executed in order"); a return/break/continue
// signal short-circuits it and propagates to the caller.
func (v *VM) execBody(b *ast.Body) error {
	for _, stmt := range b.Stmts {
		if _, err := v.exec(stmt); err != nil {
			return err
		}
	}

	return nil
}

func (v *VM) execIf(node *ast.If) error {
	cond, err := v.eval(node.Cond)
	if err != nil {
		return err
	}

	if cond.Truthy() {
		return v.execBody(node.Then)
	}

	for _, ei := range node.ElseIfs {
		c, err := v.eval(ei.Cond)
		if err != nil {
			return err
		}

		if c.Truthy() {
			return v.execBody(ei.Body)
		}
	}

	if node.Else != nil {
		return v.execBody(node.Else)
	}

	return nil
}

// execWhile is entry-tested (spec.md §4.9): the condition is checked
// before every iteration, including the first.
func (v *VM) execWhile(node *ast.While) error {
	for {
		cond, err := v.eval(node.Cond)
		if err != nil {
			return err
		}

		if !cond.Truthy() {
			return nil
		}

		if err := v.execLoopBody(node.Body); err != nil {
			if _, ok := err.(breakSignal); ok {
				return nil
			}

			return err
		}
	}
}

// execRepeat is exit-tested (spec.md §4.9/§GLOSSARY "Repeat/until"): the
// body always runs at least once, then the until condition is checked.
func (v *VM) execRepeat(node *ast.Repeat) error {
	for {
		if err := v.execLoopBody(node.Body); err != nil {
			if _, ok := err.(breakSignal); ok {
				return nil
			}

			return err
		}

		until, err := v.eval(node.Until)
		if err != nil {
			return err
		}

		if until.Truthy() {
			return nil
		}
	}
}

// execLoopBody runs one loop iteration, absorbing a continueSignal
// (skip to the next iteration test) but letting break/return/real
// errors propagate to the caller.
func (v *VM) execLoopBody(b *ast.Body) error {
	for _, stmt := range b.Stmts {
		if _, err := v.exec(stmt); err != nil {
			if _, ok := err.(continueSignal); ok {
				return nil
			}

			return err
		}
	}

	return nil
}
