package vm

import (
	"github.com/ardnew/sapling/ast"
	"github.com/ardnew/sapling/value"
)

// Eval executes every statement in code in order against v's environment
// and returns the value produced by the last one, or value.Nil{} if code
// is empty or its last statement produced no value (an assignment, a
// loop). Unlike Run, Eval does not auto-invoke main — it is meant for
// the REPL (cli/cmd/repl), which evaluates one line at a time and wants
// to echo back the value of a bare expression, the way an interactive
// interpreter's top level does.
func (v *VM) Eval(code *ast.Code) (value.Value, error) {
	var last value.Value = value.Nil{}

	for _, stmt := range code.Stmts {
		v.loosePos = stmt.Position()

		val, err := v.exec(stmt)
		if err != nil {
			return nil, v.unwrapSignal(err)
		}

		if val != nil {
			last = val
		}
	}

	return last, nil
}
