package builtin

import (
	"fmt"

	"github.com/expr-lang/expr"

	"github.com/ardnew/sapling/value"
)

// newCalc builds the "calc" library (SPEC_FULL.md §B): a single
// `calc.eval(source)` function compiling and running an
// github.com/expr-lang/expr expression, the canonical illustration of
// spec.md §6.3's host-module bridge invoking a third-party evaluator
// from Sapling source. Grounded on the teacher's lang/eval.go, which
// compiles expr-lang source against an env map the same way.
func newCalc() *value.Lib {
	return &value.Lib{Class: buildCalcClass()}
}

func buildCalcClass() *value.Class {
	c := value.NewClass("calc")
	c.TypeTag = "lib"

	c.SetAttr("eval", value.HostFunc{
		Name:   "eval",
		Params: []value.Param{{Name: "source", Annotation: []string{"string"}}},
		Call:   calcEval,
	})

	return c
}

func calcEval(args []value.Value) (value.Value, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("calc.eval expects a source string argument")
	}

	src, ok := args[0].(value.String)
	if !ok {
		return nil, fmt.Errorf("calc.eval expects a string argument")
	}

	env := map[string]any{}
	for i := 1; i+1 < len(args); i += 2 {
		name, ok := args[i].(value.String)
		if !ok {
			continue
		}

		env[name.V] = toGo(args[i+1])
	}

	result, err := expr.Eval(src.V, env)
	if err != nil {
		return nil, fmt.Errorf("calc.eval: %w", err)
	}

	return fromGo(result)
}

// toGo converts a Sapling value to the native Go value expr-lang
// expects in its environment map.
func toGo(v value.Value) any {
	switch t := v.(type) {
	case value.Int:
		return t.V
	case value.Float:
		return t.V
	case value.Bool:
		return t.V
	case value.String:
		return t.V
	default:
		return t.Repr()
	}
}

// fromGo converts an expr-lang result back to a Sapling value.
func fromGo(v any) (value.Value, error) {
	switch t := v.(type) {
	case int:
		return value.Int{V: int64(t)}, nil
	case int64:
		return value.Int{V: t}, nil
	case float64:
		return value.Float{V: t}, nil
	case bool:
		return value.Bool{V: t}, nil
	case string:
		return value.String{V: t}, nil
	case nil:
		return value.Nil{}, nil
	default:
		return nil, fmt.Errorf("calc.eval: unsupported result type %T", v)
	}
}
