package vm

import (
	"github.com/ardnew/sapling/errs"
	"github.com/ardnew/sapling/value"
)

// callArg is one already-evaluated call argument, positional (name
// empty) or named (spec.md §4.6 step 1).
type callArg struct {
	name  string
	value value.Value
}

// call dispatches a callee value to its matching invocation strategy
// (spec.md §4.6), grounded on original_source/sapling/vm.py's
// execute_call: a Func runs with a clone of the current environment, a
// Method additionally binds self to its owning class, and a HostFunc
// runs with already-verified arguments handed to its Go closure.
func (v *VM) call(callee value.Value, args []callArg, pos errs.Position) (value.Value, error) {
	switch fn := callee.(type) {
	case value.Func:
		return v.callFunc(fn, args, pos)
	case value.Method:
		return v.callMethod(fn, args, pos)
	case value.HostFunc:
		return v.callHost(fn, args, pos)
	default:
		return nil, errs.NewType(pos, "cannot call type '"+callee.Type()+"'")
	}
}

// callFunc invokes a user-defined function (spec.md §4.6 steps 3–4): a
// fresh callee environment is cloned from the current one, bound
// parameters installed, then the body is executed; a returnSignal
// supplies the result, otherwise the call yields Nil.
func (v *VM) callFunc(fn value.Func, args []callArg, pos errs.Position) (value.Value, error) {
	if len(v.callStack) >= maxCallDepth {
		return nil, errs.NewRuntime(pos, "maximum call depth exceeded")
	}

	bound, err := v.verifyArgs(fn.Params, args, pos)
	if err != nil {
		return nil, err
	}

	child := &VM{
		Env:       v.Env.Clone(),
		Src:       v.Src,
		Reporter:  v.Reporter,
		callStack: v.callStack,
		importer:  v.importer,
	}
	child.pushCaller(fn.Name)

	for name, val := range bound {
		child.Env.Set(name, val, false)
	}

	if fn.Body != nil {
		if err := child.execBody(fn.Body); err != nil {
			if sig, ok := err.(returnSignal); ok {
				return sig.value, nil
			}

			return nil, err
		}
	}

	return value.Nil{}, nil
}

// callMethod is callFunc plus binding "self" to the owning class
// (spec.md §4.6 step 5), the mechanism explicit `func ClassName.method`
// bodies rely on — distinct from SetSelf's direct environment lookup
// used by synthesised struct _init bodies.
func (v *VM) callMethod(m value.Method, args []callArg, pos errs.Position) (value.Value, error) {
	if len(v.callStack) >= maxCallDepth {
		return nil, errs.NewRuntime(pos, "maximum call depth exceeded")
	}

	bound, err := v.verifyArgs(m.Func.Params, args, pos)
	if err != nil {
		return nil, err
	}

	child := &VM{
		Env:       v.Env.Clone(),
		Src:       v.Src,
		Reporter:  v.Reporter,
		callStack: v.callStack,
		importer:  v.importer,
	}
	child.pushCaller(m.Func.Name)
	child.Env.Set("self", m.Owner, false)

	for name, val := range bound {
		child.Env.Set(name, val, false)
	}

	if m.Func.Body != nil {
		if err := child.execBody(m.Func.Body); err != nil {
			if sig, ok := err.(returnSignal); ok {
				return sig.value, nil
			}

			return nil, err
		}
	}

	return value.Nil{}, nil
}

// callHost invokes a host-provided Go function with already-verified,
// declaration-ordered arguments (spec.md §6.3). A HostFunc with nil
// Params (the builtin attribute methods such as add or split) receives
// its argument values unverified, in call order.
func (v *VM) callHost(fn value.HostFunc, args []callArg, pos errs.Position) (value.Value, error) {
	var ordered []value.Value

	if fn.Params == nil {
		for _, a := range args {
			ordered = append(ordered, a.value)
		}
	} else {
		bound, err := v.verifyArgs(fn.Params, args, pos)
		if err != nil {
			return nil, err
		}

		ordered = make([]value.Value, len(fn.Params))
		for i, p := range fn.Params {
			ordered[i] = bound[p.Name]
		}
	}

	result, err := fn.Call(ordered)
	if err != nil {
		return nil, errs.NewRuntime(pos, err.Error())
	}

	return result, nil
}

// verifyArgs binds args against params per spec.md §4.6 step 2: named
// arguments bind first, remaining positional arguments fill the
// parameters left over in declaration order, then every still-unbound
// parameter is filled from its default (if any) or reported missing,
// and every bound value is checked against its annotation.
func (v *VM) verifyArgs(params []value.Param, args []callArg, pos errs.Position) (map[string]value.Value, error) {
	bound := make(map[string]value.Value, len(params))
	named := make(map[string]bool, len(params))

	for _, a := range args {
		if a.name == "" {
			continue
		}

		found := false

		for _, p := range params {
			if p.Name == a.name {
				found = true

				break
			}
		}

		if !found {
			return nil, errs.NewType(pos, "unexpected named argument '"+a.name+"'")
		}

		bound[a.name] = a.value
		named[a.name] = true
	}

	pi := 0

	for _, a := range args {
		if a.name != "" {
			continue
		}

		for pi < len(params) && named[params[pi].Name] {
			pi++
		}

		if pi >= len(params) {
			return nil, errs.NewType(pos, "too many arguments")
		}

		bound[params[pi].Name] = a.value
		pi++
	}

	for _, p := range params {
		val, ok := bound[p.Name]
		if !ok {
			def, err := v.paramDefault(p, pos)
			if err != nil {
				return nil, err
			}

			if def == nil {
				return nil, errs.NewType(pos, "missing argument '"+p.Name+"'")
			}

			val = def
			bound[p.Name] = val
		}

		if len(p.Annotation) > 0 && !annotationMatches(p.Annotation, val.Type()) {
			return nil, errs.NewType(pos, "argument '"+p.Name+"' does not match annotated type")
		}
	}

	return bound, nil
}

func annotationMatches(tags []string, typ string) bool {
	for _, t := range tags {
		if t == "any" || t == typ {
			return true
		}
	}

	return false
}

// paramDefault resolves p's default, in the precedence spec.md §4.6
// step 2 implies: an explicit value wins, then a thunk, then a
// source-level expression evaluated in the caller's environment. A nil
// return with a nil error means p has no default at all.
func (v *VM) paramDefault(p value.Param, pos errs.Position) (value.Value, error) {
	switch {
	case p.DefaultValue != nil:
		return p.DefaultValue, nil
	case p.DefaultThunk != nil:
		return p.DefaultThunk(pos.Line, pos.Column), nil
	case p.DefaultExpr != nil:
		return v.eval(p.DefaultExpr)
	default:
		return nil, nil
	}
}
