package vm

import (
	"github.com/ardnew/sapling/ast"
	"github.com/ardnew/sapling/errs"
	"github.com/ardnew/sapling/value"
)

// execParams lowers parser-level params to the value package's call-time
// shape, deferring default evaluation to call time (spec.md §4.6 step 2:
// a default may be "a literal value, a (variant, literal) pair ... or a
// zero-argument thunk").
func execParams(params []ast.Param) []value.Param {
	out := make([]value.Param, len(params))

	for i, p := range params {
		vp := value.Param{Name: p.Name, DefaultExpr: p.Default}
		if p.Annotation != "" && p.Annotation != "any" {
			vp.Annotation = []string{p.Annotation}
		}

		out[i] = vp
	}

	return out
}

func (v *VM) execFuncDef(node *ast.FuncDef) error {
	v.Env.Set(node.Name, value.Func{
		Name: node.Name, Params: execParams(node.Params), Body: node.Body,
	}, false)

	return nil
}

// execAttrFuncDef attaches a Method to a previously declared class
// (spec.md §4.7's "For func ClassName.method(...) body"), installed
// under "_method" per the attribute-map storage convention.
func (v *VM) execAttrFuncDef(node *ast.AttrFuncDef) error {
	owner, ok := v.Env.Get(node.Class)
	if !ok {
		return v.nameError(node.Position(), node.Class)
	}

	class, ok := owner.(*value.Class)
	if !ok {
		return errs.NewType(node.Position(), "cannot attach method to type '"+owner.Type()+"'")
	}

	class.SetAttr(node.Method, value.Func{
		Name: node.Method, Params: execParams(node.Params), Body: node.Body,
	})

	return nil
}

// execStruct synthesises a class whose "_init" populates fields via
// SetSelf statements (spec.md §4.7: "the parser synthesises a class
// whose _init has parameters x: T, y: U and a body of SetSelf
// statements" — done here at evaluation time rather than in the parser,
// since SetSelf needs the struct's own name baked into each statement).
func (v *VM) execStruct(node *ast.Struct) error {
	class := value.NewClass(node.Name)
	class.DisplayHook = func(c *value.Class) string { return "<struct " + c.Name + ">" }

	params := make([]ast.Param, len(node.Fields))
	setters := make([]ast.Stmt, len(node.Fields))

	for i, f := range node.Fields {
		params[i] = ast.Param{Name: f.Name, Annotation: f.Type}
		setters[i] = &ast.SetSelf{
			Base: node.Base, Field: f.Name, Class: node.Name,
			Value: &ast.Id{Base: node.Base, Name: f.Name},
		}
	}

	class.SetAttr("init", value.Func{
		Name:   "init",
		Params: execParams(params),
		Body:   &ast.Body{Base: node.Base, Stmts: setters},
	})

	v.Env.Set(node.Name, class, false)

	return nil
}

// execEnum constructs a class with one attribute per member, each set to
// its evaluated expression (spec.md §4.7).
func (v *VM) execEnum(node *ast.Enum) error {
	class := value.NewClass(node.Name)
	class.DisplayHook = func(c *value.Class) string { return "<enum " + c.Name + ">" }

	for _, m := range node.Members {
		val, err := v.eval(m.Value)
		if err != nil {
			return err
		}

		class.SetAttr(m.Name, val)
	}

	v.Env.Set(node.Name, class, false)

	return nil
}

// execSetSelf assigns a field on the class instance under construction
// (spec.md §4.7). The target class is resolved by name directly from the
// environment rather than through a "self" binding — matching
// original_source/sapling/vm.py's execute_setself, which looks up
// instruction.class_name in self.env rather than binding self anywhere.
func (v *VM) execSetSelf(node *ast.SetSelf) error {
	owner, ok := v.Env.Get(node.Class)
	if !ok {
		return v.nameError(node.Position(), node.Class)
	}

	class, ok := owner.(*value.Class)
	if !ok {
		return errs.NewType(node.Position(), "cannot set '"+owner.Type()+"' as self")
	}

	val, err := v.eval(node.Value)
	if err != nil {
		return err
	}

	class.SetAttr(node.Field, val)

	return nil
}
