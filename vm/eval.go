package vm

import (
	"github.com/ardnew/sapling/ast"
	"github.com/ardnew/sapling/errs"
	"github.com/ardnew/sapling/value"
)

// eval evaluates an expression node to a runtime value, per the
// per-variant dispatch original_source/sapling/vm.py implements as its
// instruction_handlers table (execute_int, execute_binaryop, ...).
func (v *VM) eval(n ast.Expr) (value.Value, error) {
	v.loosePos = n.Position()

	switch node := n.(type) {
	case *ast.Int:
		return value.Int{V: node.Value}, nil
	case *ast.Float:
		return value.Float{V: node.Value}, nil
	case *ast.Hex:
		return value.Hex{V: node.Value, Text: node.Text}, nil
	case *ast.Bool:
		return value.Bool{V: node.Value}, nil
	case *ast.String:
		return value.String{V: node.Value}, nil
	case *ast.Regex:
		return value.NewRegex(node.Pattern), nil
	case *ast.Nil:
		return value.Nil{}, nil
	case *ast.Id:
		return v.evalID(node)
	case *ast.Array:
		return v.evalArray(node)
	case *ast.Dictionary:
		return v.evalDictionary(node)
	case *ast.ArrayComp:
		return v.evalArrayComp(node)
	case *ast.BinaryOp:
		return v.evalBinaryOp(node)
	case *ast.UnaryOp:
		return v.evalUnaryOp(node)
	case *ast.Index:
		return v.evalIndex(node)
	case *ast.Attribute:
		return v.evalAttribute(node)
	case *ast.Call:
		return v.evalCall(node)
	case *ast.New:
		return v.evalNew(node)
	default:
		return nil, errs.NewRuntime(n.Position(), "cannot evaluate this expression")
	}
}

func (v *VM) evalID(node *ast.Id) (value.Value, error) {
	val, ok := v.Env.Get(node.Name)
	if !ok {
		return nil, v.nameError(node.Position(), node.Name)
	}

	return val, nil
}

func (v *VM) evalArray(node *ast.Array) (value.Value, error) {
	elems := make([]value.Value, len(node.Elems))

	for i, e := range node.Elems {
		val, err := v.eval(e)
		if err != nil {
			return nil, err
		}

		elems[i] = val
	}

	return value.NewArray(elems), nil
}

func (v *VM) evalDictionary(node *ast.Dictionary) (value.Value, error) {
	d := value.NewDictionary()

	for _, entry := range node.Entries {
		k, err := v.eval(entry.Key)
		if err != nil {
			return nil, err
		}

		val, err := v.eval(entry.Value)
		if err != nil {
			return nil, err
		}

		d.Set(k, val)
	}

	return d, nil
}

// evalArrayComp evaluates `{expr : id in source}` (spec.md §4.2),
// grounded on original_source/sapling/vm.py's execute_arrcomp: source
// must be an array, and expr is evaluated once per element with the
// binder name bound in a child environment.
func (v *VM) evalArrayComp(node *ast.ArrayComp) (value.Value, error) {
	src, err := v.eval(node.Source)
	if err != nil {
		return nil, err
	}

	arr, ok := src.(*value.Array)
	if !ok {
		return nil, errs.NewType(node.Source.Position(), "expected 'array' for array comprehension")
	}

	out := make([]value.Value, len(arr.Elems))

	for i, elem := range arr.Elems {
		child := &VM{Env: v.Env.Clone(), Src: v.Src, Reporter: v.Reporter, callStack: v.callStack, importer: v.importer}
		child.Env.Set(node.Binder, elem, false)

		val, err := child.eval(node.Elem)
		if err != nil {
			return nil, err
		}

		out[i] = val
	}

	return value.NewArray(out), nil
}

func (v *VM) evalBinaryOp(node *ast.BinaryOp) (value.Value, error) {
	left, err := v.eval(node.Left)
	if err != nil {
		return nil, err
	}

	// Short-circuit && / || (SPEC_FULL.md §D.3): only evaluate the right
	// operand when the left one has not already determined the result.
	switch node.Op {
	case ast.OpAnd:
		if !left.Truthy() {
			return value.Bool{V: false}, nil
		}

		right, err := v.eval(node.Right)
		if err != nil {
			return nil, err
		}

		return value.Bool{V: right.Truthy()}, nil
	case ast.OpOr:
		if left.Truthy() {
			return value.Bool{V: true}, nil
		}

		right, err := v.eval(node.Right)
		if err != nil {
			return nil, err
		}

		return value.Bool{V: right.Truthy()}, nil
	}

	right, err := v.eval(node.Right)
	if err != nil {
		return nil, err
	}

	result, err := value.Binary(node.Op, left, right)
	if err != nil {
		return nil, wrapOperatorError(node.Position(), err)
	}

	return result, nil
}

func wrapOperatorError(pos errs.Position, err error) error {
	if err == value.ErrDivideByZero {
		return errs.NewType(pos, "Cannot divide by zero")
	}

	return errs.NewType(pos, err.Error())
}

func (v *VM) evalUnaryOp(node *ast.UnaryOp) (value.Value, error) {
	operand, err := v.eval(node.Expr)
	if err != nil {
		return nil, err
	}

	return value.Unary(operand), nil
}

func (v *VM) evalIndex(node *ast.Index) (value.Value, error) {
	container, err := v.eval(node.Container)
	if err != nil {
		return nil, err
	}

	key, err := v.eval(node.Key)
	if err != nil {
		return nil, err
	}

	result, err := value.Index(container, key)
	if err != nil {
		return nil, wrapIndexError(node.Position(), err)
	}

	return result, nil
}

func wrapIndexError(pos errs.Position, err error) error {
	switch err.(type) {
	case value.ErrIndexOutOfRange, value.ErrIndexMissingKey:
		return errs.NewIndex(pos, err.Error())
	default:
		return errs.NewType(pos, err.Error())
	}
}

// evalAttribute implements spec.md §4.4.
func (v *VM) evalAttribute(node *ast.Attribute) (value.Value, error) {
	base, err := v.eval(node.Recv)
	if err != nil {
		return nil, err
	}

	if node.NullSafe {
		if _, isNil := base.(value.Nil); isNil {
			return value.Nil{}, nil
		}
	}

	attr, err := v.attrOf(base, node.Name)
	if err != nil {
		if _, ok := err.(value.ErrNoAttribute); ok {
			return nil, errs.NewAttribute(node.Position(), err.Error())
		}

		return nil, err
	}

	return attr, nil
}

// attrOf dispatches on base's concrete type, adding Method binding for
// Class attributes that happen to be Funcs (spec.md §4.6 step 5's "bind
// self" is realized in call.go; here we only need to recognize the
// shape).
func (v *VM) attrOf(base value.Value, name string) (value.Value, error) {
	switch b := base.(type) {
	case *value.Class:
		a, ok := b.Attr(name)
		if !ok {
			return nil, value.ErrNoAttribute{Base: b.Type(), Name: name}
		}

		if fn, ok := a.(value.Func); ok {
			return value.Method{Func: fn, Owner: b}, nil
		}

		return a, nil
	case *value.Lib:
		a, ok := b.Attr(name)
		if !ok {
			return nil, value.ErrNoAttribute{Base: b.Type(), Name: name}
		}

		return a, nil
	default:
		return value.Attr(base, name)
	}
}

func (v *VM) evalCall(node *ast.Call) (value.Value, error) {
	callee, err := v.eval(node.Callee)
	if err != nil {
		return nil, err
	}

	args, err := v.evalArgs(node.Args)
	if err != nil {
		return nil, err
	}

	return v.call(callee, args, node.Position())
}

func (v *VM) evalArgs(nodes []ast.Arg) ([]callArg, error) {
	args := make([]callArg, len(nodes))

	for i, a := range nodes {
		val, err := v.eval(a.Value)
		if err != nil {
			return nil, err
		}

		args[i] = callArg{name: a.Name, value: val}
	}

	return args, nil
}

// evalNew implements `new ClassExpr(args?)` (spec.md §4.7).
func (v *VM) evalNew(node *ast.New) (value.Value, error) {
	callee, err := v.eval(node.Class)
	if err != nil {
		return nil, err
	}

	class, ok := callee.(*value.Class)
	if !ok {
		return nil, errs.NewType(node.Position(), "cannot instantiate type '"+callee.Type()+"'")
	}

	args, err := v.evalArgs(node.Args)
	if err != nil {
		return nil, err
	}

	if initFn, ok := class.Attr("init"); ok {
		if fn, ok := initFn.(value.Func); ok {
			if _, err := v.callFunc(fn, args, node.Position()); err != nil {
				return nil, err
			}
		}
	}

	return class, nil
}
