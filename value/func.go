package value

import "github.com/ardnew/sapling/ast"

// Param describes one parameter of a callable for the verification
// protocol in spec.md 4.6: a name, a type annotation ("any" or a
// type-tag string or set of tags), and an optional default. At most
// one of DefaultExpr, DefaultValue, or DefaultThunk is set.
type Param struct {
	Name       string
	Annotation []string // empty or ["any"] means unchecked

	DefaultExpr  ast.Expr // source-level default, evaluated lazily by vm
	DefaultValue Value    // literal/(variant, literal) default, spec.md 4.6
	DefaultThunk func(line, col int) Value
}

// HasDefault reports whether p has any of the three default forms
// spec.md 4.6 allows.
func (p Param) HasDefault() bool {
	return p.DefaultExpr != nil || p.DefaultValue != nil || p.DefaultThunk != nil
}

// HostFunc is a function or method implemented in Go and exposed to
// Sapling source, the callable half of the host-module bridge
// (spec.md §6.3).
type HostFunc struct {
	Name   string
	Params []Param

	// Call invokes the host implementation with already-verified
	// argument values as a slice in parameter declaration order.
	Call func(args []Value) (Value, error)
}

func (HostFunc) Type() string   { return "func" }
func (HostFunc) Truthy() bool   { return true }
func (f HostFunc) Repr() string { return "<func " + f.Name + ">" }

// Func is a user-defined function: a name, its parameters, and its
// AST body (spec.md §3.3).
type Func struct {
	Name   string
	Params []Param
	Body   *ast.Body
}

func (Func) Type() string   { return "func" }
func (Func) Truthy() bool   { return true }
func (f Func) Repr() string { return "<func " + f.Name + ">" }

// Method is a Func bound to an owning Class instance (spec.md §3.3,
// §4.6 step 5: "bind self to the owning class").
type Method struct {
	Func  Func
	Owner *Class
}

func (Method) Type() string   { return "method" }
func (Method) Truthy() bool   { return true }
func (m Method) Repr() string { return "<method " + m.Func.Name + ">" }

// Class is a constructed or declared class/struct/enum value: a name
// and an attribute map keyed by the "_<name>" convention (spec.md
// §3.3). TypeTag overrides Type() when non-empty (struct/enum
// declarations keep the default "class" tag; host classes may override
// it per spec.md §6.3's "class-level string `type`").
type Class struct {
	Name    string
	Attrs   map[string]Value
	TypeTag string

	// DisplayHook, if set, implements spec.md §6.3's optional
	// `repr(context)` host override.
	DisplayHook func(*Class) string
}

// NewClass returns an empty, ready-to-use Class named name.
func NewClass(name string) *Class {
	return &Class{Name: name, Attrs: make(map[string]Value)}
}

func (c *Class) Type() string {
	if c.TypeTag != "" {
		return c.TypeTag
	}

	return "class"
}

func (*Class) Truthy() bool { return true }

func (c *Class) Repr() string {
	if c.DisplayHook != nil {
		return c.DisplayHook(c)
	}

	return "<class " + c.Name + ">"
}

// Attr looks up attribute "_name" on the class's attribute map,
// reporting whether it was present.
func (c *Class) Attr(name string) (Value, bool) {
	v, ok := c.Attrs["_"+name]

	return v, ok
}

// SetAttr stores value under attribute "_name".
func (c *Class) SetAttr(name string, v Value) {
	c.Attrs["_"+name] = v
}

// Lib is mechanically identical to Class except for its type tag
// (spec.md §3.3: "like Class but with tag `lib`"); host modules and
// resolved imports both produce a *Lib.
type Lib struct {
	*Class
}

// NewLib returns an empty, ready-to-use Lib named name.
func NewLib(name string) *Lib {
	return &Lib{Class: NewClass(name)}
}

func (*Lib) Type() string { return "lib" }
