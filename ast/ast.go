// Package ast defines Sapling's instruction node tree (spec.md §3.2): the
// parser's output and the evaluator's input. Every node carries a source
// [errs.Position] so diagnostics can always point at the offending text,
// the same invariant the teacher's lang.Value/lang.Definition nodes carry
// via their embedded Token.
package ast

import "github.com/ardnew/sapling/errs"

// Node is the marker every instruction node implements, in the style of
// other_examples' Node/Expression/Statement split (ProbeChain's ast.go):
// Position lets callers report diagnostics without a type switch.
type Node interface {
	Position() errs.Position
	node()
}

// Expr marks nodes usable in expression position.
type Expr interface {
	Node
	exprNode()
}

// Stmt marks nodes usable in statement position. Every Expr used as a
// standalone statement (an expression-statement) also implements Stmt.
type Stmt interface {
	Node
	stmtNode()
}

// Base embeds into every node to supply Position() and the node() marker
// without repeating a Pos field accessor everywhere. It is exported so
// other packages (the parser) can construct nodes with a keyed literal.
type Base struct {
	Pos errs.Position
}

func (b Base) Position() errs.Position { return b.Pos }
func (Base) node()                     {}

// Code is the root of a parsed program: a sequence of statements
// (spec.md §3.2).
type Code struct {
	Base
	Stmts []Stmt
}

func (*Code) stmtNode() {}

// Body is a statement sequence nested inside a block (function body, if
// branch, loop body).
type Body struct {
	Base
	Stmts []Stmt
}

func (*Body) stmtNode() {}

// Literal nodes

type Int struct {
	Base
	Value int64
}

func (*Int) exprNode() {}
func (*Int) stmtNode() {}

type Float struct {
	Base
	Value float64
}

func (*Float) exprNode() {}
func (*Float) stmtNode() {}

// Hex preserves the literal text alongside the parsed value so the
// runtime Hex value can re-render it (spec.md §3.3 gives Hex a distinct
// display tag from Int despite sharing a carrier type).
type Hex struct {
	Base
	Value int64
	Text  string
}

func (*Hex) exprNode() {}
func (*Hex) stmtNode() {}

type Bool struct {
	Base
	Value bool
}

func (*Bool) exprNode() {}
func (*Bool) stmtNode() {}

type String struct {
	Base
	Value string
}

func (*String) exprNode() {}
func (*String) stmtNode() {}

// Regex carries the raw pattern text; the runtime value compiles it with
// regexp.Compile at evaluation time.
type Regex struct {
	Base
	Pattern string
}

func (*Regex) exprNode() {}
func (*Regex) stmtNode() {}

type Nil struct {
	Base
}

func (*Nil) exprNode() {}
func (*Nil) stmtNode() {}

// Id references an identifier.
type Id struct {
	Base
	Name string
}

func (*Id) exprNode() {}
func (*Id) stmtNode() {}

// Array is a literal sequence of expressions, `{a, b, c}`.
type Array struct {
	Base
	Elems []Expr
}

func (*Array) exprNode() {}
func (*Array) stmtNode() {}

// DictEntry is one key/value pair of a Dictionary literal.
type DictEntry struct {
	Key   Expr
	Value Expr
}

// Dictionary is a literal mapping, `{k: v, ...}`.
type Dictionary struct {
	Base
	Entries []DictEntry
}

func (*Dictionary) exprNode() {}
func (*Dictionary) stmtNode() {}

// ArrayComp is an array comprehension, `{expr : id in source}`.
type ArrayComp struct {
	Base
	Elem   Expr
	Binder string
	Source Expr
}

func (*ArrayComp) exprNode() {}
func (*ArrayComp) stmtNode() {}

// BinOp names a binary operator tag (spec.md §4.3).
type BinOp string

const (
	OpAdd BinOp = "+"
	OpSub BinOp = "-"
	OpMul BinOp = "*"
	OpDiv BinOp = "/"
	OpMod BinOp = "%"
	OpEq  BinOp = "=="
	OpNe  BinOp = "!="
	OpLt  BinOp = "<"
	OpGt  BinOp = ">"
	OpLe  BinOp = "<="
	OpGe  BinOp = ">="
	OpAnd BinOp = "&&"
	OpOr  BinOp = "||"
)

// BinaryOp is a binary operator expression.
type BinaryOp struct {
	Base
	Op    BinOp
	Left  Expr
	Right Expr
}

func (*BinaryOp) exprNode() {}
func (*BinaryOp) stmtNode() {}

// UnaryOp is the logical-NOT prefix operator; spec.md §4.2/§4.3 define no
// other unary operator.
type UnaryOp struct {
	Base
	Expr Expr
}

func (*UnaryOp) exprNode() {}
func (*UnaryOp) stmtNode() {}

// Index is a container subscript, `e[k]`.
type Index struct {
	Base
	Container Expr
	Key       Expr
}

func (*Index) exprNode() {}
func (*Index) stmtNode() {}

// Attribute is `recv.attr` (or `recv?.attr` when NullSafe).
type Attribute struct {
	Base
	Recv     Expr
	Name     string
	NullSafe bool
}

func (*Attribute) exprNode() {}
func (*Attribute) stmtNode() {}

// Arg is one call argument: a value expression with an optional name for
// named-argument form (`id: expr`).
type Arg struct {
	Base
	Value Expr
	Name  string // empty when positional
}

// Call is a function/method invocation, `callee(args?)`.
type Call struct {
	Base
	Callee Expr
	Args   []Arg
}

func (*Call) exprNode() {}
func (*Call) stmtNode() {}

// New is a class-construction expression, `new C(args?)`.
type New struct {
	Base
	Class Expr
	Args  []Arg
}

func (*New) exprNode() {}
func (*New) stmtNode() {}

// Param is one function/method parameter: name, type annotation (a type
// name or "any"), and an optional default expression.
type Param struct {
	Name       string
	Annotation string
	Default    Expr // nil when the parameter has no default
}

// Assign is an assignment statement. CompoundOp is empty for a plain
// `id = expr`; otherwise one of the arithmetic BinOp tags for `id op= expr`.
type Assign struct {
	Base
	Target     string
	Value      Expr
	Const      bool
	CompoundOp BinOp  // "" when not a compound assignment
	Annotation string // "" when untyped
}

func (*Assign) stmtNode() {}

// FuncDef declares a free function.
type FuncDef struct {
	Base
	Name   string
	Params []Param
	Body   *Body
}

func (*FuncDef) stmtNode() {}

// AttrFuncDef declares a method attached to a previously declared class,
// `func ClassName.methodName(params?) body`.
type AttrFuncDef struct {
	Base
	Class  string
	Method string
	Params []Param
	Body   *Body
}

func (*AttrFuncDef) stmtNode() {}

// FieldDef is one `type name` field of a Struct declaration.
type FieldDef struct {
	Name string
	Type string
}

// Struct declares a struct type, synthesising a class with an `_init`
// method per spec.md §4.7.
type Struct struct {
	Base
	Name   string
	Fields []FieldDef
}

func (*Struct) stmtNode() {}

// EnumMember is one `name = expr` member of an Enum declaration.
type EnumMember struct {
	Name  string
	Value Expr
}

// Enum declares an enumeration, evaluated into a Class with one
// attribute per member (spec.md §4.7).
type Enum struct {
	Base
	Name    string
	Members []EnumMember
}

func (*Enum) stmtNode() {}

// SetSelf assigns a field on the class instance currently under
// construction inside an `_init`/method body.
type SetSelf struct {
	Base
	Field string
	Value Expr
	Class string
}

func (*SetSelf) stmtNode() {}

// ElseIf is one `else if cond body` arm of an If chain.
type ElseIf struct {
	Cond Expr
	Body *Body
}

// If is a conditional with zero or more else-if arms and an optional
// trailing else body.
type If struct {
	Base
	Cond    Expr
	Then    *Body
	ElseIfs []ElseIf
	Else    *Body // nil when absent
}

func (*If) stmtNode() {}

// While loops while Cond is truthy, entry-tested.
type While struct {
	Base
	Cond Expr
	Body *Body
}

func (*While) stmtNode() {}

// Repeat loops until Until becomes truthy, exit-tested (spec.md §4.9:
// body runs at least once).
type Repeat struct {
	Base
	Body  *Body
	Until Expr
}

func (*Repeat) stmtNode() {}

// Return exits the enclosing function body with Value (Nil literal when
// the source `return` has no expression).
type Return struct {
	Base
	Value Expr
}

func (*Return) stmtNode() {}

// Break exits the nearest enclosing While/Repeat. Supplemental to
// spec.md's closed node set (see SPEC_FULL.md §C).
type Break struct {
	Base
}

func (*Break) stmtNode() {}

// Continue skips to the next iteration test of the nearest enclosing
// While/Repeat. Supplemental, see SPEC_FULL.md §C.
type Continue struct {
	Base
}

func (*Continue) stmtNode() {}

// Import resolves a module by name, either binding the whole module
// (Names empty) or copying named members into the current scope.
type Import struct {
	Base
	Module string
	Names  []string // empty for a bare `import "name"`
}

func (*Import) stmtNode() {}
