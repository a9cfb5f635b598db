package parser_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ardnew/sapling/ast"
	"github.com/ardnew/sapling/parser"
)

func TestParseAssignment(t *testing.T) {
	code, err := parser.Parse(`x = 1`)
	require.NoError(t, err)
	require.Len(t, code.Stmts, 1)

	assign, ok := code.Stmts[0].(*ast.Assign)
	require.True(t, ok)
	require.Equal(t, "x", assign.Target)
	require.False(t, assign.Const)
	require.Empty(t, assign.CompoundOp)
}

func TestParseTypedConstAssignment(t *testing.T) {
	code, err := parser.Parse(`const int x = 1`)
	require.NoError(t, err)

	assign := code.Stmts[0].(*ast.Assign)
	require.True(t, assign.Const)
	require.Equal(t, "int", assign.Annotation)
	require.Equal(t, "x", assign.Target)
}

func TestParseCompoundAssignment(t *testing.T) {
	code, err := parser.Parse(`x += 2`)
	require.NoError(t, err)

	assign := code.Stmts[0].(*ast.Assign)
	require.Equal(t, ast.OpAdd, assign.CompoundOp)
}

func TestParseIfElseIfElse(t *testing.T) {
	code, err := parser.Parse(`
if a == 1 {
  x = 1
} else if a == 2 {
  x = 2
} else {
  x = 3
}`)
	require.NoError(t, err)

	ifNode := code.Stmts[0].(*ast.If)
	require.Len(t, ifNode.ElseIfs, 1)
	require.NotNil(t, ifNode.Else)
}

func TestParseWhileAndRepeat(t *testing.T) {
	code, err := parser.Parse(`
while x < 10 {
  x += 1
}
repeat {
  x -= 1
} until x == 0
`)
	require.NoError(t, err)
	require.Len(t, code.Stmts, 2)

	_, ok := code.Stmts[0].(*ast.While)
	require.True(t, ok)

	_, ok = code.Stmts[1].(*ast.Repeat)
	require.True(t, ok)
}

func TestParseFuncDefAndAttrFuncDef(t *testing.T) {
	code, err := parser.Parse(`
func add(int a, int b = 1) {
  return a + b
}
func Point.move(int dx) {
  return dx
}
`)
	require.NoError(t, err)
	require.Len(t, code.Stmts, 2)

	fn := code.Stmts[0].(*ast.FuncDef)
	require.Equal(t, "add", fn.Name)
	require.Len(t, fn.Params, 2)
	require.Equal(t, "int", fn.Params[0].Annotation)
	require.NotNil(t, fn.Params[1].Default)

	meth := code.Stmts[1].(*ast.AttrFuncDef)
	require.Equal(t, "Point", meth.Class)
	require.Equal(t, "move", meth.Method)
}

func TestParseImportForms(t *testing.T) {
	code, err := parser.Parse(`
import "mod"
import "a", "b" from "mod2"
`)
	require.NoError(t, err)

	bare := code.Stmts[0].(*ast.Import)
	require.Equal(t, "mod", bare.Module)
	require.Empty(t, bare.Names)

	named := code.Stmts[1].(*ast.Import)
	require.Equal(t, "mod2", named.Module)
	require.Equal(t, []string{"a", "b"}, named.Names)
}

func TestParseArrayDictAndComprehension(t *testing.T) {
	code, err := parser.Parse(`
arr = {1, 2, 3}
dict = {"a": 1, "b": 2}
comp = {x * 2 : x in arr}
`)
	require.NoError(t, err)
	require.Len(t, code.Stmts, 3)

	arr := code.Stmts[0].(*ast.Assign).Value.(*ast.Array)
	require.Len(t, arr.Elems, 3)

	dict := code.Stmts[1].(*ast.Assign).Value.(*ast.Dictionary)
	require.Len(t, dict.Entries, 2)

	comp := code.Stmts[2].(*ast.Assign).Value.(*ast.ArrayComp)
	require.Equal(t, "x", comp.Binder)
}

func TestParseCallIndexAttribute(t *testing.T) {
	code, err := parser.Parse(`
print(a.b[0].c(1, name: 2))
`)
	require.NoError(t, err)

	call := code.Stmts[0].(*ast.Call)
	inner := call.Args[0].Value.(*ast.Call)
	require.Len(t, inner.Args, 2)
	require.Equal(t, "name", inner.Args[1].Name)
}

func TestParseNewExpression(t *testing.T) {
	code, err := parser.Parse(`p = new Point(x: 1, y: 2)`)
	require.NoError(t, err)

	assign := code.Stmts[0].(*ast.Assign)
	newExpr := assign.Value.(*ast.New)

	class := newExpr.Class.(*ast.Id)
	require.Equal(t, "Point", class.Name)
	require.Len(t, newExpr.Args, 2)
}

func TestParseStructAndEnum(t *testing.T) {
	code, err := parser.Parse(`
struct Point {
  int x
  int y
}
enum Color {
  red = 1
  blue = 2
}
`)
	require.NoError(t, err)

	st := code.Stmts[0].(*ast.Struct)
	require.Equal(t, "Point", st.Name)
	require.Len(t, st.Fields, 2)

	en := code.Stmts[1].(*ast.Enum)
	require.Equal(t, "Color", en.Name)
	require.Len(t, en.Members, 2)
}

func TestParsePrecedence(t *testing.T) {
	code, err := parser.Parse(`x = 1 + 2 * 3`)
	require.NoError(t, err)

	bin := code.Stmts[0].(*ast.Assign).Value.(*ast.BinaryOp)
	require.Equal(t, ast.OpAdd, bin.Op)

	rhs := bin.Right.(*ast.BinaryOp)
	require.Equal(t, ast.OpMul, rhs.Op)
}

func TestParseLogicalShortCircuitPrecedence(t *testing.T) {
	code, err := parser.Parse(`x = a || b && c`)
	require.NoError(t, err)

	top := code.Stmts[0].(*ast.Assign).Value.(*ast.BinaryOp)
	require.Equal(t, ast.OpOr, top.Op)

	rhs := top.Right.(*ast.BinaryOp)
	require.Equal(t, ast.OpAnd, rhs.Op)
}

func TestParseBreakContinue(t *testing.T) {
	code, err := parser.Parse(`
while true {
  break
  continue
}
`)
	require.NoError(t, err)

	w := code.Stmts[0].(*ast.While)
	require.IsType(t, &ast.Break{}, w.Body.Stmts[0])
	require.IsType(t, &ast.Continue{}, w.Body.Stmts[1])
}

func TestParseSyntaxError(t *testing.T) {
	_, err := parser.Parse(`x = `)
	require.Error(t, err)
}
