package value_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ardnew/sapling/ast"
	"github.com/ardnew/sapling/value"
)

func TestIntArithmetic(t *testing.T) {
	sum, err := value.Binary(ast.OpAdd, value.Int{V: 2}, value.Int{V: 3})
	require.NoError(t, err)
	require.Equal(t, value.Int{V: 5}, sum)

	quot, err := value.Binary(ast.OpDiv, value.Int{V: 7}, value.Int{V: 2})
	require.NoError(t, err)
	require.Equal(t, value.Float{V: 3.5}, quot)
}

func TestDivideByZero(t *testing.T) {
	_, err := value.Binary(ast.OpDiv, value.Int{V: 1}, value.Int{V: 0})
	require.ErrorIs(t, err, value.ErrDivideByZero)
}

func TestIntMinusStringTruncatesTail(t *testing.T) {
	out, err := value.Binary(ast.OpSub, value.Int{V: 2}, value.String{V: "hello"})
	require.NoError(t, err)
	require.Equal(t, value.String{V: "hel"}, out)
}

func TestStringConcatAndRepeat(t *testing.T) {
	cat, err := value.Binary(ast.OpAdd, value.String{V: "a"}, value.String{V: "b"})
	require.NoError(t, err)
	require.Equal(t, value.String{V: "ab"}, cat)

	rep, err := value.Binary(ast.OpMul, value.String{V: "ab"}, value.Int{V: 3})
	require.NoError(t, err)
	require.Equal(t, value.String{V: "ababab"}, rep)
}

func TestArrayTypeErrorOnOrdering(t *testing.T) {
	a := value.NewArray([]value.Value{value.Int{V: 1}})
	b := value.NewArray([]value.Value{value.Int{V: 2}})

	_, err := value.Binary(ast.OpLt, a, b)
	require.Error(t, err)
}

func TestStringLexicographicOrdering(t *testing.T) {
	lt, err := value.Binary(ast.OpLt, value.String{V: "abc"}, value.String{V: "abd"})
	require.NoError(t, err)
	require.Equal(t, value.Bool{V: true}, lt)
}

func TestShortCircuitOperators(t *testing.T) {
	out, err := value.Binary(ast.OpAnd, value.Bool{V: false}, value.Int{V: 1})
	require.NoError(t, err)
	require.Equal(t, value.Bool{V: false}, out)

	out, err = value.Binary(ast.OpOr, value.Bool{V: true}, value.Nil{})
	require.NoError(t, err)
	require.Equal(t, value.Bool{V: true}, out)
}

func TestUnaryNot(t *testing.T) {
	require.Equal(t, value.Bool{V: false}, value.Unary(value.Int{V: 5}))
	require.Equal(t, value.Bool{V: true}, value.Unary(value.Int{V: 0}))
}

func TestArrayAttributeMutatesBinding(t *testing.T) {
	arr := value.NewArray([]value.Value{value.Int{V: 1}})

	addFn, err := value.Attr(arr, "add")
	require.NoError(t, err)

	fn, ok := addFn.(value.HostFunc)
	require.True(t, ok)

	_, err = fn.Call([]value.Value{value.Int{V: 2}})
	require.NoError(t, err)
	require.Len(t, arr.Elems, 2)
}

func TestStringUpperAttribute(t *testing.T) {
	upperFn, err := value.Attr(value.String{V: "hi"}, "upper")
	require.NoError(t, err)

	fn := upperFn.(value.HostFunc)
	out, err := fn.Call(nil)
	require.NoError(t, err)
	require.Equal(t, value.String{V: "HI"}, out)
}

func TestDictionaryOrderedIteration(t *testing.T) {
	d := value.NewDictionary()
	d.Set(value.String{V: "b"}, value.Int{V: 2})
	d.Set(value.String{V: "a"}, value.Int{V: 1})

	keys := d.Keys()
	require.Len(t, keys, 2)
	require.Equal(t, value.String{V: "b"}, keys[0])
	require.Equal(t, value.String{V: "a"}, keys[1])
}

func TestIndexString(t *testing.T) {
	out, err := value.Index(value.String{V: "hello"}, value.Int{V: 1})
	require.NoError(t, err)
	require.Equal(t, value.String{V: "e"}, out)

	_, err = value.Index(value.String{V: "hi"}, value.Int{V: 10})
	require.Error(t, err)
}

func TestIndexDictionaryMissingKey(t *testing.T) {
	d := value.NewDictionary()
	_, err := value.Index(d, value.String{V: "missing"})
	require.Error(t, err)
}

func TestAttributeNotFound(t *testing.T) {
	_, err := value.Attr(value.Int{V: 1}, "nonexistent")
	require.Error(t, err)
}

func TestVarConstantFlagIsCarried(t *testing.T) {
	v := value.Var{Value: value.Int{V: 1}, Constant: true}
	require.True(t, v.Constant)
	require.Equal(t, "int", v.Value.Type())
}
