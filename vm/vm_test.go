package vm_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ardnew/sapling/parser"
	"github.com/ardnew/sapling/value"
	"github.com/ardnew/sapling/vm"
)

func run(t *testing.T, src string) *vm.VM {
	t.Helper()

	code, err := parser.Parse(src)
	require.NoError(t, err)

	m := vm.New(src, vm.Env{}, nil)
	require.NoError(t, m.Run(code))

	return m
}

func runErr(t *testing.T, src string) error {
	t.Helper()

	code, err := parser.Parse(src)
	require.NoError(t, err)

	m := vm.New(src, vm.Env{}, nil)

	return m.Run(code)
}

func TestArithmeticAndAssignment(t *testing.T) {
	m := run(t, `x = 1 + 2 * 3`)

	x, ok := m.Env.Get("x")
	require.True(t, ok)
	require.Equal(t, value.Int{V: 7}, x)
}

func TestCompoundAssignment(t *testing.T) {
	m := run(t, `
x = 5
x += 3
`)

	x, ok := m.Env.Get("x")
	require.True(t, ok)
	require.Equal(t, value.Int{V: 8}, x)
}

func TestConstantReassignmentFails(t *testing.T) {
	err := runErr(t, `
const x = 1
x = 2
`)
	require.Error(t, err)
}

func TestIfElseIfElse(t *testing.T) {
	m := run(t, `
x = 2
if x == 1 {
  y = "one"
} else if x == 2 {
  y = "two"
} else {
  y = "other"
}
`)

	y, ok := m.Env.Get("y")
	require.True(t, ok)
	require.Equal(t, value.String{V: "two"}, y)
}

func TestWhileLoop(t *testing.T) {
	m := run(t, `
sum = 0
i = 0
while i < 5 {
  sum += i
  i += 1
}
`)

	sum, ok := m.Env.Get("sum")
	require.True(t, ok)
	require.Equal(t, value.Int{V: 10}, sum)
}

func TestRepeatUntilRunsAtLeastOnce(t *testing.T) {
	m := run(t, `
n = 0
repeat {
  n += 1
} until n >= 1
`)

	n, ok := m.Env.Get("n")
	require.True(t, ok)
	require.Equal(t, value.Int{V: 1}, n)
}

func TestBreakAndContinue(t *testing.T) {
	m := run(t, `
total = 0
i = 0
while i < 10 {
  i += 1
  if i == 3 {
    continue
  }
  if i == 6 {
    break
  }
  total += i
}
`)

	total, ok := m.Env.Get("total")
	require.True(t, ok)
	// 1 + 2 + 4 + 5 = 12 (3 skipped by continue, loop stops before adding 6)
	require.Equal(t, value.Int{V: 12}, total)
}

func TestFuncDefAndCall(t *testing.T) {
	m := run(t, `
func add(int a, int b) {
  return a + b
}
result = add(2, 3)
`)

	result, ok := m.Env.Get("result")
	require.True(t, ok)
	require.Equal(t, value.Int{V: 5}, result)
}

func TestFuncDefaultParam(t *testing.T) {
	m := run(t, `
func greet(int a, int b = 10) {
  return a + b
}
result = greet(5)
`)

	result, ok := m.Env.Get("result")
	require.True(t, ok)
	require.Equal(t, value.Int{V: 15}, result)
}

func TestFuncNamedArgs(t *testing.T) {
	m := run(t, `
func sub(int a, int b) {
  return a - b
}
result = sub(b: 1, a: 10)
`)

	result, ok := m.Env.Get("result")
	require.True(t, ok)
	require.Equal(t, value.Int{V: 9}, result)
}

func TestRecursiveFactorial(t *testing.T) {
	m := run(t, `
func fact(int n) {
  if n == 0 {
    return 1
  }
  return n * fact(n - 1)
}
result = fact(5)
`)

	result, ok := m.Env.Get("result")
	require.True(t, ok)
	require.Equal(t, value.Int{V: 120}, result)
}

func TestStructAndNew(t *testing.T) {
	m := run(t, `
struct Point {
  int x
  int y
}
p = new Point(x: 1, y: 2)
`)

	p, ok := m.Env.Get("p")
	require.True(t, ok)

	class, ok := p.(*value.Class)
	require.True(t, ok)

	px, ok := class.Attr("x")
	require.True(t, ok)
	require.Equal(t, value.Int{V: 1}, px)

	py, ok := class.Attr("y")
	require.True(t, ok)
	require.Equal(t, value.Int{V: 2}, py)
}

func TestAttrFuncDefMethodBindsSelf(t *testing.T) {
	m := run(t, `
struct Point {
  int x
  int y
}
func Point.sum() {
  return self.x + self.y
}
p = new Point(x: 3, y: 4)
result = p.sum()
`)

	result, ok := m.Env.Get("result")
	require.True(t, ok)
	require.Equal(t, value.Int{V: 7}, result)
}

func TestEnum(t *testing.T) {
	m := run(t, `
enum Color {
  red = 1
  blue = 2
}
r = Color.red
`)

	r, ok := m.Env.Get("r")
	require.True(t, ok)
	require.Equal(t, value.Int{V: 1}, r)
}

func TestArrayComprehension(t *testing.T) {
	m := run(t, `
arr = {1, 2, 3}
doubled = {x * 2 : x in arr}
`)

	doubled, ok := m.Env.Get("doubled")
	require.True(t, ok)

	arr, ok := doubled.(*value.Array)
	require.True(t, ok)
	require.Equal(t, []value.Value{
		value.Int{V: 2}, value.Int{V: 4}, value.Int{V: 6},
	}, arr.Elems)
}

// markHost returns a HostFunc that flips *called to true when invoked,
// used to observe (from Go) whether the right operand of a short-circuit
// expression was ever evaluated — a bare Sapling-side boolean wouldn't
// work here since a callee's environment writes never propagate back to
// the caller (spec.md §3.4).
func markHost(called *bool) value.HostFunc {
	return value.HostFunc{
		Name: "mark",
		Call: func([]value.Value) (value.Value, error) {
			*called = true

			return value.Bool{V: true}, nil
		},
	}
}

func TestShortCircuitAndDoesNotEvaluateRight(t *testing.T) {
	var called bool

	code, err := parser.Parse(`result = false && mark()`)
	require.NoError(t, err)

	m := vm.New("", vm.Env{}, nil)
	m.Env.Set("mark", markHost(&called), false)
	require.NoError(t, m.Run(code))

	require.False(t, called)

	result, ok := m.Env.Get("result")
	require.True(t, ok)
	require.Equal(t, value.Bool{V: false}, result)
}

func TestShortCircuitOrDoesNotEvaluateRight(t *testing.T) {
	var called bool

	code, err := parser.Parse(`result = true || mark()`)
	require.NoError(t, err)

	m := vm.New("", vm.Env{}, nil)
	m.Env.Set("mark", markHost(&called), false)
	require.NoError(t, m.Run(code))

	require.False(t, called)
}

func TestDivideByZero(t *testing.T) {
	err := runErr(t, `x = 1 / 0`)
	require.Error(t, err)
}

func TestNameErrorSuggestsCloseMatch(t *testing.T) {
	err := runErr(t, `
counter = 1
y = counte
`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "did you mean")
}

func TestMainAutoInvoked(t *testing.T) {
	var called bool

	code, err := parser.Parse(`
func main() {
  mark()
}
`)
	require.NoError(t, err)

	m := vm.New("", vm.Env{}, nil)
	m.Env.Set("mark", markHost(&called), false)
	require.NoError(t, m.Run(code))

	require.True(t, called)
}

func TestEvalReturnsLastExpressionValue(t *testing.T) {
	code, err := parser.Parse(`1 + 2`)
	require.NoError(t, err)

	m := vm.New("", vm.Env{}, nil)

	val, err := m.Eval(code)
	require.NoError(t, err)
	require.Equal(t, value.Int{V: 3}, val)
}

func TestEvalDoesNotAutoInvokeMain(t *testing.T) {
	var called bool

	code, err := parser.Parse(`
func main() {
  mark()
}
`)
	require.NoError(t, err)

	m := vm.New("", vm.Env{}, nil)
	m.Env.Set("mark", markHost(&called), false)

	_, err = m.Eval(code)
	require.NoError(t, err)
	require.False(t, called)
}

func TestEvalPersistsAssignmentsAcrossCalls(t *testing.T) {
	m := vm.New("", vm.Env{}, nil)

	code, err := parser.Parse(`x = 5`)
	require.NoError(t, err)
	_, err = m.Eval(code)
	require.NoError(t, err)

	code, err = parser.Parse(`x + 2`)
	require.NoError(t, err)

	val, err := m.Eval(code)
	require.NoError(t, err)
	require.Equal(t, value.Int{V: 7}, val)
}
