package builtin_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ardnew/sapling/builtin"
	"github.com/ardnew/sapling/value"
	"github.com/ardnew/sapling/vm"
)

func TestInstallBindsFreeFunctions(t *testing.T) {
	env := vm.NewEnv()
	builtin.Install(env)

	for _, name := range []string{"print", "len", "type", "str", "int", "float", "input"} {
		_, ok := env.Get(name)
		require.True(t, ok, "missing builtin %q", name)
	}
}

func TestLenFunc(t *testing.T) {
	env := vm.NewEnv()
	builtin.Install(env)

	fn, ok := env.Get("len")
	require.True(t, ok)

	hf := fn.(value.HostFunc)

	result, err := hf.Call([]value.Value{value.NewArray([]value.Value{value.Int{V: 1}, value.Int{V: 2}})})
	require.NoError(t, err)
	require.Equal(t, value.Int{V: 2}, result)
}

func TestTypeFunc(t *testing.T) {
	env := vm.NewEnv()
	builtin.Install(env)

	fn, ok := env.Get("type")
	require.True(t, ok)

	hf := fn.(value.HostFunc)

	result, err := hf.Call([]value.Value{value.Int{V: 1}})
	require.NoError(t, err)
	require.Equal(t, value.String{V: "int"}, result)
}

func TestIntFuncConvertsString(t *testing.T) {
	env := vm.NewEnv()
	builtin.Install(env)

	fn, ok := env.Get("int")
	require.True(t, ok)

	hf := fn.(value.HostFunc)

	result, err := hf.Call([]value.Value{value.String{V: "42"}})
	require.NoError(t, err)
	require.Equal(t, value.Int{V: 42}, result)
}

func TestRegistryResolvesCalcModule(t *testing.T) {
	reg := builtin.NewRegistry()

	lib, err := reg.Import(nil, "calc")
	require.NoError(t, err)
	require.Equal(t, "lib", lib.Type())

	eval, ok := lib.Attr("eval")
	require.True(t, ok)

	hf := eval.(value.HostFunc)

	result, err := hf.Call([]value.Value{value.String{V: "1 + 2"}})
	require.NoError(t, err)
	require.Equal(t, value.Int{V: 3}, result)
}

func TestRegistryResolvesSysModule(t *testing.T) {
	reg := builtin.NewRegistry()

	lib, err := reg.Import(nil, "sys")
	require.NoError(t, err)

	path, ok := lib.Attr("path")
	require.True(t, ok)

	pathLib := path.(*value.Lib)

	prefix, ok := pathLib.Attr("prefix")
	require.True(t, ok)

	hf := prefix.(value.HostFunc)

	result, err := hf.Call([]value.Value{
		value.String{V: "/usr/bin"},
		value.String{V: "/usr/local/bin"},
	})
	require.NoError(t, err)

	s, ok := result.(value.String)
	require.True(t, ok)
	require.Contains(t, s.V, "/usr/local/bin")
}

func TestRegistryUnknownModule(t *testing.T) {
	reg := builtin.NewRegistry()

	_, err := reg.Import(nil, "nope")
	require.Error(t, err)
}
