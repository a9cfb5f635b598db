package host_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ardnew/sapling/host"
	"github.com/ardnew/sapling/value"
)

func TestTypeExposesCallableAndValueMembers(t *testing.T) {
	class := host.Type("Counter", "counter", []host.Member{
		{Name: "count", Value: value.Int{V: 0}},
		{Name: "bump", Func: &host.Func{
			Name: "bump",
			Call: func([]value.Value) (value.Value, error) {
				return value.Int{V: 1}, nil
			},
		}},
	}, func(c *value.Class) string { return "<counter>" })

	require.Equal(t, "counter", class.Type())
	require.Equal(t, "<counter>", class.Repr())

	count, ok := class.Attr("count")
	require.True(t, ok)
	require.Equal(t, value.Int{V: 0}, count)

	bump, ok := class.Attr("bump")
	require.True(t, ok)

	fn, ok := bump.(value.HostFunc)
	require.True(t, ok)

	result, err := fn.Call(nil)
	require.NoError(t, err)
	require.Equal(t, value.Int{V: 1}, result)
}

func TestModuleHasLibType(t *testing.T) {
	lib := host.Module("demo", []host.Member{
		{Name: "answer", Value: value.Int{V: 42}},
	})

	require.Equal(t, "lib", lib.Type())

	answer, ok := lib.Attr("answer")
	require.True(t, ok)
	require.Equal(t, value.Int{V: 42}, answer)
}
