package builtin

import (
	"fmt"
	"os"

	"github.com/ardnew/mung"

	"github.com/ardnew/sapling/value"
)

// newSys builds the "sys" library (SPEC_FULL.md §B): `sys.path.prefix`
// and `sys.path.prefixif` expose github.com/ardnew/mung's PATH-style
// string composition, mirroring the teacher's lang/env.go mungPrefix/
// mungPrefixIf helpers.
func newSys() *value.Lib {
	c := value.NewClass("sys")
	c.TypeTag = "lib"

	path := value.NewClass("path")
	path.TypeTag = "lib"
	path.SetAttr("prefix", value.HostFunc{
		Name: "prefix",
		Params: []value.Param{
			{Name: "subject", Annotation: []string{"string"}},
			{Name: "prefix", Annotation: []string{"string"}},
		},
		Call: sysPathPrefix,
	})
	path.SetAttr("prefixif", value.HostFunc{
		Name: "prefixif",
		Params: []value.Param{
			{Name: "subject", Annotation: []string{"string"}},
			{Name: "prefix", Annotation: []string{"string"}},
			{Name: "suffix", Annotation: []string{"string"}},
		},
		Call: sysPathPrefixIf,
	})

	c.SetAttr("path", &value.Lib{Class: path})

	return &value.Lib{Class: c}
}

func sysPathPrefix(args []value.Value) (value.Value, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("sys.path.prefix expects (subject, prefix)")
	}

	subject, ok1 := args[0].(value.String)
	prefix, ok2 := args[1].(value.String)

	if !ok1 || !ok2 {
		return nil, fmt.Errorf("sys.path.prefix expects string arguments")
	}

	result := mung.Make(
		mung.WithSubjectItems(subject.V),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(prefix.V),
	).String()

	return value.String{V: result}, nil
}

func sysPathPrefixIf(args []value.Value) (value.Value, error) {
	if len(args) < 3 {
		return nil, fmt.Errorf("sys.path.prefixif expects (subject, prefix, suffix)")
	}

	subject, ok1 := args[0].(value.String)
	prefix, ok2 := args[1].(value.String)
	suffix, ok3 := args[2].(value.String)

	if !ok1 || !ok2 || !ok3 {
		return nil, fmt.Errorf("sys.path.prefixif expects string arguments")
	}

	result := mung.Make(
		mung.WithSubjectItems(subject.V),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(prefix.V),
		mung.WithFilter(func(item string) bool { return item != suffix.V }),
	).String()

	return value.String{V: result}, nil
}
