// Package builtin provides the free functions and demo host modules
// SPEC_FULL.md §C/§B describe: the handful of functions available in
// every environment without an import (print, len, type, str, int,
// float, input), plus the "calc" and "sys" built-in libraries that
// illustrate the host-module bridge of spec.md §6.3.
package builtin

import (
	"bufio"
	"fmt"
	"os"
	"strconv"

	"github.com/ardnew/sapling/value"
	"github.com/ardnew/sapling/vm"
)

// Install binds every free function into env, in the style of
// original_source/sapling/std/functions.py's root-environment install —
// narrowed to the set SPEC_FULL.md §C names rather than the original's
// larger table.
func Install(env vm.Env) {
	for _, fn := range []value.HostFunc{
		printFunc(),
		lenFunc(),
		typeFunc(),
		strFunc(),
		intFunc(),
		floatFunc(),
		inputFunc(),
	} {
		env.Set(fn.Name, fn, false)
	}
}

func printFunc() value.HostFunc {
	return value.HostFunc{
		Name:   "print",
		Params: []value.Param{{Name: "value"}},
		Call: func(args []value.Value) (value.Value, error) {
			if len(args) == 0 {
				fmt.Println()

				return value.Nil{}, nil
			}

			fmt.Println(args[0].Repr())

			return value.Nil{}, nil
		},
	}
}

func lenFunc() value.HostFunc {
	return value.HostFunc{
		Name:   "len",
		Params: []value.Param{{Name: "value"}},
		Call: func(args []value.Value) (value.Value, error) {
			if len(args) == 0 {
				return nil, fmt.Errorf("len expects one argument")
			}

			switch v := args[0].(type) {
			case value.String:
				return value.Int{V: int64(len(v.V))}, nil
			case value.StrBytes:
				return value.Int{V: int64(len(v.V))}, nil
			case *value.Array:
				return value.Int{V: int64(len(v.Elems))}, nil
			case *value.Dictionary:
				return value.Int{V: int64(len(v.Keys()))}, nil
			default:
				return nil, fmt.Errorf("object of type '%s' has no len()", v.Type())
			}
		},
	}
}

func typeFunc() value.HostFunc {
	return value.HostFunc{
		Name:   "type",
		Params: []value.Param{{Name: "value"}},
		Call: func(args []value.Value) (value.Value, error) {
			if len(args) == 0 {
				return nil, fmt.Errorf("type expects one argument")
			}

			return value.String{V: args[0].Type()}, nil
		},
	}
}

func strFunc() value.HostFunc {
	return value.HostFunc{
		Name:   "str",
		Params: []value.Param{{Name: "value"}},
		Call: func(args []value.Value) (value.Value, error) {
			if len(args) == 0 {
				return value.String{V: ""}, nil
			}

			return value.String{V: args[0].Repr()}, nil
		},
	}
}

func intFunc() value.HostFunc {
	return value.HostFunc{
		Name:   "int",
		Params: []value.Param{{Name: "value"}},
		Call: func(args []value.Value) (value.Value, error) {
			if len(args) == 0 {
				return value.Int{}, nil
			}

			switch v := args[0].(type) {
			case value.Int:
				return v, nil
			case value.Float:
				return value.Int{V: int64(v.V)}, nil
			case value.Bool:
				if v.V {
					return value.Int{V: 1}, nil
				}

				return value.Int{V: 0}, nil
			case value.String:
				n, err := strconv.ParseInt(v.V, 10, 64)
				if err != nil {
					return nil, fmt.Errorf("cannot convert %q to int", v.V)
				}

				return value.Int{V: n}, nil
			default:
				return nil, fmt.Errorf("cannot convert type '%s' to int", v.Type())
			}
		},
	}
}

func floatFunc() value.HostFunc {
	return value.HostFunc{
		Name:   "float",
		Params: []value.Param{{Name: "value"}},
		Call: func(args []value.Value) (value.Value, error) {
			if len(args) == 0 {
				return value.Float{}, nil
			}

			switch v := args[0].(type) {
			case value.Float:
				return v, nil
			case value.Int:
				return value.Float{V: float64(v.V)}, nil
			case value.String:
				f, err := strconv.ParseFloat(v.V, 64)
				if err != nil {
					return nil, fmt.Errorf("cannot convert %q to float", v.V)
				}

				return value.Float{V: f}, nil
			default:
				return nil, fmt.Errorf("cannot convert type '%s' to float", v.Type())
			}
		},
	}
}

func inputFunc() value.HostFunc {
	reader := bufio.NewReader(os.Stdin)

	return value.HostFunc{
		Name:   "input",
		Params: []value.Param{{Name: "prompt", DefaultValue: value.String{V: ""}}},
		Call: func(args []value.Value) (value.Value, error) {
			if len(args) > 0 {
				if prompt, ok := args[0].(value.String); ok && prompt.V != "" {
					fmt.Print(prompt.V)
				}
			}

			line, err := reader.ReadString('\n')
			if err != nil && line == "" {
				return value.String{V: ""}, nil
			}

			for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
				line = line[:len(line)-1]
			}

			return value.String{V: line}, nil
		},
	}
}
