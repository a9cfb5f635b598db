package value

import (
	"fmt"
	"strings"
)

// ErrNoAttribute is wrapped by vm into a positioned AttributeError when
// Attr reports a miss.
type ErrNoAttribute struct {
	Base string
	Name string
}

func (e ErrNoAttribute) Error() string {
	return fmt.Sprintf("%s has no attribute %q", e.Base, e.Name)
}

// Attr implements the attribute protocol of spec.md §4.4: base.attr
// first tries the "_attr" convention directly on Class/Lib, then falls
// back to a host-provided member table per variant — here, the builtin
// scalar/collection methods supplemented from
// original_source/sapling/objects.py (SPEC_FULL.md §C).
func Attr(base Value, name string) (Value, error) {
	switch b := base.(type) {
	case *Class:
		if v, ok := b.Attr(name); ok {
			return v, nil
		}

		return nil, ErrNoAttribute{Base: b.Repr(), Name: name}
	case *Lib:
		if v, ok := b.Attr(name); ok {
			return v, nil
		}

		return nil, ErrNoAttribute{Base: b.Repr(), Name: name}
	case Int:
		return intAttr(b, name)
	case String:
		return stringAttr(b.V, name, func(s string) Value { return String{V: s} })
	case StrBytes:
		return stringAttr(string(b.V), name, func(s string) Value { return StrBytes{V: []byte(s)} })
	case *Array:
		return arrayAttr(b, name)
	case *Dictionary:
		return dictAttr(b, name)
	case Regex:
		return regexAttr(b, name)
	default:
		return nil, ErrNoAttribute{Base: base.Type(), Name: name}
	}
}

func intAttr(i Int, name string) (Value, error) {
	switch name {
	case "to_hex":
		return HostFunc{Name: "to_hex", Call: func([]Value) (Value, error) {
			return String{V: fmt.Sprintf("0x%x", i.V)}, nil
		}}, nil
	case "to_octal":
		return HostFunc{Name: "to_octal", Call: func([]Value) (Value, error) {
			return String{V: fmt.Sprintf("0o%o", i.V)}, nil
		}}, nil
	default:
		return nil, ErrNoAttribute{Base: "int", Name: name}
	}
}

// stringAttr serves the methods shared by String and StrBytes (spec.md
// §3.3: StrBytes "extends String's contract"), wrapping results back
// into the caller's own variant via make.
func stringAttr(s, name string, make func(string) Value) (Value, error) {
	switch name {
	case "length":
		return Int{V: int64(len(s))}, nil
	case "lower":
		return HostFunc{Name: "lower", Call: func([]Value) (Value, error) {
			return make(strings.ToLower(s)), nil
		}}, nil
	case "upper":
		return HostFunc{Name: "upper", Call: func([]Value) (Value, error) {
			return make(strings.ToUpper(s)), nil
		}}, nil
	case "title":
		return HostFunc{Name: "title", Call: func([]Value) (Value, error) {
			return make(strings.Title(s)), nil
		}}, nil
	case "replace":
		return HostFunc{Name: "replace", Call: func(args []Value) (Value, error) {
			old, ok1 := stringOf(argAt(args, 0))
			newS, ok2 := stringOf(argAt(args, 1))
			if !ok1 || !ok2 {
				return nil, fmt.Errorf("replace expects string arguments")
			}

			return make(strings.ReplaceAll(s, old, newS)), nil
		}}, nil
	case "split":
		return HostFunc{Name: "split", Call: func(args []Value) (Value, error) {
			sep, ok := stringOf(argAt(args, 0))
			if !ok {
				return nil, fmt.Errorf("split expects a string argument")
			}

			parts := strings.Split(s, sep)
			elems := make([]Value, len(parts))
			for i, p := range parts {
				elems[i] = String{V: p}
			}

			return &Array{Elems: elems}, nil
		}}, nil
	case "join":
		return HostFunc{Name: "join", Call: func(args []Value) (Value, error) {
			arr, ok := argAt(args, 0).(*Array)
			if !ok {
				return nil, fmt.Errorf("join expects an array argument")
			}

			parts := make([]string, len(arr.Elems))
			for i, e := range arr.Elems {
				parts[i] = e.Repr()
			}

			return make(strings.Join(parts, s)), nil
		}}, nil
	case "strip":
		return HostFunc{Name: "strip", Call: func(args []Value) (Value, error) {
			cutset, ok := stringOf(argAt(args, 0))
			if !ok {
				cutset = " \t\n\r"
			}

			return make(strings.Trim(s, cutset)), nil
		}}, nil
	case "to_bytes":
		return HostFunc{Name: "to_bytes", Call: func([]Value) (Value, error) {
			return StrBytes{V: []byte(s)}, nil
		}}, nil
	case "to_string":
		return HostFunc{Name: "to_string", Call: func([]Value) (Value, error) {
			return String{V: s}, nil
		}}, nil
	default:
		return nil, ErrNoAttribute{Base: "string", Name: name}
	}
}

func argAt(args []Value, i int) Value {
	if i < len(args) {
		return args[i]
	}

	return Nil{}
}

func arrayAttr(a *Array, name string) (Value, error) {
	switch name {
	case "length":
		return Int{V: int64(len(a.Elems))}, nil
	case "get":
		return HostFunc{Name: "get", Call: func(args []Value) (Value, error) {
			i, ok := argAt(args, 0).(Int)
			if !ok || i.V < 0 || int(i.V) >= len(a.Elems) {
				return nil, fmt.Errorf("array index out of range")
			}

			return a.Elems[i.V], nil
		}}, nil
	case "set":
		return HostFunc{Name: "set", Call: func(args []Value) (Value, error) {
			i, ok := argAt(args, 0).(Int)
			if !ok || i.V < 0 || int(i.V) >= len(a.Elems) {
				return nil, fmt.Errorf("array index out of range")
			}

			a.Elems[i.V] = argAt(args, 1)

			return a, nil
		}}, nil
	case "add":
		return HostFunc{Name: "add", Call: func(args []Value) (Value, error) {
			a.Elems = append(a.Elems, argAt(args, 0))

			return a, nil
		}}, nil
	case "remove":
		return HostFunc{Name: "remove", Call: func(args []Value) (Value, error) {
			target := argAt(args, 0)

			for i, e := range a.Elems {
				if reprEqual(e, target) {
					a.Elems = append(a.Elems[:i], a.Elems[i+1:]...)

					break
				}
			}

			return a, nil
		}}, nil
	case "has":
		return HostFunc{Name: "has", Call: func(args []Value) (Value, error) {
			target := argAt(args, 0)
			for _, e := range a.Elems {
				if reprEqual(e, target) {
					return Bool{V: true}, nil
				}
			}

			return Bool{V: false}, nil
		}}, nil
	default:
		return nil, ErrNoAttribute{Base: "array", Name: name}
	}
}

func dictAttr(d *Dictionary, name string) (Value, error) {
	switch name {
	case "keys":
		return HostFunc{Name: "keys", Call: func([]Value) (Value, error) {
			return &Array{Elems: d.Keys()}, nil
		}}, nil
	case "values":
		return HostFunc{Name: "values", Call: func([]Value) (Value, error) {
			return &Array{Elems: d.Values()}, nil
		}}, nil
	case "get":
		return HostFunc{Name: "get", Call: func(args []Value) (Value, error) {
			v, ok := d.Get(argAt(args, 0))
			if !ok {
				return Nil{}, nil
			}

			return v, nil
		}}, nil
	case "add":
		return HostFunc{Name: "add", Call: func(args []Value) (Value, error) {
			d.Set(argAt(args, 0), argAt(args, 1))

			return Nil{}, nil
		}}, nil
	default:
		return nil, ErrNoAttribute{Base: "dictionary", Name: name}
	}
}

func regexAttr(r Regex, name string) (Value, error) {
	switch name {
	case "match":
		return HostFunc{Name: "match", Call: func(args []Value) (Value, error) {
			s, ok := stringOf(argAt(args, 0))
			if !ok || r.Compiled == nil {
				return Bool{V: false}, nil
			}

			return Bool{V: r.Compiled.MatchString(s)}, nil
		}}, nil
	case "match_string":
		return HostFunc{Name: "match_string", Call: func(args []Value) (Value, error) {
			s, ok := stringOf(argAt(args, 0))
			if !ok || r.Compiled == nil {
				return String{V: ""}, nil
			}

			return String{V: r.Compiled.FindString(s)}, nil
		}}, nil
	case "find_all":
		return HostFunc{Name: "find_all", Call: func(args []Value) (Value, error) {
			s, ok := stringOf(argAt(args, 0))
			if !ok || r.Compiled == nil {
				return &Array{}, nil
			}

			found := r.Compiled.FindAllString(s, -1)
			elems := make([]Value, len(found))
			for i, f := range found {
				elems[i] = String{V: f}
			}

			return &Array{Elems: elems}, nil
		}}, nil
	default:
		return nil, ErrNoAttribute{Base: "regex", Name: name}
	}
}
