// Package host implements the host-module bridge of spec.md §6.3: a Go
// type or module becomes a Sapling Class/Lib, its callable members
// becoming value.HostFunc-backed attributes and its plain fields
// becoming ordinary attribute values, both stored under the "_<name>"
// convention value.Class.Attr/SetAttr already apply.
package host

import "github.com/ardnew/sapling/value"

// Func declares one host-callable member together with the parameter
// schema spec.md §6.3 requires metadata for ("name, type or type-set,
// default").
type Func struct {
	Name   string
	Params []value.Param
	Call   func(args []value.Value) (value.Value, error)
}

func (f Func) hostFunc() value.HostFunc {
	return value.HostFunc{Name: f.Name, Params: f.Params, Call: f.Call}
}

// Member is one attribute of a host type or module: either a callable
// Func or a plain value.
type Member struct {
	Name  string
	Func  *Func
	Value value.Value
}

// Type builds a *value.Class exposing members under Sapling attribute
// names, with typeTag overriding the class-level string `type` spec.md
// §6.3 names, and display implementing the optional `repr(context)`
// override.
func Type(name, typeTag string, members []Member, display func(*value.Class) string) *value.Class {
	c := value.NewClass(name)
	c.TypeTag = typeTag
	c.DisplayHook = display

	for _, m := range members {
		if m.Func != nil {
			c.SetAttr(m.Name, m.Func.hostFunc())

			continue
		}

		c.SetAttr(m.Name, m.Value)
	}

	return c
}

// Module builds a *value.Lib, the top-level counterpart of Type (spec.md
// §6.3: "A module (library) is the same mechanism at the top level").
func Module(name string, members []Member) *value.Lib {
	return &value.Lib{Class: Type(name, "lib", members, nil)}
}
