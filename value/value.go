// Package value implements Sapling's runtime value variants (spec.md
// §3.3): the closed set every expression evaluates to, each exposing a
// string type tag, a truthiness rule, and a display method. The package
// also implements the three polymorphic protocols dispatched on a
// value's concrete type — binary/unary operators (§4.3), attribute
// lookup (§4.4), and indexing (§4.5) — grounded on
// original_source/sapling/objects.py's per-class dunder-method tables
// (__add__/__eq__/... dispatched by `match other.type`), translated to
// Go type switches since Go has no operator overloading.
package value

import (
	"fmt"
	"regexp"
)

// Value is implemented by every runtime variant.
type Value interface {
	// Type returns the value's display/type-check tag (spec.md §3.3's
	// `type` column).
	Type() string

	// Truthy reports whether the value counts as true in a boolean
	// context (if/while/repeat conditions, unary !, && / ||).
	Truthy() bool

	// Repr returns the value's display string, as used by print and by
	// nested container display.
	Repr() string
}

// Hashable is implemented by values usable as Dictionary keys. HashKey
// returns a comparable Go value such that two Sapling values of the same
// type considered equal by == produce the same HashKey. Values of
// different types (Int 1 and Float 1.0) get different keys.
type Hashable interface {
	HashKey() any
}

// Int is a 64-bit signed integer (spec.md §3.3).
type Int struct{ V int64 }

func (Int) Type() string     { return "int" }
func (v Int) Truthy() bool   { return v.V > 0 }
func (v Int) Repr() string   { return fmt.Sprintf("%d", v.V) }
func (v Int) HashKey() any   { return v.V }

// Float is a 64-bit IEEE float.
type Float struct{ V float64 }

func (Float) Type() string   { return "float" }
func (v Float) Truthy() bool { return v.V > 0.0 }
func (v Float) Repr() string { return fmt.Sprintf("%g", v.V) }
func (v Float) HashKey() any { return v.V }

// Hex is an integer carried under a distinct type tag from Int, as
// spec.md §3.3 requires, and remembers its original literal text for
// display.
type Hex struct {
	V    int64
	Text string
}

func (Hex) Type() string   { return "hex" }
func (v Hex) Truthy() bool { return v.V != 0 }
func (v Hex) Repr() string {
	if v.Text != "" {
		return v.Text
	}

	return fmt.Sprintf("0x%x", v.V)
}
func (v Hex) HashKey() any { return v.V }

// Bool is a boolean.
type Bool struct{ V bool }

func (Bool) Type() string   { return "bool" }
func (v Bool) Truthy() bool { return v.V }
func (v Bool) Repr() string { return fmt.Sprintf("%t", v.V) }
func (v Bool) HashKey() any { return v.V }

// String is UTF-8 text.
type String struct{ V string }

func (String) Type() string   { return "string" }
func (v String) Truthy() bool { return v.V != "" }
func (v String) Repr() string { return v.V }
func (v String) HashKey() any { return v.V }

// StrBytes is an opaque byte sequence, a subtype of String (spec.md
// §3.3: "extends String's contract" — +, == and != accept a String or
// StrBytes on either side; the ordering comparisons accept a StrBytes
// only on the right of a String).
type StrBytes struct{ V []byte }

func (StrBytes) Type() string   { return "strbytes" }
func (v StrBytes) Truthy() bool { return len(v.V) != 0 }
func (v StrBytes) Repr() string { return string(v.V) }
func (v StrBytes) HashKey() any { return string(v.V) }

// Nil is the unit value.
type Nil struct{}

func (Nil) Type() string   { return "nil" }
func (Nil) Truthy() bool   { return false }
func (Nil) Repr() string   { return "nil" }
func (Nil) HashKey() any   { return nil }

// Regex wraps a compiled pattern. Compiled is nil when construction
// failed to compile (truthiness reflects that per spec.md §3.3).
type Regex struct {
	Pattern  string
	Compiled *regexp.Regexp
}

// NewRegex compiles pattern, returning a Regex whose Compiled field is
// nil (and Truthy false) if compilation fails.
func NewRegex(pattern string) Regex {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Regex{Pattern: pattern}
	}

	return Regex{Pattern: pattern, Compiled: re}
}

func (Regex) Type() string   { return "regex" }
func (v Regex) Truthy() bool { return v.Compiled != nil }
func (v Regex) Repr() string { return "`" + v.Pattern + "`" }

// Array is an ordered, mutable sequence of values. It is always boxed as
// a pointer (like Dictionary) so that attribute methods such as add/set/
// remove mutate the same backing slice everywhere the array is bound,
// rather than a copy local to the method call.
type Array struct{ Elems []Value }

// NewArray returns an Array wrapping elems (taking ownership of the
// slice — callers should not mutate it afterward through other
// references).
func NewArray(elems []Value) *Array {
	return &Array{Elems: elems}
}

func (*Array) Type() string   { return "array" }
func (v *Array) Truthy() bool { return len(v.Elems) != 0 }
func (v *Array) Repr() string {
	s := "{"
	for i, e := range v.Elems {
		if i > 0 {
			s += ", "
		}

		s += e.Repr()
	}

	return s + "}"
}

// dictEntry is one ordered key/value pair of a Dictionary.
type dictEntry struct {
	Key   Value
	Value Value
}

// Dictionary is an ordered mapping of value to value, keyed by hash
// equality (spec.md §3.3/§4.5).
type Dictionary struct {
	entries []dictEntry
	index   map[any]int
}

// NewDictionary builds an empty, ready-to-use Dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{index: make(map[any]int)}
}

func (*Dictionary) Type() string   { return "dictionary" }
func (d *Dictionary) Truthy() bool { return len(d.entries) != 0 }
func (d *Dictionary) Repr() string {
	s := "{"
	for i, e := range d.entries {
		if i > 0 {
			s += ", "
		}

		s += e.Key.Repr() + ": " + e.Value.Repr()
	}

	return s + "}"
}

// Set inserts or updates the value bound to key, preserving the
// existing position on update.
func (d *Dictionary) Set(key, val Value) {
	hk := hashKeyOf(key)
	if i, ok := d.index[hk]; ok {
		d.entries[i].Value = val

		return
	}

	d.index[hk] = len(d.entries)
	d.entries = append(d.entries, dictEntry{Key: key, Value: val})
}

// Get returns the value bound to key and whether it was present.
func (d *Dictionary) Get(key Value) (Value, bool) {
	i, ok := d.index[hashKeyOf(key)]
	if !ok {
		return nil, false
	}

	return d.entries[i].Value, true
}

// Keys returns the dictionary's keys in insertion order.
func (d *Dictionary) Keys() []Value {
	out := make([]Value, len(d.entries))
	for i, e := range d.entries {
		out[i] = e.Key
	}

	return out
}

// Values returns the dictionary's values in insertion order.
func (d *Dictionary) Values() []Value {
	out := make([]Value, len(d.entries))
	for i, e := range d.entries {
		out[i] = e.Value
	}

	return out
}

// hashKeyOf returns a comparable Go value for use as a dictionary key,
// falling back to the value's Repr for variants with no Hashable
// implementation (spec.md §4.5 only requires this for Dictionary, which
// is itself never used as a key in practice).
func hashKeyOf(v Value) any {
	if h, ok := v.(Hashable); ok {
		return fmt.Sprintf("%s:%v", v.Type(), h.HashKey())
	}

	return v.Type() + ":" + v.Repr()
}

// Var wraps a value to carry the constant flag (spec.md §3.3).
// Environment lookups unwrap it transparently; it is never itself the
// result of evaluating an expression.
type Var struct {
	Value    Value
	Constant bool
}
