package value

import "fmt"

// ErrIndexOutOfRange and ErrIndexUnsupported are wrapped by vm into
// positioned IndexError/TypeError respectively (spec.md §4.5).
type ErrIndexOutOfRange struct{ Index int }

func (e ErrIndexOutOfRange) Error() string {
	return fmt.Sprintf("index %d out of range", e.Index)
}

type ErrIndexMissingKey struct{ Key Value }

func (e ErrIndexMissingKey) Error() string {
	return fmt.Sprintf("missing key %s", e.Key.Repr())
}

type ErrIndexUnsupported struct{ Type string }

func (e ErrIndexUnsupported) Error() string {
	return fmt.Sprintf("value of type %s is not indexable", e.Type)
}

// Index implements e[k] (spec.md §4.5).
func Index(container, key Value) (Value, error) {
	switch c := container.(type) {
	case String:
		i, ok := key.(Int)
		if !ok || i.V < 0 || int(i.V) >= len(c.V) {
			return nil, ErrIndexOutOfRange{Index: indexOf(key)}
		}

		return String{V: string(c.V[i.V])}, nil
	case StrBytes:
		i, ok := key.(Int)
		if !ok || i.V < 0 || int(i.V) >= len(c.V) {
			return nil, ErrIndexOutOfRange{Index: indexOf(key)}
		}

		return StrBytes{V: []byte{c.V[i.V]}}, nil
	case *Array:
		i, ok := key.(Int)
		if !ok || i.V < 0 || int(i.V) >= len(c.Elems) {
			return nil, ErrIndexOutOfRange{Index: indexOf(key)}
		}

		return c.Elems[i.V], nil
	case *Dictionary:
		v, ok := c.Get(key)
		if !ok {
			return nil, ErrIndexMissingKey{Key: key}
		}

		return v, nil
	default:
		return nil, ErrIndexUnsupported{Type: container.Type()}
	}
}

func indexOf(key Value) int {
	if i, ok := key.(Int); ok {
		return int(i.V)
	}

	return -1
}
