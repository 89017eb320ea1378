package difactory

import "reflect"

// Key identifies a registered type inside the factory. Two Keys are equal iff
// they denote the same Go type, and the runtime guarantees a type's identity
// is stable for the lifetime of the process, so Keys can be used directly as
// map keys without any extra bookkeeping.
type Key = reflect.Type

// KeyOf returns the Key under which T is registered and resolved.
//
// Concrete types are always handled through pointers, so a struct type
// parameter maps to its pointer type:
//
//	KeyOf[Engine]()   // Key for *Engine
//	KeyOf[*Engine]()  // Key for *Engine (same as above)
//	KeyOf[IEngine]()  // Key for the IEngine interface
func KeyOf[T any]() Key {
	t := reflect.TypeOf((*T)(nil)).Elem()
	switch t.Kind() {
	case reflect.Interface, reflect.Pointer:
		return t
	default:
		return reflect.PointerTo(t)
	}
}

// keyName renders a Key for error messages and log fields.
func keyName(key Key) string {
	if key == nil {
		return "<nil>"
	}
	return key.String()
}
