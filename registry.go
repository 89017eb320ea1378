package difactory

import "sort"

// registry maps type keys to their bindings. It owns the bindings
// exclusively; callers only ever see resolved instances.
// All methods assume the facade lock is held.
type registry struct {
	bindings map[Key]binding
}

func newRegistry() *registry {
	return &registry{bindings: make(map[Key]binding)}
}

// bind inserts or replaces the binding for key and reports whether a previous
// binding was replaced. A replace invalidates the cached validation state of
// every stored binding: the new topology may break graphs that validated
// against the old one. A fresh insert cannot, because validation results are
// only ever cached for fully registered graphs.
func (r *registry) bind(key Key, b binding) (replaced bool) {
	_, replaced = r.bindings[key]
	r.bindings[key] = b
	if replaced {
		r.invalidateAll()
	}
	return replaced
}

// unbind removes the binding for key if present and invalidates all remaining
// cached validation state.
func (r *registry) unbind(key Key) bool {
	if _, ok := r.bindings[key]; !ok {
		return false
	}
	delete(r.bindings, key)
	r.invalidateAll()
	return true
}

// lookup returns the binding for key, or nil.
func (r *registry) lookup(key Key) binding {
	return r.bindings[key]
}

func (r *registry) invalidateAll() {
	for _, b := range r.bindings {
		b.state().invalidate()
	}
}

// keys returns all registered keys in a deterministic order.
func (r *registry) keys() []Key {
	out := make([]Key, 0, len(r.bindings))
	for k := range r.bindings {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}
