package difactory

import "reflect"

// requestCache holds the instances produced for one top-level GetInstance
// call. It is what gives per-request bindings their "same instance within one
// call" behaviour, and it is seeded with any caller-supplied values before
// resolution starts. Discarded when the top-level call returns.
type requestCache map[Key]any

// resolution is the state threaded through one top-level resolve call.
// It runs entirely under the facade lock.
type resolution struct {
	reg   *registry
	cache requestCache
}

func newResolution(reg *registry) *resolution {
	return &resolution{reg: reg, cache: make(requestCache)}
}

// resolve produces the instance for key, recursing through the binding's
// dependency graph.
func (r *resolution) resolve(key Key) (any, error) {
	b := r.reg.lookup(key)
	if b == nil {
		return nil, &UnregisteredTypeError{Key: key}
	}
	return b.produce(r, key)
}

// construct resolves deps in declaration order and invokes build with the
// results, mirroring constructor argument order.
func (r *resolution) construct(deps []Key, build buildFunc) (any, error) {
	args := make([]reflect.Value, len(deps))
	for i, dep := range deps {
		v, err := r.resolve(dep)
		if err != nil {
			return nil, err
		}
		args[i] = reflect.ValueOf(v)
	}
	return build(args)
}

// seed records a caller-supplied value in the cache before resolution begins.
// The value is stored under every registered provided key it satisfies;
// bindings with any other lifetime are never preempted by supplied values.
// Later values win over earlier ones when two supplied instances cover the
// same key.
func (r *resolution) seed(value any) {
	t := reflect.TypeOf(value)
	if t == nil {
		return
	}
	for key, b := range r.reg.bindings {
		if b.lifetime() != LifetimeProvided {
			continue
		}
		if t.AssignableTo(key) {
			r.cache[key] = value
		}
	}
}
