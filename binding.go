package difactory

import "reflect"

// buildFunc invokes a user constructor with already-resolved dependencies.
// Created once at registration time from the reflected constructor.
type buildFunc func(args []reflect.Value) (any, error)

// bindingState is the validation cache carried by every binding. It is reset
// whenever the registry mutates, since a rebind or unbind may change the
// shape of the whole dependency graph.
type bindingState struct {
	validated bool
	// scopedDep is the first per-request or provided type reachable from this
	// binding, or nil. Only meaningful while validated is true.
	scopedDep Key
}

func (s *bindingState) invalidate() {
	s.validated = false
	s.scopedDep = nil
}

func (s *bindingState) markValid(scopedDep Key) {
	s.validated = true
	s.scopedDep = scopedDep
}

// binding describes how to produce or obtain an instance of one type.
// All methods are called with the facade lock held.
type binding interface {
	// produce resolves or constructs the instance for key within one
	// top-level resolution.
	produce(r *resolution, key Key) (any, error)

	// dependencies returns the declared dependency keys in constructor
	// argument order. Aliases report their target.
	dependencies() []Key

	lifetime() Lifetime
	state() *bindingState
}

// ── transient ────────────────────────────────────────────────────────────────

type transientBinding struct {
	bindingState
	deps  []Key
	build buildFunc
}

func (b *transientBinding) produce(r *resolution, _ Key) (any, error) {
	return r.construct(b.deps, b.build)
}

func (b *transientBinding) dependencies() []Key { return b.deps }
func (b *transientBinding) lifetime() Lifetime { return LifetimeTransient }
func (b *transientBinding) state() *bindingState { return &b.bindingState }

// ── fixed instance ───────────────────────────────────────────────────────────

type instanceBinding struct {
	bindingState
	value any
}

func (b *instanceBinding) produce(*resolution, Key) (any, error) { return b.value, nil }

func (b *instanceBinding) dependencies() []Key { return nil }
func (b *instanceBinding) lifetime() Lifetime { return LifetimeInstance }
func (b *instanceBinding) state() *bindingState { return &b.bindingState }

// ── lazy singleton ───────────────────────────────────────────────────────────

// weakRef is a pair of closures over a typed weak pointer, created at the
// generic registration site where the concrete type is still known. get
// returns the live instance or nil; set replaces the observed instance.
// The binding itself never keeps the instance alive: its lifetime is
// governed purely by the callers still holding it.
type weakRef struct {
	get func() any
	set func(any)
}

type singletonBinding struct {
	bindingState
	deps  []Key
	build buildFunc
	ref   weakRef
}

func (b *singletonBinding) produce(r *resolution, _ Key) (any, error) {
	if live := b.ref.get(); live != nil {
		return live, nil
	}
	v, err := r.construct(b.deps, b.build)
	if err != nil {
		return nil, err
	}
	b.ref.set(v)
	return v, nil
}

func (b *singletonBinding) dependencies() []Key { return b.deps }
func (b *singletonBinding) lifetime() Lifetime { return LifetimeSingleton }
func (b *singletonBinding) state() *bindingState { return &b.bindingState }

// ── scoped per request ───────────────────────────────────────────────────────

type perRequestBinding struct {
	bindingState
	deps  []Key
	build buildFunc
}

func (b *perRequestBinding) produce(r *resolution, key Key) (any, error) {
	if v, ok := r.cache[key]; ok {
		return v, nil
	}
	v, err := r.construct(b.deps, b.build)
	if err != nil {
		return nil, err
	}
	r.cache[key] = v
	return v, nil
}

func (b *perRequestBinding) dependencies() []Key { return b.deps }
func (b *perRequestBinding) lifetime() Lifetime { return LifetimePerRequest }
func (b *perRequestBinding) state() *bindingState { return &b.bindingState }

// ── externally provided ──────────────────────────────────────────────────────

type providedBinding struct {
	bindingState
}

func (b *providedBinding) produce(r *resolution, key Key) (any, error) {
	if v, ok := r.cache[key]; ok {
		return v, nil
	}
	return nil, &MissingProvidedInstanceError{Key: key}
}

func (b *providedBinding) dependencies() []Key { return nil }
func (b *providedBinding) lifetime() Lifetime { return LifetimeProvided }
func (b *providedBinding) state() *bindingState { return &b.bindingState }

// ── interface alias ──────────────────────────────────────────────────────────

type aliasBinding struct {
	bindingState
	target Key
}

func (b *aliasBinding) produce(r *resolution, _ Key) (any, error) {
	return r.resolve(b.target)
}

func (b *aliasBinding) dependencies() []Key { return []Key{b.target} }
func (b *aliasBinding) lifetime() Lifetime { return LifetimeAlias }
func (b *aliasBinding) state() *bindingState { return &b.bindingState }
