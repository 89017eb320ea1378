package difactory

// validator walks the dependency graph reachable from a binding and rejects
// graphs that cannot be resolved safely: unregistered dependencies, cycles,
// and singletons that would capture a request-scoped instance. Results are
// memoized on each binding until the registry mutates.
// All methods assume the facade lock is held.
type validator struct {
	reg *registry
}

func newValidator(reg *registry) *validator {
	return &validator{reg: reg}
}

// validate checks the graph reachable from key. A binding whose previous
// validation succeeded and has not been invalidated since returns
// immediately.
func (v *validator) validate(key Key) error {
	b := v.reg.lookup(key)
	if b == nil {
		return &UnregisteredTypeError{Key: key}
	}
	if b.state().validated {
		return nil
	}
	_, err := v.check(key, nil)
	return err
}

// validateAll validates every registered key and aggregates the failures.
// Used as a whole-graph health check independent of any single resolution.
func (v *validator) validateAll() error {
	var errs []error
	for _, key := range v.reg.keys() {
		if err := v.validate(key); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// check walks the subtree below key and returns the first per-request or
// provided type reachable from it, or nil. path holds the keys currently
// being visited; any revisit on the path is a cycle. Tracking the whole path
// rather than just the root means validation terminates on cycles that do
// not pass through the starting key.
func (v *validator) check(key Key, path []Key) (Key, error) {
	b := v.reg.lookup(key)
	if b == nil {
		return nil, &UnregisteredTypeError{Key: key}
	}
	st := b.state()
	if st.validated {
		return st.scopedDep, nil
	}
	for i, seen := range path {
		if seen == key {
			cycle := append(append([]Key{}, path[i:]...), key)
			return nil, &CircularDependencyError{Path: cycle}
		}
	}
	path = append(path, key)

	var scoped Key
	for _, dep := range b.dependencies() {
		ds, err := v.check(dep, path)
		if err != nil {
			return nil, err
		}
		if scoped == nil {
			scoped = ds
		}
	}

	switch b.lifetime() {
	case LifetimePerRequest, LifetimeProvided:
		// Request-scoped in nature, regardless of what it depends on.
		scoped = key
	case LifetimeSingleton:
		if scoped != nil {
			return nil, &IllegalLifetimeError{Singleton: key, Scoped: scoped}
		}
	}

	st.markValid(scoped)
	return scoped, nil
}
