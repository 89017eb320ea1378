package difactory

import (
	"sync"

	"github.com/rs/zerolog"
)

// DiFactory is the public entry point: a registry of type bindings plus the
// resolution and validation machinery, behind one serialization lock.
//
// Every public operation takes the lock for its whole duration, including
// any recursive resolution it triggers; the internal registry, resolver and
// validator never lock themselves (the C++ original used a recursive mutex
// for the same effect). Concurrent callers are fully serialized against each
// other. Registration and resolution are assumed infrequent relative to
// steady-state application work, so there is no per-key locking.
type DiFactory struct {
	mu  sync.Mutex
	reg *registry
	log zerolog.Logger
}

// New creates an empty factory.
//
//	f := difactory.New()
//	// or with options:
//	f := difactory.New(difactory.WithLogger(logger))
func New(opts ...Option) *DiFactory {
	f := &DiFactory{
		reg: newRegistry(),
		log: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Unregister removes the binding for key if present. Remaining bindings that
// depend on key will fail a subsequent validation with UnregisteredTypeError.
func (f *DiFactory) Unregister(key Key) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	removed := f.reg.unbind(key)
	if removed {
		f.log.Debug().Str("type", keyName(key)).Msg("binding removed")
	}
	return removed
}

// Validate checks the dependency graph reachable from key without
// constructing anything. Successful results are cached until the next
// registration or removal.
func (f *DiFactory) Validate(key Key) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.validate(key)
}

// ValidateAll validates every registered binding and aggregates failures
// into a ValidationError. Typical use is a startup health check after all
// providers have registered.
func (f *DiFactory) ValidateAll() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	err := newValidator(f.reg).validateAll()
	if err != nil {
		f.log.Debug().Err(err).Msg("validation failed")
	}
	return err
}

// Bound reports whether key has a binding.
func (f *DiFactory) Bound(key Key) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reg.lookup(key) != nil
}

// Keys returns all registered keys in deterministic order (for debugging).
func (f *DiFactory) Keys() []Key {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reg.keys()
}

// ── internals (lock held) ────────────────────────────────────────────────────

func (f *DiFactory) validate(key Key) error {
	err := newValidator(f.reg).validate(key)
	if err != nil {
		f.log.Debug().Str("type", keyName(key)).Err(err).Msg("validation failed")
	}
	return err
}

// bind stores b under key. Rebinding an existing key is not an error: the new
// binding silently replaces the old one, per the general replace semantics.
func (f *DiFactory) bind(key Key, b binding) {
	f.mu.Lock()
	defer f.mu.Unlock()
	replaced := f.reg.bind(key, b)
	ev := f.log.Debug().Str("type", keyName(key)).Str("lifetime", b.lifetime().String())
	if replaced {
		ev.Msg("binding replaced")
	} else {
		ev.Msg("binding registered")
	}
}

// getInstance is the top-level resolution entry: validate on first use, seed
// the request cache with supplied values, then resolve. The cache lives only
// for this call.
func (f *DiFactory) getInstance(key Key, provided []any) (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.validate(key); err != nil {
		return nil, err
	}

	res := newResolution(f.reg)
	for _, p := range provided {
		res.seed(p)
	}

	v, err := res.resolve(key)
	if err != nil {
		f.log.Debug().Str("type", keyName(key)).Err(err).Msg("resolution failed")
		return nil, err
	}
	f.log.Debug().Str("type", keyName(key)).Msg("resolved")
	return v, nil
}
