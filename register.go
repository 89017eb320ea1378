package difactory

import (
	"fmt"
	"reflect"
	"weak"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Registration is the fluent handle returned by the Register functions. It
// allows binding interface aliases for the type that was just registered:
//
//	difactory.MustRegisterClass[Engine](f, NewEngine).
//	    WithInterfaces(difactory.KeyOf[IEngine]())
type Registration struct {
	factory *DiFactory
	key     Key
}

// Key returns the key the type was registered under.
func (r *Registration) Key() Key { return r.key }

// WithInterfaces registers each key as an interface alias for the
// just-registered type. Resolving the interface then delegates to the
// registered implementation. The keys must be interface types implemented by
// the registered type; anything else is a programmer error and panics.
func (r *Registration) WithInterfaces(keys ...Key) *Registration {
	for _, ik := range keys {
		if err := r.factory.bindAlias(ik, r.key); err != nil {
			panic(err)
		}
	}
	return r
}

// ── registration functions ───────────────────────────────────────────────────

// RegisterClass registers T as a transient: ctor runs on every resolution.
//
// ctor must be a function returning *T (optionally with a trailing error).
// Its parameter types are the declared dependencies, resolved in argument
// order before ctor is invoked:
//
//	func NewCar(engine IEngine, screw *Screw) *Car { ... }
//	difactory.RegisterClass[Car](f, NewCar)
func RegisterClass[T any](f *DiFactory, ctor any) (*Registration, error) {
	key := KeyOf[T]()
	build, deps, err := makeBuilder(key, ctor)
	if err != nil {
		return nil, err
	}
	f.bind(key, &transientBinding{deps: deps, build: build})
	return &Registration{factory: f, key: key}, nil
}

// RegisterSingleton registers T as a lazy singleton: one instance is shared
// for as long as any caller still holds it, observed through a weak
// reference. Once the last holder lets go, the next resolution constructs a
// fresh instance. T must be a struct type and ctor must return exactly *T.
func RegisterSingleton[T any](f *DiFactory, ctor any) (*Registration, error) {
	if reflect.TypeOf((*T)(nil)).Elem().Kind() != reflect.Struct {
		return nil, &InvalidBindingError{
			Reason: fmt.Sprintf("singleton type parameter must be a struct type, got %s",
				reflect.TypeOf((*T)(nil)).Elem()),
		}
	}
	key := KeyOf[T]()
	build, deps, err := makeBuilder(key, ctor)
	if err != nil {
		return nil, err
	}
	if out := reflect.TypeOf(ctor).Out(0); out != key {
		return nil, &InvalidBindingError{
			Reason: fmt.Sprintf("singleton constructor must return exactly %s, got %s", key, out),
		}
	}

	// The weak pointer is typed here, at the one place the concrete type is
	// still statically known; the binding only sees the closures.
	var ref weak.Pointer[T]
	f.bind(key, &singletonBinding{
		deps:  deps,
		build: build,
		ref: weakRef{
			get: func() any {
				if p := ref.Value(); p != nil {
					return p
				}
				return nil
			},
			set: func(v any) { ref = weak.Make(v.(*T)) },
		},
	})
	return &Registration{factory: f, key: key}, nil
}

// RegisterPerRequest registers T with per-request lifetime: within one
// top-level GetInstance call every resolution of T yields the same instance;
// separate calls yield separate instances.
func RegisterPerRequest[T any](f *DiFactory, ctor any) (*Registration, error) {
	key := KeyOf[T]()
	build, deps, err := makeBuilder(key, ctor)
	if err != nil {
		return nil, err
	}
	f.bind(key, &perRequestBinding{deps: deps, build: build})
	return &Registration{factory: f, key: key}, nil
}

// RegisterInstance registers a pre-built value; every resolution returns it.
func RegisterInstance[T any](f *DiFactory, value T) (*Registration, error) {
	rv := reflect.ValueOf(value)
	if !rv.IsValid() || ((rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) && rv.IsNil()) {
		return nil, &InvalidBindingError{Reason: "instance must not be nil"}
	}
	key := KeyOf[T]()
	f.bind(key, &instanceBinding{value: value})
	return &Registration{factory: f, key: key}, nil
}

// RegisterProvided declares that values of type T are supplied by the caller
// alongside each top-level GetInstance call. Resolving T without a supplied
// value fails with MissingProvidedInstanceError.
func RegisterProvided[T any](f *DiFactory) *Registration {
	key := KeyOf[T]()
	f.bind(key, &providedBinding{})
	return &Registration{factory: f, key: key}
}

// RegisterInterface binds interface I to the registered implementation Impl;
// resolving I delegates to Impl's binding. Equivalent to
// WithInterfaces(KeyOf[I]()) on Impl's registration.
func RegisterInterface[I any, Impl any](f *DiFactory) error {
	return f.bindAlias(KeyOf[I](), KeyOf[Impl]())
}

// ── Must variants ────────────────────────────────────────────────────────────

// MustRegisterClass is RegisterClass, panicking on error.
func MustRegisterClass[T any](f *DiFactory, ctor any) *Registration {
	r, err := RegisterClass[T](f, ctor)
	if err != nil {
		panic(err)
	}
	return r
}

// MustRegisterSingleton is RegisterSingleton, panicking on error.
func MustRegisterSingleton[T any](f *DiFactory, ctor any) *Registration {
	r, err := RegisterSingleton[T](f, ctor)
	if err != nil {
		panic(err)
	}
	return r
}

// MustRegisterPerRequest is RegisterPerRequest, panicking on error.
func MustRegisterPerRequest[T any](f *DiFactory, ctor any) *Registration {
	r, err := RegisterPerRequest[T](f, ctor)
	if err != nil {
		panic(err)
	}
	return r
}

// MustRegisterInstance is RegisterInstance, panicking on error.
func MustRegisterInstance[T any](f *DiFactory, value T) *Registration {
	r, err := RegisterInstance[T](f, value)
	if err != nil {
		panic(err)
	}
	return r
}

// MustRegisterInterface is RegisterInterface, panicking on error.
func MustRegisterInterface[I any, Impl any](f *DiFactory) {
	if err := RegisterInterface[I, Impl](f); err != nil {
		panic(err)
	}
}

// ── resolution ───────────────────────────────────────────────────────────────

// GetInstance resolves an instance of T, validating the reachable graph on
// first use. T should be an interface or pointer type. provided supplies
// values for any externally-provided types needed transitively; when two
// supplied values cover the same key, the later one wins.
func GetInstance[T any](f *DiFactory, provided ...any) (T, error) {
	var zero T
	key := KeyOf[T]()
	v, err := f.getInstance(key, provided)
	if err != nil {
		return zero, err
	}
	if typed, ok := v.(T); ok {
		return typed, nil
	}
	// T named the struct rather than its pointer; hand out a copy.
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.Type() == key {
		if typed, ok := rv.Elem().Interface().(T); ok {
			return typed, nil
		}
	}
	return zero, &InvalidBindingError{
		Reason: fmt.Sprintf("%s resolved to incompatible %T", keyName(key), v),
	}
}

// MustGetInstance is GetInstance, panicking on error.
func MustGetInstance[T any](f *DiFactory, provided ...any) T {
	v, err := GetInstance[T](f, provided...)
	if err != nil {
		panic(err)
	}
	return v
}

// ── helpers ──────────────────────────────────────────────────────────────────

// bindAlias stores an interface alias after checking that target can actually
// stand in for iface.
func (f *DiFactory) bindAlias(iface, target Key) error {
	if iface == nil || iface.Kind() != reflect.Interface {
		return &InvalidBindingError{
			Reason: fmt.Sprintf("alias key %s is not an interface type", keyName(iface)),
		}
	}
	if !target.AssignableTo(iface) {
		return &InvalidBindingError{
			Reason: fmt.Sprintf("%s does not implement %s", keyName(target), keyName(iface)),
		}
	}
	f.bind(iface, &aliasBinding{target: target})
	return nil
}

// makeBuilder reflects over ctor once and returns the invoke closure plus the
// dependency keys taken from the parameter list.
func makeBuilder(key Key, ctor any) (buildFunc, []Key, error) {
	fn := reflect.ValueOf(ctor)
	if !fn.IsValid() || fn.Kind() != reflect.Func {
		return nil, nil, &InvalidBindingError{
			Reason: fmt.Sprintf("constructor for %s must be a function, got %T", keyName(key), ctor),
		}
	}
	t := fn.Type()
	if t.IsVariadic() {
		return nil, nil, &InvalidBindingError{
			Reason: fmt.Sprintf("constructor for %s must not be variadic", keyName(key)),
		}
	}

	switch t.NumOut() {
	case 1:
	case 2:
		if t.Out(1) != errorType {
			return nil, nil, &InvalidBindingError{
				Reason: fmt.Sprintf("constructor for %s: second return value must be error, got %s",
					keyName(key), t.Out(1)),
			}
		}
	default:
		return nil, nil, &InvalidBindingError{
			Reason: fmt.Sprintf("constructor for %s must return the instance or (instance, error)",
				keyName(key)),
		}
	}
	if !t.Out(0).AssignableTo(key) {
		return nil, nil, &InvalidBindingError{
			Reason: fmt.Sprintf("constructor for %s returns %s", keyName(key), t.Out(0)),
		}
	}

	deps := make([]Key, t.NumIn())
	for i := range deps {
		in := t.In(i)
		if in.Kind() != reflect.Interface && in.Kind() != reflect.Pointer {
			return nil, nil, &InvalidBindingError{
				Reason: fmt.Sprintf("constructor for %s: dependency %d must be an interface or pointer type, got %s",
					keyName(key), i, in),
			}
		}
		deps[i] = in
	}

	build := func(args []reflect.Value) (any, error) {
		results := fn.Call(args)
		if len(results) == 2 && !results[1].IsNil() {
			return nil, results[1].Interface().(error)
		}
		return results[0].Interface(), nil
	}
	return build, deps, nil
}
