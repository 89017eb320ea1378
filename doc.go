// Package difactory is an in-process object factory: given a target type, it
// produces a correctly constructed instance whose transitive dependencies are
// resolved according to per-type lifetime policies, without the caller
// hand-wiring constructors.
//
// It is a Go port of the bbv CppDiFactory single-header container. Where the
// C++ version keys its registry on the address of a per-type static, the Go
// version uses runtime type identity (reflect.Type); where it observes
// singleton liveness through std::weak_ptr, the Go version uses weak
// pointers and the garbage collector.
//
// # Registering
//
// Constructors are plain functions; their parameter types are the declared
// dependencies, resolved in argument order before the constructor runs:
//
//	func NewEngine(screw *Screw) *Engine { ... }
//	func NewCar(engine IEngine, screw *Screw) *Car { ... }
//
//	f := difactory.New()
//	difactory.MustRegisterPerRequest[Screw](f, NewScrew)
//	difactory.MustRegisterClass[Engine](f, NewEngine).
//	    WithInterfaces(difactory.KeyOf[IEngine]())
//	difactory.MustRegisterClass[Car](f, NewCar)
//
// # Lifetimes
//
//	// Transient: new instance per resolution
//	difactory.RegisterClass[Car](f, NewCar)
//
//	// Fixed instance: always the supplied value
//	difactory.RegisterInstance(f, cfg)
//
//	// Lazy singleton: shared while held anywhere, recreated after release
//	difactory.RegisterSingleton[UserStore](f, NewUserStore)
//
//	// Per request: one instance per top-level GetInstance call
//	difactory.RegisterPerRequest[Screw](f, NewScrew)
//
//	// Provided: the caller supplies the value with each GetInstance call
//	difactory.RegisterProvided[*http.Request](f)
//
//	// Interface alias: resolving IEngine delegates to *Engine
//	difactory.RegisterInterface[IEngine, Engine](f)
//
// Rebinding a registered type is not an error; the last registration wins.
//
// # Resolving
//
//	car, err := difactory.GetInstance[*Car](f)
//
// Within that one call, every resolution of a per-request type yields the
// same instance: car.Engine.Screw == car.Screw. A second call builds a new
// Screw. Values for provided types are passed alongside the request:
//
//	h := difactory.MustGetInstance[*Handler](f, req)
//
// # Validation
//
// The graph reachable from a type is validated on its first resolution, or
// explicitly ahead of time:
//
//	err := f.ValidateAll()
//
// Validation rejects unregistered dependencies (UnregisteredTypeError),
// dependency cycles (CircularDependencyError) and singletons that would
// capture a request-scoped instance forever (IllegalLifetimeError). Results
// are cached per binding until the next registration or removal.
//
// # Service Providers
//
//	reg := difactory.NewProviderRegistry(f)
//	reg.Register(&StorageProvider{})
//	reg.Register(&HTTPProvider{})
//	if err := reg.Boot(); err != nil { // validates the whole graph first
//	    log.Fatal(err)
//	}
//
// # Concurrency
//
// A DiFactory may be shared across goroutines. Every public operation runs
// under one serialization lock for its whole duration, including recursive
// resolution; there is no per-key locking.
package difactory
