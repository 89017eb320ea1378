package difactory

// Lifetime names the reuse strategy of a binding.
type Lifetime string

const (
	// LifetimeTransient creates a new instance on every resolution.
	LifetimeTransient Lifetime = "transient"

	// LifetimeInstance always returns one externally supplied value.
	LifetimeInstance Lifetime = "instance"

	// LifetimeSingleton reuses one instance for as long as any caller still
	// holds it. Once the last external reference is gone the instance is
	// recreated on the next resolution.
	LifetimeSingleton Lifetime = "singleton"

	// LifetimePerRequest creates at most one instance per top-level
	// GetInstance call; separate calls get separate instances.
	LifetimePerRequest Lifetime = "per-request"

	// LifetimeProvided holds no factory at all. The value must be supplied by
	// the caller alongside the top-level GetInstance call.
	LifetimeProvided Lifetime = "provided"

	// LifetimeAlias forwards resolution to another registered type.
	LifetimeAlias Lifetime = "alias"
)

// String returns the lifetime name.
func (l Lifetime) String() string { return string(l) }
