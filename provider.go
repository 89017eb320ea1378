package difactory

// ── ServiceProvider interface ────────────────────────────────────────────────

// ServiceProvider groups related registrations so an application can assemble
// its object graph in modular pieces.
//
// Register must only bind types; resolving other bindings belongs in Boot,
// which runs after every provider has registered and after the whole graph
// has been validated.
//
//	type StorageProvider struct{ difactory.BaseProvider }
//
//	func (p *StorageProvider) Register(f *difactory.DiFactory) {
//	    difactory.MustRegisterSingleton[UserStore](f, NewUserStore).
//	        WithInterfaces(difactory.KeyOf[Users]())
//	}
//
//	func (p *StorageProvider) Boot(f *difactory.DiFactory) {
//	    store := difactory.MustGetInstance[Users](f)
//	    store.Warm()
//	}
type ServiceProvider interface {
	// Register binds types into the factory.
	// Do NOT resolve other bindings here; use Boot for that.
	Register(f *DiFactory)

	// Boot is called after all providers are registered and the graph has
	// validated. Safe to resolve and use any binding here.
	Boot(f *DiFactory)
}

// ── BaseProvider ─────────────────────────────────────────────────────────────

// BaseProvider is an embeddable struct with a no-op Boot.
// Embed it and override only what you need.
type BaseProvider struct{}

func (p *BaseProvider) Boot(_ *DiFactory) {}

// ── ProviderRegistry ─────────────────────────────────────────────────────────

// ProviderRegistry manages registration and booting of ServiceProviders.
//
// There is no deferred provider loading: bindings declare their dependencies
// statically and ValidateAll must see the complete graph, so every provider
// registers eagerly.
type ProviderRegistry struct {
	factory    *DiFactory
	providers  []ServiceProvider
	registered map[ServiceProvider]bool
	booted     bool
}

// NewProviderRegistry creates a registry bound to f.
func NewProviderRegistry(f *DiFactory) *ProviderRegistry {
	return &ProviderRegistry{
		factory:    f,
		registered: make(map[ServiceProvider]bool),
	}
}

// Register adds a provider and calls its Register method. Registering the
// same provider twice is a no-op. If the registry has already booted, the
// provider's Boot runs immediately.
func (r *ProviderRegistry) Register(provider ServiceProvider) {
	if r.registered[provider] {
		return
	}
	r.registered[provider] = true

	provider.Register(r.factory)
	r.providers = append(r.providers, provider)

	if r.booted {
		provider.Boot(r.factory)
	}
}

// Boot validates the whole graph, then calls Boot on every registered
// provider in registration order. Subsequent calls are no-ops.
// Must be called after ALL providers have been registered.
func (r *ProviderRegistry) Boot() error {
	if r.booted {
		return nil
	}
	if err := r.factory.ValidateAll(); err != nil {
		return err
	}
	r.booted = true
	for _, provider := range r.providers {
		provider.Boot(r.factory)
	}
	return nil
}

// Booted returns true if Boot has completed.
func (r *ProviderRegistry) Booted() bool { return r.booted }

// Providers returns all registered providers.
func (r *ProviderRegistry) Providers() []ServiceProvider { return r.providers }
