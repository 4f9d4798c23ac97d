package fna

import "fmt"

// Well-known capability names looked up by the core.
const (
	// ServiceGraphicsDeviceManager is the capability name of the optional
	// graphics device manager collaborator.
	ServiceGraphicsDeviceManager = "graphicsDeviceManager"
)

// ServiceRegistry maps capability names to singleton service instances.
// Registration is append-only: once registered, a service lives for the
// application instance's lifetime and is never removed, so lookups never
// race with mutation in practice.
type ServiceRegistry map[string]any

// Register adds a service to the registry. Registering a name twice is an
// error; the first registration wins.
func (r ServiceRegistry) Register(name string, service any) error {
	if _, exists := r[name]; exists {
		return fmt.Errorf("%w: %s", ErrServiceAlreadyRegistered, name)
	}
	r[name] = service
	return nil
}

// Get retrieves a service by name.
func (r ServiceRegistry) Get(name string) (any, bool) {
	svc, exists := r[name]
	return svc, exists
}

// GetService retrieves a service by name with a type assertion to T.
// It reports false when the name is absent or the service is not a T.
func GetService[T any](r ServiceRegistry, name string) (T, bool) {
	var zero T
	if r == nil {
		return zero, false
	}
	svc, exists := r[name].(T)
	if !exists {
		return zero, false
	}
	return svc, true
}
