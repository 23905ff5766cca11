package procedure

import (
	"fmt"
	"sort"
	"sync"
)

// Factory creates a fully configured Manager for a named procedure.
type Factory func() (*Manager, error)

var (
	// DefaultRegistry holds the registered procedure factories.
	DefaultRegistry = make(map[string]Factory)
	registryMutex   = &sync.RWMutex{}
)

// Register adds a procedure factory to the DefaultRegistry. It returns an
// error if a procedure with the same name is already registered.
func Register(name string, factory Factory) error {
	registryMutex.Lock()
	defer registryMutex.Unlock()

	if name == "" {
		return fmt.Errorf("procedure name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory for procedure '%s' cannot be nil", name)
	}
	if _, exists := DefaultRegistry[name]; exists {
		return fmt.Errorf("procedure with name '%s' already registered", name)
	}
	DefaultRegistry[name] = factory
	return nil
}

// Get builds a new Manager instance from the registered factory. It returns
// an error if the procedure name is not found in the registry.
func Get(name string) (*Manager, error) {
	registryMutex.RLock()
	factory, exists := DefaultRegistry[name]
	registryMutex.RUnlock()

	if !exists {
		return nil, fmt.Errorf("procedure with name '%s' not found in registry", name)
	}
	return factory()
}

// RegisteredNames returns the names of all registered procedures, sorted.
func RegisteredNames() []string {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	names := make([]string, 0, len(DefaultRegistry))
	for name := range DefaultRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
