package typesys

import "sync"

// Converter turns an arbitrary value into one satisfying a declared
// type, or reports that it cannot.
type Converter func(value interface{}) (interface{}, error)

// Registry is a thread-safe name-to-Converter map. An Input declares the
// type name it wants; Convert looks the name up here.
type Registry struct {
	mu         sync.RWMutex
	converters map[string]Converter
}

// NewRegistry creates an empty type registry.
func NewRegistry() *Registry {
	return &Registry{converters: make(map[string]Converter)}
}

// Register adds a converter under name. Re-registering a name that is
// already bound returns ErrTypeAlreadyRegistered, even when conv is the
// same converter, so each type is registered exactly once, typically
// from an init-time MustRegister.
func (r *Registry) Register(name string, conv Converter) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.converters[name]; exists {
		return ErrTypeAlreadyRegistered
	}
	r.converters[name] = conv
	return nil
}

// MustRegister registers conv under name and panics if the name is
// already taken.
func (r *Registry) MustRegister(name string, conv Converter) {
	if err := r.Register(name, conv); err != nil {
		panic(err)
	}
}

// Convert coerces value to the named type. An unknown type name is
// treated as "any" and passes the value through unchanged.
func (r *Registry) Convert(name string, value interface{}) (interface{}, error) {
	r.mu.RLock()
	conv, ok := r.converters[name]
	r.mu.RUnlock()
	if !ok {
		return value, nil
	}
	return conv(value)
}

// Has reports whether name has a registered converter.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.converters[name]
	return ok
}

// global is the process-wide registry new node classes register against
// by default.
var global = NewRegistry()

// Global returns the process-wide type registry.
func Global() *Registry { return global }
