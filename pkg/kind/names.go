package kind

import (
	"reflect"
	"sync"
)

// NameRegistry maps string type names to concrete types. Kind packages use
// one to back their TypeResolver, the analog of an ORM's class registry:
// fields that reference a type by name in tag metadata resolve through it.
type NameRegistry struct {
	mu    sync.RWMutex
	types map[string]reflect.Type
}

// NewNameRegistry creates an empty name registry.
func NewNameRegistry() *NameRegistry {
	return &NameRegistry{types: make(map[string]reflect.Type)}
}

// Add associates a name with a type, replacing any earlier association.
func (r *NameRegistry) Add(name string, t reflect.Type) {
	if name == "" || t == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types[name] = t
}

// Resolve returns the type registered under a name.
func (r *NameRegistry) Resolve(name string) (reflect.Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.types[name]
	return t, ok
}

// Names returns the registered names in no particular order.
func (r *NameRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	return names
}
