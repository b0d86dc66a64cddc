// Package values holds the primitive value registry: the mapping from a
// concrete type to a deterministic seed-driven generator, plus the member
// lists that make enumeration-style types generatable.
package values

import (
	"fmt"
	"reflect"
	"sync"
)

// Generator produces a deterministic value for a seed. Equal seeds must
// produce equal values; distinct seeds should produce distinct values.
type Generator func(seed int) any

// Registry stores generators and enum member lists keyed by reflect.Type.
// Registrations may overwrite earlier ones; scoped tests are expected to
// guard mutations with the snapshot helpers.
type Registry struct {
	mu         sync.RWMutex
	generators map[reflect.Type]Generator
	enums      map[reflect.Type][]any
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		generators: make(map[reflect.Type]Generator),
		enums:      make(map[reflect.Type][]any),
	}
}

var defaultRegistry = newDefaultRegistry()

// Default returns the process-wide registry that generation uses unless a
// call supplies its own.
func Default() *Registry {
	return defaultRegistry
}

// Register installs (or replaces) the generator for a type.
func (r *Registry) Register(t reflect.Type, gen Generator) error {
	if t == nil {
		return fmt.Errorf("values: type is required")
	}
	if gen == nil {
		return fmt.Errorf("values: generator is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.generators[t] = gen
	return nil
}

// Remove deletes the generator for a type, if present.
func (r *Registry) Remove(t reflect.Type) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.generators, t)
}

// Generator looks up the generator registered directly for a type.
func (r *Registry) Generator(t reflect.Type) (Generator, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	gen, ok := r.generators[t]
	return gen, ok
}

// Has reports whether a generator is registered directly for a type.
func (r *Registry) Has(t reflect.Type) bool {
	_, ok := r.Generator(t)
	return ok
}

// Generators returns a snapshot copy of the generator table.
func (r *Registry) Generators() map[reflect.Type]Generator {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[reflect.Type]Generator, len(r.generators))
	for t, gen := range r.generators {
		out[t] = gen
	}
	return out
}

// RegisterEnum installs (or replaces) the member list for an enum-style
// type. Members must be non-empty, supplied in declaration order, and each
// must be a value of t; seed selection picks members[seed mod len].
func (r *Registry) RegisterEnum(t reflect.Type, members []any) error {
	if t == nil {
		return fmt.Errorf("values: enum type is required")
	}
	if len(members) == 0 {
		return fmt.Errorf("values: enum %s requires at least one member", t)
	}
	for i, member := range members {
		if member == nil || reflect.TypeOf(member) != t {
			return fmt.Errorf("values: enum %s member %d is not a %s value", t, i, t)
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enums[t] = append([]any(nil), members...)
	return nil
}

// RemoveEnum deletes the member list for a type, if present.
func (r *Registry) RemoveEnum(t reflect.Type) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.enums, t)
}

// Members returns the declaration-order member list for an enum type.
func (r *Registry) Members(t reflect.Type) ([]any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	members, ok := r.enums[t]
	if !ok {
		return nil, false
	}
	return append([]any(nil), members...), true
}

// IsEnum reports whether member values are registered for a type.
func (r *Registry) IsEnum(t reflect.Type) bool {
	_, ok := r.Members(t)
	return ok
}

// Enums returns a snapshot copy of the enum member table.
func (r *Registry) Enums() map[reflect.Type][]any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[reflect.Type][]any, len(r.enums))
	for t, members := range r.enums {
		out[t] = append([]any(nil), members...)
	}
	return out
}

// Register installs a typed generator into the default registry.
func Register[T any](gen func(seed int) T) error {
	return Default().Register(reflect.TypeFor[T](), func(seed int) any { return gen(seed) })
}

// RegisterEnum installs declaration-order enum members for T into the
// default registry.
func RegisterEnum[T any](members ...T) error {
	anys := make([]any, len(members))
	for i, m := range members {
		anys[i] = m
	}
	return Default().RegisterEnum(reflect.TypeFor[T](), anys)
}
