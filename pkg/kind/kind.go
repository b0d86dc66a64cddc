// Package kind holds the model-kind registry: the mapping from a base
// marker type to the construction and field-enumeration strategy shared by
// every model that embeds that marker.
package kind

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/goliatone/go-fabricate/internal/reflectutil"
)

// Constructor builds an instance of t (returned as *t) from a field-value
// mapping assembled by the generator.
type Constructor func(t reflect.Type, values map[string]any) (any, error)

// FieldEnumerator lists the candidate field names of a model type in
// declaration order. The generator filters out unexported names and names
// intrinsic to the kind's marker.
type FieldEnumerator func(t reflect.Type) []string

// TypeResolver resolves a string type name declared in field metadata (the
// forward-reference analog) to a concrete type. Supplied by the collaborator
// that owns the kind's model registry.
type TypeResolver func(name string) (reflect.Type, bool)

// Kind bundles the strategy for one registered model category.
type Kind struct {
	// Marker identifies the kind: a concrete model belongs to the kind
	// whose marker it embeds (directly or transitively).
	Marker reflect.Type

	// New constructs instances; defaults to DefaultConstructor.
	New Constructor

	// Fields enumerates candidate field names; defaults to
	// DefaultFieldEnumerator.
	Fields FieldEnumerator

	// Resolve maps tag-declared type names to types. Optional.
	Resolve TypeResolver

	// Fallback marks the kind that claims plain structs matching no
	// registered marker. At most one fallback may be registered.
	Fallback bool

	// intrinsics holds the marker's own exported field names, computed at
	// registration; subtype enumeration never yields these.
	intrinsics map[string]struct{}
}

// Intrinsic reports whether a field name is declared on the kind's marker
// itself rather than on a concrete model.
func (k Kind) Intrinsic(name string) bool {
	_, ok := k.intrinsics[name]
	return ok
}

// DefaultConstructor builds an instance reflectively: a fresh *t with each
// supplied value assigned to its named field.
func DefaultConstructor(t reflect.Type, values map[string]any) (any, error) {
	return reflectutil.NewInstance(t, values)
}

// DefaultFieldEnumerator yields the exported field names of a struct type
// in declaration order, including promoted fields.
func DefaultFieldEnumerator(t reflect.Type) []string {
	return reflectutil.ExportedFieldNames(t)
}

// Registry stores kinds in registration order. Classification walks a
// candidate type's embedded-struct chain breadth first, so the nearest
// matching marker wins and ties fall back to registration order.
type Registry struct {
	mu     sync.RWMutex
	order  []reflect.Type
	byType map[reflect.Type]Kind
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byType: make(map[reflect.Type]Kind)}
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry that generation uses unless a
// call supplies its own.
func Default() *Registry {
	return defaultRegistry
}

// Register installs (or replaces) a kind. Missing construction or
// enumeration strategies fall back to the reflective defaults, and the
// marker's own exported field names are captured for subtype exclusion.
func (r *Registry) Register(k Kind) error {
	if k.Marker == nil {
		return fmt.Errorf("kind: marker type is required")
	}
	if k.Marker.Kind() != reflect.Struct {
		return fmt.Errorf("kind: marker %s must be a struct type", k.Marker)
	}
	if k.New == nil {
		k.New = DefaultConstructor
	}
	if k.Fields == nil {
		k.Fields = DefaultFieldEnumerator
	}
	k.intrinsics = make(map[string]struct{})
	for _, name := range k.Fields(k.Marker) {
		k.intrinsics[name] = struct{}{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byType[k.Marker]; !exists {
		r.order = append(r.order, k.Marker)
	}
	r.byType[k.Marker] = k
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(k Kind) {
	if err := r.Register(k); err != nil {
		panic(err)
	}
}

// Remove deletes the kind registered for a marker, if present.
func (r *Registry) Remove(marker reflect.Type) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byType[marker]; !exists {
		return
	}
	delete(r.byType, marker)
	for i, t := range r.order {
		if t == marker {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Reorder arranges the registration order to match the given marker
// sequence. Markers in the sequence that are not registered are skipped;
// registered markers missing from the sequence keep their relative order
// after it. The snapshot restore uses this to reinstate the order captured
// before a scope, since re-registering a removed kind would otherwise
// append its marker at the end.
func (r *Registry) Reorder(markers []reflect.Type) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := make(map[reflect.Type]struct{}, len(r.byType))
	order := make([]reflect.Type, 0, len(r.byType))
	for _, marker := range markers {
		if _, registered := r.byType[marker]; !registered {
			continue
		}
		if _, dup := seen[marker]; dup {
			continue
		}
		seen[marker] = struct{}{}
		order = append(order, marker)
	}
	for _, marker := range r.order {
		if _, dup := seen[marker]; dup {
			continue
		}
		seen[marker] = struct{}{}
		order = append(order, marker)
	}
	r.order = order
}

// Lookup returns the kind registered for a marker type.
func (r *Registry) Lookup(marker reflect.Type) (Kind, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	k, ok := r.byType[marker]
	return k, ok
}

// Markers returns the registered marker types in registration order.
func (r *Registry) Markers() []reflect.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]reflect.Type(nil), r.order...)
}

// Entries returns a snapshot copy of the marker-to-kind table.
func (r *Registry) Entries() map[reflect.Type]Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[reflect.Type]Kind, len(r.byType))
	for t, k := range r.byType {
		out[t] = k
	}
	return out
}

// Classify resolves a model type to its kind by walking the type and its
// embedded structs breadth first against the registered markers. Plain
// structs that match no marker fall back to the fallback kind when one is
// registered. The second return is false when no kind applies.
func (r *Registry) Classify(t reflect.Type) (Kind, bool) {
	t = reflectutil.Indirect(t)
	if t == nil || t.Kind() != reflect.Struct {
		return Kind{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, ancestor := range reflectutil.EmbeddedChain(t) {
		for _, marker := range r.order {
			if ancestor == marker {
				return r.byType[marker], true
			}
		}
	}
	for _, marker := range r.order {
		if k := r.byType[marker]; k.Fallback {
			return k, true
		}
	}
	return Kind{}, false
}
