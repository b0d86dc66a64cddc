// Package ormmodel registers the ORM entity kind for models embedding
// gorm.Model. The marker's own columns (ID, CreatedAt, UpdatedAt,
// DeletedAt) are intrinsic and never enumerated on entities, and a
// model-name registry backs forward references between related entities.
package ormmodel

import (
	"reflect"

	"gorm.io/gorm"

	"github.com/goliatone/go-fabricate/pkg/kind"
)

// Mapped is a column wrapper carrying an inner value without generation
// semantics of its own; the normalizer strips it before classification.
type Mapped[T any] struct {
	V T
}

// WrappedType marks Mapped as a passthrough wrapper.
func (Mapped[T]) WrappedType() reflect.Type {
	return reflect.TypeFor[T]()
}

// Value returns the wrapped column value.
func (m Mapped[T]) Value() T {
	return m.V
}

// Models resolves entity names for relationship references, the analog of
// an ORM's class registry.
var Models = kind.NewNameRegistry()

// Register adds entity type T to the model registry under its type name
// and any supplied aliases.
func Register[T any](aliases ...string) {
	t := reflect.TypeFor[T]()
	Models.Add(t.Name(), t)
	for _, alias := range aliases {
		Models.Add(alias, t)
	}
}

func init() {
	kind.Default().MustRegister(kind.Kind{
		Marker:  reflect.TypeFor[gorm.Model](),
		Resolve: Models.Resolve,
	})
}
