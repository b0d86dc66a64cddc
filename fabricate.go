// Package fabricate deterministically fabricates fully populated test
// instances of arbitrary model types from an integer seed. Importing it
// wires the default model kinds (plain records, ORM entities, validated
// API models, XML models) and the default primitive value generators.
package fabricate

import (
	"reflect"
	"testing"

	"github.com/goliatone/go-fabricate/pkg/fieldspec"
	"github.com/goliatone/go-fabricate/pkg/generate"
	"github.com/goliatone/go-fabricate/pkg/kind"
	"github.com/goliatone/go-fabricate/pkg/snapshot"
	"github.com/goliatone/go-fabricate/pkg/values"

	_ "github.com/goliatone/go-fabricate/pkg/kinds/apimodel"
	_ "github.com/goliatone/go-fabricate/pkg/kinds/ormmodel"
	_ "github.com/goliatone/go-fabricate/pkg/kinds/record"
	_ "github.com/goliatone/go-fabricate/pkg/kinds/xmlmodel"
)

// Descriptor re-exports the normalized per-field view used across the
// generation, clone, and diff paths.
type Descriptor = fieldspec.Descriptor

// CollectionKind re-exports the container classification enumeration.
type CollectionKind = fieldspec.CollectionKind

// Option configures a single generation call.
type Option = generate.Option

// Kind re-exports the model-kind registration bundle.
type Kind = kind.Kind

// Call options, re-exported from the generation engine.
var (
	WithSeed            = generate.WithSeed
	OptionalAsAbsent    = generate.OptionalAsAbsent
	ExpandRelationships = generate.ExpandRelationships
	WithOverride        = generate.WithOverride
	WithOverrides       = generate.WithOverrides
)

// Error values, re-exported from the generation engine.
var (
	ErrNoKind          = generate.ErrNoKind
	ErrMissingType     = generate.ErrMissingType
	ErrUnsynthesizable = generate.ErrUnsynthesizable
	ErrUnusedOverrides = generate.ErrUnusedOverrides
)

// Generate fabricates a populated *T for the given options. T must belong
// to a registered model kind.
func Generate[T any](opts ...Option) (*T, error) {
	built, err := generate.Instance(reflect.TypeFor[T](), opts...)
	if err != nil {
		return nil, err
	}
	return built.(*T), nil
}

// MustGenerate panics on generation failure. Useful for test fixtures
// where the type registrations are known good.
func MustGenerate[T any](opts ...Option) *T {
	instance, err := Generate[T](opts...)
	if err != nil {
		panic(err)
	}
	return instance
}

// New fabricates a populated instance of a runtime-chosen type, returned
// as a pointer to it.
func New(t reflect.Type, opts ...Option) (any, error) {
	return generate.Instance(t, opts...)
}

// Value synthesizes a single primitive or enum value of t for a seed.
func Value(t reflect.Type, seed int, opts ...Option) (any, error) {
	return generate.Value(t, seed, opts...)
}

// Fields enumerates the field descriptors of a model type, exposed for
// introspection of the normalizer itself.
func Fields(t reflect.Type, opts ...Option) ([]Descriptor, error) {
	return generate.Fields(t, opts...)
}

// Clone shallow-copies an instance's enumerated fields into a new
// instance, skipping ignored field names.
func Clone(instance any, ignored ...string) (any, error) {
	return generate.Clone(instance, ignored...)
}

// CloneOf is Clone with the concrete type preserved.
func CloneOf[T any](instance *T, ignored ...string) (*T, error) {
	cloned, err := generate.Clone(instance, ignored...)
	if err != nil {
		return nil, err
	}
	return cloned.(*T), nil
}

// Diff compares two instances of t leaf field by leaf field, returning one
// mismatch description per differing field.
func Diff(t reflect.Type, expected, actual any, ignored ...string) ([]string, error) {
	return generate.Diff(t, expected, actual, ignored...)
}

// AssertEqual fails the test when Diff reports any mismatch.
func AssertEqual(tb testing.TB, t reflect.Type, expected, actual any, ignored ...string) {
	tb.Helper()
	generate.AssertEqual(tb, t, expected, actual, ignored...)
}

// RegisterValueGenerator extends the primitive value registry with a typed
// seed-driven generator.
func RegisterValueGenerator[T any](gen func(seed int) T) error {
	return values.Register(gen)
}

// RegisterEnum declares the members of an enum-style type in declaration
// order; seeded selection cycles through them.
func RegisterEnum[T any](members ...T) error {
	return values.RegisterEnum(members...)
}

// RegisterKind extends the model-kind registry. Omitted construction or
// enumeration strategies fall back to the reflective defaults.
func RegisterKind(k Kind) error {
	return kind.Default().Register(k)
}

// ScopedRegistries snapshots the primitive value, enum, and model-kind
// registries and returns a restore function that puts all three back
// exactly as captured, including removal of entries added inside the
// scope. Run the restore with defer so it executes even when the scoped
// body panics:
//
//	defer fabricate.ScopedRegistries()()
func ScopedRegistries() func() {
	valuesRegistry := values.Default()
	kindRegistry := kind.Default()

	restoreGenerators := snapshot.Scoped(
		valuesRegistry.Generators,
		func(t reflect.Type, gen values.Generator) { _ = valuesRegistry.Register(t, gen) },
		valuesRegistry.Remove,
	)
	restoreEnums := snapshot.Scoped(
		valuesRegistry.Enums,
		func(t reflect.Type, members []any) { _ = valuesRegistry.RegisterEnum(t, members) },
		valuesRegistry.RemoveEnum,
	)
	restoreKinds := snapshot.Scoped(
		kindRegistry.Entries,
		func(_ reflect.Type, k kind.Kind) { _ = kindRegistry.Register(k) },
		kindRegistry.Remove,
	)
	// Re-registering a kind removed inside the scope would append its
	// marker at the end, so the captured order is reinstated separately.
	markerOrder := kindRegistry.Markers()

	return func() {
		restoreKinds()
		kindRegistry.Reorder(markerOrder)
		restoreEnums()
		restoreGenerators()
	}
}
