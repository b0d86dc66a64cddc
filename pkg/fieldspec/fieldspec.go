package fieldspec

import "reflect"

// CollectionKind classifies how a field's declared type wraps its element in
// a collection, if at all. "Optional" refers to the container itself being
// absent (a *[]T or *map[E]struct{} declaration), which is independent of the
// element optionality recorded on Descriptor.IsOptional.
type CollectionKind int

const (
	CollectionNone CollectionKind = iota
	CollectionRequiredList
	CollectionOptionalList
	CollectionRequiredSet
	CollectionOptionalSet
)

// String returns a readable name for the collection kind.
func (k CollectionKind) String() string {
	switch k {
	case CollectionNone:
		return "none"
	case CollectionRequiredList:
		return "required-list"
	case CollectionOptionalList:
		return "optional-list"
	case CollectionRequiredSet:
		return "required-set"
	case CollectionOptionalSet:
		return "optional-set"
	}
	return "unknown"
}

// IsCollection reports whether the kind wraps an element type at all.
func (k CollectionKind) IsCollection() bool {
	return k != CollectionNone
}

// IsOptionalContainer reports whether the container itself may be absent.
func (k CollectionKind) IsOptionalContainer() bool {
	return k == CollectionOptionalList || k == CollectionOptionalSet
}

// Descriptor is the normalized view of a single public field of a model
// type: the raw declared type plus the innermost type the generator should
// synthesize, with optionality and collection wrapping factored out.
type Descriptor struct {
	// Name is the field identifier as declared on the struct.
	Name string

	// Declared is the field type exactly as written, before any
	// normalization. Nil only when the declaration could not be resolved.
	Declared reflect.Type

	// TypeToGenerate is the innermost concrete type after stripping
	// optionality, collection wrapping and passthrough wrappers. Nil means
	// the field cannot be synthesized; generation fails unless an explicit
	// override is supplied.
	TypeToGenerate reflect.Type

	// IsPrimitive is true when TypeToGenerate is directly synthesizable
	// from the primitive value registry or is a registered enum type.
	IsPrimitive bool

	// IsOptional is true when the field (or, for collections, its element)
	// may be absent.
	IsOptional bool

	// Collection classifies list/set wrapping. When set, TypeToGenerate is
	// always the element type, never the container.
	Collection CollectionKind
}

// Wrapper marks framework-supplied column wrappers that decorate an inner
// type without changing generation semantics. The normalizer strips any
// type implementing it before classification. It is satisfied by the
// framework's own typing constructs rather than through a registry.
type Wrapper interface {
	WrappedType() reflect.Type
}
