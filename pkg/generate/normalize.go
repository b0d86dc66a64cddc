package generate

import (
	"reflect"

	"github.com/goliatone/go-fabricate/internal/reflectutil"
	"github.com/goliatone/go-fabricate/pkg/fieldspec"
	"github.com/goliatone/go-fabricate/pkg/kind"
	"github.com/goliatone/go-fabricate/pkg/values"
)

// The normalizer is a set of pure functions over reflect.Type that factor a
// declared field type into its generation-relevant parts: passthrough
// wrappers are stripped, the two optional notations (*T and the
// sql.Null[T] shape) are unwrapped, and list/set containers are reduced to
// their element types.

var (
	wrapperIface = reflect.TypeFor[fieldspec.Wrapper]()
	emptyStruct  = reflect.TypeFor[struct{}]()
)

// isPassthrough reports whether t is a framework column wrapper that
// decorates an inner type without generation semantics of its own.
func isPassthrough(t reflect.Type) bool {
	return t != nil && t.Kind() == reflect.Struct && t.Implements(wrapperIface)
}

// unwrapPassthrough strips passthrough wrappers until none remain.
func unwrapPassthrough(t reflect.Type) reflect.Type {
	for isPassthrough(t) {
		inner := reflect.Zero(t).Interface().(fieldspec.Wrapper).WrappedType()
		if inner == nil || inner == t {
			break
		}
		t = inner
	}
	return t
}

// nullElem returns T when t has the sql.Null[T] shape (a V field plus a
// Valid bool), nil otherwise.
func nullElem(t reflect.Type) reflect.Type {
	if t == nil || t.Kind() != reflect.Struct || t.NumField() != 2 {
		return nil
	}
	if t.Field(0).Name != "V" || t.Field(1).Name != "Valid" {
		return nil
	}
	if t.Field(1).Type.Kind() != reflect.Bool {
		return nil
	}
	return t.Field(0).Type
}

// optionalElem returns the non-absent alternative of an optional type: the
// pointee of *T or the V type of a Null[T]-shaped struct. Nil means t is
// not optional.
func optionalElem(t reflect.Type) reflect.Type {
	if t == nil {
		return nil
	}
	t = unwrapPassthrough(t)
	if t.Kind() == reflect.Pointer {
		return t.Elem()
	}
	return nullElem(t)
}

// isOptional reports whether t declares an optional notation.
func isOptional(t reflect.Type) bool {
	return optionalElem(t) != nil
}

// enumElem detects whether t names a registered enum type once passthrough
// wrappers and optionality are ignored. With includeOptional the original
// optional wrapping is preserved as a pointer form.
func enumElem(reg *values.Registry, t reflect.Type, includeOptional bool) reflect.Type {
	if t == nil {
		return nil
	}
	t = unwrapPassthrough(t)
	inner := t
	optional := false
	if elem := optionalElem(t); elem != nil {
		optional = true
		inner = unwrapPassthrough(elem)
	}
	if !reg.IsEnum(inner) {
		return nil
	}
	if optional && includeOptional {
		return reflect.PointerTo(inner)
	}
	return inner
}

// baseForKind maps named basic types back to the builtin they derive from,
// so a `type UserID int64` resolves through the int64 generator.
var baseForKind = map[reflect.Kind]reflect.Type{
	reflect.Int:     reflect.TypeFor[int](),
	reflect.Int8:    reflect.TypeFor[int8](),
	reflect.Int16:   reflect.TypeFor[int16](),
	reflect.Int32:   reflect.TypeFor[int32](),
	reflect.Int64:   reflect.TypeFor[int64](),
	reflect.Uint:    reflect.TypeFor[uint](),
	reflect.Uint8:   reflect.TypeFor[uint8](),
	reflect.Uint16:  reflect.TypeFor[uint16](),
	reflect.Uint32:  reflect.TypeFor[uint32](),
	reflect.Uint64:  reflect.TypeFor[uint64](),
	reflect.Float32: reflect.TypeFor[float32](),
	reflect.Float64: reflect.TypeFor[float64](),
	reflect.Bool:    reflect.TypeFor[bool](),
	reflect.String:  reflect.TypeFor[string](),
}

// firstGeneratablePrimitive resolves t to the first type the value
// registry can synthesize: t itself when registered directly, the enum
// type when t names one, or the builtin base of a named basic type. With
// includeOptional an optional declaration is preserved as a pointer form.
func firstGeneratablePrimitive(reg *values.Registry, t reflect.Type, includeOptional bool) reflect.Type {
	if t == nil {
		return nil
	}
	if reg.Has(t) {
		return t
	}
	if enum := enumElem(reg, t, includeOptional); enum != nil {
		return enum
	}
	if base, ok := baseForKind[t.Kind()]; ok && reg.Has(base) {
		return base
	}
	if isPassthrough(t) {
		return firstGeneratablePrimitive(reg, unwrapPassthrough(t), includeOptional)
	}
	if elem := optionalElem(t); elem != nil {
		if prim := firstGeneratablePrimitive(reg, elem, false); prim != nil {
			if includeOptional {
				return reflect.PointerTo(prim)
			}
			return prim
		}
	}
	return nil
}

// isGeneratable reports whether the value registry can synthesize t.
func isGeneratable(reg *values.Registry, t reflect.Type) bool {
	return firstGeneratablePrimitive(reg, t, false) != nil
}

// modelKindOf resolves t, ignoring passthrough wrappers and optionality,
// to its registered model kind.
func modelKindOf(kinds *kind.Registry, t reflect.Type) (kind.Kind, reflect.Type, bool) {
	if t == nil {
		return kind.Kind{}, nil, false
	}
	t = unwrapPassthrough(t)
	if elem := optionalElem(t); elem != nil {
		t = unwrapPassthrough(elem)
	}
	t = reflectutil.Indirect(t)
	k, ok := kinds.Classify(t)
	if !ok {
		return kind.Kind{}, nil, false
	}
	return k, t, true
}

// isSet reports whether t is the set notation map[E]struct{}.
func isSet(t reflect.Type) bool {
	return t != nil && t.Kind() == reflect.Map && t.Elem() == emptyStruct
}

// isList reports whether t is the list notation []E.
func isList(t reflect.Type) bool {
	return t != nil && t.Kind() == reflect.Slice
}
