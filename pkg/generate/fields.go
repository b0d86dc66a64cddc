package generate

import (
	"fmt"
	"go/token"
	"reflect"
	"strings"

	"github.com/goliatone/go-fabricate/internal/reflectutil"
	"github.com/goliatone/go-fabricate/pkg/fieldspec"
	"github.com/goliatone/go-fabricate/pkg/kind"
)

// Fields enumerates the field descriptors of a model type in the order its
// kind's enumerator reports them. Unexported fields and fields intrinsic
// to the kind's marker never appear. A field whose declared type resolves
// to neither a primitive/enum nor a model kind is returned with a nil
// TypeToGenerate; generation surfaces that as an error only when no
// override saves the field.
func Fields(t reflect.Type, opts ...Option) ([]fieldspec.Descriptor, error) {
	cfg := newConfig(opts)
	t = reflectutil.Indirect(unwrapPassthrough(t))
	k, ok := cfg.kinds.Classify(t)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoKind, typeName(t))
	}
	return cfg.fields(t, k)
}

func (cfg *config) fields(t reflect.Type, k kind.Kind) ([]fieldspec.Descriptor, error) {
	var descs []fieldspec.Descriptor
	for _, name := range k.Fields(t) {
		if !token.IsExported(name) || k.Intrinsic(name) {
			continue
		}
		sf, ok := reflectutil.LookupField(t, name)
		if !ok {
			return nil, fmt.Errorf("%w: type %s enumerates field %q with no declaration", ErrMissingType, typeName(t), name)
		}
		desc, err := cfg.describeField(t, k, sf)
		if err != nil {
			return nil, err
		}
		descs = append(descs, desc)
	}
	return descs, nil
}

// describeField normalizes one declared field type into a descriptor:
// passthrough unwrap, optional detection, container classification with
// element re-inspection, tag-reference resolution, then primitive/enum vs
// nested-model classification.
func (cfg *config) describeField(owner reflect.Type, k kind.Kind, sf reflect.StructField) (fieldspec.Descriptor, error) {
	desc := fieldspec.Descriptor{Name: sf.Name, Declared: sf.Type}

	working := unwrapPassthrough(sf.Type)

	// A direct registration wins over every structural rule, so types like
	// []byte that are registered whole never classify as collections.
	if cfg.values.Has(working) {
		desc.IsPrimitive = true
		desc.TypeToGenerate = working
		return desc, nil
	}

	element := working
	if optElem := optionalElem(working); optElem != nil {
		inner := unwrapPassthrough(optElem)
		switch {
		case isList(inner):
			desc.Collection = fieldspec.CollectionOptionalList
			element = inner.Elem()
		case isSet(inner):
			desc.Collection = fieldspec.CollectionOptionalSet
			element = inner.Key()
		default:
			desc.IsOptional = true
			element = inner
		}
	} else {
		switch {
		case isList(working):
			desc.Collection = fieldspec.CollectionRequiredList
			element = working.Elem()
		case isSet(working):
			desc.Collection = fieldspec.CollectionRequiredSet
			element = working.Key()
		}
	}

	if desc.Collection.IsCollection() {
		// For collections, optionality describes the element, separately
		// from the container absence captured in the collection kind.
		element = unwrapPassthrough(element)
		if optElem := optionalElem(element); optElem != nil {
			desc.IsOptional = true
			element = unwrapPassthrough(optElem)
		}
	}

	if element.Kind() == reflect.Interface {
		alternatives, optionalAlt, tagged, err := cfg.resolveTagAlternatives(owner, k, sf)
		if err != nil {
			return fieldspec.Descriptor{}, err
		}
		if tagged {
			if optionalAlt {
				desc.IsOptional = true
			}
			desc.TypeToGenerate, desc.IsPrimitive = cfg.classifyAlternatives(alternatives)
			return desc, nil
		}
		// An interface field with no tag metadata cannot be synthesized;
		// left nil so an override can still save it at generation time.
		return desc, nil
	}

	desc.TypeToGenerate, desc.IsPrimitive = cfg.classifyElement(element)
	return desc, nil
}

func (cfg *config) classifyElement(element reflect.Type) (reflect.Type, bool) {
	if prim := firstGeneratablePrimitive(cfg.values, element, false); prim != nil {
		return prim, true
	}
	if _, model, ok := modelKindOf(cfg.kinds, element); ok {
		return model, false
	}
	return nil, false
}

// classifyAlternatives inspects tag-declared union alternatives in
// declaration order: the first one resolvable as a primitive/enum or as a
// model kind wins.
func (cfg *config) classifyAlternatives(alternatives []reflect.Type) (reflect.Type, bool) {
	for _, alt := range alternatives {
		if tg, primitive := cfg.classifyElement(alt); tg != nil {
			return tg, primitive
		}
	}
	return nil, false
}

// resolveTagAlternatives parses the field's `fab` tag. "ref=Name" declares
// a single forward-referenced type; "oneof=A|B|nil" declares union
// alternatives in declaration order, with nil marking the absent
// alternative. Names resolve through the kind's injected resolver; an
// unresolvable name fails the whole enumeration.
func (cfg *config) resolveTagAlternatives(owner reflect.Type, k kind.Kind, sf reflect.StructField) ([]reflect.Type, bool, bool, error) {
	tag := strings.TrimSpace(sf.Tag.Get("fab"))
	if tag == "" {
		return nil, false, false, nil
	}

	var names []string
	switch {
	case strings.HasPrefix(tag, "ref="):
		names = []string{strings.TrimPrefix(tag, "ref=")}
	case strings.HasPrefix(tag, "oneof="):
		names = strings.Split(strings.TrimPrefix(tag, "oneof="), "|")
	default:
		return nil, false, false, fmt.Errorf("%w: type %s field %q has unsupported fab tag %q", ErrMissingType, typeName(owner), sf.Name, tag)
	}

	var (
		alternatives []reflect.Type
		optional     bool
	)
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if name == "nil" {
			optional = true
			continue
		}
		if k.Resolve == nil {
			return nil, false, false, fmt.Errorf("%w: type %s field %q references %q but its kind has no type resolver", ErrMissingType, typeName(owner), sf.Name, name)
		}
		resolved, ok := k.Resolve(name)
		if !ok || resolved == nil {
			return nil, false, false, fmt.Errorf("%w: type %s field %q references unknown type %q", ErrMissingType, typeName(owner), sf.Name, name)
		}
		alternatives = append(alternatives, resolved)
	}
	if len(alternatives) == 0 {
		return nil, false, false, fmt.Errorf("%w: type %s field %q declares no resolvable alternatives", ErrMissingType, typeName(owner), sf.Name)
	}
	return alternatives, optional, true, nil
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
