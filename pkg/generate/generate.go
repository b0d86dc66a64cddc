// Package generate is the synthesis engine: it walks a model type's field
// descriptors and fabricates a fully populated instance from an integer
// seed, recursing into nested model types with cycle-safe termination.
package generate

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/goliatone/go-fabricate/internal/reflectutil"
	"github.com/goliatone/go-fabricate/pkg/fieldspec"
)

// relationshipSeedStride keeps sibling branches' seed spaces from
// colliding when a nested model consumes an unknown number of seeds.
const relationshipSeedStride = 1000

// Instance fabricates a populated instance of t (returned as *t) according
// to the supplied options. The call either fully succeeds or fails with one
// of the package's error values; no partial instance is ever returned.
func Instance(t reflect.Type, opts ...Option) (any, error) {
	cfg := newConfig(opts)
	t = reflectutil.Indirect(unwrapPassthrough(t))
	out, err := cfg.instance(t, cfg.seed, nil, cfg.overrides)
	if err != nil {
		return nil, err
	}
	return out.Interface(), nil
}

// Value synthesizes a single primitive or enum value of t for a seed,
// resolving named types and optional wrappers the same way field synthesis
// does. Under OptionalAsAbsent an optional t yields nil.
func Value(t reflect.Type, seed int, opts ...Option) (any, error) {
	cfg := newConfig(append([]Option{WithSeed(seed)}, opts...))
	if cfg.optionalAsAbsent && isOptional(t) {
		return nil, nil
	}
	prim := firstGeneratablePrimitive(cfg.values, t, false)
	if prim == nil {
		return nil, fmt.Errorf("%w: no value generator matches %s", ErrUnsynthesizable, typeName(t))
	}
	return cfg.primitiveValue(prim, cfg.seed)
}

// fieldOutcome carries one synthesized field result before it is shaped
// into the declared field type.
type fieldOutcome struct {
	absent bool // scalar or container resolves to its absent/zero form
	empty  bool // collection stays empty
	value  any
}

// instance is the recursive core. The visited stack holds the model types
// currently being expanded along this call path; re-entering one returns
// an invalid value as the cycle sentinel instead of recursing forever.
func (cfg *config) instance(t reflect.Type, seed int, visited []reflect.Type, overrides map[string]any) (reflect.Value, error) {
	t = reflectutil.Indirect(unwrapPassthrough(t))
	for _, inProgress := range visited {
		if inProgress == t {
			return reflect.Value{}, nil
		}
	}
	visited = append(visited, t)

	k, ok := cfg.kinds.Classify(t)
	if !ok {
		return reflect.Value{}, fmt.Errorf("%w: %s", ErrNoKind, typeName(t))
	}
	descs, err := cfg.fields(t, k)
	if err != nil {
		return reflect.Value{}, err
	}

	currentSeed := seed
	fieldValues := make(map[string]any, len(descs))
	consumed := make(map[string]struct{}, len(overrides))

	for _, desc := range descs {
		if override, ok := overrides[desc.Name]; ok {
			fieldValues[desc.Name] = override
			consumed[desc.Name] = struct{}{}
			continue
		}
		if desc.TypeToGenerate == nil {
			return reflect.Value{}, fmt.Errorf("%w: type %s field %q (%s)", ErrUnsynthesizable, typeName(t), desc.Name, typeName(desc.Declared))
		}

		var outcome fieldOutcome
		switch {
		case cfg.optionalAsAbsent && (desc.Collection.IsOptionalContainer() || (!desc.Collection.IsCollection() && desc.IsOptional)):
			outcome = fieldOutcome{absent: true}
			currentSeed++

		case desc.IsPrimitive:
			raw, err := cfg.primitiveValue(desc.TypeToGenerate, currentSeed)
			if err != nil {
				return reflect.Value{}, fmt.Errorf("type %s field %q: %w", typeName(t), desc.Name, err)
			}
			outcome = fieldOutcome{value: raw}
			currentSeed++

		default:
			if cfg.expandRelationships {
				nested, err := cfg.instance(desc.TypeToGenerate, currentSeed, visited, nil)
				if err != nil {
					return reflect.Value{}, err
				}
				if nested.IsValid() {
					outcome = fieldOutcome{value: nested.Interface()}
				} else {
					// Cycle terminated below us: empty collection or
					// absent scalar instead of an error.
					outcome = fieldOutcome{absent: !desc.Collection.IsCollection(), empty: true}
				}
			} else {
				outcome = fieldOutcome{absent: !desc.Collection.IsCollection(), empty: true}
			}
			currentSeed += relationshipSeedStride
		}

		shaped, err := shapeField(desc, outcome)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("type %s field %q: %w", typeName(t), desc.Name, err)
		}
		fieldValues[desc.Name] = shaped
	}

	if len(consumed) != len(overrides) {
		var unused []string
		for key := range overrides {
			if _, ok := consumed[key]; !ok {
				unused = append(unused, key)
			}
		}
		sort.Strings(unused)
		return reflect.Value{}, fmt.Errorf("%w: %s", ErrUnusedOverrides, strings.Join(unused, ", "))
	}

	built, err := k.New(t, fieldValues)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("generate: constructing %s: %w", typeName(t), err)
	}
	return reflect.ValueOf(built), nil
}

// primitiveValue produces the seeded value for a resolved primitive or
// enum type.
func (cfg *config) primitiveValue(t reflect.Type, seed int) (any, error) {
	if members, ok := cfg.values.Members(t); ok {
		return members[((seed%len(members))+len(members))%len(members)], nil
	}
	if gen, ok := cfg.values.Generator(t); ok {
		return gen(seed), nil
	}
	return nil, fmt.Errorf("%w: no value generator matches %s", ErrUnsynthesizable, typeName(t))
}

// shapeField turns a field outcome into a value of the declared field
// type: optional wrapping, single-element collection wrapping, passthrough
// rewrapping, and named-type conversion all happen here.
func shapeField(desc fieldspec.Descriptor, outcome fieldOutcome) (any, error) {
	shaped, err := shapeInto(desc.Declared, desc, outcome)
	if err != nil {
		return nil, err
	}
	if !shaped.IsValid() {
		return nil, nil
	}
	return shaped.Interface(), nil
}

func shapeInto(declared reflect.Type, desc fieldspec.Descriptor, outcome fieldOutcome) (reflect.Value, error) {
	// Record the wrapper chain so the shaped value can be rewrapped in
	// declaration order.
	var wrappers []reflect.Type
	core := declared
	for isPassthrough(core) {
		wrappers = append(wrappers, core)
		core = reflect.Zero(core).Interface().(fieldspec.Wrapper).WrappedType()
	}

	var (
		out reflect.Value
		err error
	)
	if desc.Collection.IsCollection() {
		out, err = shapeCollection(core, desc, outcome)
	} else {
		out, err = shapeScalar(core, outcome)
	}
	if err != nil {
		return reflect.Value{}, err
	}

	for i := len(wrappers) - 1; i >= 0; i-- {
		wrapped, werr := rewrap(wrappers[i], out)
		if werr != nil {
			return reflect.Value{}, werr
		}
		out = wrapped
	}
	return out, nil
}

func shapeScalar(core reflect.Type, outcome fieldOutcome) (reflect.Value, error) {
	if outcome.absent {
		return reflect.Zero(core), nil
	}
	return conform(core, outcome.value)
}

func shapeCollection(core reflect.Type, desc fieldspec.Descriptor, outcome fieldOutcome) (reflect.Value, error) {
	// An optional container is declared either as a pointer or in the
	// Null[T] shape; both unwrap to the container itself here and rewrap
	// after the build.
	containerType := core
	pointerContainer := false
	var nullContainer reflect.Type
	if containerType.Kind() == reflect.Pointer {
		pointerContainer = true
		containerType = containerType.Elem()
	} else if inner := nullElem(containerType); inner != nil {
		nullContainer = containerType
		containerType = inner
	}
	if outcome.absent && desc.Collection.IsOptionalContainer() {
		return reflect.Zero(core), nil
	}

	var container reflect.Value
	switch {
	case isList(containerType):
		container = reflect.MakeSlice(containerType, 0, 1)
		if !outcome.empty {
			element, err := conform(containerType.Elem(), outcome.value)
			if err != nil {
				return reflect.Value{}, err
			}
			container = reflect.Append(container, element)
		}
	case isSet(containerType):
		container = reflect.MakeMap(containerType)
		if !outcome.empty {
			key, err := conform(containerType.Key(), outcome.value)
			if err != nil {
				return reflect.Value{}, err
			}
			container.SetMapIndex(key, reflect.ValueOf(struct{}{}))
		}
	default:
		return reflect.Value{}, fmt.Errorf("generate: %s is not a collection type", typeName(containerType))
	}

	switch {
	case pointerContainer:
		ptr := reflect.New(containerType)
		ptr.Elem().Set(container)
		return ptr, nil
	case nullContainer != nil:
		out := reflect.New(nullContainer).Elem()
		out.Field(0).Set(container)
		out.Field(1).SetBool(true)
		return out, nil
	}
	return container, nil
}

// rewrap folds a shaped value back into a passthrough wrapper by assigning
// it to the wrapper's single inner field.
func rewrap(wrapper reflect.Type, inner reflect.Value) (reflect.Value, error) {
	out := reflect.New(wrapper).Elem()
	for i := 0; i < wrapper.NumField(); i++ {
		field := out.Field(i)
		if field.CanSet() && inner.IsValid() && inner.Type().AssignableTo(field.Type()) {
			field.Set(inner)
			return out, nil
		}
	}
	return reflect.Value{}, fmt.Errorf("generate: cannot rewrap %s into %s", inner.Type(), typeName(wrapper))
}

// conform coerces a synthesized value into a target declared type:
// pointer and Null[T] optional wrapping, dereferencing nested instances
// into value fields, interface assignment, and same-kind named-type
// conversion.
func conform(target reflect.Type, value any) (reflect.Value, error) {
	if value == nil {
		return reflect.Zero(target), nil
	}
	rv := reflect.ValueOf(value)
	if rv.Type() == target {
		return rv, nil
	}

	if target.Kind() == reflect.Pointer {
		inner, err := conform(target.Elem(), value)
		if err != nil {
			return reflect.Value{}, err
		}
		ptr := reflect.New(target.Elem())
		ptr.Elem().Set(inner)
		return ptr, nil
	}
	if nullInner := nullElem(target); nullInner != nil {
		inner, err := conform(nullInner, value)
		if err != nil {
			return reflect.Value{}, err
		}
		out := reflect.New(target).Elem()
		out.Field(0).Set(inner)
		out.Field(1).SetBool(true)
		return out, nil
	}
	if target.Kind() == reflect.Interface && rv.Type().Implements(target) {
		return rv, nil
	}
	if rv.Kind() == reflect.Pointer && !rv.IsNil() && rv.Type().Elem() == target {
		return rv.Elem(), nil
	}
	if reflectutil.LooselyConvertible(rv.Type(), target) {
		return rv.Convert(target), nil
	}
	return reflect.Value{}, fmt.Errorf("generate: cannot conform %s to %s", rv.Type(), typeName(target))
}
