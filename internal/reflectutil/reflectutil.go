// Package reflectutil collects the small reflection helpers shared by the
// kind registry and the generator: field enumeration through embedding,
// embedded-marker discovery, and reflective instance construction.
package reflectutil

import (
	"fmt"
	"reflect"
)

// Indirect resolves pointer types down to their element type.
func Indirect(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// ExportedFieldNames returns the exported, non-embedded field names of a
// struct type in declaration order, including fields promoted from embedded
// structs. Non-struct types yield nil.
func ExportedFieldNames(t reflect.Type) []string {
	t = Indirect(t)
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}
	var names []string
	for _, f := range reflect.VisibleFields(t) {
		if f.Anonymous || f.PkgPath != "" {
			continue
		}
		names = append(names, f.Name)
	}
	return names
}

// LookupField resolves a named field on a struct type, following promotion
// through embedded structs.
func LookupField(t reflect.Type, name string) (reflect.StructField, bool) {
	t = Indirect(t)
	if t == nil || t.Kind() != reflect.Struct {
		return reflect.StructField{}, false
	}
	return t.FieldByName(name)
}

// EmbeddedChain returns t followed by its embedded struct types in
// breadth-first order, so the nearest ancestors come first and ties between
// ancestors at the same depth follow declaration order. Embedded pointers
// are resolved to their element type.
func EmbeddedChain(t reflect.Type) []reflect.Type {
	t = Indirect(t)
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}
	var chain []reflect.Type
	seen := map[reflect.Type]bool{}
	queue := []reflect.Type{t}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if seen[next] {
			continue
		}
		seen[next] = true
		chain = append(chain, next)
		for i := 0; i < next.NumField(); i++ {
			f := next.Field(i)
			if !f.Anonymous {
				continue
			}
			embedded := Indirect(f.Type)
			if embedded.Kind() == reflect.Struct {
				queue = append(queue, embedded)
			}
		}
	}
	return chain
}

// NewInstance constructs a *t with the supplied field values assigned by
// name. Values must be assignable or convertible to the declared field
// types; nil values leave the field at its zero value.
func NewInstance(t reflect.Type, values map[string]any) (any, error) {
	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("reflectutil: cannot construct non-struct type %v", t)
	}
	ptr := reflect.New(t)
	elem := ptr.Elem()
	for name, value := range values {
		field := elem.FieldByName(name)
		if !field.IsValid() {
			return nil, fmt.Errorf("reflectutil: type %s has no field %q", t, name)
		}
		if !field.CanSet() {
			return nil, fmt.Errorf("reflectutil: field %s.%s is not settable", t, name)
		}
		if value == nil {
			continue
		}
		rv := reflect.ValueOf(value)
		switch {
		case rv.Type().AssignableTo(field.Type()):
			field.Set(rv)
		case rv.Kind() == reflect.Pointer && rv.Type().Elem().AssignableTo(field.Type()):
			if !rv.IsNil() {
				field.Set(rv.Elem())
			}
		case rv.Type().ConvertibleTo(field.Type()) && sameKindClass(rv.Type(), field.Type()):
			field.Set(rv.Convert(field.Type()))
		default:
			return nil, fmt.Errorf("reflectutil: cannot assign %s to field %s.%s (%s)", rv.Type(), t, name, field.Type())
		}
	}
	return ptr.Interface(), nil
}

// FieldValue reads a named field off an instance (pointer or value),
// following promotion. The second return is false when the field does not
// exist.
func FieldValue(instance any, name string) (any, bool) {
	rv := reflect.ValueOf(instance)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, false
	}
	field := rv.FieldByName(name)
	if !field.IsValid() {
		return nil, false
	}
	return field.Interface(), true
}

// LooselyConvertible reports whether a reflect conversion from one type to
// the other stays within the same kind class, ruling out surprising legal
// conversions such as int-to-string.
func LooselyConvertible(from, to reflect.Type) bool {
	return from.ConvertibleTo(to) && sameKindClass(from, to)
}

// sameKindClass gates reflect conversions to same-category kinds so that,
// for example, an int seed never silently converts into a string rune.
func sameKindClass(from, to reflect.Type) bool {
	if from.Kind() == to.Kind() {
		return true
	}
	return isNumeric(from.Kind()) && isNumeric(to.Kind())
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
