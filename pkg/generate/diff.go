package generate

import (
	"fmt"
	"reflect"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-fabricate/internal/reflectutil"
)

// exportAll lets cmp descend into unexported state so opaque value types
// (time.Time, decimals, UUID wrappers) compare without panicking.
var exportAll = cmp.Exporter(func(reflect.Type) bool { return true })

// Diff compares two instances of t field by field and returns one
// human-readable mismatch description per differing field. Only leaf
// fields — those whose normalized type is primitive/enum-generatable — are
// compared; nested model fields never are, keeping equality intentionally
// shallow. An empty result means the instances are equal.
func Diff(t reflect.Type, expected, actual any, ignored ...string) ([]string, error) {
	return DiffWith(t, expected, actual, ignored, nil)
}

// DiffWith is Diff with explicit options, for callers supplying their own
// registries.
func DiffWith(t reflect.Type, expected, actual any, ignored []string, opts []Option) ([]string, error) {
	expectedNil := isNilInstance(expected)
	actualNil := isNilInstance(actual)
	switch {
	case expectedNil && actualNil:
		return nil, nil
	case expectedNil:
		return []string{fmt.Sprintf("expected is nil but actual is %v", actual)}, nil
	case actualNil:
		return []string{fmt.Sprintf("actual is nil but expected is %v", expected)}, nil
	}

	cfg := newConfig(opts)
	t = reflectutil.Indirect(unwrapPassthrough(t))
	k, ok := cfg.kinds.Classify(t)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoKind, typeName(t))
	}
	descs, err := cfg.fields(t, k)
	if err != nil {
		return nil, err
	}

	skip := stringSet(ignored)
	var mismatches []string
	for _, desc := range descs {
		if _, ok := skip[desc.Name]; ok {
			continue
		}
		if !desc.IsPrimitive {
			continue
		}
		expectedValue, _ := reflectutil.FieldValue(expected, desc.Name)
		actualValue, _ := reflectutil.FieldValue(actual, desc.Name)
		if isNilInstance(expectedValue) && isNilInstance(actualValue) {
			continue
		}
		if !cmp.Equal(expectedValue, actualValue, exportAll) {
			mismatches = append(mismatches, fmt.Sprintf(
				"%s: %s expected %v but got %v",
				desc.Name, typeName(desc.Declared), expectedValue, actualValue,
			))
		}
	}
	return mismatches, nil
}

// isNilInstance treats untyped nil and nil pointers/maps/slices uniformly.
func isNilInstance(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
