package generate

import (
	"fmt"
	"go/token"
	"reflect"

	"github.com/goliatone/go-fabricate/internal/reflectutil"
)

// Clone builds a new instance of the same type as instance with every
// enumerated field copied by reference (a shallow clone). Fields named in
// ignored are left at their zero value. The source instance is already
// fully formed, so no seed, recursion, or cycle handling is involved.
func Clone(instance any, ignored ...string) (any, error) {
	return CloneWith(instance, ignored, nil)
}

// CloneWith is Clone with explicit options, for callers supplying their
// own registries.
func CloneWith(instance any, ignored []string, opts []Option) (any, error) {
	if instance == nil {
		return nil, fmt.Errorf("generate: cannot clone nil instance")
	}
	cfg := newConfig(opts)
	t := reflectutil.Indirect(unwrapPassthrough(reflect.TypeOf(instance)))
	k, ok := cfg.kinds.Classify(t)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoKind, typeName(t))
	}

	skip := stringSet(ignored)
	fieldValues := make(map[string]any)
	for _, name := range k.Fields(t) {
		if !token.IsExported(name) || k.Intrinsic(name) {
			continue
		}
		if _, ok := skip[name]; ok {
			continue
		}
		value, ok := reflectutil.FieldValue(instance, name)
		if !ok {
			return nil, fmt.Errorf("%w: type %s enumerates field %q with no declaration", ErrMissingType, typeName(t), name)
		}
		fieldValues[name] = value
	}

	built, err := k.New(t, fieldValues)
	if err != nil {
		return nil, fmt.Errorf("generate: cloning %s: %w", typeName(t), err)
	}
	return built, nil
}

func stringSet(names []string) map[string]struct{} {
	if len(names) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}
