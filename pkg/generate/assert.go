package generate

import (
	"reflect"
	"strings"
	"testing"
)

// AssertEqual fails the test when two instances of t differ on any leaf
// field, reporting every mismatch Diff found. Ignored field names are
// excluded from the comparison.
func AssertEqual(tb testing.TB, t reflect.Type, expected, actual any, ignored ...string) {
	tb.Helper()
	mismatches, err := Diff(t, expected, actual, ignored...)
	if err != nil {
		tb.Fatalf("diff %s: %v", typeName(t), err)
	}
	if len(mismatches) > 0 {
		tb.Fatalf("instances of %s differ:\n%s", typeName(t), strings.Join(mismatches, "\n"))
	}
}
