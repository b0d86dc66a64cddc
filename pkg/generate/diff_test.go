package generate_test

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/goliatone/go-fabricate/pkg/generate"
	_ "github.com/goliatone/go-fabricate/pkg/kinds/record"
)

func diffCustomers(t *testing.T, expected, actual any, ignored ...string) []string {
	t.Helper()
	mismatches, err := generate.DiffWith(reflect.TypeFor[Customer](), expected, actual, ignored, testOpts(t))
	if err != nil {
		t.Fatalf("diff: %v", err)
	}
	return mismatches
}

func TestDiff_EqualInstances(t *testing.T) {
	a := mustInstance[Customer](t, testOpts(t, generate.WithSeed(6))...)
	b := mustInstance[Customer](t, testOpts(t, generate.WithSeed(6))...)

	if mismatches := diffCustomers(t, a, b); len(mismatches) != 0 {
		t.Fatalf("expected no mismatches, got %v", mismatches)
	}
}

func TestDiff_ReportsEachLeafMismatch(t *testing.T) {
	a := mustInstance[Customer](t, testOpts(t, generate.WithSeed(6))...)
	b := mustClone[Customer](t, a)
	b.Name = "changed"
	b.Age = -1

	mismatches := diffCustomers(t, a, b)
	if len(mismatches) != 2 {
		t.Fatalf("expected 2 mismatches, got %v", mismatches)
	}
	if !strings.HasPrefix(mismatches[0], "Name: string expected") {
		t.Fatalf("unexpected first mismatch %q", mismatches[0])
	}
	if !strings.HasPrefix(mismatches[1], "Age: int expected") {
		t.Fatalf("unexpected second mismatch %q", mismatches[1])
	}
}

func TestDiff_SkipsNestedModelFields(t *testing.T) {
	a := mustInstance[Customer](t, testOpts(t, generate.WithSeed(6), generate.ExpandRelationships())...)
	b := mustClone[Customer](t, a)
	b.Address = Address{Street: "other"}
	b.Orders = nil

	// Equality is intentionally shallow: only leaf fields count.
	if mismatches := diffCustomers(t, a, b); len(mismatches) != 0 {
		t.Fatalf("expected nested differences to be ignored, got %v", mismatches)
	}
}

func TestDiff_ComparesPrimitiveCollections(t *testing.T) {
	a := mustInstance[Customer](t, testOpts(t, generate.WithSeed(6))...)
	b := mustClone[Customer](t, a)
	b.Tags = []string{"other"}

	mismatches := diffCustomers(t, a, b)
	if len(mismatches) != 1 || !strings.HasPrefix(mismatches[0], "Tags:") {
		t.Fatalf("expected a Tags mismatch, got %v", mismatches)
	}
}

func TestDiff_IgnoredFields(t *testing.T) {
	a := mustInstance[Customer](t, testOpts(t, generate.WithSeed(6))...)
	b := mustClone[Customer](t, a)
	b.Name = "changed"

	if mismatches := diffCustomers(t, a, b, "Name"); len(mismatches) != 0 {
		t.Fatalf("expected the ignored field to be skipped, got %v", mismatches)
	}
}

func TestDiff_NilHandling(t *testing.T) {
	a := mustInstance[Customer](t, testOpts(t, generate.WithSeed(6))...)

	if mismatches := diffCustomers(t, nil, nil); mismatches != nil {
		t.Fatalf("expected two nils to be equal, got %v", mismatches)
	}
	mismatches := diffCustomers(t, nil, a)
	if len(mismatches) != 1 || !strings.HasPrefix(mismatches[0], "expected is nil") {
		t.Fatalf("unexpected mismatches %v", mismatches)
	}
	mismatches = diffCustomers(t, a, (*Customer)(nil))
	if len(mismatches) != 1 || !strings.HasPrefix(mismatches[0], "actual is nil") {
		t.Fatalf("unexpected mismatches %v", mismatches)
	}
}

// receipt leans on value types whose state is unexported; the comparison
// must descend into them without panicking.
type receipt struct {
	ID    uuid.UUID
	At    time.Time
	Total decimal.Decimal
}

func TestDiff_OpaqueValueTypes(t *testing.T) {
	a := mustInstance[receipt](t, testOpts(t, generate.WithSeed(2))...)
	b := mustClone[receipt](t, a)

	if mismatches, err := generate.DiffWith(reflect.TypeFor[receipt](), a, b, nil, testOpts(t)); err != nil || len(mismatches) != 0 {
		t.Fatalf("expected opaque leaf types to compare clean: %v, %v", mismatches, err)
	}

	b.Total = decimal.NewFromInt(99)
	mismatches, err := generate.DiffWith(reflect.TypeFor[receipt](), a, b, nil, testOpts(t))
	if err != nil || len(mismatches) != 1 {
		t.Fatalf("expected one mismatch: %v, %v", mismatches, err)
	}
}

// recordingTB captures Fatalf calls so assertion failures can be observed
// instead of aborting the test run.
type recordingTB struct {
	testing.TB
	failed  bool
	message string
}

func (r *recordingTB) Helper() {}

func (r *recordingTB) Fatalf(format string, args ...any) {
	r.failed = true
	r.message = fmt.Sprintf(format, args...)
}

func TestAssertEqual(t *testing.T) {
	// AssertEqual runs against the process-wide registries, which the
	// record kind import wires with a fallback for plain structs.
	a := &Address{Street: "elm", City: "springfield"}
	b := &Address{Street: "elm", City: "springfield"}

	rec := &recordingTB{TB: t}
	generate.AssertEqual(rec, reflect.TypeFor[Address](), a, b)
	if rec.failed {
		t.Fatalf("expected assertion to pass, got %q", rec.message)
	}

	b.City = "shelbyville"
	rec = &recordingTB{TB: t}
	generate.AssertEqual(rec, reflect.TypeFor[Address](), a, b, "Street")
	if !rec.failed {
		t.Fatal("expected assertion to fail")
	}
	if !strings.Contains(rec.message, "City") {
		t.Fatalf("expected the differing field in %q", rec.message)
	}
}
