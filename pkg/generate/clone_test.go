package generate_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-fabricate/pkg/generate"
	"github.com/goliatone/go-fabricate/pkg/kind"
)

func mustClone[T any](t *testing.T, instance any, ignored ...string) *T {
	t.Helper()
	out, err := generate.CloneWith(instance, ignored, testOpts(t))
	if err != nil {
		t.Fatalf("clone: %v", err)
	}
	return out.(*T)
}

func TestClone_CopiesEveryField(t *testing.T) {
	source := mustInstance[Customer](t, testOpts(t, generate.WithSeed(9), generate.ExpandRelationships())...)

	clone := mustClone[Customer](t, source)
	if clone == source {
		t.Fatal("expected a distinct instance")
	}
	if diff := cmp.Diff(source, clone); diff != "" {
		t.Fatalf("clone diverged (-source +clone):\n%s", diff)
	}
}

func TestClone_IsShallow(t *testing.T) {
	source := mustInstance[Customer](t, testOpts(t, generate.WithSeed(9))...)
	clone := mustClone[Customer](t, source)

	// Reference fields are shared, not duplicated.
	if clone.Email != source.Email {
		t.Fatal("expected the pointer field to be shared")
	}
	source.Tags[0] = "mutated"
	if clone.Tags[0] != "mutated" {
		t.Fatal("expected the slice backing array to be shared")
	}
}

func TestClone_IgnoredFieldsStayZero(t *testing.T) {
	source := mustInstance[Customer](t, testOpts(t, generate.WithSeed(9))...)
	clone := mustClone[Customer](t, source, "Name", "Tags")

	if clone.Name != "" || clone.Tags != nil {
		t.Fatalf("expected ignored fields zeroed, got %q %v", clone.Name, clone.Tags)
	}
	if clone.Age != source.Age {
		t.Fatalf("expected remaining fields copied, got %d", clone.Age)
	}
}

func TestClone_AcceptsValueInstances(t *testing.T) {
	source := Address{Street: "elm", City: "springfield"}
	clone := mustClone[Address](t, source)
	if *clone != source {
		t.Fatalf("unexpected clone %+v", clone)
	}
}

func TestClone_Errors(t *testing.T) {
	if _, err := generate.Clone(nil); err == nil {
		t.Fatal("expected error for nil instance")
	}
	if _, err := generate.CloneWith(Address{}, nil, []generate.Option{
		generate.WithKindRegistry(kind.NewRegistry()),
	}); !errors.Is(err, generate.ErrNoKind) {
		t.Fatalf("expected ErrNoKind, got %v", err)
	}
	if _, err := generate.CloneWith(42, nil, testOpts(t)); !errors.Is(err, generate.ErrNoKind) {
		t.Fatalf("expected ErrNoKind for a non-struct instance, got %v", err)
	}
}
