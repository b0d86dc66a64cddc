// Package apimodel registers the kind for validated external-facing
// models: structs that embed Base and carry go-playground/validator tags.
// Fabricated instances are constructed directly without running
// validation; Validate applies the declared rules on demand.
package apimodel

import (
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"

	"github.com/goliatone/go-fabricate/pkg/kind"
)

// Base marks a struct as a validated external-facing model.
type Base struct{}

// Types resolves tag-declared type names for validated models.
var Types = kind.NewNameRegistry()

// Register adds model type T to the name registry under its type name and
// any supplied aliases.
func Register[T any](aliases ...string) {
	t := reflect.TypeFor[T]()
	Types.Add(t.Name(), t)
	for _, alias := range aliases {
		Types.Add(alias, t)
	}
}

var validate = validator.New()

// Validate runs the model's declared validation tags against an instance.
// Construction never validates, mirroring how fabricated values may
// intentionally sit outside the rules a real payload would satisfy.
func Validate(instance any) error {
	if instance == nil {
		return fmt.Errorf("apimodel: instance is required")
	}
	return validate.Struct(instance)
}

func init() {
	kind.Default().MustRegister(kind.Kind{
		Marker:  reflect.TypeFor[Base](),
		Resolve: Types.Resolve,
	})
}
