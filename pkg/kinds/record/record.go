// Package record registers the fallback model kind: plain structs that
// embed no framework marker. Go structs have no base class, so a
// placeholder marker stands in for one.
package record

import (
	"reflect"

	"github.com/goliatone/go-fabricate/pkg/kind"
)

// Marker is the placeholder marker claiming plain structs during
// classification. Models never embed it; it only identifies the kind.
type Marker struct{}

// Types resolves tag-declared type names for plain record models.
var Types = kind.NewNameRegistry()

// Register adds T to the record name registry under its type name and any
// supplied aliases, making it addressable from ref/oneof tags.
func Register[T any](aliases ...string) {
	t := reflect.TypeFor[T]()
	Types.Add(t.Name(), t)
	for _, alias := range aliases {
		Types.Add(alias, t)
	}
}

func init() {
	kind.Default().MustRegister(kind.Kind{
		Marker:   reflect.TypeFor[Marker](),
		Resolve:  Types.Resolve,
		Fallback: true,
	})
}
