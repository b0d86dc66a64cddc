// Package xmlmodel registers the kind for XML-serializable models: structs
// that embed Base and follow the encoding/xml tag conventions. Fields
// tagged xml:"-" are excluded from enumeration the same way the encoder
// excludes them from output.
package xmlmodel

import (
	"reflect"

	"github.com/goliatone/go-fabricate/internal/reflectutil"
	"github.com/goliatone/go-fabricate/pkg/kind"
)

// Base marks a struct as an XML-serializable model.
type Base struct{}

// Types resolves tag-declared type names for XML models.
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

// enumerateFields lists exported field names, skipping fields the XML
// encoder would skip.
func enumerateFields(t reflect.Type) []string {
	var names []string
	for _, name := range kind.DefaultFieldEnumerator(t) {
		if sf, ok := reflectutil.LookupField(t, name); ok && sf.Tag.Get("xml") == "-" {
			continue
		}
		names = append(names, name)
	}
	return names
}

func init() {
	kind.Default().MustRegister(kind.Kind{
		Marker:  reflect.TypeFor[Base](),
		Fields:  enumerateFields,
		Resolve: Types.Resolve,
	})
}
