package generate

import "errors"

// Error taxonomy. Every failure is fatal to the call that raised it: no
// partial instance is ever returned and nothing is retried or logged.
var (
	// ErrNoKind reports a type that matches no registered model kind.
	ErrNoKind = errors.New("generate: type matches no registered model kind")

	// ErrMissingType reports an enumerable field whose declared type
	// cannot be resolved, including tag references naming unknown types.
	ErrMissingType = errors.New("generate: field type cannot be resolved")

	// ErrUnsynthesizable reports a field whose normalized type is neither
	// a primitive/enum nor a registered model kind and that received no
	// override.
	ErrUnsynthesizable = errors.New("generate: field cannot be synthesized")

	// ErrUnusedOverrides reports caller-supplied override keys that match
	// no enumerated field, guarding against silent typos.
	ErrUnusedOverrides = errors.New("generate: unused override keys")
)
