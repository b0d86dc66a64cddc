package generate

import (
	"github.com/goliatone/go-fabricate/pkg/kind"
	"github.com/goliatone/go-fabricate/pkg/values"
)

// Option configures a single generation, diff, or enumeration call.
type Option func(*config)

type config struct {
	seed                int
	optionalAsAbsent    bool
	expandRelationships bool
	overrides           map[string]any
	values              *values.Registry
	kinds               *kind.Registry
}

func newConfig(opts []Option) *config {
	cfg := &config{
		seed:   1,
		values: values.Default(),
		kinds:  kind.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}

// WithSeed sets the integer seed driving value synthesis. Defaults to 1.
func WithSeed(seed int) Option {
	return func(cfg *config) { cfg.seed = seed }
}

// OptionalAsAbsent forces every optional scalar field and every optional
// container field to resolve to its absent form.
func OptionalAsAbsent() Option {
	return func(cfg *config) { cfg.optionalAsAbsent = true }
}

// ExpandRelationships recursively synthesizes nested model fields instead
// of leaving empty placeholders.
func ExpandRelationships() Option {
	return func(cfg *config) { cfg.expandRelationships = true }
}

// WithOverride pins a named field to a caller-supplied value, bypassing
// synthesis for that field. Keys that match no enumerated field fail the
// call with ErrUnusedOverrides.
func WithOverride(name string, value any) Option {
	return func(cfg *config) {
		if cfg.overrides == nil {
			cfg.overrides = make(map[string]any)
		}
		cfg.overrides[name] = value
	}
}

// WithOverrides merges a map of field overrides; see WithOverride.
func WithOverrides(overrides map[string]any) Option {
	return func(cfg *config) {
		if cfg.overrides == nil {
			cfg.overrides = make(map[string]any, len(overrides))
		}
		for name, value := range overrides {
			cfg.overrides[name] = value
		}
	}
}

// WithValueRegistry swaps the primitive value registry for this call.
// Defaults to values.Default().
func WithValueRegistry(r *values.Registry) Option {
	return func(cfg *config) {
		if r != nil {
			cfg.values = r
		}
	}
}

// WithKindRegistry swaps the model-kind registry for this call. Defaults
// to kind.Default().
func WithKindRegistry(r *kind.Registry) Option {
	return func(cfg *config) {
		if r != nil {
			cfg.kinds = r
		}
	}
}
