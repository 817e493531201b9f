package orchestrator

import (
	"context"

	"github.com/goliatone/go-formstate/pkg/model"
)

// Transformer rewrites a loaded schema before a controller is mounted on
// it, e.g. to drop fields a deployment does not collect. Implementations
// return a new schema; the input must not be mutated.
type Transformer interface {
	Transform(ctx context.Context, schema *model.Schema) (*model.Schema, error)
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, schema *model.Schema) (*model.Schema, error)

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, schema *model.Schema) (*model.Schema, error) {
	if fn == nil {
		return schema, nil
	}
	return fn(ctx, schema)
}

// Hide returns a transformer that marks the named top-level fields disabled
// and not required, so neither validation nor renderers consider them.
func Hide(names ...string) Transformer {
	return TransformerFunc(func(_ context.Context, schema *model.Schema) (*model.Schema, error) {
		var hidden []model.Field
		for _, name := range names {
			field, ok := schema.Field(name)
			if !ok {
				continue
			}
			field = field.Clone()
			field.Disabled = true
			field.Required = false
			hidden = append(hidden, field)
		}
		if len(hidden) == 0 {
			return schema, nil
		}
		return schema.ReplaceAll(hidden...), nil
	})
}
