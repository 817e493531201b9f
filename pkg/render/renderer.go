package render

import (
	"context"

	"github.com/goliatone/go-formstate/pkg/form"
)

// Renderer presents a mounted form. Static renderers draw the current
// snapshot; interactive ones drive the controller's change handlers until
// the form is submitted and return the submitted payload.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, ctrl *form.Controller, options RenderOptions) ([]byte, error)
}
