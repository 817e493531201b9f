// Package html renders a form snapshot as an HTML form element using pongo2
// templates. Labels and headings pass through an inline-only sanitizer;
// everything else is escaped.
package html

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/render"
	"github.com/goliatone/go-formstate/pkg/widgets"
)

type Option func(*config)

type config struct {
	templateFS fs.FS
	widgets    *widgets.Registry
}

// WithTemplatesFS supplies an alternate template bundle. It must provide
// form.tpl, section.tpl and field.tpl at its root and one
// widgets/<name>.tpl per resolvable widget.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithWidgets replaces the widget registry used to pick each field's
// control template.
func WithWidgets(reg *widgets.Registry) Option {
	return func(cfg *config) {
		cfg.widgets = reg
	}
}

type Renderer struct {
	engine  *Engine
	widgets *widgets.Registry
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the HTML renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.widgets == nil {
		cfg.widgets = widgets.NewRegistry()
	}

	engine, err := NewEngine(cfg.templateFS)
	if err != nil {
		return nil, fmt.Errorf("html renderer: configure engine: %w", err)
	}
	return &Renderer{engine: engine, widgets: cfg.widgets}, nil
}

func (r *Renderer) Name() string {
	return "html"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render draws the controller's current snapshot. It never changes state.
func (r *Renderer) Render(ctx context.Context, ctrl *form.Controller, opts render.RenderOptions) ([]byte, error) {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	if ctrl == nil {
		return nil, errors.New("html renderer: controller is required")
	}

	view := buildForm(ctrl.State(), opts, r.widgets)
	var buf bytes.Buffer
	if err := r.engine.Execute(FormTemplate, pongo2.Context{"form": view}, &buf); err != nil {
		return nil, fmt.Errorf("html renderer: %w", err)
	}
	return buf.Bytes(), nil
}
