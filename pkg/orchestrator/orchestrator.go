package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/hashicorp/go-hclog"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/render"
	"github.com/goliatone/go-formstate/pkg/renderers/html"
	"github.com/goliatone/go-formstate/pkg/renderers/tui"
	"github.com/goliatone/go-formstate/pkg/schemafile"
)

const defaultRendererName = "html"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithLoaderOptions forwards options to every schemafile load.
func WithLoaderOptions(options ...schemafile.Option) Option {
	return func(o *Orchestrator) {
		o.loaderOptions = append(o.loaderOptions, options...)
	}
}

// WithSchemaTransformer registers a Transformer that runs after loading and
// before the controller is mounted.
func WithSchemaTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithSubmit sets the submit collaborator handed to every mounted controller.
func WithSubmit(submit form.SubmitFunc) Option {
	return func(o *Orchestrator) {
		o.submit = submit
	}
}

// WithLogger routes orchestrator and controller logs to logger.
func WithLogger(logger hclog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator coordinates loading, mounting and rendering. It applies
// defaults (html and tui renderers, null logger) while remaining open to
// dependency injection.
type Orchestrator struct {
	registry        *render.Registry
	defaultRenderer string
	loaderOptions   []schemafile.Option
	transformer     Transformer
	submit          form.SubmitFunc
	logger          hclog.Logger
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		logger:          hclog.NewNullLogger(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

func (o *Orchestrator) applyDefaults() {
	if o.registry != nil {
		return
	}
	htmlRenderer, err := html.New()
	if err != nil {
		o.initialiseErr = fmt.Errorf("orchestrator: html renderer: %w", err)
		return
	}
	tuiRenderer, err := tui.New(tui.WithLogger(o.logger.Named("tui")))
	if err != nil {
		o.initialiseErr = fmt.Errorf("orchestrator: tui renderer: %w", err)
		return
	}
	o.registry, o.initialiseErr = render.NewRegistry(htmlRenderer, tuiRenderer)
}

// Registry exposes the renderer registry in use.
func (o *Orchestrator) Registry() *render.Registry {
	return o.registry
}

// Request describes one form to mount and render.
type Request struct {
	// Path names the schema file, read from FS when set or from disk
	// otherwise. Optional when Document is supplied.
	Path string
	FS   fs.FS

	// Document bypasses the loader.
	Document *schemafile.Document

	// Renderer names the renderer to use; empty selects the default.
	Renderer string

	// Values prefill the controller.
	Values *model.FormData

	// Validate runs a submit before rendering so static renderers show
	// every error. The submit collaborator fires if the form is valid.
	Validate bool

	// RenderOptions override the document's title, description and submit
	// label where set.
	RenderOptions render.RenderOptions
}

// Mount loads the request's document and mounts a controller on it.
func (o *Orchestrator) Mount(ctx context.Context, req Request) (*form.Controller, schemafile.Document, error) {
	if ctx == nil {
		return nil, schemafile.Document{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, schemafile.Document{}, err
	}

	doc, err := o.resolveDocument(req)
	if err != nil {
		return nil, schemafile.Document{}, err
	}
	if o.transformer != nil {
		schema, err := o.transformer.Transform(ctx, doc.Schema)
		if err != nil {
			return nil, schemafile.Document{}, fmt.Errorf("orchestrator: transform schema: %w", err)
		}
		doc.Schema = schema
	}

	opts := []form.Option{form.WithLogger(o.logger.Named("form").With("form", doc.Name))}
	if req.Values != nil {
		opts = append(opts, form.WithValues(*req.Values))
	}
	ctrl, err := form.New(doc.Schema, o.submit, opts...)
	if err != nil {
		return nil, schemafile.Document{}, fmt.Errorf("orchestrator: mount %q: %w", doc.Name, err)
	}
	return ctrl, doc, nil
}

// Generate mounts the requested form and renders it.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if err := o.initialiseErr; err != nil {
		return nil, err
	}

	ctrl, doc, err := o.Mount(ctx, req)
	if err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	if req.Validate {
		valid := ctrl.Submit()
		o.logger.Debug("validated before render", "form", doc.Name, "valid", valid)
	}

	output, err := renderer.Render(ctx, ctrl, MergeOptions(doc, req.RenderOptions))
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// MergeOptions fills empty presentation options from the document.
func MergeOptions(doc schemafile.Document, opts render.RenderOptions) render.RenderOptions {
	if opts.Title == "" {
		opts.Title = doc.Title
	}
	if opts.Description == "" {
		opts.Description = doc.Description
	}
	if opts.SubmitLabel == "" {
		opts.SubmitLabel = doc.SubmitLabel
	}
	return opts
}

func (o *Orchestrator) resolveDocument(req Request) (schemafile.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Path == "" {
		return schemafile.Document{}, errors.New("orchestrator: path or document is required")
	}

	var (
		doc schemafile.Document
		err error
	)
	if req.FS != nil {
		doc, err = schemafile.LoadFS(req.FS, req.Path, o.loaderOptions...)
	} else {
		doc, err = schemafile.LoadFile(req.Path, o.loaderOptions...)
	}
	if err != nil {
		return schemafile.Document{}, fmt.Errorf("orchestrator: load schema: %w", err)
	}
	return doc, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}
