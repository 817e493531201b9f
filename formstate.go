// Package formstate is the top-level entry point: load a declarative form
// schema, mount a controller on it and render it.
package formstate

import (
	"context"

	"github.com/goliatone/go-formstate/pkg/orchestrator"
	"github.com/goliatone/go-formstate/pkg/render"
	"github.com/goliatone/go-formstate/pkg/schemafile"
)

// RenderOptions describes per-request presentation overrides.
type RenderOptions = render.RenderOptions

// Request aliases orchestrator.Request.
type Request = orchestrator.Request

// Document aliases schemafile.Document.
type Document = schemafile.Document

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// LoadFile reads a JSON or YAML schema document from disk.
func LoadFile(path string, options ...schemafile.Option) (Document, error) {
	return schemafile.LoadFile(path, options...)
}

// GenerateHTML loads the schema at path and renders its initial state as
// HTML. It is the simplest entry point for callers that just want markup.
func GenerateHTML(ctx context.Context, path string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Path:     path,
		Renderer: "html",
	})
}

// GenerateFromDocument renders a pre-loaded document with the named
// renderer, bypassing the loader.
func GenerateFromDocument(ctx context.Context, doc Document, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Document: &doc,
		Renderer: rendererName,
	})
}
