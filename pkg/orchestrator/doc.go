// Package orchestrator wires the schema loader, form controller and renderer
// registry into a single entry point: load a schema document, mount a
// controller for it and hand the controller to a named renderer.
package orchestrator
