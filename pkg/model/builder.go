package model

import (
	"regexp"

	"github.com/goliatone/go-formstate/internal/model"
)

// Builder converts descriptor lists into immutable schemas.
type Builder interface {
	Build(fields []Field) (*Schema, error)
}

// BuilderOption configures the builder behaviour.
type BuilderOption func(*builderOptions)

type builderOptions struct {
	labeler            func(string) string
	defaultMaxSections int
}

// WithLabeler overrides the default label generation function.
func WithLabeler(labeler func(string) string) BuilderOption {
	return func(opts *builderOptions) {
		opts.labeler = labeler
	}
}

// WithDefaultMaxSections sets the bound applied to sections that omit
// maxSections.
func WithDefaultMaxSections(n int) BuilderOption {
	return func(opts *builderOptions) {
		opts.defaultMaxSections = n
	}
}

// NewBuilder returns a Builder backed by the internal implementation.
func NewBuilder(options ...BuilderOption) Builder {
	cfg := builderOptions{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	return model.New(model.Options{
		Labeler:            cfg.labeler,
		DefaultMaxSections: cfg.defaultMaxSections,
	})
}

// Build is shorthand for NewBuilder().Build(fields).
func Build(fields []Field) (*Schema, error) {
	return NewBuilder().Build(fields)
}

// MustBuild panics when the descriptors are invalid. Useful for schemas
// declared as package-level literals.
func MustBuild(fields []Field) *Schema {
	schema, err := Build(fields)
	if err != nil {
		panic(err)
	}
	return schema
}

// CompilePattern compiles a descriptor regex anchored to the whole value.
func CompilePattern(pattern string) (*regexp.Regexp, error) {
	return model.CompilePattern(pattern)
}
