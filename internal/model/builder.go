package model

import "strings"

// Builder normalises descriptor lists into immutable schemas.
type Builder struct {
	opts Options
}

// New creates a Builder with the supplied options.
func New(options Options) *Builder {
	opts := defaultOptions()
	if options.Labeler != nil {
		opts.Labeler = options.Labeler
	}
	if options.DefaultMaxSections > 0 {
		opts.DefaultMaxSections = options.DefaultMaxSections
	}
	return &Builder{opts: opts}
}

// Build validates the descriptors and returns the runtime schema. The input
// slice is never retained: every field is deep copied, labels are filled in
// and each section starts with exactly one instance cloned from its
// sectionFields. Configuration problems are reported together, wrapped by
// ErrInvalidSchema.
func (b *Builder) Build(fields []Field) (*Schema, error) {
	built := make([]Field, len(fields))
	for i, field := range fields {
		built[i] = b.normalise(field)
	}
	if err := validateFields(built); err != nil {
		return nil, err
	}
	return newSchema(built), nil
}

func (b *Builder) normalise(field Field) Field {
	out := field.Clone()
	out.Name = strings.TrimSpace(out.Name)
	out.Type = FieldType(strings.ToLower(strings.TrimSpace(string(out.Type))))
	out.DependentFields = trimAll(out.DependentFields)

	if !out.Section {
		if out.Label == "" && b.opts.Labeler != nil {
			out.Label = b.opts.Labeler(out.Name)
		}
		out.Instances = nil
		out.SectionFields = nil
		return out
	}

	if out.MaxSections == 0 {
		out.MaxSections = b.opts.DefaultMaxSections
	}
	if out.SectionHeading == "" && b.opts.Labeler != nil {
		out.SectionHeading = b.opts.Labeler(out.Name)
	}
	template := make([]Field, len(out.SectionFields))
	for i, member := range out.SectionFields {
		template[i] = b.normalise(member)
	}
	out.SectionFields = template
	out.Instances = [][]Field{CloneFields(template)}
	return out
}

func trimAll(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
