package form

import "github.com/goliatone/go-formstate/pkg/model"

// State is one immutable snapshot of a form. Handlers never modify a
// published State; they build the next one and swap it in.
type State struct {
	Schema         *model.Schema
	Data           model.FormData
	RequiredErrors model.Errors
	RegexErrors    model.Errors
}

// FieldError returns the message shown for a plain field. A required error
// hides any pattern error.
func (s State) FieldError(name string) (string, bool) {
	if msg, ok := s.RequiredErrors.Field(name); ok {
		return msg, true
	}
	return s.RegexErrors.Field(name)
}

// SectionFieldError returns the message shown for a field of a section
// instance, with the same precedence as FieldError.
func (s State) SectionFieldError(section string, index int, name string) (string, bool) {
	if msg, ok := s.RequiredErrors.SectionField(section, index, name); ok {
		return msg, true
	}
	return s.RegexErrors.SectionField(section, index, name)
}

// HasErrors reports whether any message is currently shown.
func (s State) HasErrors() bool {
	return !s.RequiredErrors.Empty() || !s.RegexErrors.Empty()
}

// next copies the top-level maps so a handler can write without touching the
// published snapshot.
func (s State) next() State {
	return State{
		Schema:         s.Schema,
		Data:           s.Data.Clone(),
		RequiredErrors: s.RequiredErrors.Clone(),
		RegexErrors:    s.RegexErrors.Clone(),
	}
}
