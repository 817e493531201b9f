package model

// Schema is an immutable, ordered list of top-level fields. Updates go
// through Replace, which returns a new *Schema and leaves the receiver
// untouched, so callers can detect changes by pointer identity.
type Schema struct {
	fields []Field
	index  map[string]int
}

func newSchema(fields []Field) *Schema {
	index := make(map[string]int, len(fields))
	for i, field := range fields {
		index[field.Name] = i
	}
	return &Schema{fields: fields, index: index}
}

// Len reports the number of top-level fields.
func (s *Schema) Len() int {
	if s == nil {
		return 0
	}
	return len(s.fields)
}

// Fields returns the fields in rendering order. The slice is a copy; the
// nested section slices are shared and must be treated as read-only.
func (s *Schema) Fields() []Field {
	if s == nil {
		return nil
	}
	return append([]Field(nil), s.fields...)
}

// At returns the field at position i.
func (s *Schema) At(i int) Field {
	return s.fields[i]
}

// Field resolves a top-level field by name.
func (s *Schema) Field(name string) (Field, bool) {
	if s == nil {
		return Field{}, false
	}
	i, ok := s.index[name]
	if !ok {
		return Field{}, false
	}
	return s.fields[i], true
}

// Has reports whether a top-level field with name exists.
func (s *Schema) Has(name string) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[name]
	return ok
}

// Replace returns a copy of the schema with the field sharing field.Name
// swapped for field. Unknown names return the receiver unchanged.
func (s *Schema) Replace(field Field) *Schema {
	return s.ReplaceAll(field)
}

// ReplaceAll swaps several fields in a single copy.
func (s *Schema) ReplaceAll(fields ...Field) *Schema {
	if s == nil || len(fields) == 0 {
		return s
	}
	var next []Field
	for _, field := range fields {
		i, ok := s.index[field.Name]
		if !ok {
			continue
		}
		if next == nil {
			next = append([]Field(nil), s.fields...)
		}
		next[i] = field
	}
	if next == nil {
		return s
	}
	return &Schema{fields: next, index: s.index}
}
