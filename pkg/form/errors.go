package form

import "errors"

var (
	// ErrNilSchema is returned when New receives no schema.
	ErrNilSchema = errors.New("form: schema is required")
	// ErrUnknownField is returned for names missing from the schema.
	ErrUnknownField = errors.New("form: unknown field")
	// ErrNotField is returned when a section is addressed as a plain field.
	ErrNotField = errors.New("form: field is a section")
	// ErrFieldDisabled is returned when a disabled field receives a value.
	ErrFieldDisabled = errors.New("form: field is disabled")
)
