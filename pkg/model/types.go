package model

import internalmodel "github.com/goliatone/go-formstate/internal/model"

// FieldType re-exports the internal FieldType enumeration.
type FieldType = internalmodel.FieldType

const (
	FieldTypeText     = internalmodel.FieldTypeText
	FieldTypeTextarea = internalmodel.FieldTypeTextarea
	FieldTypeSelect   = internalmodel.FieldTypeSelect
	FieldTypeDate     = internalmodel.FieldTypeDate
	FieldTypeMasked   = internalmodel.FieldTypeMasked
	FieldTypeRadio    = internalmodel.FieldTypeRadio
)

// Kind re-exports the validation kind grouping of field types.
type Kind = internalmodel.Kind

const (
	KindUnknown = internalmodel.KindUnknown
	KindText    = internalmodel.KindText
	KindChoice  = internalmodel.KindChoice
	KindDate    = internalmodel.KindDate
)

type Option = internalmodel.Option
type Field = internalmodel.Field
type Schema = internalmodel.Schema
type FormData = internalmodel.FormData
type Errors = internalmodel.Errors

// ErrInvalidSchema wraps configuration problems reported by Build.
var ErrInvalidSchema = internalmodel.ErrInvalidSchema

// FieldTypes lists every supported field type.
func FieldTypes() []FieldType { return internalmodel.FieldTypes() }

// NewFormData returns an empty, writable FormData.
func NewFormData() FormData { return internalmodel.NewFormData() }

// NewErrors returns an empty, writable Errors value.
func NewErrors() Errors { return internalmodel.NewErrors() }

// CloneFields deep copies a field list.
func CloneFields(fields []Field) []Field { return internalmodel.CloneFields(fields) }

// CompactRows normalises per-instance error rows (see internal/model).
func CompactRows(rows []map[string]string) []map[string]string {
	return internalmodel.CompactRows(rows)
}

// DefaultLabeler derives a label from a field name.
func DefaultLabeler(name string) string { return internalmodel.DefaultLabeler(name) }
