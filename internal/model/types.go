package model

import (
	"strings"
	"time"
)

// FieldType is the closed set of input kinds a descriptor can declare.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeSelect   FieldType = "select"
	FieldTypeDate     FieldType = "date"
	FieldTypeMasked   FieldType = "masked"
	FieldTypeRadio    FieldType = "radio"
)

// Kind groups field types by how their values are validated.
type Kind int

const (
	KindUnknown Kind = iota
	// KindText covers free text inputs (text, textarea, masked).
	KindText
	// KindChoice covers inputs picking from Options (select, radio).
	KindChoice
	// KindDate covers date pickers.
	KindDate
)

// FieldTypes lists every supported field type in declaration order.
func FieldTypes() []FieldType {
	return []FieldType{
		FieldTypeText,
		FieldTypeTextarea,
		FieldTypeSelect,
		FieldTypeDate,
		FieldTypeMasked,
		FieldTypeRadio,
	}
}

// Valid reports whether t belongs to the supported set.
func (t FieldType) Valid() bool {
	return t.Kind() != KindUnknown
}

// Kind maps the field type onto its validation kind.
func (t FieldType) Kind() Kind {
	switch t {
	case FieldTypeText, FieldTypeTextarea, FieldTypeMasked:
		return KindText
	case FieldTypeSelect, FieldTypeRadio:
		return KindChoice
	case FieldTypeDate:
		return KindDate
	default:
		return KindUnknown
	}
}

// Option is a single choice offered by select and radio fields. Schema files
// may declare options as plain scalars, in which case Label mirrors Value.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label,omitempty"`
}

// Display returns the label, falling back to the value.
func (o Option) Display() string {
	if strings.TrimSpace(o.Label) != "" {
		return o.Label
	}
	return o.Value
}

// IsZero reports whether the option carries neither a value nor a label.
func (o Option) IsZero() bool {
	return o.Value == "" && o.Label == ""
}

// Field describes one input, or one repeatable section when Section is true.
// Disabled and Required change at runtime through dependency cascades; every
// other attribute is static configuration.
type Field struct {
	Name                 string    `json:"name"`
	Label                string    `json:"label,omitempty"`
	Placeholder          string    `json:"placeholder,omitempty"`
	Type                 FieldType `json:"type,omitempty"`
	Required             bool      `json:"required,omitempty"`
	RequiredErrorMessage string    `json:"requiredErrorMessage,omitempty"`
	Regex                string    `json:"regex,omitempty"`
	RegexErrorMessage    string    `json:"regexErrorMessage,omitempty"`
	Disabled             bool      `json:"disabled,omitempty"`
	Options              []Option  `json:"options,omitempty"`

	// Presentation hints; ignored by validation and cascades.
	MaxLength         int        `json:"maxLength,omitempty"`
	MinDate           *time.Time `json:"minDate,omitempty"`
	MaxDate           *time.Time `json:"maxDate,omitempty"`
	Mask              string     `json:"mask,omitempty"`
	AutoFocus         bool       `json:"autoFocus,omitempty"`
	ShowCharCount     bool       `json:"showCharCount,omitempty"`
	GridClasses       string     `json:"gridClasses,omitempty"`
	ButtonGridClasses string     `json:"buttonGridClasses,omitempty"`

	DependentFields          []string `json:"dependentFields,omitempty"`
	DependsOnValues          []string `json:"dependsOnValues,omitempty"`
	SetToRequiredWhenEnabled bool     `json:"setToRequiredWhenEnabled,omitempty"`

	Section        bool      `json:"section,omitempty"`
	SectionHeading string    `json:"sectionHeading,omitempty"`
	MaxSections    int       `json:"maxSections,omitempty"`
	SectionFields  []Field   `json:"sectionFields,omitempty"`
	Instances      [][]Field `json:"instances,omitempty"`
	AddButton      string    `json:"addButton,omitempty"`
}

// IsParent reports whether the field controls dependents.
func (f Field) IsParent() bool {
	return len(f.DependentFields) > 0
}

// IsDependent reports whether the field is controlled by a parent.
func (f Field) IsDependent() bool {
	return len(f.DependsOnValues) > 0
}

// DisplayLabel returns the label, falling back to the name.
func (f Field) DisplayLabel() string {
	if strings.TrimSpace(f.Label) != "" {
		return f.Label
	}
	return f.Name
}

// InstanceField returns the named field of instance index.
func (f Field) InstanceField(index int, name string) (Field, bool) {
	if index < 0 || index >= len(f.Instances) {
		return Field{}, false
	}
	for _, candidate := range f.Instances[index] {
		if candidate.Name == name {
			return candidate, true
		}
	}
	return Field{}, false
}

// Clone returns a deep copy so per-instance mutations never alias.
func (f Field) Clone() Field {
	out := f
	out.Options = append([]Option(nil), f.Options...)
	out.DependentFields = append([]string(nil), f.DependentFields...)
	out.DependsOnValues = append([]string(nil), f.DependsOnValues...)
	if f.MinDate != nil {
		t := *f.MinDate
		out.MinDate = &t
	}
	if f.MaxDate != nil {
		t := *f.MaxDate
		out.MaxDate = &t
	}
	out.SectionFields = CloneFields(f.SectionFields)
	if f.Instances != nil {
		out.Instances = make([][]Field, len(f.Instances))
		for i, instance := range f.Instances {
			out.Instances[i] = CloneFields(instance)
		}
	}
	return out
}

// CloneFields deep copies a field list.
func CloneFields(fields []Field) []Field {
	if fields == nil {
		return nil
	}
	out := make([]Field, len(fields))
	for i, field := range fields {
		out[i] = field.Clone()
	}
	return out
}
