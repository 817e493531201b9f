// Package lint reports authoring mistakes a built schema still accepts.
// Warnings never block loading; the builder already rejects schemas that
// cannot work at all.
package lint

import (
	"fmt"
	"slices"
	"sort"

	"github.com/goliatone/go-formstate/pkg/model"
)

// Warning is one finding, addressed by field name or "section.member".
type Warning struct {
	Location string
	Message  string
}

func (w Warning) String() string {
	return w.Location + ": " + w.Message
}

// Check runs every rule over schema and returns warnings sorted by location.
func Check(schema *model.Schema) []Warning {
	if schema == nil {
		return nil
	}

	controlled := make(map[string]model.Field)
	for _, field := range schema.Fields() {
		for _, name := range field.DependentFields {
			controlled[name] = field
		}
	}

	var out []Warning
	for _, field := range schema.Fields() {
		parent, isControlled := controlled[field.Name]
		if isControlled {
			out = append(out, dependentRules(field, parent)...)
		} else if field.IsDependent() {
			out = append(out, Warning{field.Name, "dependsOnValues is set but no field lists it in dependentFields"})
		}

		if !field.Section {
			if field.SetToRequiredWhenEnabled && !isControlled {
				out = append(out, Warning{field.Name, "setToRequiredWhenEnabled has no effect: no parent controls this field"})
			}
			out = append(out, attributeRules(field.Name, field)...)
			continue
		}

		for _, member := range field.SectionFields {
			location := field.Name + "." + member.Name
			if member.SetToRequiredWhenEnabled && !isControlled {
				out = append(out, Warning{location, "setToRequiredWhenEnabled has no effect: the section is not controlled by a parent"})
			}
			if isControlled && field.Disabled && !member.Disabled {
				out = append(out, Warning{location, "member stays enabled while its section starts disabled"})
			}
			out = append(out, attributeRules(location, member)...)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Location < out[j].Location
	})
	return out
}

func dependentRules(field, parent model.Field) []Warning {
	var out []Warning
	if len(parent.Options) > 0 {
		for _, value := range field.DependsOnValues {
			if !slices.ContainsFunc(parent.Options, func(opt model.Option) bool { return opt.Value == value }) {
				out = append(out, Warning{field.Name, fmt.Sprintf("dependsOnValues entry %q is not an option of %q", value, parent.Name)})
			}
		}
	}
	if !field.Disabled {
		out = append(out, Warning{field.Name, fmt.Sprintf("enabled before %q has a value; dependents usually start disabled", parent.Name)})
	}
	return out
}

func attributeRules(location string, field model.Field) []Warning {
	var out []Warning
	kind := field.Type.Kind()
	if field.MaxLength > 0 && kind != model.KindText {
		out = append(out, Warning{location, fmt.Sprintf("maxLength is ignored on %s fields", field.Type)})
	}
	if field.Mask != "" && field.Type != model.FieldTypeMasked {
		out = append(out, Warning{location, fmt.Sprintf("mask is ignored on %s fields", field.Type)})
	}
	if (field.MinDate != nil || field.MaxDate != nil) && kind != model.KindDate {
		out = append(out, Warning{location, fmt.Sprintf("minDate/maxDate are ignored on %s fields", field.Type)})
	}
	if field.MinDate != nil && field.MaxDate != nil && field.MinDate.After(*field.MaxDate) {
		out = append(out, Warning{location, "minDate is after maxDate, no date can be chosen"})
	}
	if len(field.Options) > 0 && kind != model.KindChoice {
		out = append(out, Warning{location, fmt.Sprintf("options are ignored on %s fields", field.Type)})
	}
	if field.Type == model.FieldTypeMasked && field.Mask == "" {
		out = append(out, Warning{location, "masked field has no mask"})
	}
	return out
}
