// Package dependency enables and disables the fields a parent controls.
// Cascades are single level: a dependent's own dependents are never
// re-evaluated.
package dependency

import (
	"errors"
	"fmt"
	"slices"

	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/sections"
	"github.com/goliatone/go-formstate/pkg/validation"
)

// ErrUnknownDependent is returned when a parent names a field missing from
// the schema. Built schemas reject this at load time.
var ErrUnknownDependent = errors.New("dependency: unknown dependent field")

// Outcome lists the dependents a cascade touched, in dependentFields order.
type Outcome struct {
	Enabled  []string
	Disabled []string
}

// Changed reports whether the cascade touched any dependent.
func (o Outcome) Changed() bool {
	return len(o.Enabled) > 0 || len(o.Disabled) > 0
}

// Enabled reports whether dependent should be active for the parent value.
// Options compare by value and scalars by their string form.
func Enabled(dependent model.Field, parentValue any) bool {
	if parentValue == nil {
		return false
	}
	return slices.Contains(dependent.DependsOnValues, validation.StringValue(parentValue))
}

// Cascade re-evaluates every dependent of parent against the parent's value
// in data. It returns a new schema and leaves the input schema untouched.
// data, required and regex are the caller's working copies: entries of
// disabled dependents are deleted from them.
func Cascade(schema *model.Schema, data model.FormData, required, regex model.Errors, parent model.Field) (*model.Schema, Outcome, error) {
	var outcome Outcome
	if !parent.IsParent() {
		return schema, outcome, nil
	}

	parentValue, _ := data.Value(parent.Name)
	updated := make([]model.Field, 0, len(parent.DependentFields))
	for _, name := range parent.DependentFields {
		dependent, ok := schema.Field(name)
		if !ok {
			return schema, Outcome{}, fmt.Errorf("%w: %q (parent %q)", ErrUnknownDependent, name, parent.Name)
		}

		if Enabled(dependent, parentValue) {
			updated = append(updated, enable(dependent))
			outcome.Enabled = append(outcome.Enabled, name)
			continue
		}

		updated = append(updated, disable(dependent))
		data.Delete(name)
		required.Delete(name)
		regex.Delete(name)
		outcome.Disabled = append(outcome.Disabled, name)
	}

	return schema.ReplaceAll(updated...), outcome, nil
}

func enable(dependent model.Field) model.Field {
	out := dependent.Clone()
	if out.Section {
		for i := range out.Instances {
			for j := range out.Instances[i] {
				member := &out.Instances[i][j]
				member.Disabled = false
				member.Required = member.SetToRequiredWhenEnabled
			}
		}
	} else {
		out.Required = out.SetToRequiredWhenEnabled
	}
	out.Disabled = false
	return out
}

func disable(dependent model.Field) model.Field {
	var out model.Field
	if dependent.Section {
		out = sections.Reset(dependent)
	} else {
		out = dependent.Clone()
		out.Required = false
	}
	out.Disabled = true
	return out
}
