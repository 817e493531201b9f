package model

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/hashicorp/go-multierror"
)

// ErrInvalidSchema wraps every configuration problem found while building a
// schema. It signals a defect in the descriptors, never bad user input.
var ErrInvalidSchema = errors.New("model: invalid schema")

// CompilePattern compiles a descriptor regex so that it must match the whole
// value.
func CompilePattern(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile("^(?:" + pattern + ")$")
}

func validateFields(fields []Field) error {
	var result *multierror.Error

	index := make(map[string]Field, len(fields))
	for i, field := range fields {
		if field.Name == "" {
			result = multierror.Append(result, fmt.Errorf("field #%d: name is required", i))
			continue
		}
		if _, exists := index[field.Name]; exists {
			result = multierror.Append(result, fmt.Errorf("field %q: duplicate name", field.Name))
			continue
		}
		index[field.Name] = field

		if field.Section {
			result = multierror.Append(result, validateSection(field)...)
			continue
		}
		result = multierror.Append(result, validateInput(field.Name, field)...)
	}

	owners := make(map[string]string)
	for _, field := range fields {
		for _, name := range field.DependentFields {
			target, ok := index[name]
			switch {
			case name == field.Name:
				result = multierror.Append(result, fmt.Errorf("field %q: cannot depend on itself", name))
			case !ok:
				result = multierror.Append(result, fmt.Errorf("field %q: dependent field %q does not exist", field.Name, name))
			case !target.IsDependent():
				result = multierror.Append(result, fmt.Errorf("field %q: dependent field %q declares no dependsOnValues", field.Name, name))
			case target.IsParent():
				result = multierror.Append(result, fmt.Errorf("field %q: dependent field %q has dependents of its own; cascades are single level", field.Name, name))
			}
			if owner, claimed := owners[name]; claimed && owner != field.Name {
				result = multierror.Append(result, fmt.Errorf("field %q: already controlled by %q", name, owner))
			}
			owners[name] = field.Name
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSchema, err)
	}
	return nil
}

func validateSection(section Field) []error {
	var errs []error
	if len(section.SectionFields) == 0 {
		errs = append(errs, fmt.Errorf("section %q: sectionFields is empty", section.Name))
	}
	if section.MaxSections < 1 {
		errs = append(errs, fmt.Errorf("section %q: maxSections must be at least 1", section.Name))
	}
	if section.Regex != "" || len(section.Options) > 0 {
		errs = append(errs, fmt.Errorf("section %q: regex and options belong on section fields", section.Name))
	}

	seen := make(map[string]struct{}, len(section.SectionFields))
	for i, member := range section.SectionFields {
		ref := fmt.Sprintf("%s[%d]", section.Name, i)
		if member.Name == "" {
			errs = append(errs, fmt.Errorf("field %s: name is required", ref))
			continue
		}
		ref = section.Name + "." + member.Name
		if _, exists := seen[member.Name]; exists {
			errs = append(errs, fmt.Errorf("field %q: duplicate name", ref))
			continue
		}
		seen[member.Name] = struct{}{}

		if member.Section {
			errs = append(errs, fmt.Errorf("field %q: sections cannot be nested", ref))
			continue
		}
		if member.IsParent() {
			errs = append(errs, fmt.Errorf("field %q: dependentFields are not supported inside sections", ref))
		}
		errs = append(errs, validateInput(ref, member)...)
	}
	return errs
}

func validateInput(ref string, field Field) []error {
	var errs []error
	if !field.Type.Valid() {
		errs = append(errs, fmt.Errorf("field %q: unsupported type %q", ref, field.Type))
	}
	if field.Regex != "" {
		if _, err := CompilePattern(field.Regex); err != nil {
			errs = append(errs, fmt.Errorf("field %q: invalid regex: %w", ref, err))
		}
	}
	if field.Type.Kind() == KindChoice && len(field.Options) == 0 {
		errs = append(errs, fmt.Errorf("field %q: %s fields need options", ref, field.Type))
	}
	return errs
}
