// Package sections manages the instance list of repeatable section fields.
// Every operation returns a new field value; the argument is never mutated.
package sections

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-formstate/pkg/model"
)

var (
	// ErrNotSection is returned when a plain field is passed where a section is expected.
	ErrNotSection = errors.New("sections: field is not a section")
	// ErrSectionDisabled is returned when instances change on a disabled section.
	ErrSectionDisabled = errors.New("sections: section is disabled")
	// ErrMaxInstances is returned when adding would exceed maxSections.
	ErrMaxInstances = errors.New("sections: maximum number of instances reached")
	// ErrPermanentInstance is returned when removing the first instance.
	ErrPermanentInstance = errors.New("sections: the first instance cannot be removed")
	// ErrInstanceOutOfRange is returned for indexes past the instance list.
	ErrInstanceOutOfRange = errors.New("sections: instance index out of range")
)

// CanAdd reports whether another instance may be appended.
func CanAdd(section model.Field) bool {
	return section.Section && !section.Disabled && len(section.Instances) < section.MaxSections
}

// CanRemove reports whether the instance at index may be removed.
func CanRemove(section model.Field, index int) bool {
	return section.Section && !section.Disabled && index > 0 && index < len(section.Instances)
}

// Add appends a copy of the first instance, which carries the pristine
// per-field state of the section.
func Add(section model.Field) (model.Field, error) {
	if err := check(section); err != nil {
		return section, err
	}
	if len(section.Instances) >= section.MaxSections {
		return section, fmt.Errorf("%w: %q allows %d", ErrMaxInstances, section.Name, section.MaxSections)
	}

	out := section.Clone()
	var template []model.Field
	if len(section.Instances) > 0 {
		template = section.Instances[0]
	} else {
		template = section.SectionFields
	}
	out.Instances = append(out.Instances, model.CloneFields(template))
	return out, nil
}

// Remove drops the instance at index, keeping the order of the rest.
func Remove(section model.Field, index int) (model.Field, error) {
	if err := check(section); err != nil {
		return section, err
	}
	if index == 0 {
		return section, ErrPermanentInstance
	}
	if index < 0 || index >= len(section.Instances) {
		return section, fmt.Errorf("%w: %d of %d", ErrInstanceOutOfRange, index, len(section.Instances))
	}

	out := section.Clone()
	out.Instances = Splice(out.Instances, index)
	return out, nil
}

// Reset returns the section with a single fresh instance cloned from its
// template, discarding every per-instance mutation.
func Reset(section model.Field) model.Field {
	out := section.Clone()
	out.Instances = [][]model.Field{model.CloneFields(section.SectionFields)}
	return out
}

// Splice returns rows without the element at index. The input slice is left
// untouched; an index past the end yields a copy of rows.
func Splice[T any](rows []T, index int) []T {
	if rows == nil {
		return nil
	}
	if index < 0 || index >= len(rows) {
		return append([]T(nil), rows...)
	}
	out := make([]T, 0, len(rows)-1)
	out = append(out, rows[:index]...)
	return append(out, rows[index+1:]...)
}

func check(section model.Field) error {
	if !section.Section {
		return fmt.Errorf("%w: %q", ErrNotSection, section.Name)
	}
	if section.Disabled {
		return fmt.Errorf("%w: %q", ErrSectionDisabled, section.Name)
	}
	return nil
}
