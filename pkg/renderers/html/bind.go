package html

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/sections"
	"github.com/goliatone/go-formstate/pkg/validation"
)

var (
	ErrUnknownOption = errors.New("html: value is not one of the field options")
	ErrInvalidDate   = errors.New("html: invalid date")
	ErrUnknownAction = errors.New("html: unknown form action")
)

// Bind feeds a posted form into ctrl through its change handlers. Parents
// are bound first so cascades enable dependents before their values are
// read, wherever the dependents sit in the schema. Posted section rows
// beyond the current instance count are allocated first.
//
// When the post carries a section button (see ActionField) the action is
// applied last and handled is true; callers should re-render rather than
// submit.
func Bind(ctrl *form.Controller, values url.Values) (handled bool, err error) {
	for _, parents := range []bool{true, false} {
		if err := bindPass(ctrl, values, parents); err != nil {
			return false, err
		}
	}

	action := strings.TrimSpace(values.Get(ActionField))
	if action == "" {
		return false, nil
	}
	return true, applyAction(ctrl, action)
}

// bindPass binds the enabled fields whose IsParent matches parents. The
// schema is re-read per field since every change may publish a new one.
func bindPass(ctrl *form.Controller, values url.Values, parents bool) error {
	for i := 0; i < ctrl.Schema().Len(); i++ {
		field := ctrl.Schema().At(i)
		if field.Disabled || field.IsParent() != parents {
			continue
		}
		var err error
		if field.Section {
			err = bindSection(ctrl, field, values)
		} else {
			err = bindField(ctrl, field, values)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func bindField(ctrl *form.Controller, field model.Field, values url.Values) error {
	if _, posted := values[field.Name]; !posted {
		return nil
	}
	value, err := decodeValue(field, values.Get(field.Name))
	if err != nil {
		return fmt.Errorf("%w (%s)", err, field.Name)
	}
	return ctrl.FieldChange(field.Name, value)
}

func bindSection(ctrl *form.Controller, sec model.Field, values url.Values) error {
	rows := postedRows(sec.Name, values)
	for len(sec.Instances) < rows && sections.CanAdd(sec) {
		if err := ctrl.AddInstance(sec.Name); err != nil {
			return err
		}
		sec, _ = ctrl.Schema().Field(sec.Name)
	}

	for i, instance := range sec.Instances {
		for _, member := range instance {
			if member.Disabled {
				continue
			}
			key := sec.Name + "[" + strconv.Itoa(i) + "]." + member.Name
			if _, posted := values[key]; !posted {
				continue
			}
			value, err := decodeValue(member, values.Get(key))
			if err != nil {
				return fmt.Errorf("%w (%s)", err, key)
			}
			if err := ctrl.SectionFieldChange(sec.Name, i, member.Name, value); err != nil {
				return err
			}
		}
	}
	return nil
}

// postedRows returns one past the highest instance index posted for section.
func postedRows(section string, values url.Values) int {
	prefix := section + "["
	rows := 0
	for key := range values {
		rest, ok := strings.CutPrefix(key, prefix)
		if !ok {
			continue
		}
		end := strings.IndexByte(rest, ']')
		if end <= 0 {
			continue
		}
		idx, err := strconv.Atoi(rest[:end])
		if err != nil || idx < 0 {
			continue
		}
		if idx+1 > rows {
			rows = idx + 1
		}
	}
	return rows
}

func decodeValue(field model.Field, raw string) (any, error) {
	switch field.Type.Kind() {
	case model.KindChoice:
		if raw == "" {
			return nil, nil
		}
		for _, opt := range field.Options {
			if opt.Value != raw {
				continue
			}
			if field.Type == model.FieldTypeSelect {
				return opt, nil
			}
			return opt.Value, nil
		}
		return nil, fmt.Errorf("%w: %q", ErrUnknownOption, raw)
	case model.KindDate:
		if strings.TrimSpace(raw) == "" {
			return nil, nil
		}
		parsed, err := time.Parse(validation.DateLayout, strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
		}
		return parsed, nil
	default:
		return raw, nil
	}
}

func applyAction(ctrl *form.Controller, action string) error {
	parts := strings.Split(action, ":")
	switch {
	case len(parts) == 2 && parts[0] == actionAdd:
		return ctrl.AddInstance(parts[1])
	case len(parts) == 3 && parts[0] == actionRemove:
		idx, err := strconv.Atoi(parts[2])
		if err != nil {
			return fmt.Errorf("%w: %q", ErrUnknownAction, action)
		}
		return ctrl.RemoveInstance(parts[1], idx)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
}
