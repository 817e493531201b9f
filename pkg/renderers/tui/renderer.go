package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/hashicorp/go-hclog"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/render"
	"github.com/goliatone/go-formstate/pkg/sections"
	"github.com/goliatone/go-formstate/pkg/validation"
)

// DateLayout is the DD/MM/YYYY format dates are typed in.
const DateLayout = "02/01/2006"

const noneOption = "(none)"

// Renderer implements render.Renderer for terminal sessions. It walks the
// schema in order, feeds every answer to the controller, and after a
// blocked submit re-prompts only the fields that show an error.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
	theme             Theme
	maxRounds         int
	logger            hclog.Logger
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		maxRounds:    DefaultMaxRounds,
		logger:       hclog.NewNullLogger(),
		theme:        Theme{HeadingPrefix: "== ", ErrorPrefix: "! "},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	switch r.outputFormat {
	case OutputFormatJSON, OutputFormatFormURLEncoded, OutputFormatPrettyText:
	default:
		return nil, fmt.Errorf("tui: unsupported output format %q", r.outputFormat)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render prompts until the controller accepts a submit and returns the
// submitted data in the configured output format.
func (r *Renderer) Render(ctx context.Context, ctrl *form.Controller, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if ctrl == nil {
		return nil, errors.New("tui: controller is required")
	}

	if opts.Title != "" {
		if err := r.driver.Info(ctx, r.theme.HeadingPrefix+opts.Title); err != nil {
			return nil, err
		}
	}
	if opts.Description != "" {
		if err := r.driver.Info(ctx, opts.Description); err != nil {
			return nil, err
		}
	}

	if err := r.promptForm(ctx, ctrl); err != nil {
		return nil, err
	}

	for round := 0; !ctrl.Submit(); round++ {
		messages := render.Messages(ctrl.State())
		if round >= r.maxRounds {
			return nil, fmt.Errorf("%w: %d field(s) invalid", ErrSubmitBlocked, len(messages))
		}
		r.logger.Debug("submit blocked", "round", round+1, "errors", len(messages))
		if err := r.driver.Info(ctx, fmt.Sprintf("%s%d field(s) need attention", r.theme.ErrorPrefix, len(messages))); err != nil {
			return nil, err
		}
		for _, msg := range messages {
			if err := r.promptPath(ctx, ctrl, msg.Path); err != nil {
				return nil, err
			}
		}
	}

	values := ctrl.State().Data.Map()
	if r.submitTransformer != nil {
		var err error
		values, err = r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}
	return r.serialize(values)
}

func (r *Renderer) promptForm(ctx context.Context, ctrl *form.Controller) error {
	for i := 0; i < ctrl.Schema().Len(); i++ {
		field := ctrl.Schema().At(i)
		if field.Disabled {
			continue
		}
		var err error
		if field.Section {
			err = r.promptSection(ctx, ctrl, field.Name)
		} else {
			err = r.promptPlain(ctx, ctrl, field.Name)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) promptPath(ctx context.Context, ctrl *form.Controller, path string) error {
	if section, index, name, ok := render.ParsePath(path); ok {
		return r.promptMember(ctx, ctrl, section, index, name)
	}
	return r.promptPlain(ctx, ctrl, path)
}

func (r *Renderer) promptPlain(ctx context.Context, ctrl *form.Controller, name string) error {
	st := ctrl.State()
	field, ok := st.Schema.Field(name)
	if !ok || field.Disabled {
		return nil
	}
	current, _ := st.Data.Value(name)
	errMsg, _ := st.FieldError(name)

	value, err := r.ask(ctx, field, current, errMsg)
	if err != nil {
		return err
	}
	return ctrl.FieldChange(name, value)
}

func (r *Renderer) promptMember(ctx context.Context, ctrl *form.Controller, section string, index int, name string) error {
	st := ctrl.State()
	sec, ok := st.Schema.Field(section)
	if !ok || sec.Disabled {
		return nil
	}
	member, ok := sec.InstanceField(index, name)
	if !ok || member.Disabled {
		return nil
	}
	current, _ := st.Data.SectionValue(section, index, name)
	errMsg, _ := st.SectionFieldError(section, index, name)

	value, err := r.ask(ctx, member, current, errMsg)
	if err != nil {
		return err
	}
	return ctrl.SectionFieldChange(section, index, name, value)
}

func (r *Renderer) promptSection(ctx context.Context, ctrl *form.Controller, name string) error {
	i := 0
	for {
		sec, ok := ctrl.Schema().Field(name)
		if !ok || sec.Disabled {
			return nil
		}

		if i >= len(sec.Instances) {
			if !sections.CanAdd(sec) {
				return nil
			}
			add, err := r.driver.Confirm(ctx, ConfirmConfig{Message: addLabel(sec)})
			if err != nil {
				return err
			}
			if !add {
				return nil
			}
			if err := ctrl.AddInstance(name); err != nil {
				return err
			}
			continue
		}

		heading := fmt.Sprintf("%s %d", sec.SectionHeading, i+1)
		if err := r.driver.Info(ctx, r.theme.HeadingPrefix+heading); err != nil {
			return err
		}
		for _, member := range sec.Instances[i] {
			if err := r.promptMember(ctx, ctrl, name, i, member.Name); err != nil {
				return err
			}
		}

		if sections.CanRemove(sec, i) {
			keep, err := r.driver.Confirm(ctx, ConfirmConfig{Message: "Keep " + heading + "?", Default: true})
			if err != nil {
				return err
			}
			if !keep {
				if err := ctrl.RemoveInstance(name, i); err != nil {
					return err
				}
				continue
			}
		}
		i++
	}
}

func addLabel(sec model.Field) string {
	if sec.AddButton != "" {
		return sec.AddButton + "?"
	}
	return "Add another " + strings.ToLower(sec.SectionHeading) + "?"
}

// ask prompts for one value, looping until the presentation-level checks
// (length, mask, date format and bounds) pass. Required and pattern rules
// are left to the controller.
func (r *Renderer) ask(ctx context.Context, field model.Field, current any, errMsg string) (any, error) {
	message := field.DisplayLabel()
	if errMsg != "" {
		message = fmt.Sprintf("%s (%s%s)", message, r.theme.ErrorPrefix, errMsg)
	}

	switch field.Type.Kind() {
	case model.KindChoice:
		return r.askChoice(ctx, field, message, current)
	case model.KindDate:
		return r.askText(ctx, field, message, formatDate(current), func(raw string) (any, error) {
			return parseDate(field, raw)
		})
	}

	return r.askText(ctx, field, message, validation.StringValue(current), func(raw string) (any, error) {
		if field.MaxLength > 0 && utf8.RuneCountInString(raw) > field.MaxLength {
			return nil, fmt.Errorf("must be at most %d characters", field.MaxLength)
		}
		if field.Type == model.FieldTypeMasked {
			return conformMask(field.Mask, raw)
		}
		return raw, nil
	})
}

func (r *Renderer) askText(ctx context.Context, field model.Field, message, def string, convert func(string) (any, error)) (any, error) {
	validator := func(raw string) error {
		_, err := convert(raw)
		return err
	}
	help := field.Placeholder
	if field.ShowCharCount && field.MaxLength > 0 {
		help = strings.TrimSpace(fmt.Sprintf("%s (max %d characters)", help, field.MaxLength))
	}

	for {
		var (
			raw string
			err error
		)
		if field.Type == model.FieldTypeTextarea {
			raw, err = r.driver.TextArea(ctx, TextAreaConfig{Message: message, Default: def, Help: help, Validator: validator})
		} else {
			raw, err = r.driver.Input(ctx, InputConfig{Message: message, Default: def, Help: help, Validator: validator})
		}
		if err != nil {
			return nil, err
		}

		value, err := convert(raw)
		if err != nil {
			if infoErr := r.driver.Info(ctx, fmt.Sprintf("%s%s %v", r.theme.ErrorPrefix, field.DisplayLabel(), err)); infoErr != nil {
				return nil, infoErr
			}
			continue
		}
		return value, nil
	}
}

func (r *Renderer) askChoice(ctx context.Context, field model.Field, message string, current any) (any, error) {
	offset := 0
	labels := make([]string, 0, len(field.Options)+1)
	if !field.Required {
		labels = append(labels, noneOption)
		offset = 1
	}
	def := 0
	currentValue := validation.StringValue(current)
	for i, opt := range field.Options {
		labels = append(labels, opt.Display())
		if currentValue != "" && opt.Value == currentValue {
			def = i + offset
		}
	}

	idx, err := r.driver.Select(ctx, SelectConfig{Message: message, Options: labels, DefaultIndex: def, Help: field.Placeholder})
	if err != nil {
		return nil, err
	}
	if idx < offset || idx >= len(labels) {
		return nil, nil
	}

	opt := field.Options[idx-offset]
	if field.Type == model.FieldTypeSelect {
		return opt, nil
	}
	return opt.Value, nil
}

func formatDate(value any) string {
	switch v := value.(type) {
	case time.Time:
		if !v.IsZero() {
			return v.Format(DateLayout)
		}
	case *time.Time:
		if v != nil && !v.IsZero() {
			return v.Format(DateLayout)
		}
	}
	return ""
}

// parseDate reads a DD/MM/YYYY answer. Blank answers clear the value.
func parseDate(field model.Field, raw string) (any, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(DateLayout, raw)
	if err != nil {
		return nil, fmt.Errorf("must be a date formatted DD/MM/YYYY")
	}
	if field.MinDate != nil && parsed.Before(*field.MinDate) {
		return nil, fmt.Errorf("must be on or after %s", field.MinDate.Format(DateLayout))
	}
	if field.MaxDate != nil && parsed.After(*field.MaxDate) {
		return nil, fmt.Errorf("must be on or before %s", field.MaxDate.Format(DateLayout))
	}
	return parsed, nil
}
