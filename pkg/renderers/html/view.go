package html

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/render"
	"github.com/goliatone/go-formstate/pkg/sections"
	"github.com/goliatone/go-formstate/pkg/validation"
	"github.com/goliatone/go-formstate/pkg/widgets"
)

// Action values posted by the section buttons, e.g. "add:emails" and
// "remove:emails:1".
const (
	ActionField  = "_action"
	actionAdd    = "add"
	actionRemove = "remove"
)

type formView struct {
	Title       string
	Description string
	SubmitLabel string
	Action      string
	Method      string
	Hidden      []render.HiddenField
	Fields      []fieldView
	ActionField string
	HasErrors   bool
}

type optionView struct {
	ID       string
	Value    string
	Label    string
	Selected bool
}

type fieldView struct {
	ID                string
	Name              string
	Label             string
	Placeholder       string
	Type              string
	Value             string
	Error             string
	Required          bool
	Disabled          bool
	AutoFocus         bool
	ShowCharCount     bool
	CharCount         int
	MaxLength         int
	Mask              string
	MinDate           string
	MaxDate           string
	GridClasses       string
	ButtonGridClasses string
	Options           []optionView
	Widget            string
	Template          string

	Section   bool
	Instances []instanceView
	CanAdd    bool
	AddButton string
	AddAction string
}

type instanceView struct {
	Index        int
	Heading      string
	Removable    bool
	RemoveAction string
	Fields       []fieldView
}

// widgetTemplate maps a widget name onto its template path.
func widgetTemplate(name string) string {
	return "widgets/" + name + ".tpl"
}

func buildForm(st form.State, opts render.RenderOptions, reg *widgets.Registry) formView {
	method := strings.ToLower(strings.TrimSpace(opts.Method))
	if method == "" {
		method = "post"
	}
	view := formView{
		Title:       opts.Title,
		Description: opts.Description,
		SubmitLabel: opts.Submit(),
		Action:      opts.Action,
		Method:      method,
		Hidden:      render.SortedHiddenFields(opts.HiddenFields),
		ActionField: ActionField,
		HasErrors:   st.HasErrors(),
	}

	for _, field := range st.Schema.Fields() {
		if field.Section {
			view.Fields = append(view.Fields, buildSection(st, field, reg))
			continue
		}
		value, _ := st.Data.Value(field.Name)
		msg, _ := st.FieldError(field.Name)
		view.Fields = append(view.Fields, buildField(reg, field, field.Name, field.Name, value, msg))
	}
	return view
}

func buildSection(st form.State, sec model.Field, reg *widgets.Registry) fieldView {
	view := fieldView{
		ID:                sec.Name,
		Name:              sec.Name,
		Label:             sec.SectionHeading,
		Disabled:          sec.Disabled,
		GridClasses:       sec.GridClasses,
		ButtonGridClasses: sec.ButtonGridClasses,
		Section:           true,
		CanAdd:            sections.CanAdd(sec),
		AddButton:         sec.AddButton,
		AddAction:         actionAdd + ":" + sec.Name,
	}
	if view.AddButton == "" {
		view.AddButton = "Add"
	}

	for i, instance := range sec.Instances {
		inst := instanceView{
			Index:        i,
			Heading:      sec.SectionHeading + " " + strconv.Itoa(i+1),
			Removable:    sections.CanRemove(sec, i),
			RemoveAction: actionRemove + ":" + sec.Name + ":" + strconv.Itoa(i),
		}
		for _, member := range instance {
			value, _ := st.Data.SectionValue(sec.Name, i, member.Name)
			msg, _ := st.SectionFieldError(sec.Name, i, member.Name)
			id := sec.Name + "-" + strconv.Itoa(i) + "-" + member.Name
			name := sec.Name + "[" + strconv.Itoa(i) + "]." + member.Name
			inst.Fields = append(inst.Fields, buildField(reg, member, id, name, value, msg))
		}
		view.Instances = append(view.Instances, inst)
	}
	return view
}

func buildField(reg *widgets.Registry, field model.Field, id, name string, value any, msg string) fieldView {
	current := validation.StringValue(value)
	view := fieldView{
		ID:                id,
		Name:              name,
		Label:             field.DisplayLabel(),
		Placeholder:       field.Placeholder,
		Type:              string(field.Type),
		Value:             current,
		Error:             msg,
		Required:          field.Required,
		Disabled:          field.Disabled,
		AutoFocus:         field.AutoFocus,
		ShowCharCount:     field.ShowCharCount,
		CharCount:         utf8.RuneCountInString(current),
		MaxLength:         field.MaxLength,
		Mask:              field.Mask,
		GridClasses:       field.GridClasses,
		ButtonGridClasses: field.ButtonGridClasses,
	}
	widget, ok := reg.Resolve(field)
	if !ok {
		widget = widgets.WidgetText
	}
	view.Widget = widget
	view.Template = widgetTemplate(widget)
	if field.MinDate != nil {
		view.MinDate = field.MinDate.Format(validation.DateLayout)
	}
	if field.MaxDate != nil {
		view.MaxDate = field.MaxDate.Format(validation.DateLayout)
	}
	for i, opt := range field.Options {
		view.Options = append(view.Options, optionView{
			ID:       id + "-" + strconv.Itoa(i),
			Value:    opt.Value,
			Label:    opt.Display(),
			Selected: current != "" && opt.Value == current,
		})
	}
	return view
}
