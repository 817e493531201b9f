package validation

import (
	"regexp"
	"sync"

	"github.com/goliatone/go-formstate/pkg/model"
)

var patterns sync.Map // pattern -> *regexp.Regexp

// Required checks a single value against the field's emptiness rule. It
// returns the message to record and true when the value is missing.
func Required(field model.Field, value any) (string, bool) {
	var missing bool
	switch field.Type.Kind() {
	case model.KindChoice:
		missing = EmptyChoice(value)
	case model.KindDate:
		missing = !ValidDate(value)
	default:
		missing = blank(value)
	}
	if !missing {
		return "", false
	}
	return requiredMessage(field), true
}

func requiredMessage(field model.Field) string {
	if field.RequiredErrorMessage != "" {
		return field.RequiredErrorMessage
	}
	switch field.Type.Kind() {
	case model.KindChoice:
		return "Please select " + field.DisplayLabel()
	case model.KindDate:
		return "Please choose " + field.DisplayLabel()
	default:
		return "Please enter " + field.DisplayLabel()
	}
}

// Regex tests a present value against the field pattern. Absent values and
// fields without a pattern never fail.
func Regex(field model.Field, value any) (string, bool) {
	if field.Regex == "" || !Present(value) {
		return "", false
	}
	re, err := compile(field.Regex)
	if err != nil {
		// Built schemas reject bad patterns; treat anything else as a mismatch.
		return regexMessage(field), true
	}
	if re.MatchString(StringValue(value)) {
		return "", false
	}
	return regexMessage(field), true
}

func regexMessage(field model.Field) string {
	if field.RegexErrorMessage != "" {
		return field.RegexErrorMessage
	}
	return "Please enter a valid " + field.DisplayLabel()
}

func compile(pattern string) (*regexp.Regexp, error) {
	if cached, ok := patterns.Load(pattern); ok {
		return cached.(*regexp.Regexp), nil
	}
	re, err := model.CompilePattern(pattern)
	if err != nil {
		return nil, err
	}
	actual, _ := patterns.LoadOrStore(pattern, re)
	return actual.(*regexp.Regexp), nil
}

// ApplyRequired records or clears the required error for field in errs.
func ApplyRequired(field model.Field, value any, errs map[string]string) {
	msg, failed := Required(field, value)
	apply(errs, field.Name, msg, failed)
}

// ApplyRegex records or clears the pattern error for field in errs.
func ApplyRegex(field model.Field, value any, errs map[string]string) {
	msg, failed := Regex(field, value)
	apply(errs, field.Name, msg, failed)
}

func apply(errs map[string]string, name, msg string, failed bool) {
	if failed {
		errs[name] = msg
		return
	}
	delete(errs, name)
}

// All validates every field of the schema from scratch. Plain fields are
// checked for presence only when required and against their pattern only
// when one is set; section fields follow the same rules per instance.
func All(schema *model.Schema, data model.FormData) (required, regex model.Errors) {
	required = model.NewErrors()
	regex = model.NewErrors()

	for _, field := range schema.Fields() {
		if field.Section {
			reqRows, reRows := section(field, data)
			if reqRows != nil {
				required.Sections[field.Name] = reqRows
			}
			if reRows != nil {
				regex.Sections[field.Name] = reRows
			}
			continue
		}

		value, _ := data.Value(field.Name)
		if field.Required {
			ApplyRequired(field, value, required.Fields)
		}
		if field.Regex != "" {
			ApplyRegex(field, value, regex.Fields)
		}
	}
	return required, regex
}

// Instance validates one section instance and returns its required and
// pattern errors. Either map may be empty but never nil.
func Instance(fields []model.Field, row map[string]any) (required, regex map[string]string) {
	required = make(map[string]string)
	regex = make(map[string]string)
	for _, field := range fields {
		value := row[field.Name]
		if field.Required {
			ApplyRequired(field, value, required)
		}
		if field.Regex != "" {
			ApplyRegex(field, value, regex)
		}
	}
	return required, regex
}

func section(field model.Field, data model.FormData) ([]map[string]string, []map[string]string) {
	rows := data.Sections[field.Name]
	required := make([]map[string]string, len(field.Instances))
	regex := make([]map[string]string, len(field.Instances))
	for i, instance := range field.Instances {
		var row map[string]any
		if i < len(rows) {
			row = rows[i]
		}
		required[i], regex[i] = Instance(instance, row)
	}
	return model.CompactRows(required), model.CompactRows(regex)
}
