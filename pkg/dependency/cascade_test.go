package dependency

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/sections"
	"github.com/goliatone/go-formstate/pkg/testsupport"
)

func TestCascade_EnablesPromotionAddress(t *testing.T) {
	schema := testsupport.PromotionsSchema(t)
	parent := testsupport.Field(t, schema, "receivePromotions")

	data := model.NewFormData()
	data.Values["receivePromotions"] = "Yes"
	required, regex := model.NewErrors(), model.NewErrors()

	next, outcome, err := Cascade(schema, data, required, regex, parent)
	if err != nil {
		t.Fatalf("cascade: %v", err)
	}
	if next == schema {
		t.Fatalf("expected a new schema value")
	}

	wantRequired := map[string]bool{"address": true, "city": true, "county": false, "postCode": true}
	for name, want := range wantRequired {
		field := testsupport.Field(t, next, name)
		if field.Disabled {
			t.Fatalf("%s should be enabled", name)
		}
		if field.Required != want {
			t.Fatalf("%s required = %v, want %v", name, field.Required, want)
		}
	}
	if reason := testsupport.Field(t, next, "reason"); !reason.Disabled || reason.Required {
		t.Fatalf("reason should stay disabled and optional: %+v", reason)
	}

	if diff := cmp.Diff([]string{"address", "city", "county", "postCode"}, outcome.Enabled); diff != "" {
		t.Fatalf("enabled mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"reason"}, outcome.Disabled); diff != "" {
		t.Fatalf("disabled mismatch (-want +got):\n%s", diff)
	}

	if original := testsupport.Field(t, schema, "address"); !original.Disabled {
		t.Fatalf("input schema was mutated")
	}
}

func TestCascade_DisableClearsDataAndErrors(t *testing.T) {
	schema := testsupport.PromotionsSchema(t)
	parent := testsupport.Field(t, schema, "receivePromotions")

	data := model.NewFormData()
	data.Values["receivePromotions"] = "Yes"
	required, regex := model.NewErrors(), model.NewErrors()
	schema, _, err := Cascade(schema, data, required, regex, parent)
	if err != nil {
		t.Fatalf("enable: %v", err)
	}

	data.Values["address"] = "1 Main St"
	data.Values["city"] = "Cork"
	required.Fields["postCode"] = "Please enter Post code"
	regex.Fields["city"] = "Please enter a valid City"
	required.Fields["firstName"] = "Please enter First name"

	data.Values["receivePromotions"] = "No"
	schema, _, err = Cascade(schema, data, required, regex, parent)
	if err != nil {
		t.Fatalf("disable: %v", err)
	}

	for _, name := range []string{"address", "city", "county", "postCode"} {
		field := testsupport.Field(t, schema, name)
		if !field.Disabled || field.Required {
			t.Fatalf("%s should be disabled and optional: %+v", name, field)
		}
		if _, ok := data.Values[name]; ok {
			t.Fatalf("%s data not cleared", name)
		}
	}
	if reason := testsupport.Field(t, schema, "reason"); reason.Disabled || !reason.Required {
		t.Fatalf("reason should be enabled and required: %+v", reason)
	}

	wantRequired := map[string]string{"firstName": "Please enter First name"}
	if diff := cmp.Diff(wantRequired, required.Fields); diff != "" {
		t.Fatalf("required errors mismatch (-want +got):\n%s", diff)
	}
	if len(regex.Fields) != 0 {
		t.Fatalf("expected regex errors cleared, got %v", regex.Fields)
	}
}

func TestCascade_SectionEnableAndReset(t *testing.T) {
	schema := testsupport.PromotionsSchema(t)
	parent := testsupport.Field(t, schema, "receiveEmails")

	data := model.NewFormData()
	data.Values["receiveEmails"] = model.Option{Value: "Yes", Label: "Yes"}
	required, regex := model.NewErrors(), model.NewErrors()

	schema, _, err := Cascade(schema, data, required, regex, parent)
	if err != nil {
		t.Fatalf("enable: %v", err)
	}
	emails := testsupport.Field(t, schema, "emails")
	if emails.Disabled {
		t.Fatalf("emails should be enabled")
	}
	for _, member := range emails.Instances[0] {
		if member.Disabled || !member.Required {
			t.Fatalf("member %s should be enabled and required", member.Name)
		}
	}

	emails, err = sections.Add(emails)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	emails, _ = sections.Add(emails)
	schema = schema.Replace(emails)
	data.Sections["emails"] = []map[string]any{{"email": "a@b.co"}, nil, {"email": "c@d.co"}}
	required.Sections["emails"] = []map[string]string{nil, {"emailType": "Please select Type"}}
	regex.Sections["emails"] = []map[string]string{{"email": "Please enter a valid Email"}}

	data.Values["receiveEmails"] = "No"
	schema, outcome, err := Cascade(schema, data, required, regex, parent)
	if err != nil {
		t.Fatalf("disable: %v", err)
	}
	if diff := cmp.Diff([]string{"emails"}, outcome.Disabled); diff != "" {
		t.Fatalf("disabled mismatch (-want +got):\n%s", diff)
	}

	emails = testsupport.Field(t, schema, "emails")
	if !emails.Disabled {
		t.Fatalf("emails should be disabled")
	}
	if len(emails.Instances) != 1 {
		t.Fatalf("expected a single instance, got %d", len(emails.Instances))
	}
	if diff := cmp.Diff(emails.SectionFields, emails.Instances[0]); diff != "" {
		t.Fatalf("instance is not a pristine template copy (-template +instance):\n%s", diff)
	}
	if _, ok := data.Sections["emails"]; ok {
		t.Fatalf("section data not cleared")
	}
	if !required.Empty() || !regex.Empty() {
		t.Fatalf("section errors not cleared: %v %v", required, regex)
	}
}

func TestCascade_NoValueDisables(t *testing.T) {
	schema := testsupport.PromotionsSchema(t)
	parent := testsupport.Field(t, schema, "receivePromotions")

	next, outcome, err := Cascade(schema, model.NewFormData(), model.NewErrors(), model.NewErrors(), parent)
	if err != nil {
		t.Fatalf("cascade: %v", err)
	}
	if len(outcome.Enabled) != 0 || len(outcome.Disabled) != 5 {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
	if next.Len() != schema.Len() {
		t.Fatalf("schema length changed")
	}
}

func TestCascade_PlainFieldIsNoop(t *testing.T) {
	schema := testsupport.PromotionsSchema(t)
	field := testsupport.Field(t, schema, "firstName")

	next, outcome, err := Cascade(schema, model.NewFormData(), model.NewErrors(), model.NewErrors(), field)
	if err != nil {
		t.Fatalf("cascade: %v", err)
	}
	if next != schema || outcome.Changed() {
		t.Fatalf("expected untouched schema, got outcome %+v", outcome)
	}
}

func TestCascade_UnknownDependent(t *testing.T) {
	schema := testsupport.PromotionsSchema(t)
	parent := model.Field{Name: "rogue", Type: model.FieldTypeRadio, DependentFields: []string{"ghost"}}

	_, _, err := Cascade(schema, model.NewFormData(), model.NewErrors(), model.NewErrors(), parent)
	if !errors.Is(err, ErrUnknownDependent) {
		t.Fatalf("expected ErrUnknownDependent, got %v", err)
	}
}

func TestEnabled(t *testing.T) {
	dependent := model.Field{DependsOnValues: []string{"Yes", "1"}}
	cases := []struct {
		value any
		want  bool
	}{
		{"Yes", true},
		{model.Option{Value: "Yes"}, true},
		{1, true},
		{"yes", false},
		{nil, false},
		{"", false},
	}
	for _, tc := range cases {
		if got := Enabled(dependent, tc.value); got != tc.want {
			t.Fatalf("Enabled(%#v) = %v, want %v", tc.value, got, tc.want)
		}
	}
}
