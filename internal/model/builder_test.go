package model

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuild_NormalisesAndClonesSections(t *testing.T) {
	input := []Field{
		{Name: " postCode ", Type: "TEXT"},
		{
			Name:          "emails",
			Section:       true,
			SectionFields: []Field{{Name: "email", Type: FieldTypeText, Required: true}},
		},
	}

	schema, err := New(Options{}).Build(input)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	post, ok := schema.Field("postCode")
	if !ok {
		t.Fatalf("expected trimmed name to resolve")
	}
	if post.Type != FieldTypeText || post.Label != "Post code" {
		t.Fatalf("unexpected normalised field %+v", post)
	}

	emails, _ := schema.Field("emails")
	if emails.MaxSections != 1 || emails.SectionHeading != "Emails" {
		t.Fatalf("unexpected section defaults max=%d heading=%q", emails.MaxSections, emails.SectionHeading)
	}
	if diff := cmp.Diff([][]Field{emails.SectionFields}, emails.Instances); diff != "" {
		t.Fatalf("instance 0 differs from sectionFields (-want +got):\n%s", diff)
	}

	emails.Instances[0][0].Disabled = true
	if emails.SectionFields[0].Disabled {
		t.Fatalf("instance mutation leaked into sectionFields")
	}
	input[1].SectionFields[0].Required = false
	again, _ := schema.Field("emails")
	if !again.SectionFields[0].Required {
		t.Fatalf("builder retained the caller's slice")
	}
}

func TestBuild_RejectsConfigurationDefects(t *testing.T) {
	cases := []struct {
		name   string
		fields []Field
		want   string
	}{
		{
			name:   "duplicate",
			fields: []Field{{Name: "a", Type: FieldTypeText}, {Name: "a", Type: FieldTypeText}},
			want:   `field "a": duplicate name`,
		},
		{
			name:   "unknown type",
			fields: []Field{{Name: "a", Type: "checkbox"}},
			want:   `unsupported type "checkbox"`,
		},
		{
			name:   "bad regex",
			fields: []Field{{Name: "a", Type: FieldTypeText, Regex: "("}},
			want:   `field "a": invalid regex`,
		},
		{
			name:   "choice without options",
			fields: []Field{{Name: "a", Type: FieldTypeSelect}},
			want:   `select fields need options`,
		},
		{
			name:   "missing dependent",
			fields: []Field{{Name: "a", Type: FieldTypeRadio, Options: []Option{{Value: "Yes"}}, DependentFields: []string{"ghost"}}},
			want:   `dependent field "ghost" does not exist`,
		},
		{
			name: "multi-level cascade",
			fields: []Field{
				{Name: "a", Type: FieldTypeRadio, Options: []Option{{Value: "Yes"}}, DependentFields: []string{"b"}},
				{Name: "b", Type: FieldTypeRadio, Options: []Option{{Value: "Yes"}}, DependsOnValues: []string{"Yes"}, DependentFields: []string{"c"}},
				{Name: "c", Type: FieldTypeText, DependsOnValues: []string{"Yes"}},
			},
			want: "cascades are single level",
		},
		{
			name: "nested section",
			fields: []Field{{
				Name:          "outer",
				Section:       true,
				SectionFields: []Field{{Name: "inner", Section: true}},
			}},
			want: "sections cannot be nested",
		},
		{
			name:   "empty section",
			fields: []Field{{Name: "outer", Section: true}},
			want:   "sectionFields is empty",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(Options{}).Build(tc.fields)
			if !errors.Is(err, ErrInvalidSchema) {
				t.Fatalf("expected ErrInvalidSchema, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestBuild_AggregatesErrors(t *testing.T) {
	_, err := New(Options{}).Build([]Field{
		{Name: "a", Type: "nope"},
		{Name: "b", Type: FieldTypeText, Regex: "["},
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	for _, want := range []string{`field "a"`, `field "b"`} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q missing %q", err, want)
		}
	}
}

func TestDefaultLabeler(t *testing.T) {
	cases := map[string]string{
		"firstName":     "First name",
		"receiveEmails": "Receive emails",
		"post_code":     "Post code",
		"address2":      "Address 2",
		"dob":           "Dob",
		"":              "",
	}
	for in, want := range cases {
		if got := DefaultLabeler(in); got != want {
			t.Fatalf("DefaultLabeler(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSchema_ReplaceIsCopyOnWrite(t *testing.T) {
	schema, err := New(Options{}).Build([]Field{
		{Name: "a", Type: FieldTypeText},
		{Name: "b", Type: FieldTypeText},
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	a, _ := schema.Field("a")
	a.Disabled = true
	next := schema.Replace(a)
	if next == schema {
		t.Fatalf("expected a new schema")
	}
	if old, _ := schema.Field("a"); old.Disabled {
		t.Fatalf("receiver was mutated")
	}
	if got, _ := next.Field("a"); !got.Disabled {
		t.Fatalf("replacement not applied")
	}
	if same := schema.Replace(Field{Name: "ghost"}); same != schema {
		t.Fatalf("unknown name should return the receiver")
	}
}

func TestErrors_PathsAndCompactRows(t *testing.T) {
	rows := CompactRows([]map[string]string{{}, {"email": "bad"}, {}, nil})
	if diff := cmp.Diff([]map[string]string{nil, {"email": "bad"}}, rows); diff != "" {
		t.Fatalf("compact mismatch (-want +got):\n%s", diff)
	}
	if CompactRows([]map[string]string{{}, nil}) != nil {
		t.Fatalf("expected nil for error-free rows")
	}

	errs := NewErrors()
	errs.Fields["firstName"] = "Please enter First name"
	errs.Sections["emails"] = rows
	want := map[string]string{
		"firstName":      "Please enter First name",
		"emails.1.email": "bad",
	}
	if diff := cmp.Diff(want, errs.Paths()); diff != "" {
		t.Fatalf("paths mismatch (-want +got):\n%s", diff)
	}
	if errs.Len() != 2 || errs.Empty() {
		t.Fatalf("unexpected Len=%d Empty=%v", errs.Len(), errs.Empty())
	}
}

func TestFormData_MapFillsHoles(t *testing.T) {
	data := NewFormData()
	data.Values["firstName"] = "Ada"
	data.Sections["emails"] = []map[string]any{nil, {"email": "a@b.c"}}

	want := map[string]any{
		"firstName": "Ada",
		"emails":    []any{map[string]any{}, map[string]any{"email": "a@b.c"}},
	}
	if diff := cmp.Diff(want, data.Map()); diff != "" {
		t.Fatalf("map mismatch (-want +got):\n%s", diff)
	}
}
