package tui

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/render"
	"github.com/goliatone/go-formstate/pkg/testsupport"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	confirm      []bool
	textAreas    []string
	infoMessages []string
	inputPos     int
	selectPos    int
	confirmPos   int
	textPos      int
}

func (s *stubDriver) Input(_ context.Context, _ InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, _ SelectConfig) (int, error) {
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, _ TextAreaConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func (s *stubDriver) exhausted(t *testing.T) {
	t.Helper()
	if s.inputPos != len(s.inputs) || s.selectPos != len(s.selectIdx) || s.confirmPos != len(s.confirm) || s.textPos != len(s.textAreas) {
		t.Fatalf("unused script: inputs %d/%d selects %d/%d confirms %d/%d textareas %d/%d",
			s.inputPos, len(s.inputs), s.selectPos, len(s.selectIdx), s.confirmPos, len(s.confirm), s.textPos, len(s.textAreas))
	}
}

func newRenderer(t *testing.T, driver PromptDriver, opts ...Option) *Renderer {
	t.Helper()
	r, err := New(append([]Option{WithPromptDriver(driver)}, opts...)...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return r
}

func newController(t *testing.T, schema *model.Schema, submit form.SubmitFunc) *form.Controller {
	t.Helper()
	ctrl, err := form.New(schema, submit)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	return ctrl
}

func TestRenderer_PromotionsWalkthrough(t *testing.T) {
	doc := testsupport.Promotions(t)
	var submitted []model.FormData
	ctrl := newController(t, doc.Schema, func(data model.FormData) {
		submitted = append(submitted, data)
	})

	driver := &stubDriver{
		inputs:    []string{"Ada", "Lovelace", "17/05/1990", "", "ada@example.com", "Too much mail"},
		textAreas: []string{""},
		// gender=Female, receiveEmails=Yes, emailType=Work, receivePromotions=No
		selectIdx: []int{1, 1, 0, 1},
		confirm:   []bool{false},
	}
	r := newRenderer(t, driver, WithOutputFormat(OutputFormatPrettyText))

	out, err := r.Render(context.Background(), ctrl, render.RenderOptions{Title: doc.Title})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	driver.exhausted(t)

	if len(submitted) != 1 {
		t.Fatalf("expected one submit, got %d", len(submitted))
	}
	for _, line := range []string{
		"firstName=Ada\n",
		"gender=female\n",
		"dob=1990-05-17\n",
		"receiveEmails=Yes\n",
		"emails[0].emailType=work\n",
		"emails[0].email=ada@example.com\n",
		"receivePromotions=No\n",
		"reason=Too much mail\n",
	} {
		if !strings.Contains(string(out), line) {
			t.Fatalf("output missing %q:\n%s", line, out)
		}
	}
	if strings.Contains(string(out), "address=") {
		t.Fatalf("disabled field leaked into output:\n%s", out)
	}
	if driver.infoMessages[0] != "== Promotions sign-up" {
		t.Fatalf("unexpected title line %q", driver.infoMessages[0])
	}
	if r.ContentType() != "text/plain" {
		t.Fatalf("unexpected content type %q", r.ContentType())
	}
}

func TestRenderer_RepromptsErroredFields(t *testing.T) {
	schema := testsupport.MustBuild(t,
		model.Field{Name: "firstName", Label: "First name", Type: model.FieldTypeText, Required: true},
		model.Field{Name: "postCode", Label: "Post code", Type: model.FieldTypeText, Regex: `[0-9]{4}`},
		model.Field{Name: "county", Type: model.FieldTypeText},
	)
	ctrl := newController(t, schema, nil)
	driver := &stubDriver{inputs: []string{"", "abc", "", "Ada", "1234"}}
	r := newRenderer(t, driver)

	out, err := r.Render(context.Background(), ctrl, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	driver.exhausted(t)

	var got map[string]any
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	want := map[string]any{"firstName": "Ada", "postCode": "1234", "county": ""}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
	if !contains(driver.infoMessages, "! 2 field(s) need attention") {
		t.Fatalf("expected correction notice, got %v", driver.infoMessages)
	}
}

func TestRenderer_GivesUpAfterMaxRounds(t *testing.T) {
	schema := testsupport.MustBuild(t, model.Field{Name: "firstName", Type: model.FieldTypeText, Required: true})
	ctrl := newController(t, schema, func(model.FormData) {
		t.Fatalf("submit should never fire")
	})
	driver := &stubDriver{inputs: []string{"", " "}}
	r := newRenderer(t, driver, WithMaxRounds(1))

	_, err := r.Render(context.Background(), ctrl, render.RenderOptions{})
	if !errors.Is(err, ErrSubmitBlocked) {
		t.Fatalf("expected ErrSubmitBlocked, got %v", err)
	}
}

func TestRenderer_SectionAddAndRemove(t *testing.T) {
	schema := testsupport.MustBuild(t, model.Field{
		Name:           "emails",
		Section:        true,
		SectionHeading: "Email",
		MaxSections:    2,
		AddButton:      "Add another email",
		SectionFields: []model.Field{
			{Name: "email", Label: "Email", Type: model.FieldTypeText, Required: true},
		},
	})
	ctrl := newController(t, schema, nil)
	driver := &stubDriver{
		inputs: []string{"a@example.com", "b@example.com"},
		// add a second instance, drop it, decline another add
		confirm: []bool{true, false, false},
	}
	r := newRenderer(t, driver, WithOutputFormat(OutputFormatFormURLEncoded))

	out, err := r.Render(context.Background(), ctrl, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	driver.exhausted(t)

	if got, want := string(out), "emails%5B0%5D.email=a%40example.com"; got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
	sec := testsupport.Field(t, ctrl.Schema(), "emails")
	if len(sec.Instances) != 1 {
		t.Fatalf("expected one instance left, got %d", len(sec.Instances))
	}
	if !contains(driver.infoMessages, "== Email 2") {
		t.Fatalf("expected second instance heading, got %v", driver.infoMessages)
	}
}

func TestRenderer_DateBoundsAndFormat(t *testing.T) {
	maxDate := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	schema := testsupport.MustBuild(t, model.Field{Name: "dob", Label: "Date of birth", Type: model.FieldTypeDate, Required: true, MaxDate: &maxDate})
	ctrl := newController(t, schema, nil)
	driver := &stubDriver{inputs: []string{"1990-05-17", "02/06/2024", "01/06/2024"}}
	r := newRenderer(t, driver)

	if _, err := r.Render(context.Background(), ctrl, render.RenderOptions{}); err != nil {
		t.Fatalf("render: %v", err)
	}
	driver.exhausted(t)

	got, _ := ctrl.State().Data.Value("dob")
	if got != maxDate {
		t.Fatalf("dob = %v, want %v", got, maxDate)
	}
	if len(driver.infoMessages) != 2 {
		t.Fatalf("expected two format notices, got %v", driver.infoMessages)
	}
}

func TestRenderer_OptionalSelectOffersNone(t *testing.T) {
	schema := testsupport.MustBuild(t,
		model.Field{Name: "gender", Type: model.FieldTypeSelect, Options: []model.Option{{Value: "f", Label: "Female"}}},
		model.Field{Name: "answer", Type: model.FieldTypeRadio, Required: true, Options: []model.Option{{Value: "Yes"}, {Value: "No"}}},
	)
	ctrl := newController(t, schema, nil)
	driver := &stubDriver{selectIdx: []int{0, 1}}
	r := newRenderer(t, driver)

	if _, err := r.Render(context.Background(), ctrl, render.RenderOptions{}); err != nil {
		t.Fatalf("render: %v", err)
	}
	data := ctrl.State().Data
	if got, _ := data.Value("gender"); got != nil {
		t.Fatalf("gender = %v, want nil", got)
	}
	if got, _ := data.Value("answer"); got != "No" {
		t.Fatalf("answer = %v, want No", got)
	}
}

func TestRenderer_MaxLengthRejected(t *testing.T) {
	schema := testsupport.MustBuild(t, model.Field{Name: "code", Type: model.FieldTypeText, MaxLength: 3})
	ctrl := newController(t, schema, nil)
	driver := &stubDriver{inputs: []string{"abcd", "abc"}}
	r := newRenderer(t, driver)

	if _, err := r.Render(context.Background(), ctrl, render.RenderOptions{}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if got, _ := ctrl.State().Data.Value("code"); got != "abc" {
		t.Fatalf("code = %v", got)
	}
}

func TestRenderer_SubmitTransformer(t *testing.T) {
	schema := testsupport.MustBuild(t, model.Field{Name: "firstName", Type: model.FieldTypeText})
	ctrl := newController(t, schema, nil)
	driver := &stubDriver{inputs: []string{"Ada"}}
	r := newRenderer(t, driver, WithSubmitTransformer(func(values map[string]any) (map[string]any, error) {
		values["source"] = "tui"
		return values, nil
	}))

	out, err := r.Render(context.Background(), ctrl, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(out) != `{"firstName":"Ada","source":"tui"}` {
		t.Fatalf("unexpected output %s", out)
	}
}

func TestRenderer_DriverErrorsPropagate(t *testing.T) {
	schema := testsupport.MustBuild(t, model.Field{Name: "firstName", Type: model.FieldTypeText})
	ctrl := newController(t, schema, nil)
	r := newRenderer(t, &stubDriver{})

	if _, err := r.Render(context.Background(), ctrl, render.RenderOptions{}); err == nil {
		t.Fatalf("expected error from exhausted driver")
	}
}

func TestNew_RejectsUnknownFormat(t *testing.T) {
	if _, err := New(WithOutputFormat("xml")); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func contains(list []string, want string) bool {
	for _, item := range list {
		if item == want {
			return true
		}
	}
	return false
}
