package html_test

import (
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/renderers/html"
	"github.com/goliatone/go-formstate/pkg/testsupport"
)

func TestBind_PromotionsPost(t *testing.T) {
	ctrl := promotionsController(t)
	values := url.Values{
		"firstName":           {"Ada"},
		"lastName":            {"Lovelace"},
		"gender":              {"female"},
		"dob":                 {"1990-05-17"},
		"receiveEmails":       {"Yes"},
		"emails[0].emailType": {"work"},
		"emails[0].email":     {"ada@example.com"},
		"emails[1].emailType": {"personal"},
		"emails[1].email":     {"ada@home.example"},
		"receivePromotions":   {"Yes"},
		"address":             {"1 Analytical Way"},
		"city":                {"London"},
		"postCode":            {"N1"},
	}

	handled, err := html.Bind(ctrl, values)
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	if handled {
		t.Fatalf("plain post should not report a handled action")
	}

	data := ctrl.State().Data
	if got, _ := data.Value("gender"); got != (model.Option{Value: "female", Label: "Female"}) {
		t.Fatalf("gender = %#v", got)
	}
	if got, _ := data.Value("dob"); got != time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC) {
		t.Fatalf("dob = %#v", got)
	}
	wantRows := []map[string]any{
		{"emailType": model.Option{Value: "work", Label: "Work"}, "email": "ada@example.com"},
		{"emailType": model.Option{Value: "personal", Label: "Personal"}, "email": "ada@home.example"},
	}
	if diff := cmp.Diff(wantRows, data.Sections["emails"]); diff != "" {
		t.Fatalf("section rows mismatch (-want +got):\n%s", diff)
	}
	if !ctrl.Submit() {
		t.Fatalf("expected bound form to submit, errors: %v %v", ctrl.State().RequiredErrors, ctrl.State().RegexErrors)
	}
}

func TestBind_DependentDeclaredBeforeParent(t *testing.T) {
	schema := testsupport.MustBuild(t,
		model.Field{Name: "reason", Type: model.FieldTypeText, Disabled: true, DependsOnValues: []string{"No"}, SetToRequiredWhenEnabled: true},
		model.Field{Name: "subscribe", Type: model.FieldTypeRadio, Options: []model.Option{{Value: "Yes"}, {Value: "No"}}, DependentFields: []string{"reason"}},
	)
	ctrl, err := form.New(schema, nil)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}

	if _, err := html.Bind(ctrl, url.Values{"reason": {"Too many emails"}, "subscribe": {"No"}}); err != nil {
		t.Fatalf("bind: %v", err)
	}
	if got, _ := ctrl.State().Data.Value("reason"); got != "Too many emails" {
		t.Fatalf("reason = %#v", got)
	}
	if !ctrl.Submit() {
		t.Fatalf("expected submit, errors: %v", ctrl.State().RequiredErrors)
	}
}

func TestBind_SectionActions(t *testing.T) {
	ctrl := promotionsController(t)

	handled, err := html.Bind(ctrl, url.Values{"receiveEmails": {"Yes"}, html.ActionField: {"add:emails"}})
	if err != nil || !handled {
		t.Fatalf("add: handled=%v err=%v", handled, err)
	}
	if sec := testsupport.Field(t, ctrl.Schema(), "emails"); len(sec.Instances) != 2 {
		t.Fatalf("expected 2 instances, got %d", len(sec.Instances))
	}

	handled, err = html.Bind(ctrl, url.Values{
		"emails[1].email": {"b@example.com"},
		html.ActionField:  {"remove:emails:1"},
	})
	if err != nil || !handled {
		t.Fatalf("remove: handled=%v err=%v", handled, err)
	}
	if sec := testsupport.Field(t, ctrl.Schema(), "emails"); len(sec.Instances) != 1 {
		t.Fatalf("expected 1 instance, got %d", len(sec.Instances))
	}
	if rows := ctrl.State().Data.Sections["emails"]; len(rows) > 1 {
		t.Fatalf("removed row data survived: %v", rows)
	}
}

func TestBind_Rejections(t *testing.T) {
	cases := map[string]struct {
		values url.Values
		want   error
	}{
		"unknown option": {url.Values{"gender": {"robot"}}, html.ErrUnknownOption},
		"bad date":       {url.Values{"dob": {"17/05/1990"}}, html.ErrInvalidDate},
		"bad action":     {url.Values{html.ActionField: {"explode"}}, html.ErrUnknownAction},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := html.Bind(promotionsController(t), tc.values)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}
