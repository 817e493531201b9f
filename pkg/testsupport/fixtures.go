package testsupport

import (
	_ "embed"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/schemafile"
)

//go:embed fixtures/promotions.yaml
var promotionsYAML []byte

// PromotionsSource is the file name reported for the embedded fixture.
const PromotionsSource = "promotions.yaml"

// Today is the fixed date the fixture resolves "today" against.
var Today = time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

// Clock returns Today and is passed to schemafile.WithClock so date bounds
// stay stable across runs.
func Clock() time.Time {
	return Today
}

// PromotionsYAML returns a copy of the raw promotions fixture.
func PromotionsYAML() []byte {
	return append([]byte(nil), promotionsYAML...)
}

// LoadPromotions loads the promotions sample form without requiring
// testing.T, allowing callers to wire the fixture in examples and setup code.
func LoadPromotions() (schemafile.Document, error) {
	return schemafile.Load(promotionsYAML, PromotionsSource, schemafile.WithClock(Clock))
}

// Promotions loads the promotions sample form and fails the test on error.
func Promotions(t testing.TB) schemafile.Document {
	t.Helper()

	doc, err := LoadPromotions()
	if err != nil {
		t.Fatalf("load promotions fixture: %v", err)
	}
	return doc
}

// PromotionsSchema is shorthand for Promotions(t).Schema.
func PromotionsSchema(t testing.TB) *model.Schema {
	t.Helper()
	return Promotions(t).Schema
}

// MustBuild builds fields and fails the test on configuration errors.
func MustBuild(t testing.TB, fields ...model.Field) *model.Schema {
	t.Helper()

	schema, err := model.Build(fields)
	if err != nil {
		t.Fatalf("build schema: %v", err)
	}
	return schema
}

// Field returns the named top-level field and fails the test when missing.
func Field(t testing.TB, schema *model.Schema, name string) model.Field {
	t.Helper()

	field, ok := schema.Field(name)
	if !ok {
		t.Fatalf("field %q not found", name)
	}
	return field
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t testing.TB, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t testing.TB, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}
