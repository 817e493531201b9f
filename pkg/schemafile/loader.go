// Package schemafile reads form descriptors from JSON or YAML files and
// builds them into schemas.
//
// A file is either a bare list of field descriptors or a document:
//
//	name: promotions
//	title: Promotions
//	submitLabel: Send
//	fields:
//	  - name: firstName
//	    type: text
//	    required: true
package schemafile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formstate/pkg/model"
)

// ErrEmptyFile is returned for files without content.
var ErrEmptyFile = errors.New("schemafile: file is empty")

// Document is a loaded form: its metadata and the built schema.
type Document struct {
	Name        string
	Title       string
	Description string
	SubmitLabel string
	Source      string
	Schema      *model.Schema
}

type documentFile struct {
	Name        string        `json:"name"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	SubmitLabel string        `json:"submitLabel"`
	Fields      []model.Field `json:"fields"`
}

// Option customises loading.
type Option func(*loader)

type loader struct {
	builder model.Builder
	now     func() time.Time
}

// WithBuilder swaps the builder used to turn descriptors into a schema.
func WithBuilder(builder model.Builder) Option {
	return func(l *loader) {
		if builder != nil {
			l.builder = builder
		}
	}
}

// WithClock sets the clock used to resolve "today" in date bounds.
func WithClock(now func() time.Time) Option {
	return func(l *loader) {
		if now != nil {
			l.now = now
		}
	}
}

func newLoader(opts []Option) *loader {
	l := &loader{builder: model.NewBuilder(), now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

// Load parses data and builds the schema. source names the input in errors
// and provides the default document name.
func Load(data []byte, source string, opts ...Option) (Document, error) {
	return newLoader(opts).load(data, source)
}

// LoadFile reads and loads the file at path.
func LoadFile(path string, opts ...Option) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("schemafile: read %s: %w", path, err)
	}
	return Load(data, path, opts...)
}

// LoadFS reads and loads a single file from fsys.
func LoadFS(fsys fs.FS, name string, opts ...Option) (Document, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return Document{}, fmt.Errorf("schemafile: read %s: %w", name, err)
	}
	return Load(data, name, opts...)
}

// Decode parses data into descriptors without building them.
func Decode(data []byte, source string, opts ...Option) ([]model.Field, error) {
	doc, err := newLoader(opts).decode(data, source)
	if err != nil {
		return nil, err
	}
	return doc.Fields, nil
}

func (l *loader) load(data []byte, source string) (Document, error) {
	raw, err := l.decode(data, source)
	if err != nil {
		return Document{}, err
	}

	schema, err := l.builder.Build(raw.Fields)
	if err != nil {
		return Document{}, fmt.Errorf("schemafile: %s: %w", source, err)
	}

	name := strings.TrimSpace(raw.Name)
	if name == "" {
		name = baseName(source)
	}
	return Document{
		Name:        name,
		Title:       raw.Title,
		Description: raw.Description,
		SubmitLabel: raw.SubmitLabel,
		Source:      source,
		Schema:      schema,
	}, nil
}

func (l *loader) decode(data []byte, source string) (documentFile, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("%w: %s", ErrEmptyFile, source)
	}

	generic, err := parse(data)
	if err != nil {
		return documentFile{}, fmt.Errorf("schemafile: parse %s: %w", source, err)
	}

	var doc documentFile
	if list, ok := generic.([]any); ok {
		generic = map[string]any{"fields": list}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  decodeHooks(l.now),
		ErrorUnused: true,
		TagName:     "json",
		Result:      &doc,
	})
	if err != nil {
		return documentFile{}, fmt.Errorf("schemafile: decoder: %w", err)
	}
	if err := decoder.Decode(generic); err != nil {
		return documentFile{}, fmt.Errorf("schemafile: decode %s: %w", source, err)
	}
	if len(doc.Fields) == 0 {
		return documentFile{}, fmt.Errorf("schemafile: %s declares no fields", source)
	}
	return doc, nil
}

// parse accepts JSON first and falls back to YAML.
func parse(data []byte) (any, error) {
	var out any
	if err := json.Unmarshal(data, &out); err == nil {
		return out, nil
	}
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, errors.New("invalid JSON or YAML")
	}
	return out, nil
}

func baseName(source string) string {
	base := path.Base(filepath.ToSlash(source))
	return strings.TrimSuffix(base, path.Ext(base))
}

func isSchemaFile(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
