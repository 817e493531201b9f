package html

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
)

// Engine loads pongo2 templates from an fs.FS and caches parsed templates.
type Engine struct {
	mu sync.RWMutex

	templateSet *pongo2.TemplateSet
	templates   map[string]*pongo2.Template
}

// NewEngine builds an engine over files. Template names are resolved from
// the root of files, including names used by {% include %}.
func NewEngine(files fs.FS) (*Engine, error) {
	if files == nil {
		return nil, errors.New("html: templates fs is required")
	}
	registerDefaultFilters()
	return &Engine{
		templateSet: pongo2.NewSet("formstate", pongo2.NewFSLoader(files)),
		templates:   make(map[string]*pongo2.Template),
	}, nil
}

// Execute renders the named template with data into w.
func (e *Engine) Execute(name string, data pongo2.Context, w io.Writer) error {
	if e == nil || e.templateSet == nil {
		return errors.New("html: engine is nil")
	}
	tmpl, err := e.getTemplate(name)
	if err != nil {
		return err
	}
	if err := tmpl.ExecuteWriter(data, w); err != nil {
		return fmt.Errorf("html: execute template %q: %w", name, err)
	}
	return nil
}

func (e *Engine) getTemplate(name string) (*pongo2.Template, error) {
	e.mu.RLock()
	if tmpl, ok := e.templates[name]; ok {
		e.mu.RUnlock()
		return tmpl, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	if tmpl, ok := e.templates[name]; ok {
		return tmpl, nil
	}
	tmpl, err := e.templateSet.FromFile(name)
	if err != nil {
		return nil, fmt.Errorf("html: load template %q: %w", name, err)
	}
	e.templates[name] = tmpl
	return tmpl, nil
}

func registerDefaultFilters() {
	if !pongo2.FilterExists("trim") {
		_ = pongo2.RegisterFilter("trim", filterTrim)
	}
	if !pongo2.FilterExists("inline") {
		_ = pongo2.RegisterFilter("inline", filterInline)
	}
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

// filterInline keeps inline formatting in labels and headings and marks the
// result safe.
func filterInline(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsSafeValue(SanitizeInline(in.String())), nil
}
