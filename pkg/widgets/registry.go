// Package widgets decides which control draws a field. Renderers look the
// resolved name up in their own template or prompt tables, so callers can
// swap the control for a class of fields without touching the schema.
package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formstate/pkg/model"
)

// Built-in widget identifiers exposed by the registry.
const (
	WidgetText     = "text"
	WidgetTextarea = "textarea"
	WidgetSelect   = "select"
	WidgetRadio    = "radio"
	WidgetDate     = "date"
	WidgetMasked   = "masked"
)

// BuiltinPriority is the priority of the built-in matchers. Register with a
// higher value to take precedence over them.
const BuiltinPriority = 10

// Matcher decides whether a widget should handle the supplied field.
type Matcher func(field model.Field) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry selects widgets for fields based on registered matchers. Higher
// priority wins; ties fall back to registration order. An empty registry
// never resolves a widget.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with one built-in matcher per field
// type.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a widget matcher with the provided name and priority. Higher
// priority values take precedence.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the widget name for a field.
func (r *Registry) Resolve(field model.Field) (string, bool) {
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	if len(r.rules) == 0 {
		r.mu.RUnlock()
		return "", false
	}
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			return entry.name, true
		}
	}
	return "", false
}

// Names lists the distinct registered widget names, sorted.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{}, len(r.rules))
	names := make([]string, 0, len(r.rules))
	for _, entry := range r.rules {
		if _, ok := seen[entry.name]; ok {
			continue
		}
		seen[entry.name] = struct{}{}
		names = append(names, entry.name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) registerBuiltins() {
	builtins := map[model.FieldType]string{
		model.FieldTypeText:     WidgetText,
		model.FieldTypeTextarea: WidgetTextarea,
		model.FieldTypeSelect:   WidgetSelect,
		model.FieldTypeRadio:    WidgetRadio,
		model.FieldTypeDate:     WidgetDate,
		model.FieldTypeMasked:   WidgetMasked,
	}
	for _, fieldType := range model.FieldTypes() {
		r.Register(builtins[fieldType], BuiltinPriority, func(field model.Field) bool {
			return field.Type == fieldType
		})
	}
}
