// Package form owns the runtime state of a form: the schema, the user's
// data and the two error maps. Presentation layers call the change handlers
// and read snapshots through State.
package form

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/hashicorp/go-hclog"
	"github.com/mohae/deepcopy"

	"github.com/goliatone/go-formstate/pkg/dependency"
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/sections"
	"github.com/goliatone/go-formstate/pkg/validation"
)

// Controller serialises change handlers and publishes immutable snapshots.
// Reads through State never block. Listeners see snapshots in publish
// order, one at a time.
type Controller struct {
	mu    sync.Mutex
	state atomic.Pointer[State]

	pending    []State
	delivering bool

	submit    SubmitFunc
	logger    hclog.Logger
	listeners []Listener
	initial   model.FormData
}

// New mounts schema. submit may be nil when the host only inspects state.
func New(schema *model.Schema, submit SubmitFunc, opts ...Option) (*Controller, error) {
	if schema == nil {
		return nil, ErrNilSchema
	}

	c := &Controller{
		submit: submit,
		logger: hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	initial, err := c.prefill(schema)
	if err != nil {
		return nil, err
	}
	c.state.Store(&initial)
	c.initial = model.FormData{}
	return c, nil
}

// prefill seeds the initial state. Parents with a value cascade first, then
// sections grow to hold every prefilled row and anything left on a disabled
// field is dropped.
func (c *Controller) prefill(schema *model.Schema) (State, error) {
	st := State{
		Schema:         schema,
		Data:           model.NewFormData(),
		RequiredErrors: model.NewErrors(),
		RegexErrors:    model.NewErrors(),
	}

	for name, value := range c.initial.Values {
		field, ok := schema.Field(name)
		if !ok || field.Section {
			c.logger.Warn("ignoring prefill value", "field", name)
			continue
		}
		st.Data.Values[name] = deepcopy.Copy(value)
	}
	for name, rows := range c.initial.Sections {
		field, ok := schema.Field(name)
		if !ok || !field.Section {
			c.logger.Warn("ignoring prefill section", "field", name)
			continue
		}
		if len(rows) > field.MaxSections {
			return State{}, fmt.Errorf("form: prefill %q: %w: %d rows, %d allowed", name, sections.ErrMaxInstances, len(rows), field.MaxSections)
		}
		st.Data.Sections[name] = deepcopy.Copy(rows).([]map[string]any)
	}

	for _, field := range schema.Fields() {
		if !field.IsParent() {
			continue
		}
		if _, ok := st.Data.Values[field.Name]; !ok {
			continue
		}
		next, outcome, err := dependency.Cascade(st.Schema, st.Data, st.RequiredErrors, st.RegexErrors, field)
		if err != nil {
			return State{}, fmt.Errorf("form: prefill %q: %w", field.Name, err)
		}
		st.Schema = next
		c.logger.Debug("prefill cascade", "parent", field.Name, "enabled", outcome.Enabled, "disabled", outcome.Disabled)
	}

	for _, field := range st.Schema.Fields() {
		if field.Disabled {
			if st.Data.Has(field.Name) {
				c.logger.Warn("dropping prefill for disabled field", "field", field.Name)
				st.Data.Delete(field.Name)
			}
			continue
		}
		if !field.Section {
			continue
		}
		rows := st.Data.Sections[field.Name]
		grown, err := growInstances(field, len(rows))
		if err != nil {
			return State{}, fmt.Errorf("form: prefill %q: %w", field.Name, err)
		}
		for i, row := range rows {
			for _, member := range grown.Instances[i] {
				if _, ok := row[member.Name]; ok && member.Disabled {
					delete(row, member.Name)
				}
			}
		}
		st.Schema = st.Schema.Replace(grown)
	}
	return st, nil
}

// growInstances adds instances until section holds n of them.
func growInstances(section model.Field, n int) (model.Field, error) {
	for len(section.Instances) < n {
		next, err := sections.Add(section)
		if err != nil {
			return section, err
		}
		section = next
	}
	return section, nil
}

// State returns the current snapshot.
func (c *Controller) State() State {
	return *c.state.Load()
}

// Schema returns the current schema.
func (c *Controller) Schema() *model.Schema {
	return c.state.Load().Schema
}

// FieldChange records value for a plain field. Errors already shown for the
// field are recomputed; fields without a visible error are not validated.
// When the field controls dependents the cascade runs on the new value.
func (c *Controller) FieldChange(name string, value any) error {
	c.mu.Lock()
	cur := c.State()
	field, err := plainField(cur.Schema, name)
	if err != nil {
		c.mu.Unlock()
		return err
	}

	next := cur.next()
	value = deepcopy.Copy(value)
	next.Data.Values[name] = value
	if _, shown := next.RequiredErrors.Fields[name]; shown {
		validation.ApplyRequired(field, value, next.RequiredErrors.Fields)
	}
	if _, shown := next.RegexErrors.Fields[name]; shown {
		validation.ApplyRegex(field, value, next.RegexErrors.Fields)
	}

	if field.IsParent() {
		schema, outcome, err := dependency.Cascade(next.Schema, next.Data, next.RequiredErrors, next.RegexErrors, field)
		if err != nil {
			c.mu.Unlock()
			return fmt.Errorf("form: cascade %q: %w", name, err)
		}
		next.Schema = schema
		c.logger.Debug("cascade", "parent", name, "enabled", outcome.Enabled, "disabled", outcome.Disabled)
	}

	c.publishLocked(next)
	return nil
}

// SectionFieldChange records value for field name of a section instance.
// Only the touched instance's errors are recomputed.
func (c *Controller) SectionFieldChange(section string, index int, name string, value any) error {
	c.mu.Lock()
	cur := c.State()
	sec, err := sectionField(cur.Schema, section)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	if index < 0 || index >= len(sec.Instances) {
		c.mu.Unlock()
		return fmt.Errorf("%w: %s[%d]", sections.ErrInstanceOutOfRange, section, index)
	}
	member, ok := sec.InstanceField(index, name)
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("%w: %s[%d].%s", ErrUnknownField, section, index, name)
	}
	if member.Disabled {
		c.mu.Unlock()
		return fmt.Errorf("%w: %s[%d].%s", ErrFieldDisabled, section, index, name)
	}

	next := cur.next()
	value = deepcopy.Copy(value)
	next.Data.Sections[section] = setValue(cur.Data.Sections[section], index, name, value)
	revalidate(next.RequiredErrors, section, index, name, func(errs map[string]string) {
		validation.ApplyRequired(member, value, errs)
	})
	revalidate(next.RegexErrors, section, index, name, func(errs map[string]string) {
		validation.ApplyRegex(member, value, errs)
	})

	c.publishLocked(next)
	return nil
}

// AddInstance appends an instance to section.
func (c *Controller) AddInstance(section string) error {
	c.mu.Lock()
	cur := c.State()
	sec, err := sectionField(cur.Schema, section)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	added, err := sections.Add(sec)
	if err != nil {
		c.mu.Unlock()
		return err
	}

	next := cur.next()
	next.Schema = cur.Schema.Replace(added)
	c.logger.Debug("instance added", "section", section, "instances", len(added.Instances))
	c.publishLocked(next)
	return nil
}

// RemoveInstance drops instance index of section along with its data and
// errors. Later instances shift down by one.
func (c *Controller) RemoveInstance(section string, index int) error {
	c.mu.Lock()
	cur := c.State()
	sec, err := sectionField(cur.Schema, section)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	removed, err := sections.Remove(sec, index)
	if err != nil {
		c.mu.Unlock()
		return err
	}

	next := cur.next()
	next.Schema = cur.Schema.Replace(removed)
	if rows, ok := cur.Data.Sections[section]; ok {
		next.Data.Sections[section] = sections.Splice(rows, index)
	}
	spliceErrors(next.RequiredErrors, section, index)
	spliceErrors(next.RegexErrors, section, index)

	c.logger.Debug("instance removed", "section", section, "index", index, "instances", len(removed.Instances))
	c.publishLocked(next)
	return nil
}

// Submit validates the whole form from scratch. When nothing fails, the
// submit function receives a copy of the data and state is left as is;
// otherwise both error maps are replaced and data is kept.
func (c *Controller) Submit() bool {
	c.mu.Lock()
	cur := c.State()
	required, regex := validation.All(cur.Schema, cur.Data)

	if required.Empty() && regex.Empty() {
		payload := deepcopy.Copy(cur.Data).(model.FormData)
		c.mu.Unlock()

		c.logger.Info("form submitted", "fields", len(payload.Values), "sections", len(payload.Sections))
		if c.submit != nil {
			c.submit(payload)
		}
		return true
	}

	next := State{
		Schema:         cur.Schema,
		Data:           cur.Data,
		RequiredErrors: required,
		RegexErrors:    regex,
	}
	c.logger.Info("submit blocked", "required", required.Len(), "regex", regex.Len())
	c.publishLocked(next)
	return false
}

// publishLocked stores st, queues it for listeners and releases the lock.
// The first publisher to find the queue idle delivers every queued snapshot
// outside the lock, so a listener may call back into the controller; its
// snapshot joins the queue behind the current one.
func (c *Controller) publishLocked(st State) {
	c.state.Store(&st)
	if len(c.listeners) == 0 {
		c.mu.Unlock()
		return
	}
	c.pending = append(c.pending, st)
	if c.delivering {
		c.mu.Unlock()
		return
	}

	c.delivering = true
	for len(c.pending) > 0 {
		next := c.pending[0]
		c.pending = c.pending[1:]
		c.mu.Unlock()
		for _, listener := range c.listeners {
			listener(next)
		}
		c.mu.Lock()
	}
	c.delivering = false
	c.mu.Unlock()
}

func plainField(schema *model.Schema, name string) (model.Field, error) {
	field, ok := schema.Field(name)
	if !ok {
		return model.Field{}, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	if field.Section {
		return model.Field{}, fmt.Errorf("%w: %q", ErrNotField, name)
	}
	if field.Disabled {
		return model.Field{}, fmt.Errorf("%w: %q", ErrFieldDisabled, name)
	}
	return field, nil
}

func sectionField(schema *model.Schema, name string) (model.Field, error) {
	field, ok := schema.Field(name)
	if !ok {
		return model.Field{}, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	if !field.Section {
		return model.Field{}, fmt.Errorf("%w: %q", sections.ErrNotSection, name)
	}
	return field, nil
}

// setValue returns a copy of rows with rows[index][name] = value, growing
// the slice and allocating the row as needed.
func setValue(rows []map[string]any, index int, name string, value any) []map[string]any {
	size := len(rows)
	if index >= size {
		size = index + 1
	}
	out := make([]map[string]any, size)
	copy(out, rows)

	row := make(map[string]any, len(out[index])+1)
	for k, v := range out[index] {
		row[k] = v
	}
	row[name] = value
	out[index] = row
	return out
}

// revalidate reapplies a validator to one instance when that instance
// already shows an error for name.
func revalidate(errs model.Errors, section string, index int, name string, apply func(map[string]string)) {
	rows := errs.Sections[section]
	if index >= len(rows) {
		return
	}
	if _, shown := rows[index][name]; !shown {
		return
	}

	row := make(map[string]string, len(rows[index]))
	for k, v := range rows[index] {
		row[k] = v
	}
	apply(row)

	updated := append([]map[string]string(nil), rows...)
	updated[index] = row
	if compacted := model.CompactRows(updated); compacted != nil {
		errs.Sections[section] = compacted
		return
	}
	delete(errs.Sections, section)
}

func spliceErrors(errs model.Errors, section string, index int) {
	rows, ok := errs.Sections[section]
	if !ok {
		return
	}
	if compacted := model.CompactRows(sections.Splice(rows, index)); compacted != nil {
		errs.Sections[section] = compacted
		return
	}
	delete(errs.Sections, section)
}
