package model

import (
	"encoding/json"
	"strconv"
	"strings"
)

// FormData holds the user's input. Values is keyed by plain field name;
// Sections is keyed by section name and parallel-indexed to the section's
// instances. A nil row means the instance has not received input yet.
type FormData struct {
	Values   map[string]any
	Sections map[string][]map[string]any
}

// NewFormData returns an empty, writable FormData.
func NewFormData() FormData {
	return FormData{
		Values:   make(map[string]any),
		Sections: make(map[string][]map[string]any),
	}
}

// Value returns the value stored for a plain field.
func (d FormData) Value(name string) (any, bool) {
	v, ok := d.Values[name]
	return v, ok
}

// SectionValue returns the value stored for a field of a section instance.
func (d FormData) SectionValue(section string, index int, name string) (any, bool) {
	rows := d.Sections[section]
	if index < 0 || index >= len(rows) || rows[index] == nil {
		return nil, false
	}
	v, ok := rows[index][name]
	return v, ok
}

// Has reports whether name carries a plain value or section rows.
func (d FormData) Has(name string) bool {
	if _, ok := d.Values[name]; ok {
		return true
	}
	_, ok := d.Sections[name]
	return ok
}

// Delete removes every entry stored under name.
func (d FormData) Delete(name string) {
	delete(d.Values, name)
	delete(d.Sections, name)
}

// Clone copies the top-level maps. Section rows and values are shared; writers
// copy the row they touch before mutating it.
func (d FormData) Clone() FormData {
	out := FormData{
		Values:   make(map[string]any, len(d.Values)),
		Sections: make(map[string][]map[string]any, len(d.Sections)),
	}
	for k, v := range d.Values {
		out.Values[k] = v
	}
	for k, rows := range d.Sections {
		out.Sections[k] = rows
	}
	return out
}

// Map flattens the data into the single object shape submitted to hosts:
// plain values by name and sections as ordered lists of per-instance maps.
func (d FormData) Map() map[string]any {
	out := make(map[string]any, len(d.Values)+len(d.Sections))
	for k, v := range d.Values {
		out[k] = v
	}
	for k, rows := range d.Sections {
		list := make([]any, len(rows))
		for i, row := range rows {
			if row == nil {
				list[i] = map[string]any{}
				continue
			}
			list[i] = row
		}
		out[k] = list
	}
	return out
}

// MarshalJSON encodes the flattened Map form.
func (d FormData) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Map())
}

// Errors maps field names to messages. Fields holds plain fields; Sections
// holds one map per instance, where a nil entry means the instance has no
// errors. Absence of a key means "no error".
type Errors struct {
	Fields   map[string]string
	Sections map[string][]map[string]string
}

// NewErrors returns an empty, writable Errors value.
func NewErrors() Errors {
	return Errors{
		Fields:   make(map[string]string),
		Sections: make(map[string][]map[string]string),
	}
}

// Field returns the message for a plain field.
func (e Errors) Field(name string) (string, bool) {
	msg, ok := e.Fields[name]
	return msg, ok
}

// SectionField returns the message for a field of a section instance.
func (e Errors) SectionField(section string, index int, name string) (string, bool) {
	rows := e.Sections[section]
	if index < 0 || index >= len(rows) || rows[index] == nil {
		return "", false
	}
	msg, ok := rows[index][name]
	return msg, ok
}

// Delete removes every entry stored under name.
func (e Errors) Delete(name string) {
	delete(e.Fields, name)
	delete(e.Sections, name)
}

// Empty reports whether no message is recorded anywhere.
func (e Errors) Empty() bool {
	if len(e.Fields) > 0 {
		return false
	}
	for _, rows := range e.Sections {
		for _, row := range rows {
			if len(row) > 0 {
				return false
			}
		}
	}
	return true
}

// Len counts recorded messages.
func (e Errors) Len() int {
	n := len(e.Fields)
	for _, rows := range e.Sections {
		for _, row := range rows {
			n += len(row)
		}
	}
	return n
}

// Clone copies the top-level maps; section rows are shared.
func (e Errors) Clone() Errors {
	out := Errors{
		Fields:   make(map[string]string, len(e.Fields)),
		Sections: make(map[string][]map[string]string, len(e.Sections)),
	}
	for k, v := range e.Fields {
		out.Fields[k] = v
	}
	for k, rows := range e.Sections {
		out.Sections[k] = rows
	}
	return out
}

// Paths flattens the errors into dotted paths ("emails.1.email").
func (e Errors) Paths() map[string]string {
	out := make(map[string]string, e.Len())
	for name, msg := range e.Fields {
		out[name] = msg
	}
	for section, rows := range e.Sections {
		for i, row := range rows {
			for name, msg := range row {
				out[strings.Join([]string{section, strconv.Itoa(i), name}, ".")] = msg
			}
		}
	}
	return out
}

// CompactRows trims trailing instances without errors and turns empty rows
// into nil holes. A nil result means the section has no errors.
func CompactRows(rows []map[string]string) []map[string]string {
	end := len(rows)
	for end > 0 && len(rows[end-1]) == 0 {
		end--
	}
	if end == 0 {
		return nil
	}
	out := make([]map[string]string, end)
	for i := 0; i < end; i++ {
		if len(rows[i]) > 0 {
			out[i] = rows[i]
		}
	}
	return out
}
