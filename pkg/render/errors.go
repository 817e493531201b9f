package render

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-formstate/pkg/form"
)

// FieldMessage is one visible validation message, addressed by dotted path
// ("firstName", "emails.1.email").
type FieldMessage struct {
	Path    string
	Label   string
	Message string
}

// Messages lists every visible message in schema order. A required error
// hides the pattern error of the same field.
func Messages(state form.State) []FieldMessage {
	var out []FieldMessage
	for _, field := range state.Schema.Fields() {
		if !field.Section {
			if msg, ok := state.FieldError(field.Name); ok {
				out = append(out, FieldMessage{Path: field.Name, Label: field.DisplayLabel(), Message: msg})
			}
			continue
		}
		for i, instance := range field.Instances {
			for _, member := range instance {
				msg, ok := state.SectionFieldError(field.Name, i, member.Name)
				if !ok {
					continue
				}
				out = append(out, FieldMessage{
					Path:    Path(field.Name, i, member.Name),
					Label:   member.DisplayLabel(),
					Message: msg,
				})
			}
		}
	}
	return out
}

// Path joins a section field address into its dotted form.
func Path(section string, index int, name string) string {
	return strings.Join([]string{section, strconv.Itoa(index), name}, ".")
}

// ParsePath splits a dotted path produced by Path. ok is false for plain
// field names.
func ParsePath(path string) (section string, index int, name string, ok bool) {
	parts := strings.Split(path, ".")
	if len(parts) != 3 {
		return "", 0, path, false
	}
	i, err := strconv.Atoi(parts[1])
	if err != nil || i < 0 {
		return "", 0, path, false
	}
	return parts[0], i, parts[2], true
}
