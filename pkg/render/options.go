package render

// RenderOptions carry per-form presentation data that is not part of the
// schema itself.
type RenderOptions struct {
	// Title and Description head the rendered form.
	Title       string
	Description string
	// SubmitLabel names the submit action. Defaults to "Submit".
	SubmitLabel string
	// Action and Method target the HTML form element.
	Action string
	Method string
	// HiddenFields are emitted as hidden inputs (CSRF tokens, versions).
	HiddenFields map[string]string
}

// DefaultSubmitLabel is used when RenderOptions.SubmitLabel is empty.
const DefaultSubmitLabel = "Submit"

// Submit returns the submit label with its default applied.
func (o RenderOptions) Submit() string {
	if o.SubmitLabel == "" {
		return DefaultSubmitLabel
	}
	return o.SubmitLabel
}

// WithHidden returns a copy of o carrying fields as hidden inputs. Later
// fields win on duplicate names; the receiver's map is never written.
func (o RenderOptions) WithHidden(fields ...HiddenField) RenderOptions {
	merged := make(map[string]string, len(o.HiddenFields)+len(fields))
	for name, value := range o.HiddenFields {
		merged[name] = value
	}
	for _, field := range fields {
		if field.Name == "" {
			continue
		}
		merged[field.Name] = field.Value
	}
	o.HiddenFields = merged
	return o
}
