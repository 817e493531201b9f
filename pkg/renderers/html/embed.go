package html

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tpl templates/widgets/*.tpl
var embeddedTemplates embed.FS

// FormTemplate is the entry template rendered for every form.
const FormTemplate = "form.tpl"

// TemplatesFS exposes the embedded template bundle rooted at the templates
// directory, so overrides can mirror its file names.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}
