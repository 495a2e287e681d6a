package assets

// DefaultTemplateName is the built-in template used when none is configured.
const DefaultTemplateName = "awesome-cv"

// TemplateExt is the file extension of template files.
const TemplateExt = ".tex"

// defaultLoader is the package-level embedded loader.
var defaultLoader = NewEmbeddedLoader()

// LoadTemplate loads an embedded template by name.
// The name should not include the .tex extension or path components.
func LoadTemplate(name string) (string, error) {
	return defaultLoader.LoadTemplate(name)
}

// ListTemplates returns the names of the embedded templates, sorted.
func ListTemplates() ([]string, error) {
	return defaultLoader.ListTemplates()
}
