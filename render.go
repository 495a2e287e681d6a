package resume

import (
	"fmt"
	"reflect"
	"strings"
	"text/template"

	"github.com/alnah/go-resume/internal/config"
	"github.com/alnah/go-resume/internal/latex"
)

// Template delimiters. A single pair serves expressions and control actions:
// \VAR{.personal.email}, \VAR{range .experience} ... \VAR{end}.
const (
	LeftDelim  = `\VAR{`
	RightDelim = `}`
)

// missingValue is what text/template prints for a missing map key.
const missingValue = "<no value>"

// Meta is build metadata exposed to templates under .meta.
type Meta struct {
	Generated string   // Resolved document date
	Template  string   // Template name
	Sections  []string // Loaded section names, in order
}

// RenderTemplate executes a LaTeX template against resume data.
// Every string in data is passed through ConvertMarkup first; data itself
// is not modified. Meta values are escaped but not converted, and .raw
// exposes the unconverted sections.
func RenderTemplate(name, source string, data *Data, meta Meta) (string, error) {
	tmpl, err := template.New(name).
		Delims(LeftDelim, RightDelim).
		Funcs(templateFuncs()).
		Option("missingkey=default").
		Parse(source)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateParse, err)
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, templateData(data, meta)); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}
	return b.String(), nil
}

// templateData builds the root value seen by templates.
// Nil sections are left out so \VAR{if .name} and \VAR{with .name} treat
// them as absent. .raw holds the same sections before conversion, for
// values that must reach LaTeX as typed (link targets).
func templateData(data *Data, meta Meta) map[string]any {
	root := make(map[string]any, data.Len()+2)
	raw := make(map[string]any, data.Len())
	if data != nil {
		for _, name := range data.Order {
			v := data.Sections[name]
			if v == nil {
				continue
			}
			root[name] = latex.ConvertValue(v)
			raw[name] = v
		}
	}
	root[config.RawSectionName] = raw

	sections := make([]string, len(meta.Sections))
	for i, s := range meta.Sections {
		sections[i] = latex.Escape(s)
	}
	root[config.ReservedSectionName] = map[string]any{
		"generated": latex.Escape(meta.Generated),
		"template":  latex.Escape(meta.Template),
		"sections":  sections,
	}
	return root
}

// templateFuncs returns the functions available to templates.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"join":    joinValues,
		"escape":  escapeValue,
		"default": defaultValue,
		"last":    isLast,
		"url":     urlValue,
	}
}

// joinValues joins a list with sep. A scalar is printed as is, nil is empty.
// Usage: \VAR{join ", " .items}
func joinValues(sep string, v any) string {
	switch list := v.(type) {
	case nil:
		return ""
	case string:
		return list
	case []string:
		return strings.Join(list, sep)
	case []any:
		parts := make([]string, 0, len(list))
		for _, item := range list {
			if item == nil {
				continue
			}
			parts = append(parts, fmt.Sprint(item))
		}
		return strings.Join(parts, sep)
	default:
		return fmt.Sprint(v)
	}
}

// escapeValue escapes literal text written in a template.
// Usage: \VAR{escape "R&D"}
func escapeValue(v any) string {
	if v == nil {
		return ""
	}
	return latex.Escape(fmt.Sprint(v))
}

// urlValue escapes a raw value for a \href or \url argument.
// Usage: \href{mailto:\VAR{url $.raw.personal.email}}{\VAR{.email}}
func urlValue(v any) string {
	if v == nil {
		return ""
	}
	return latex.EscapeURL(fmt.Sprint(v))
}

// defaultValue returns def when v is empty in the sense of \VAR{if}:
// nil, false, zero numbers, empty strings and empty collections.
// Usage: \VAR{default "awesome-red" .config.color}
func defaultValue(def, v any) any {
	if isEmpty(v) {
		return def
	}
	return v
}

func isEmpty(v any) bool {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return true
	}
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array, reflect.String:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	default:
		return rv.IsZero()
	}
}

// isLast reports whether i is the last index of list.
// Usage: \VAR{range $i, $s := .skills}...\VAR{if not (last $i $.skills)}, \VAR{end}\VAR{end}
func isLast(i int, list any) (bool, error) {
	rv := reflect.ValueOf(list)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.String, reflect.Map:
		return i == rv.Len()-1, nil
	default:
		return false, fmt.Errorf("last: cannot take length of %T", list)
	}
}
