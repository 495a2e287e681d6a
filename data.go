package resume

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/alnah/go-resume/internal/config"
	"github.com/alnah/go-resume/internal/yamlutil"
)

// sectionExtensions are tried in order for each section file.
var sectionExtensions = []string{".yaml", ".yml"}

// Data holds resume sections keyed by name, with the order they were loaded in.
type Data struct {
	Order    []string
	Sections map[string]any
}

// Section returns the raw content of a section and whether it was loaded.
func (d *Data) Section(name string) (any, bool) {
	if d == nil {
		return nil, false
	}
	v, ok := d.Sections[name]
	return v, ok
}

// Len returns the number of loaded sections.
func (d *Data) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Order)
}

// LoadData reads resume sections from source.
//
// If source is a directory, each name in sections is read from
// <source>/<name>.yaml (or .yml). Missing files are skipped and an empty
// file yields a nil section. If source is a file, its root must be a mapping
// whose keys are the sections: names listed in sections come first, the
// remaining keys follow in sorted order.
//
// An empty sections list uses config.DefaultSections.
// Returns ErrNoSections when nothing was found.
func LoadData(source string, sections []string) (*Data, error) {
	if source == "" {
		return nil, fmt.Errorf("%w: empty source", ErrDataLoad)
	}
	if len(sections) == 0 {
		sections = config.DefaultSections
	}
	for _, name := range sections {
		if err := config.ValidateSectionName(name); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSection, err)
		}
	}

	info, err := os.Stat(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataLoad, err)
	}

	if info.IsDir() {
		return loadDir(source, sections)
	}
	return loadFile(source, sections)
}

// loadDir reads one file per section.
func loadDir(dir string, sections []string) (*Data, error) {
	data := &Data{Sections: make(map[string]any, len(sections))}

	for _, name := range sections {
		path, ok := findSectionFile(dir, name)
		if !ok {
			continue
		}

		content, err := os.ReadFile(path) // #nosec G304 -- path built from validated section name
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDataLoad, err)
		}

		value, err := yamlutil.DecodeDocument(content)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrSectionParse, path, err)
		}

		data.Order = append(data.Order, name)
		data.Sections[name] = value
	}

	if len(data.Order) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoSections, dir)
	}
	return data, nil
}

// findSectionFile returns the first existing <dir>/<name><ext>.
func findSectionFile(dir, name string) (string, bool) {
	for _, ext := range sectionExtensions {
		path := filepath.Join(dir, name+ext)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

// loadFile reads all sections from a single YAML mapping.
func loadFile(path string, sections []string) (*Data, error) {
	content, err := os.ReadFile(path) // #nosec G304 -- data path is user-provided
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataLoad, err)
	}

	root, err := yamlutil.DecodeMapping(content)
	if err != nil {
		if errors.Is(err, yamlutil.ErrNilData) {
			return nil, fmt.Errorf("%w in %s", ErrNoSections, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrSectionParse, path, err)
	}

	data := &Data{
		Order:    make([]string, 0, len(root)),
		Sections: make(map[string]any, len(root)),
	}

	listed := make(map[string]bool, len(sections))
	for _, name := range sections {
		listed[name] = true
		if v, ok := root[name]; ok {
			data.Order = append(data.Order, name)
			data.Sections[name] = v
		}
	}

	rest := make([]string, 0, len(root))
	for name := range root {
		if !listed[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)

	for _, name := range rest {
		if err := config.ValidateSectionName(name); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidSection, path, err)
		}
		data.Order = append(data.Order, name)
		data.Sections[name] = root[name]
	}

	if len(data.Order) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoSections, path)
	}
	return data, nil
}
