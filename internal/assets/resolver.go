package assets

import (
	"errors"
	"sort"
)

// AssetResolver combines custom and embedded loaders with fallback logic.
// When a custom loader is configured, it tries custom first, then falls back
// to embedded if the template is not found in the custom location.
type AssetResolver struct {
	custom   *FilesystemLoader // nil if no custom path configured
	embedded AssetLoader
}

// NewAssetResolver creates an AssetResolver.
// If customBasePath is empty, only embedded templates are used.
// Returns error if customBasePath is set but invalid.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	resolver := &AssetResolver{
		embedded: NewEmbeddedLoader(),
	}

	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		resolver.custom = fsLoader
	}

	return resolver, nil
}

// LoadTemplate loads a template, trying the custom loader first if available.
func (r *AssetResolver) LoadTemplate(name string) (string, error) {
	if r.custom == nil {
		return r.embedded.LoadTemplate(name)
	}

	content, err := r.custom.LoadTemplate(name)
	if err == nil {
		return content, nil
	}

	// Only fall back for "not found" errors, not validation or I/O errors
	if !errors.Is(err, ErrTemplateNotFound) {
		return "", err
	}

	return r.embedded.LoadTemplate(name)
}

// ListTemplates returns the union of custom and embedded template names.
func (r *AssetResolver) ListTemplates() ([]string, error) {
	names, err := r.embedded.ListTemplates()
	if err != nil {
		return nil, err
	}
	if r.custom == nil {
		return names, nil
	}

	custom, err := r.custom.ListTemplates()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(names)+len(custom))
	merged := make([]string, 0, len(names)+len(custom))
	for _, n := range append(names, custom...) {
		if !seen[n] {
			seen[n] = true
			merged = append(merged, n)
		}
	}
	sort.Strings(merged)
	return merged, nil
}

// HasCustomLoader returns true if a custom asset directory is configured.
func (r *AssetResolver) HasCustomLoader() bool {
	return r.custom != nil
}

// BasePath returns the resolved custom asset directory, or "" when only
// embedded templates are used.
func (r *AssetResolver) BasePath() string {
	if r.custom == nil {
		return ""
	}
	return r.custom.BasePath()
}

// Compile-time interface check.
var _ AssetLoader = (*AssetResolver)(nil)
