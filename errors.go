package resume

import "errors"

// Sentinel errors for library operations.
var (
	// Data loading errors.
	ErrDataLoad       = errors.New("failed to load resume data")
	ErrNoSections     = errors.New("no resume sections found")
	ErrSectionParse   = errors.New("failed to parse section")
	ErrInvalidSection = errors.New("invalid section name")

	// Template errors.
	ErrTemplateNotFound = errors.New("template not found")
	ErrTemplateParse    = errors.New("template parsing failed")
	ErrTemplateRender   = errors.New("template rendering failed")
	ErrInvalidAssetPath = errors.New("invalid asset path")

	// Output errors.
	ErrInvalidOutputName = errors.New("invalid output name")
	ErrInvalidDate       = errors.New("invalid document date")
	ErrOutputWrite       = errors.New("failed to write output")

	// Engine errors.
	ErrEngineNotFound = errors.New("LaTeX engine not found")
	ErrCompile        = errors.New("LaTeX compilation failed")
	ErrCompileTimeout = errors.New("LaTeX compilation timed out")
)
