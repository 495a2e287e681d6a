package main

import (
	"errors"
	"os"

	resume "github.com/alnah/go-resume"
	"github.com/alnah/go-resume/internal/config"
)

// Exit codes for the resume CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful build
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, data or template
	ExitIO      = 3 // File not found, permission denied
	ExitEngine  = 4 // LaTeX engine missing or failed
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Engine errors (exit 4)
	if errors.Is(err, resume.ErrEngineNotFound) ||
		errors.Is(err, resume.ErrCompile) ||
		errors.Is(err, resume.ErrCompileTimeout) {
		return ExitEngine
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrInvalidFlags) ||
		errors.Is(err, ErrUnexpectedArgs) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidField) ||
		errors.Is(err, resume.ErrSectionParse) ||
		errors.Is(err, resume.ErrInvalidSection) ||
		errors.Is(err, resume.ErrTemplateNotFound) ||
		errors.Is(err, resume.ErrTemplateParse) ||
		errors.Is(err, resume.ErrTemplateRender) ||
		errors.Is(err, resume.ErrInvalidAssetPath) ||
		errors.Is(err, resume.ErrInvalidOutputName) ||
		errors.Is(err, resume.ErrInvalidDate) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, resume.ErrDataLoad) ||
		errors.Is(err, resume.ErrNoSections) ||
		errors.Is(err, resume.ErrOutputWrite) {
		return ExitIO
	}

	return ExitGeneral
}
