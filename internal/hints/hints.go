// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"path/filepath"
	"strings"
)

// TectonicInstallURL documents how to install the default LaTeX engine.
const TectonicInstallURL = "https://tectonic-typesetting.github.io/en-US/install.html"

// IsDefaultEngine reports whether command names the default engine.
func IsDefaultEngine(command string) bool {
	base := strings.TrimSuffix(filepath.Base(command), ".exe")
	return base == "tectonic"
}

// ForEngineNotFound returns hints for a missing LaTeX engine binary.
func ForEngineNotFound(command string) string {
	hints := []string{"use --engine or RESUME_ENGINE to pick another binary"}
	if IsDefaultEngine(command) {
		hints = append([]string{"install Tectonic from " + TectonicInstallURL}, hints...)
	} else {
		hints = append([]string{"check that " + command + " is on PATH"}, hints...)
	}
	hints = append(hints, "or pass --tex-only to stop after writing the .tex file")
	return formatHints(hints)
}

// ForCompile returns hints for a failed LaTeX run.
// logPath is the engine log next to the .tex file, if known.
func ForCompile(logPath string) string {
	hint := "rerun with --verbose to see the engine output"
	if logPath != "" {
		hint += "; see " + logPath
	}
	return format(hint)
}

// ForTimeout returns a hint about increasing timeout for slow first runs.
func ForTimeout() string {
	return format("the first Tectonic run downloads packages, use --timeout to allow more time")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-resume/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), "go-resume/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForDataNotFound returns hints when no resume content was found.
func ForDataNotFound(sections []string) string {
	if len(sections) == 0 {
		return format("use --data to point at a directory of section files or a YAML file")
	}
	return format("expected one of " + strings.Join(sections, ", ") + " as <name>.yaml; use --data to change the location")
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForTemplateNotFound returns hints for template not found errors.
func ForTemplateNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
