package resume

import (
	"time"
)

// Defaults applied when Input or options leave a value empty.
const (
	DefaultEngine    = "tectonic"
	DefaultTimeout   = 2 * time.Minute
	DefaultOutputDir = "output"
	DefaultName      = "resume"
)

// Input holds one build request.
type Input struct {
	Data      *Data  // Loaded sections (required)
	Template  string // Template name; empty uses the default template
	OutputDir string // Directory for <Name>.tex and <Name>.pdf
	Name      string // Base file name without extension
	Date      string // Literal or "auto[:FORMAT]", exposed as .meta.generated
	TexOnly   bool   // Write the .tex file and skip the engine
}

// Result describes the files produced by a build.
type Result struct {
	TexPath      string // Rendered LaTeX source
	PDFPath      string // Empty when Input.TexOnly is set
	Tex          string // Rendered LaTeX content
	EngineOutput string // Engine stdout, useful for --verbose
	Generated    string // Resolved document date
}

// Logger receives progress messages. It matches the shape of
// maxprocs.Logger so the CLI can pass the same printf-style function.
type Logger func(format string, args ...any)

// Option configures a Generator.
type Option func(*Generator)

// WithTimeout bounds a single engine run. Zero or negative disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(g *Generator) {
		g.cfg.timeout = d
	}
}

// WithEngine sets the LaTeX engine executable.
func WithEngine(command string) Option {
	return func(g *Generator) {
		if command != "" {
			g.cfg.engine = command
		}
	}
}

// WithEngineArgs sets extra engine arguments placed before the .tex file.
func WithEngineArgs(args ...string) Option {
	return func(g *Generator) {
		g.cfg.engineArgs = append([]string(nil), args...)
	}
}

// WithAssetPath sets a custom asset directory. Templates in
// <path>/templates override embedded ones, and the entries named by
// WithAssetLinks are linked next to the .tex file while the engine runs.
// An empty path falls back to ./assets when that directory exists.
func WithAssetPath(path string) Option {
	return func(g *Generator) {
		g.cfg.assetPath = path
	}
}

// WithAssetLinks sets the asset entries linked into the output directory.
func WithAssetLinks(names ...string) Option {
	return func(g *Generator) {
		g.cfg.assetLinks = append([]string(nil), names...)
	}
}

// WithLogger sets the progress logger.
func WithLogger(logf Logger) Option {
	return func(g *Generator) {
		g.logf = logf
	}
}

// WithNow sets the clock used to resolve "auto" dates.
func WithNow(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// WithCommandRunner replaces the subprocess runner used for the engine.
func WithCommandRunner(r CommandRunner) Option {
	return func(g *Generator) {
		if r != nil {
			g.runner = r
		}
	}
}
