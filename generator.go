package resume

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-resume/internal/assets"
	"github.com/alnah/go-resume/internal/config"
	"github.com/alnah/go-resume/internal/dateutil"
	"github.com/alnah/go-resume/internal/fileutil"
)

// Generator renders resume data into LaTeX and compiles it to PDF.
// Create with NewGenerator; a Generator is safe for sequential reuse.
type Generator struct {
	cfg    generatorConfig
	assets *assets.AssetResolver
	runner CommandRunner
	logf   Logger
	now    func() time.Time
}

type generatorConfig struct {
	timeout    time.Duration
	engine     string
	engineArgs []string
	assetPath  string
	assetLinks []string
}

// NewGenerator creates a Generator with default configuration.
// Without WithAssetPath, ./assets is used when it exists.
// Returns ErrInvalidAssetPath if WithAssetPath names an unusable directory.
func NewGenerator(opts ...Option) (*Generator, error) {
	g := &Generator{
		cfg: generatorConfig{
			timeout:    DefaultTimeout,
			engine:     DefaultEngine,
			assetLinks: append([]string(nil), config.DefaultAssetLinks...),
		},
		runner: &ExecRunner{},
		logf:   func(string, ...any) {},
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(g)
	}
	if g.logf == nil {
		g.logf = func(string, ...any) {}
	}

	g.cfg.assetPath = config.ResolveAssetPath(g.cfg.assetPath)
	resolver, err := assets.NewAssetResolver(g.cfg.assetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}
	g.assets = resolver

	return g, nil
}

// Templates lists the template names this generator can load.
func (g *Generator) Templates() ([]string, error) {
	return g.assets.ListTemplates()
}

// Generate renders input.Data with the selected template, writes
// <OutputDir>/<Name>.tex and, unless input.TexOnly is set, runs the engine.
// The context cancels the engine run. When the engine fails, the returned
// Result still names the written .tex file.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (g *Generator) Generate(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	input = withInputDefaults(input)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	generated, err := dateutil.ResolveDate(input.Date, g.now())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	source, err := g.loadTemplate(input.Template)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	tex, err := RenderTemplate(input.Template, source, input.Data, Meta{
		Generated: generated,
		Template:  input.Template,
		Sections:  input.Data.Order,
	})
	if err != nil {
		return nil, err
	}
	if n := strings.Count(tex, missingValue); n > 0 {
		g.logf("warning: template %s printed %q %d time(s); a field it uses is missing", input.Template, missingValue, n)
	}
	g.logf("rendered %s with %d section(s) in %s", input.Template, input.Data.Len(), time.Since(start).Round(time.Millisecond))

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if err := fileutil.EnsureDir(input.OutputDir); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOutputWrite, err)
	}
	texPath := filepath.Join(input.OutputDir, input.Name+".tex")
	if err := fileutil.WriteFile(texPath, tex); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOutputWrite, err)
	}
	g.logf("wrote %s", texPath)

	result = &Result{TexPath: texPath, Tex: tex, Generated: generated}
	if input.TexOnly {
		return result, nil
	}

	start = time.Now()
	pdfPath, output, err := g.compiler().compile(ctx, texPath)
	result.EngineOutput = output
	if err != nil {
		return result, err
	}
	g.logf("compiled %s in %s", pdfPath, time.Since(start).Round(time.Millisecond))

	result.PDFPath = pdfPath
	return result, nil
}

// compiler builds the engine runner for one build.
func (g *Generator) compiler() *compiler {
	return &compiler{
		runner:   g.runner,
		command:  g.cfg.engine,
		args:     g.cfg.engineArgs,
		timeout:  g.cfg.timeout,
		assetDir: g.assets.BasePath(),
		links:    g.cfg.assetLinks,
		logf:     g.logf,
	}
}

// loadTemplate resolves a template name to its source.
func (g *Generator) loadTemplate(name string) (string, error) {
	source, err := g.assets.LoadTemplate(name)
	if err == nil {
		return source, nil
	}
	if errors.Is(err, assets.ErrTemplateNotFound) || errors.Is(err, assets.ErrInvalidAssetName) {
		return "", fmt.Errorf("%w: %v", ErrTemplateNotFound, err)
	}
	return "", fmt.Errorf("loading template %q: %w", name, err)
}

// withInputDefaults fills empty Input fields.
func withInputDefaults(in Input) Input {
	in.Template = strings.TrimSuffix(in.Template, assets.TemplateExt)
	if in.Template == "" {
		in.Template = assets.DefaultTemplateName
	}
	if in.OutputDir == "" {
		in.OutputDir = DefaultOutputDir
	}
	if in.Name == "" {
		in.Name = DefaultName
	}
	return in
}

// validateInput checks that required fields are present and valid.
func validateInput(in Input) error {
	if in.Data.Len() == 0 {
		return ErrNoSections
	}
	if err := config.ValidateOutputName(in.Name); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOutputName, err)
	}
	return nil
}
