package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	resume "github.com/alnah/go-resume"
	"github.com/alnah/go-resume/internal/config"
	"github.com/alnah/go-resume/internal/fileutil"
	"github.com/alnah/go-resume/internal/hints"
)

// runBuild loads configuration and data, then renders and compiles the resume.
func runBuild(ctx context.Context, args []string, env *Environment) error {
	flags, err := parseBuildFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	if env.Environ != nil {
		warnUnknownEnvVars(env.Stderr, env.Environ())
	}
	envCfg := loadEnvConfig(env.Getenv)

	cfg, err := loadBuildConfig(flags.common.config, envCfg.ConfigPath)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	timeout, err := config.ParseTimeout(cfg.Engine.Timeout)
	if err != nil {
		return err
	}

	data, err := resume.LoadData(cfg.Data.Source, cfg.Data.Sections)
	if err != nil {
		if errors.Is(err, resume.ErrNoSections) || errors.Is(err, resume.ErrDataLoad) {
			return fmt.Errorf("%w%s", err, hints.ForDataNotFound(cfg.Data.Sections))
		}
		return err
	}

	opts := []resume.Option{
		resume.WithTimeout(timeout),
		resume.WithEngine(cfg.Engine.Command),
		resume.WithEngineArgs(cfg.Engine.Args...),
		resume.WithAssetPath(cfg.Assets.BasePath),
		resume.WithAssetLinks(cfg.Assets.Links...),
		resume.WithNow(env.Now),
		resume.WithCommandRunner(env.Runner),
	}
	if flags.common.verbose {
		opts = append(opts, resume.WithLogger(lineLogger(env.Stderr)))
	}
	gen, err := resume.NewGenerator(opts...)
	if err != nil {
		return err
	}

	start := env.Now()
	result, err := gen.Generate(ctx, resume.Input{
		Data:      data,
		Template:  cfg.Template.Name,
		OutputDir: cfg.Output.Dir,
		Name:      cfg.Output.Name,
		Date:      cfg.Document.Date,
		TexOnly:   flags.texOnly,
	})
	if result != nil && flags.common.verbose && result.EngineOutput != "" {
		fmt.Fprint(env.Stderr, result.EngineOutput)
		if !strings.HasSuffix(result.EngineOutput, "\n") {
			fmt.Fprintln(env.Stderr)
		}
	}
	if err != nil {
		return withBuildHint(err, gen, cfg)
	}

	if flags.common.quiet {
		return nil
	}
	if result.PDFPath == "" {
		fmt.Fprintf(env.Stdout, "Wrote %s\n", result.TexPath)
		return nil
	}
	elapsed := env.Now().Sub(start).Round(time.Millisecond)
	fmt.Fprintf(env.Stdout, "Created %s (%s)\n", result.PDFPath, elapsed)
	return nil
}

// loadBuildConfig returns the config named by the flag or RESUME_CONFIG,
// or defaults when neither is set.
func loadBuildConfig(flagValue, envValue string) (*config.Config, error) {
	name := flagValue
	if name == "" {
		name = envValue
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("%w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
		}
		return nil, err
	}
	return cfg, nil
}

// mergeFlags overrides config values with explicitly set flags.
func mergeFlags(flags *buildFlags, cfg *config.Config) {
	if flags.data != "" {
		cfg.Data.Source = flags.data
	}
	if len(flags.sections) > 0 {
		cfg.Data.Sections = flags.sections
	}
	if flags.template != "" {
		cfg.Template.Name = flags.template
	}
	if flags.output != "" {
		cfg.Output.Name = flags.output
	}
	if flags.outputDir != "" {
		cfg.Output.Dir = flags.outputDir
	}
	if flags.engine != "" {
		cfg.Engine.Command = flags.engine
	}
	if flags.timeout != "" {
		cfg.Engine.Timeout = flags.timeout
	}
	if flags.assetPath != "" {
		cfg.Assets.BasePath = flags.assetPath
	}
	if flags.date != "" {
		cfg.Document.Date = flags.date
	}
	if cfg.Engine.Timeout == "" {
		cfg.Engine.Timeout = config.DefaultTimeoutString
	}
}

// withBuildHint appends an actionable hint to generation errors.
func withBuildHint(err error, gen *resume.Generator, cfg *config.Config) error {
	var hint string
	switch {
	case errors.Is(err, resume.ErrTemplateNotFound):
		available, _ := gen.Templates()
		hint = hints.ForTemplateNotFound(available)
	case errors.Is(err, resume.ErrEngineNotFound):
		hint = hints.ForEngineNotFound(cfg.Engine.Command)
	case errors.Is(err, resume.ErrCompileTimeout):
		hint = hints.ForTimeout()
	case errors.Is(err, resume.ErrCompile):
		name := cfg.Output.Name
		if name == "" {
			name = resume.DefaultName
		}
		logPath := filepath.Join(cfg.Output.Dir, name+".log")
		if !fileutil.FileExists(logPath) {
			logPath = ""
		}
		hint = hints.ForCompile(logPath)
	case errors.Is(err, resume.ErrOutputWrite):
		hint = hints.ForOutputDirectory()
	}
	if hint == "" {
		return err
	}
	return fmt.Errorf("%w%s", err, hint)
}
