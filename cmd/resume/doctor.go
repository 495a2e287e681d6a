package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	resume "github.com/alnah/go-resume"
	"github.com/alnah/go-resume/internal/config"
	"github.com/alnah/go-resume/internal/fileutil"
	"github.com/alnah/go-resume/internal/hints"
)

// versionTimeout bounds the "<engine> --version" probe.
const versionTimeout = 10 * time.Second

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string     `json:"status"` // "ready", "warnings", "errors"
	Engine   engineInfo `json:"engine"`
	Assets   assetInfo  `json:"assets"`
	Env      envInfo    `json:"environment"`
	System   systemInfo `json:"system"`
	Warnings []string   `json:"warnings,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

// engineInfo holds LaTeX engine detection results.
type engineInfo struct {
	Command string `json:"command"`
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
}

// assetInfo holds asset directory results.
type assetInfo struct {
	BasePath  string   `json:"base_path,omitempty"`
	Links     []string `json:"links,omitempty"`   // Configured links present in BasePath
	Missing   []string `json:"missing,omitempty"` // Configured links absent from BasePath
	Templates []string `json:"templates"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable   bool   `json:"temp_writable"`
	OutputDir      string `json:"output_dir"`
	OutputWritable bool   `json:"output_writable"`
}

// doctorFlags holds flags for the doctor command.
type doctorFlags struct {
	json      bool
	engine    string
	assetPath string
	outputDir string
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(ctx context.Context, args []string, env *Environment) int {
	f := &doctorFlags{}
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	fs.BoolVar(&f.json, "json", false, "machine-readable output")
	fs.StringVar(&f.engine, "engine", "", "LaTeX engine command")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.StringVar(&f.outputDir, "output-dir", "", "output directory")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printDoctorUsage(env.Stdout)
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "%v: %v\n", ErrInvalidFlags, err)
		return ExitUsage
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(env.Stderr, "%v: %s\n", ErrUnexpectedArgs, strings.Join(fs.Args(), " "))
		return ExitUsage
	}

	cfg := config.DefaultConfig()
	applyEnvConfig(loadEnvConfig(env.Getenv), cfg)
	if f.engine != "" {
		cfg.Engine.Command = f.engine
	}
	if f.assetPath != "" {
		cfg.Assets.BasePath = f.assetPath
	}
	if f.outputDir != "" {
		cfg.Output.Dir = f.outputDir
	}

	cfg.Assets.BasePath = config.ResolveAssetPath(cfg.Assets.BasePath)

	result := runDoctor(ctx, env, cfg)

	if f.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(ctx context.Context, env *Environment, cfg *config.Config) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Engine: engineInfo{Command: cfg.Engine.Command},
		Env: envInfo{
			OS:   runtime.GOOS,
			Arch: runtime.GOARCH,
		},
		System: systemInfo{OutputDir: cfg.Output.Dir},
	}

	checkEngine(ctx, env, result)
	checkAssets(cfg, result)
	checkEnvironment(env, result)
	checkSystem(result)

	// Determine final status
	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkEngine locates the LaTeX engine and reads its version.
func checkEngine(ctx context.Context, env *Environment, result *doctorResult) {
	command := result.Engine.Command
	path, err := env.LookPath(command)
	if err != nil {
		msg := fmt.Sprintf("LaTeX engine %q not found", command)
		if hints.IsDefaultEngine(command) {
			msg += ". Install Tectonic from " + hints.TectonicInstallURL
		}
		result.Errors = append(result.Errors, msg)
		return
	}

	result.Engine.Found = true
	result.Engine.Path = path

	if env.Runner == nil {
		return
	}
	probeCtx, cancel := context.WithTimeout(ctx, versionTimeout)
	defer cancel()
	stdout, stderr, err := env.Runner.Run(probeCtx, "", path, "--version")
	if err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not get engine version: %v", err))
		return
	}
	version := strings.TrimSpace(stdout)
	if version == "" {
		version = strings.TrimSpace(stderr)
	}
	if first, _, ok := strings.Cut(version, "\n"); ok {
		version = strings.TrimSpace(first)
	}
	result.Engine.Version = version
}

// checkAssets verifies the asset directory and lists templates.
func checkAssets(cfg *config.Config, result *doctorResult) {
	result.Assets.BasePath = cfg.Assets.BasePath

	gen, err := resume.NewGenerator(resume.WithAssetPath(cfg.Assets.BasePath))
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return
	}
	templates, err := gen.Templates()
	if err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not list templates: %v", err))
	}
	result.Assets.Templates = templates

	if cfg.Assets.BasePath == "" {
		return
	}
	for _, name := range cfg.Assets.Links {
		if _, err := os.Stat(filepath.Join(cfg.Assets.BasePath, name)); err == nil {
			result.Assets.Links = append(result.Assets.Links, name)
		} else {
			result.Assets.Missing = append(result.Assets.Missing, name)
		}
	}
	if len(result.Assets.Missing) > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Asset path %s is missing %s", cfg.Assets.BasePath, strings.Join(result.Assets.Missing, ", ")))
	}
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(env *Environment, result *doctorResult) {
	// Detect container (multi-signal approach)
	result.Env.Container, result.Env.ContainerHint = isContainer(env.Getenv)

	// Detect CI environments
	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}
	for _, v := range ciVars {
		if env.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	// Tectonic fetches packages on first use and caches them per user.
	if (result.Env.Container || result.Env.CI) && hints.IsDefaultEngine(result.Engine.Command) {
		result.Warnings = append(result.Warnings,
			"Container/CI detected. Tectonic downloads packages on first run; cache its directory between runs")
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer(getenv func(string) string) (bool, string) {
	// Explicit override (highest priority)
	if getenv("RESUME_CONTAINER") == "1" {
		return true, "RESUME_CONTAINER=1"
	}
	// Docker
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true, "/.dockerenv"
	}
	// Podman / systemd-nspawn / general container indicator
	if v := getenv("container"); v != "" {
		return true, "container=" + v
	}
	// Kubernetes
	if getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies temp and output directories are writable.
func checkSystem(result *doctorResult) {
	tmpDir := os.TempDir()
	if err := probeWritable(tmpDir); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", tmpDir))
	} else {
		result.System.TempWritable = true
	}

	dir := result.System.OutputDir
	if !fileutil.DirExists(dir) {
		// Created on first build; check the nearest existing parent instead.
		dir = existingParent(dir)
	}
	if err := probeWritable(dir); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Output directory not writable: %s", result.System.OutputDir))
	} else {
		result.System.OutputWritable = true
	}
}

// probeWritable creates and removes a file in dir.
func probeWritable(dir string) error {
	f, err := os.CreateTemp(dir, "resume-doctor-*")
	if err != nil {
		return err
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}

// existingParent returns the closest ancestor of dir that exists.
func existingParent(dir string) string {
	for {
		parent := filepath.Dir(dir)
		if fileutil.DirExists(parent) || parent == dir {
			return parent
		}
		dir = parent
	}
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "resume doctor")
	fmt.Fprintln(w)

	// Engine section
	fmt.Fprintln(w, "LaTeX engine")
	if r.Engine.Found {
		fmt.Fprintf(w, "  [OK] %s found at %s\n", r.Engine.Command, r.Engine.Path)
		if r.Engine.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", r.Engine.Version)
		}
	} else {
		fmt.Fprintf(w, "  [ERROR] %s not found\n", r.Engine.Command)
	}
	fmt.Fprintln(w)

	// Assets section
	fmt.Fprintln(w, "Assets")
	if r.Assets.BasePath == "" {
		fmt.Fprintln(w, "  [OK] Asset path: embedded templates only")
	} else {
		fmt.Fprintf(w, "  [OK] Asset path: %s\n", r.Assets.BasePath)
		for _, l := range r.Assets.Links {
			fmt.Fprintf(w, "  [OK] Link: %s\n", l)
		}
		for _, l := range r.Assets.Missing {
			fmt.Fprintf(w, "  [WARN] Missing: %s\n", l)
		}
	}
	if len(r.Assets.Templates) > 0 {
		fmt.Fprintf(w, "  [OK] Templates: %s\n", strings.Join(r.Assets.Templates, ", "))
	}
	fmt.Fprintln(w)

	// Environment section
	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	// System section
	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	if r.System.OutputWritable {
		fmt.Fprintf(w, "  [OK] Output directory: %s writable\n", r.System.OutputDir)
	} else {
		fmt.Fprintf(w, "  [ERROR] Output directory: %s not writable\n", r.System.OutputDir)
	}
	fmt.Fprintln(w)

	// Warnings
	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	// Errors
	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, e := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", e)
		}
		fmt.Fprintln(w)
	}

	// Final status
	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: READY")
	case "warnings":
		fmt.Fprintln(w, "Status: READY (with warnings)")
	default:
		fmt.Fprintln(w, "Status: NOT READY")
	}
}
