package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

// Sentinel errors for command-line parsing.
var (
	ErrInvalidFlags   = errors.New("invalid flags")
	ErrUnexpectedArgs = errors.New("unexpected arguments")

	// errHelpShown signals that usage was printed on request.
	errHelpShown = errors.New("help shown")
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// buildFlags holds all flags for the build command.
type buildFlags struct {
	common    commonFlags
	data      string
	template  string
	output    string
	outputDir string
	sections  []string
	engine    string
	timeout   string
	assetPath string
	date      string
	texOnly   bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing and engine output")
}

// parseBuildFlags parses build command arguments.
// Returns errHelpShown after printing usage for -h/--help.
func parseBuildFlags(args []string, stderr io.Writer) (*buildFlags, error) {
	f := &buildFlags{}
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	addCommonFlags(fs, &f.common)
	fs.StringVarP(&f.data, "data", "d", "", "section directory or YAML file")
	fs.StringVarP(&f.template, "template", "t", "", "template name")
	fs.StringVarP(&f.output, "output", "o", "", "output base name (no extension)")
	fs.StringVar(&f.outputDir, "output-dir", "", "directory for .tex and .pdf files")
	fs.StringSliceVar(&f.sections, "sections", nil, "section load order, comma separated")
	fs.StringVar(&f.engine, "engine", "", "LaTeX engine command")
	fs.StringVar(&f.timeout, "timeout", "", "engine timeout (e.g. 90s, 5m)")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.StringVar(&f.date, "date", "", "document date: literal, auto or auto:FORMAT")
	fs.BoolVar(&f.texOnly, "tex-only", false, "write the .tex file and skip the engine")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printBuildUsage(stderr)
			return nil, errHelpShown
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidFlags, err)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: %s (use --data for the content location)",
			ErrUnexpectedArgs, strings.Join(fs.Args(), " "))
	}
	if f.common.quiet && f.common.verbose {
		return nil, fmt.Errorf("%w: --quiet and --verbose are mutually exclusive", ErrInvalidFlags)
	}

	return f, nil
}
