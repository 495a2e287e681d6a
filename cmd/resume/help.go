package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: resume <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build      Render the resume to LaTeX and compile it to PDF")
	fmt.Fprintln(w, "  doctor     Check the LaTeX engine and environment")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags without a command run build.")
	fmt.Fprintln(w, "Run 'resume help <command>' for details on a specific command.")
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: resume build [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render YAML resume data with a LaTeX template and compile it to PDF.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -d, --data <path>         Section directory or single YAML file (default: data)")
	fmt.Fprintln(w, "      --sections <a,b,c>    Section load order")
	fmt.Fprintln(w, "  -t, --template <name>     Template name, .tex optional (default: awesome-cv)")
	fmt.Fprintln(w, "  -o, --output <name>       Output base name without extension (default: resume)")
	fmt.Fprintln(w, "      --output-dir <dir>    Directory for .tex and .pdf files (default: output)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Engine:")
	fmt.Fprintln(w, "      --engine <cmd>        LaTeX engine command (default: tectonic)")
	fmt.Fprintln(w, "      --timeout <dur>       Engine timeout (default: 2m)")
	fmt.Fprintln(w, "      --tex-only            Write the .tex file and skip the engine")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Assets:")
	fmt.Fprintln(w, "      --asset-path <dir>    Asset directory: templates/, awesome-cv.cls, fonts/")
	fmt.Fprintln(w, "                            (default: ./assets when it exists)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Document:")
	fmt.Fprintln(w, "      --date <s>            Date: \"auto\", \"auto:FORMAT\", or literal")
	fmt.Fprintln(w, "                            Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D")
	fmt.Fprintln(w, "                            Presets (case-insensitive): iso, european, us, long, month, short")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show timing and engine output")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  RESUME_CONFIG, RESUME_DATA, RESUME_TEMPLATE, RESUME_OUTPUT_DIR,")
	fmt.Fprintln(w, "  RESUME_ENGINE, RESUME_TIMEOUT, RESUME_ASSET_PATH")
	fmt.Fprintln(w, "  Precedence: flags > environment > config file > defaults")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  resume build")
	fmt.Fprintln(w, "  resume -d resume.yaml -t classic -o jane-doe")
	fmt.Fprintln(w, "  resume build --tex-only --date \"auto:MMMM YYYY\"")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: resume doctor [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check the LaTeX engine, assets and output locations.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --json                Machine-readable output")
	fmt.Fprintln(w, "      --engine <cmd>        LaTeX engine command to check")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom asset directory to check")
	fmt.Fprintln(w, "      --output-dir <dir>    Output directory to check")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit status is 1 when errors are found, 0 otherwise (including warnings).")
}

// runHelp prints help for a command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "build":
		printBuildUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: resume version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: resume help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
