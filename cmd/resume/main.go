package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Configure GOMAXPROCS with conditional logging
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if hasVerboseFlag(os.Args[1:]) {
		_, _ = maxprocs.Set(maxprocs.Logger(lineLogger(os.Stderr)))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(discardLogger))
	}

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches to a command and returns the process exit code.
func runMain(args []string, env *Environment) int {
	ctx, stop := notifyContext(context.Background())
	defer stop()

	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]
	if len(cmd) > 0 && cmd[0] == '-' && !isTopLevelFlag(cmd) {
		// Flags without a command mean build.
		cmd, rest = "build", args[1:]
	}

	switch cmd {
	case "build":
		return runBuildCmd(ctx, rest, env)
	case "doctor":
		return runDoctorCmd(ctx, rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "go-resume %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		return runHelp(rest, env)
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}
}

// runBuildCmd runs a build and reports its error.
func runBuildCmd(ctx context.Context, args []string, env *Environment) int {
	if err := runBuild(ctx, args, env); err != nil {
		if errors.Is(err, errHelpShown) {
			return ExitSuccess
		}
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// hasVerboseFlag reports whether -v or --verbose appears in args.
// Used before flag parsing to configure automaxprocs logging.
func hasVerboseFlag(args []string) bool {
	for _, a := range args {
		if a == "--" {
			return false
		}
		if a == "-v" || a == "--verbose" {
			return true
		}
	}
	return false
}

// isTopLevelFlag reports whether arg is a flag handled by runMain itself
// (help or version) rather than by build.
func isTopLevelFlag(arg string) bool {
	return arg == "-h" || arg == "--help" || arg == "--version"
}
