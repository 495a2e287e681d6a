package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	resume "github.com/alnah/go-resume"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now      func() time.Time
	Stdout   io.Writer
	Stderr   io.Writer
	Getenv   func(string) string
	Environ  func() []string
	LookPath func(string) (string, error)
	Runner   resume.CommandRunner // Engine runner shared by build and doctor
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:      time.Now,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Getenv:   os.Getenv,
		Environ:  os.Environ,
		LookPath: exec.LookPath,
		Runner:   &resume.ExecRunner{},
	}
}

// lineLogger returns a printf-style logger writing one line per call to w.
// The same shape serves maxprocs.Logger and resume.Logger.
func lineLogger(w io.Writer) func(format string, args ...any) {
	return func(format string, args ...any) {
		fmt.Fprintf(w, format+"\n", args...)
	}
}

// discardLogger drops all messages.
func discardLogger(string, ...any) {}
