package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"
)

// testNow is the fixed clock used by CLI tests.
var testNow = time.Date(2025, time.March, 7, 9, 30, 0, 0, time.UTC)

// engineStub implements resume.CommandRunner without starting processes.
// It writes <dir>/<stem>.pdf for the last argument unless Err is set.
type engineStub struct {
	Stdout string
	Stderr string
	Err    error

	mu    sync.Mutex
	calls [][]string
}

func (e *engineStub) Run(_ context.Context, dir, name string, args ...string) (string, string, error) {
	e.mu.Lock()
	e.calls = append(e.calls, append([]string{name}, args...))
	e.mu.Unlock()

	if e.Err != nil {
		return e.Stdout, e.Stderr, e.Err
	}
	if dir != "" && len(args) > 0 {
		tex := args[len(args)-1]
		pdf := filepath.Join(dir, strings.TrimSuffix(tex, filepath.Ext(tex))+".pdf")
		if err := os.WriteFile(pdf, []byte("%PDF-1.5"), 0644); err != nil {
			return "", "", err
		}
	}
	return e.Stdout, e.Stderr, nil
}

func (e *engineStub) Calls() [][]string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([][]string(nil), e.calls...)
}

// testEnv bundles an Environment with its captured output.
type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	engine *engineStub
}

// newTestEnv returns an Environment with buffers, a fixed clock, the given
// variables and an engine stub found at /usr/bin/<name>.
func newTestEnv(vars map[string]string) *testEnv {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	engine := &engineStub{Stdout: "tectonic 0.15.0\n"}

	environ := make([]string, 0, len(vars))
	for k, v := range vars {
		environ = append(environ, k+"="+v)
	}
	sort.Strings(environ)

	return &testEnv{
		Environment: &Environment{
			Now:     func() time.Time { return testNow },
			Stdout:  stdout,
			Stderr:  stderr,
			Getenv:  func(k string) string { return vars[k] },
			Environ: func() []string { return environ },
			LookPath: func(name string) (string, error) {
				if name == "tectonic" || name == "xelatex" {
					return "/usr/bin/" + name, nil
				}
				return "", &exec.Error{Name: name, Err: exec.ErrNotFound}
			},
			Runner: engine,
		},
		stdout: stdout,
		stderr: stderr,
		engine: engine,
	}
}

// writeDataDir creates a section directory with personal and experience files.
func writeDataDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	files := map[string]string{
		"personal.yaml": "first_name: Jane\nlast_name: Doe\nemail: jane@example.com\n",
		"experience.yaml": "- title: Engineer\n" +
			"  organization: Acme & Co\n" +
			"  period: 2021 -- now\n" +
			"  highlights:\n" +
			"    - Cut build time by *40%*\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}
	return dir
}

// errStub is returned by engine stubs simulating a failed run.
var errStub = errors.New("exit status 1")
