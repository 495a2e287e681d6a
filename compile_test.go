package resume

// Notes:
// - ExecRunner is exercised through the helper-process pattern: the test
//   binary re-executes itself as a fake engine. Windows process-group kill
//   is not covered.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func nopLogf(string, ...any) {}

// writeTex creates <dir>/resume.tex and returns its path.
func writeTex(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "resume.tex")
	if err := os.WriteFile(path, []byte(`\documentclass{article}`), 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

// ---------------------------------------------------------------------------
// TestCompiler - Engine invocation with a fake runner
// ---------------------------------------------------------------------------

func TestCompiler_Success(t *testing.T) {
	t.Parallel()

	texPath := writeTex(t)
	runner := &fakeRunner{Stdout: "Writing `resume.pdf`", WritePDF: true}
	c := &compiler{
		runner:  runner,
		command: "tectonic",
		args:    []string{"--keep-logs"},
		timeout: time.Minute,
		logf:    nopLogf,
	}

	pdfPath, out, err := c.compile(context.Background(), texPath)
	if err != nil {
		t.Fatalf("compile() error: %v", err)
	}

	if want := filepath.Join(filepath.Dir(texPath), "resume.pdf"); pdfPath != want {
		t.Errorf("pdfPath = %q, want %q", pdfPath, want)
	}
	if out != runner.Stdout {
		t.Errorf("output = %q, want %q", out, runner.Stdout)
	}

	calls := runner.Calls()
	if len(calls) != 1 {
		t.Fatalf("runner called %d times, want 1", len(calls))
	}
	if calls[0].Dir != filepath.Dir(texPath) {
		t.Errorf("Dir = %q, want %q", calls[0].Dir, filepath.Dir(texPath))
	}
	if calls[0].Name != "tectonic" {
		t.Errorf("Name = %q, want tectonic", calls[0].Name)
	}
	if want := []string{"--keep-logs", "resume.tex"}; !reflect.DeepEqual(calls[0].Args, want) {
		t.Errorf("Args = %v, want %v", calls[0].Args, want)
	}
}

func TestCompiler_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		runner     *fakeRunner
		wantErr    error
		wantSubstr string
	}{
		{
			name:    "binary not on PATH",
			runner:  &fakeRunner{Err: &exec.Error{Name: "tectonic", Err: exec.ErrNotFound}},
			wantErr: ErrEngineNotFound,
		},
		{
			name:    "binary path does not exist",
			runner:  &fakeRunner{Err: &os.PathError{Op: "fork/exec", Path: "/no/tectonic", Err: os.ErrNotExist}},
			wantErr: ErrEngineNotFound,
		},
		{
			name: "non-zero exit keeps stderr tail",
			runner: &fakeRunner{
				Stderr: "note: running TeX\nerror: resume.tex:12: Undefined control sequence\n",
				Err:    errors.New("exit status 1"),
			},
			wantErr:    ErrCompile,
			wantSubstr: "Undefined control sequence",
		},
		{
			name:       "clean exit without PDF",
			runner:     &fakeRunner{},
			wantErr:    ErrCompile,
			wantSubstr: "wrote no resume.pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := &compiler{runner: tt.runner, command: "tectonic", timeout: time.Minute, logf: nopLogf}
			_, _, err := c.compile(context.Background(), writeTex(t))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("compile() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantSubstr != "" && !strings.Contains(err.Error(), tt.wantSubstr) {
				t.Errorf("error = %q, want containing %q", err, tt.wantSubstr)
			}
		})
	}
}

func TestCompiler_Timeout(t *testing.T) {
	t.Parallel()

	c := &compiler{
		runner:  &fakeRunner{Block: true},
		command: "tectonic",
		timeout: 20 * time.Millisecond,
		logf:    nopLogf,
	}

	_, _, err := c.compile(context.Background(), writeTex(t))
	if !errors.Is(err, ErrCompileTimeout) {
		t.Errorf("compile() error = %v, want ErrCompileTimeout", err)
	}
}

func TestCompiler_ParentCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := &compiler{runner: &fakeRunner{Block: true}, command: "tectonic", timeout: time.Minute, logf: nopLogf}
	_, _, err := c.compile(ctx, writeTex(t))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("compile() error = %v, want context.Canceled", err)
	}
}

func TestCompiler_AssetLinks(t *testing.T) {
	t.Parallel()

	assetDir := assetFixture(t)
	texPath := writeTex(t)
	runner := &fakeRunner{WritePDF: true}
	c := &compiler{
		runner:   runner,
		command:  "tectonic",
		assetDir: assetDir,
		links:    []string{"awesome-cv.cls", "fonts", "missing.sty"},
		logf:     nopLogf,
	}

	if _, _, err := c.compile(context.Background(), texPath); err != nil {
		t.Fatalf("compile() error: %v", err)
	}

	if want := []string{"awesome-cv.cls", "fonts"}; !reflect.DeepEqual(runner.Calls()[0].Links, want) {
		t.Errorf("links during run = %v, want %v", runner.Calls()[0].Links, want)
	}
	for _, name := range []string{"awesome-cv.cls", "fonts"} {
		if _, err := os.Lstat(filepath.Join(filepath.Dir(texPath), name)); !os.IsNotExist(err) {
			t.Errorf("%s still present after compile", name)
		}
	}
}

func TestCompiler_AssetLinksRemovedOnFailure(t *testing.T) {
	t.Parallel()

	assetDir := assetFixture(t)
	texPath := writeTex(t)
	c := &compiler{
		runner:   &fakeRunner{Err: errors.New("exit status 1")},
		command:  "tectonic",
		assetDir: assetDir,
		links:    []string{"awesome-cv.cls"},
		logf:     nopLogf,
	}

	if _, _, err := c.compile(context.Background(), texPath); !errors.Is(err, ErrCompile) {
		t.Fatalf("compile() error = %v, want ErrCompile", err)
	}
	if _, err := os.Lstat(filepath.Join(filepath.Dir(texPath), "awesome-cv.cls")); !os.IsNotExist(err) {
		t.Error("link left behind after failed compile")
	}
}

func TestLastLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"", 3, ""},
		{"\n\n", 3, ""},
		{"a\nb\nc\n", 2, "b\nc"},
		{"a\nb", 5, "a\nb"},
	}

	for _, tt := range tests {
		if got := lastLines(tt.in, tt.n); got != tt.want {
			t.Errorf("lastLines(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestExecRunner - Real subprocesses via the helper process
// ---------------------------------------------------------------------------

// TestHelperProcess is not a real test. It acts as a fake engine when the
// test binary is re-executed with RESUME_HELPER_PROCESS set.
func TestHelperProcess(t *testing.T) {
	mode := os.Getenv("RESUME_HELPER_PROCESS")
	if mode == "" {
		return
	}

	switch mode {
	case "pdf":
		tex := os.Args[len(os.Args)-1]
		_ = os.WriteFile(strings.TrimSuffix(tex, ".tex")+".pdf", []byte("%PDF"), 0644)
		fmt.Fprint(os.Stdout, "wrote pdf")
		os.Exit(0)
	case "fail":
		fmt.Fprint(os.Stderr, "error: boom")
		os.Exit(1)
	case "hang":
		time.Sleep(time.Minute)
		os.Exit(0)
	}
	os.Exit(2)
}

// helperArgs re-executes the test binary as an engine.
func helperArgs(texFile string) []string {
	return []string{"-test.run=^TestHelperProcess$", "--", texFile}
}

func TestExecRunner(t *testing.T) {
	exe, err := os.Executable()
	if err != nil {
		t.Skipf("cannot locate test binary: %v", err)
	}

	t.Run("captures output and runs in dir", func(t *testing.T) {
		t.Setenv("RESUME_HELPER_PROCESS", "pdf")

		dir := t.TempDir()
		stdout, _, err := (&ExecRunner{}).Run(context.Background(), dir, exe, helperArgs("resume.tex")...)
		if err != nil {
			t.Fatalf("Run() error: %v", err)
		}
		if !strings.Contains(stdout, "wrote pdf") {
			t.Errorf("stdout = %q", stdout)
		}
		if _, err := os.Stat(filepath.Join(dir, "resume.pdf")); err != nil {
			t.Errorf("engine did not run in dir: %v", err)
		}
	})

	t.Run("non-zero exit returns stderr", func(t *testing.T) {
		t.Setenv("RESUME_HELPER_PROCESS", "fail")

		_, stderr, err := (&ExecRunner{}).Run(context.Background(), t.TempDir(), exe, helperArgs("resume.tex")...)
		if err == nil {
			t.Fatal("Run() error = nil, want exit error")
		}
		if !strings.Contains(stderr, "boom") {
			t.Errorf("stderr = %q", stderr)
		}
	})

	t.Run("context cancel kills the engine", func(t *testing.T) {
		t.Setenv("RESUME_HELPER_PROCESS", "hang")

		ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
		defer cancel()

		start := time.Now()
		_, _, err := (&ExecRunner{}).Run(ctx, t.TempDir(), exe, helperArgs("resume.tex")...)
		if err == nil {
			t.Fatal("Run() error = nil, want error after cancel")
		}
		if elapsed := time.Since(start); elapsed > 10*time.Second {
			t.Errorf("Run() returned after %s, want prompt kill", elapsed)
		}
	})

	t.Run("missing binary", func(t *testing.T) {
		c := &compiler{
			runner:  &ExecRunner{},
			command: "resume-test-no-such-engine",
			timeout: time.Minute,
			logf:    nopLogf,
		}
		_, _, err := c.compile(context.Background(), writeTex(t))
		if !errors.Is(err, ErrEngineNotFound) {
			t.Errorf("compile() error = %v, want ErrEngineNotFound", err)
		}
	})
}
