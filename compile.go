package resume

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-resume/internal/fileutil"
	"github.com/alnah/go-resume/internal/process"
)

// waitDelay bounds how long Wait blocks on engine pipes after a kill.
const waitDelay = 5 * time.Second

// maxStderrLines is how much engine stderr is kept in ErrCompile messages.
const maxStderrLines = 20

// CommandRunner abstracts command execution to enable testing without real subprocesses.
type CommandRunner interface {
	Run(ctx context.Context, dir, name string, args ...string) (stdout string, stderr string, err error)
}

// ExecRunner implements CommandRunner using os/exec.
// The command runs in its own process group, killed as a whole when ctx ends.
type ExecRunner struct{}

func (r *ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...) // #nosec G204 -- engine is user-configured
	cmd.Dir = dir
	process.Isolate(cmd)
	cmd.Cancel = func() error {
		process.KillProcessGroup(cmd.Process.Pid)
		return nil
	}
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// compiler runs the LaTeX engine on a written .tex file.
type compiler struct {
	runner   CommandRunner
	command  string
	args     []string
	timeout  time.Duration
	assetDir string   // empty: nothing to link
	links    []string // entries of assetDir linked next to the .tex file
	logf     Logger
}

// compile runs the engine on texPath inside its directory and returns the
// PDF path and engine stdout.
func (c *compiler) compile(ctx context.Context, texPath string) (pdfPath, output string, err error) {
	dir := filepath.Dir(texPath)
	texFile := filepath.Base(texPath)

	if c.assetDir != "" && len(c.links) > 0 {
		created, err := fileutil.LinkEntries(c.assetDir, dir, c.links)
		if err != nil {
			return "", "", fmt.Errorf("%w: linking assets: %v", ErrOutputWrite, err)
		}
		defer fileutil.RemoveLinks(created)
		if len(created) > 0 {
			c.logf("linked %s into %s", strings.Join(created, ", "), dir)
		}
	}

	runCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	args := make([]string, 0, len(c.args)+1)
	args = append(args, c.args...)
	args = append(args, texFile)

	c.logf("running %s %s", c.command, strings.Join(args, " "))
	stdout, stderr, err := c.runner.Run(runCtx, dir, c.command, args...)
	if err != nil {
		return "", stdout, c.classify(ctx, runCtx, err, stderr)
	}

	pdfPath = filepath.Join(dir, strings.TrimSuffix(texFile, filepath.Ext(texFile))+".pdf")
	if !fileutil.FileExists(pdfPath) {
		return "", stdout, fmt.Errorf("%w: %s exited cleanly but wrote no %s", ErrCompile, c.command, filepath.Base(pdfPath))
	}
	return pdfPath, stdout, nil
}

// classify maps a runner error to a library sentinel.
func (c *compiler) classify(parent, runCtx context.Context, err error, stderr string) error {
	switch {
	case parent.Err() != nil:
		return parent.Err()
	case errors.Is(runCtx.Err(), context.DeadlineExceeded):
		return fmt.Errorf("%w after %s", ErrCompileTimeout, c.timeout)
	case errors.Is(err, exec.ErrNotFound), isMissingExecutable(err):
		return fmt.Errorf("%w: %s", ErrEngineNotFound, c.command)
	}

	var tail string
	if lines := lastLines(stderr, maxStderrLines); lines != "" {
		tail = "\n" + lines
	}
	return fmt.Errorf("%w: %s: %v%s", ErrCompile, c.command, err, tail)
}

// isMissingExecutable reports whether err comes from starting a command
// path that does not exist.
func isMissingExecutable(err error) bool {
	var pathErr *fs.PathError
	return errors.As(err, &pathErr) && errors.Is(pathErr.Err, fs.ErrNotExist)
}

// lastLines returns the last n lines of s, trailing whitespace removed.
func lastLines(s string, n int) string {
	s = strings.TrimRight(s, "\r\n\t ")
	if s == "" {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
