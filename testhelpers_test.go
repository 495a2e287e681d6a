package resume

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// runCall records one fakeRunner invocation.
type runCall struct {
	Dir   string
	Name  string
	Args  []string
	Links []string // entries that were symlinks in Dir during the run
}

// fakeRunner implements CommandRunner without starting processes.
// With WritePDF set it creates <dir>/<stem>.pdf for the last argument.
type fakeRunner struct {
	Stdout   string
	Stderr   string
	Err      error
	WritePDF bool
	Block    bool // wait for ctx to end and return its error

	mu    sync.Mutex
	calls []runCall
}

func (f *fakeRunner) Run(ctx context.Context, dir, name string, args ...string) (string, string, error) {
	call := runCall{Dir: dir, Name: name, Args: append([]string(nil), args...)}
	if entries, err := os.ReadDir(dir); err == nil {
		for _, e := range entries {
			if e.Type()&os.ModeSymlink != 0 {
				call.Links = append(call.Links, e.Name())
			}
		}
	}

	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()

	if f.Block {
		<-ctx.Done()
		return "", "", ctx.Err()
	}
	if f.Err != nil {
		return f.Stdout, f.Stderr, f.Err
	}
	if f.WritePDF && len(args) > 0 {
		tex := args[len(args)-1]
		pdf := filepath.Join(dir, strings.TrimSuffix(tex, filepath.Ext(tex))+".pdf")
		if err := os.WriteFile(pdf, []byte("%PDF-1.5"), 0644); err != nil {
			return "", "", err
		}
	}
	return f.Stdout, f.Stderr, nil
}

func (f *fakeRunner) Calls() []runCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]runCall(nil), f.calls...)
}

// loadTestData loads the fixture sections from testdata/data.
func loadTestData(t *testing.T) *Data {
	t.Helper()

	data, err := LoadData(filepath.Join("testdata", "data"), nil)
	if err != nil {
		t.Fatalf("LoadData(testdata/data) error: %v", err)
	}
	return data
}

// assetFixture creates an asset directory with a class file and fonts dir.
// Skips the test when symlinks are not permitted.
func assetFixture(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "awesome-cv.cls"), []byte("%cls"), 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.Mkdir(filepath.Join(dir, "fonts"), 0755); err != nil {
		t.Fatalf("setup: %v", err)
	}

	probe := filepath.Join(t.TempDir(), "probe")
	if err := os.Symlink(dir, probe); err != nil {
		t.Skipf("symlinks not permitted: %v", err)
	}
	return dir
}
