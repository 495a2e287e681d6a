// Package fileutil provides file, directory and symlink helpers for the
// build directory.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for file utility operations.
var (
	ErrEmptyPath     = errors.New("path cannot be empty")
	ErrNotADirectory = errors.New("not a directory")
	ErrInvalidEntry  = errors.New("entry name contains path separator or null byte")
)

// Permission constants.
const (
	DirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	FilePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists returns true if the path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "awesome-cv" -> false (name)
//   - "./cv.yaml" -> true (relative path)
//   - "/etc/resume/cv.yaml" -> true (absolute)
//   - "C:\cv\cv.yaml" -> true (Windows)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// EnsureDir creates dir and its parents if needed.
// Returns ErrNotADirectory if dir exists as a file.
func EnsureDir(dir string) error {
	if dir == "" {
		return ErrEmptyPath
	}
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotADirectory, dir)
	}
	if err := os.MkdirAll(dir, DirPermissions); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	return nil
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(path, content string) error {
	if path == "" {
		return ErrEmptyPath
	}
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(content), FilePermissions); err != nil { // #nosec G306 -- output is meant to be shared
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// LinkEntries creates symlinks dstDir/name -> srcDir/name for each name that
// exists in srcDir and does not already exist in dstDir. It returns the
// paths of the links it created, so the caller can remove exactly those.
// On error, links created so far are removed before returning.
func LinkEntries(srcDir, dstDir string, names []string) ([]string, error) {
	absSrc, err := filepath.Abs(srcDir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", srcDir, err)
	}

	created := make([]string, 0, len(names))
	for _, name := range names {
		if name == "" || strings.ContainsAny(name, "/\\\x00") {
			RemoveLinks(created)
			return nil, fmt.Errorf("%w: %q", ErrInvalidEntry, name)
		}

		target := filepath.Join(absSrc, name)
		if _, err := os.Stat(target); err != nil {
			continue
		}

		link := filepath.Join(dstDir, name)
		if _, err := os.Lstat(link); err == nil {
			continue
		}

		if err := os.Symlink(target, link); err != nil {
			RemoveLinks(created)
			return nil, fmt.Errorf("linking %s: %w", name, err)
		}
		created = append(created, link)
	}

	return created, nil
}

// RemoveLinks removes the given paths if they are still symlinks.
// Regular files and directories are left alone.
func RemoveLinks(links []string) {
	for _, link := range links {
		info, err := os.Lstat(link)
		if err != nil || info.Mode()&os.ModeSymlink == 0 {
			continue
		}
		// Best-effort cleanup; a leftover link is harmless for the next build.
		_ = os.Remove(link)
	}
}
