package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// CreateTestFile creates a test file with the given content
func CreateTestFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create parent dir: %v", err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	return path
}

// CreateTestDir creates a subdirectory under dir
func CreateTestDir(t *testing.T, dir, name string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(path, 0755); err != nil {
		t.Fatalf("failed to create test dir: %v", err)
	}

	return path
}

// CreateTestSymlink creates a symlink at dir/name pointing to target
func CreateTestSymlink(t *testing.T, dir, name, target string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.Symlink(target, path); err != nil {
		t.Fatalf("failed to create test symlink: %v", err)
	}

	return path
}

// SetModTime sets the modification time of a file
func SetModTime(t *testing.T, path string, mtime time.Time) {
	t.Helper()

	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatalf("failed to set mtime: %v", err)
	}
}

// Chmod changes the permission bits of a file
func Chmod(t *testing.T, path string, mode os.FileMode) {
	t.Helper()

	if err := os.Chmod(path, mode); err != nil {
		t.Fatalf("failed to chmod: %v", err)
	}
}
