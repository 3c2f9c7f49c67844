package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// CreateFile creates a file with the given content, creating parent
// directories as needed, and returns its path.
func CreateFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create file %s: %v", path, err)
	}
	return path
}

// ReadFile reads a file's content
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

// RequireShell skips the test when name is not on PATH and returns the
// resolved binary otherwise.
func RequireShell(t *testing.T, name string) string {
	t.Helper()

	path, err := exec.LookPath(name)
	if err != nil {
		t.Skipf("%s not installed", name)
	}
	return path
}

// RequireBash skips the test when bash is not on PATH.
func RequireBash(t *testing.T) {
	t.Helper()
	RequireShell(t, "bash")
}
