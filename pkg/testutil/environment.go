// pkg/testutil/environment.go
// DEPENDENCIES: adrg/xdg
// PURPOSE: Isolate tests from the user's home, config and state dirs

package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
)

// TestEnvironment is a throwaway home with its own XDG directories.
type TestEnvironment struct {
	Root       string
	HomeDir    string
	ConfigHome string
	StateHome  string

	t *testing.T
}

// NewTestEnvironment points HOME and the XDG variables at a temp dir for
// the duration of the test.
func NewTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()

	root := t.TempDir()
	env := &TestEnvironment{
		Root:       root,
		HomeDir:    filepath.Join(root, "home"),
		ConfigHome: filepath.Join(root, "home", ".config"),
		StateHome:  filepath.Join(root, "home", ".local", "state"),
		t:          t,
	}
	for _, dir := range []string{env.HomeDir, env.ConfigHome, env.StateHome} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create %s: %v", dir, err)
		}
	}

	t.Setenv("HOME", env.HomeDir)
	t.Setenv("XDG_CONFIG_HOME", env.ConfigHome)
	t.Setenv("XDG_CONFIG_DIRS", filepath.Join(root, "etc", "xdg"))
	t.Setenv("XDG_STATE_HOME", env.StateHome)
	xdg.Reload()
	// t.Setenv restores the variables before cleanups run
	t.Cleanup(xdg.Reload)

	return env
}

// WriteScript creates a script in the environment root.
func (env *TestEnvironment) WriteScript(name, body string) string {
	env.t.Helper()
	return CreateFile(env.t, env.Root, name, body)
}

// WriteConfig saves the user config file basrs looks up by default.
func (env *TestEnvironment) WriteConfig(name, body string) string {
	env.t.Helper()
	return CreateFile(env.t, filepath.Join(env.ConfigHome, "basrs"), name, body)
}

// SessionEnv is a minimal environment for a bash session: the caller's
// PATH, the test HOME and any extra NAME=value pairs.
func (env *TestEnvironment) SessionEnv(extra ...string) []string {
	vars := []string{
		"PATH=" + os.Getenv("PATH"),
		"HOME=" + env.HomeDir,
	}
	return append(vars, extra...)
}
