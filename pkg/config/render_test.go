// Test Type: Unit Test
// Description: Tests for rendering the effective configuration

package config_test

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fezjo/basrs/pkg/config"
	"github.com/fezjo/basrs/pkg/errors"
)

func TestRender_RoundTrip(t *testing.T) {
	for _, format := range []string{config.FormatTOML, config.FormatYAML} {
		t.Run(format, func(t *testing.T) {
			isolate(t)
			cfg := config.Default()
			cfg.Shell = "zsh"
			cfg.Timeout = 90 * time.Second

			out, err := config.Render(cfg, format)
			require.NoError(t, err)
			assert.Contains(t, string(out), "1m30s")

			path := writeFile(t, filepath.Join(t.TempDir(), "config."+format), string(out))
			loaded, err := config.Load(config.LoadOptions{File: path})
			require.NoError(t, err)
			assert.Equal(t, cfg, loaded)
		})
	}
}

func TestRender_UnknownFormat(t *testing.T) {
	_, err := config.Render(config.Default(), "ini")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestTemplate(t *testing.T) {
	tmpl := config.Template()

	for _, line := range strings.Split(tmpl, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || trimmed == "[ignore]" || trimmed == "[fish]" {
			continue
		}
		assert.True(t, strings.HasPrefix(trimmed, "#"), "uncommented line %q", line)
	}

	// Saving the template unchanged keeps the defaults.
	isolate(t)
	path := writeFile(t, filepath.Join(t.TempDir(), "config.toml"), tmpl)
	cfg, err := config.Load(config.LoadOptions{File: path})
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}
