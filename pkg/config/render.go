package config

import (
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/fezjo/basrs/pkg/errors"
)

// Output formats understood by Render.
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

// rendered mirrors Config with the timeout spelled as a duration string,
// the form Load accepts back.
type rendered struct {
	Shell       string `toml:"shell" yaml:"shell"`
	Interpreter string `toml:"interpreter" yaml:"interpreter"`
	Login       bool   `toml:"login" yaml:"login"`
	Timeout     string `toml:"timeout" yaml:"timeout"`
	Order       string `toml:"order" yaml:"order"`
	Annotate    bool   `toml:"annotate" yaml:"annotate"`
	LogToFile   bool   `toml:"log_to_file" yaml:"log_to_file"`
	LogFile     string `toml:"log_file" yaml:"log_file"`
	Ignore      Ignore `toml:"ignore" yaml:"ignore"`
	Fish        Fish   `toml:"fish" yaml:"fish"`
}

// Render serializes cfg as TOML or YAML.
func Render(cfg *Config, format string) ([]byte, error) {
	r := rendered{
		Shell:       cfg.Shell,
		Interpreter: cfg.Interpreter,
		Login:       cfg.Login,
		Timeout:     cfg.Timeout.String(),
		Order:       cfg.Order,
		Annotate:    cfg.Annotate,
		LogToFile:   cfg.LogToFile,
		LogFile:     cfg.LogFile,
		Ignore:      cfg.Ignore,
		Fish:        cfg.Fish,
	}

	switch strings.ToLower(format) {
	case "", FormatTOML:
		return toml.Marshal(r)
	case FormatYAML, "yml":
		return yaml.Marshal(r)
	}
	return nil, errors.Newf(errors.ErrInvalidInput, "unknown format %q (want %s or %s)", format, FormatTOML, FormatYAML)
}

// Template returns the defaults file with every value commented out, ready
// to be saved as a user config.
func Template() string {
	return commentOutConfigValues(DefaultsContent())
}

// commentOutConfigValues takes the TOML content and comments out all non-comment, non-blank lines
// that contain configuration values (assignments)
func commentOutConfigValues(content string) string {
	lines := strings.Split(content, "\n")
	var result []string

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		// Keep blank lines as-is
		if trimmed == "" {
			result = append(result, line)
			continue
		}

		// Keep lines that are already comments
		if strings.HasPrefix(trimmed, "#") {
			result = append(result, line)
			continue
		}

		// Keep section headers (e.g., [ignore], [fish]) as-is
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") && !strings.Contains(trimmed, "=") {
			result = append(result, line)
			continue
		}

		// Comment out configuration value lines
		result = append(result, "# "+line)
	}

	return strings.Join(result, "\n")
}
