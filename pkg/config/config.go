package config

import (
	"time"

	"github.com/fezjo/basrs/pkg/errors"
	"github.com/fezjo/basrs/pkg/shells"
	"github.com/fezjo/basrs/pkg/snapshot"
)

// Config is the effective configuration of one invocation.
type Config struct {
	Shell       string        `koanf:"shell" toml:"shell" yaml:"shell"`
	Interpreter string        `koanf:"interpreter" toml:"interpreter" yaml:"interpreter"`
	Login       bool          `koanf:"login" toml:"login" yaml:"login"`
	Timeout     time.Duration `koanf:"timeout" toml:"timeout" yaml:"timeout"`
	Order       string        `koanf:"order" toml:"order" yaml:"order"`
	Annotate    bool          `koanf:"annotate" toml:"annotate" yaml:"annotate"`
	LogToFile   bool          `koanf:"log_to_file" toml:"log_to_file" yaml:"log_to_file"`
	LogFile     string        `koanf:"log_file" toml:"log_file" yaml:"log_file"`
	Ignore      Ignore        `koanf:"ignore" toml:"ignore" yaml:"ignore"`
	Fish        Fish          `koanf:"fish" toml:"fish" yaml:"fish"`
}

// Ignore lists variables that are never reported as changes.
type Ignore struct {
	Names    []string `koanf:"names" toml:"names" yaml:"names"`
	Prefixes []string `koanf:"prefixes" toml:"prefixes" yaml:"prefixes"`
}

// Fish holds settings of the fish dialect.
type Fish struct {
	ReadOnly []string `koanf:"readonly" toml:"readonly" yaml:"readonly"`
}

// Matcher returns the variable filter applied to both snapshots.
func (c *Config) Matcher() snapshot.Ignore {
	return snapshot.Ignore{Names: c.Ignore.Names, Prefixes: c.Ignore.Prefixes}
}

// ShellSettings returns the dialect settings.
func (c *Config) ShellSettings() shells.Settings {
	return shells.Settings{FishReadOnly: c.Fish.ReadOnly}
}

// Validate checks values no decoder hook can catch.
func (c *Config) Validate() error {
	if _, err := shells.Lookup(c.Shell, c.ShellSettings()); err != nil {
		return err
	}
	if _, err := shells.ParseOrder(c.Order); err != nil {
		return errors.Wrap(err, errors.ErrConfigValid, "invalid order")
	}
	if c.Interpreter == "" {
		return errors.New(errors.ErrConfigValid, "interpreter must not be empty")
	}
	if c.Timeout < 0 {
		return errors.Newf(errors.ErrConfigValid, "timeout must not be negative (got %s)", c.Timeout)
	}
	return nil
}
