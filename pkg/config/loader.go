package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/fezjo/basrs/pkg/errors"
	"github.com/fezjo/basrs/pkg/logging"
)

// EnvPrefix marks environment variables read as configuration.
// A double underscore separates nested keys: BASRS_IGNORE__NAMES.
const EnvPrefix = "BASRS_"

// LoadOptions select the sources layered over the defaults.
type LoadOptions struct {
	// File replaces the XDG lookup when set.
	File string
	// Overrides are flat koanf keys set from command-line flags.
	Overrides map[string]interface{}
}

// Load builds the effective configuration.
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")

	// 1. Embedded defaults
	k, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	// 2. User file
	path := opts.File
	if path == "" {
		path = UserConfigPath()
	}
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			if opts.File != "" {
				return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file %s", path)
			}
		} else {
			parser := koanf.Parser(toml.Parser())
			if ext := strings.ToLower(filepath.Ext(path)); ext == ".yaml" || ext == ".yml" {
				parser = yaml.Parser()
			}
			if err := k.Load(file.Provider(path), parser); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", path)
			}
			logger.Debug().Str("path", path).Msg("Loaded user config")
		}
	}

	// 3. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Flags
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply flag overrides")
		}
	}

	cfg, err := unmarshal(k)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger.Debug().Str("shell", cfg.Shell).Str("order", cfg.Order).Msg("Configuration loaded")
	return cfg, nil
}

// Default returns the embedded defaults alone.
func Default() *Config {
	k, err := loadDefaults()
	if err == nil {
		var cfg *Config
		if cfg, err = unmarshal(k); err == nil {
			return cfg
		}
	}
	panic("embedded defaults are invalid: " + err.Error())
}

func loadDefaults() (*koanf.Koanf, error) {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}
	return k, nil
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to unmarshal configuration")
	}
	return &cfg, nil
}

// UserConfigPath returns the first existing user config file, or the
// TOML location when none exists yet.
func UserConfigPath() string {
	for _, name := range []string{"config.toml", "config.yaml", "config.yml"} {
		if p, err := xdg.SearchConfigFile(filepath.Join("basrs", name)); err == nil {
			return p
		}
	}
	return filepath.Join(xdg.ConfigHome, "basrs", "config.toml")
}

// envKey maps BASRS_LOG_FILE to log_file and BASRS_IGNORE__NAMES to
// ignore.names.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}
