package genconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fezjo/basrs/pkg/config"
	"github.com/fezjo/basrs/pkg/logging"
)

// GenConfigOptions holds options for the config template command
type GenConfigOptions struct {
	// Write saves the template instead of only returning it.
	Write bool
	// Path overrides the user config location.
	Path string
}

// GenConfigResult is the template and where it was saved.
type GenConfigResult struct {
	ConfigContent string
	FilesWritten  []string
}

// GenConfig outputs or writes a commented copy of the default configuration
func GenConfig(opts GenConfigOptions) (*GenConfigResult, error) {
	logger := logging.GetLogger("commands.genconfig")

	result := &GenConfigResult{
		ConfigContent: config.Template(),
		FilesWritten:  []string{},
	}

	if !opts.Write {
		logger.Debug().Msg("Outputting config template to stdout")
		return result, nil
	}

	targetPath := opts.Path
	if targetPath == "" {
		targetPath = config.UserConfigPath()
	}

	if _, err := os.Stat(targetPath); err == nil {
		logger.Warn().Str("path", targetPath).Msg("Config file already exists, skipping")
		return result, nil
	}

	dir := filepath.Dir(targetPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return result, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	if err := os.WriteFile(targetPath, []byte(result.ConfigContent), 0644); err != nil {
		return result, fmt.Errorf("failed to write config to %s: %w", targetPath, err)
	}

	logger.Info().Str("path", targetPath).Msg("Written config file")
	result.FilesWritten = append(result.FilesWritten, targetPath)
	return result, nil
}
