// Package commands provides high-level command implementations for basrs.
//
// This package contains the command orchestration layer that coordinates
// between the CLI interface and the capture, diff and serialization
// packages.
//
// Each command is implemented in its own subdirectory:
//   - translate/ - Translate: run a script or command, emit shell statements
//   - genconfig/ - GenConfig: print or save a commented config template
//
// This file re-exports the command functions so the CLI depends on one
// package.
package commands

import (
	"context"

	"github.com/fezjo/basrs/pkg/commands/genconfig"
	"github.com/fezjo/basrs/pkg/commands/translate"
)

// Translate runs a target in bash and renders its changes for another shell.
type TranslateOptions = translate.TranslateOptions
type TranslateResult = translate.TranslateResult

func Translate(ctx context.Context, opts TranslateOptions) (*TranslateResult, error) {
	return translate.Translate(ctx, opts)
}

// GenConfig outputs or writes the commented default configuration.
type GenConfigOptions = genconfig.GenConfigOptions
type GenConfigResult = genconfig.GenConfigResult

func GenConfig(opts GenConfigOptions) (*GenConfigResult, error) {
	return genconfig.GenConfig(opts)
}
