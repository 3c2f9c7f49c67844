package translate

import (
	"context"

	"github.com/fezjo/basrs/pkg/config"
	"github.com/fezjo/basrs/pkg/diff"
	"github.com/fezjo/basrs/pkg/errors"
	"github.com/fezjo/basrs/pkg/logging"
	"github.com/fezjo/basrs/pkg/runner"
	"github.com/fezjo/basrs/pkg/shells"
)

// Exit codes besides the script's own status.
const (
	ExitOK            = 0
	ExitFatal         = 1
	ExitSerialization = 2
)

// TranslateOptions holds options for one translation.
type TranslateOptions struct {
	Target runner.Target
	Config *config.Config
	// Env and Dir seed the bash session; zero values inherit ours.
	Env []string
	Dir string
}

// TranslateResult is everything a translation produced.
type TranslateResult struct {
	Shell      string
	Changes    diff.ChangeSet
	Statements []shells.Statement
	// Output is the text to write to stdout.
	Output string
	// ExitStatus is the status the target script finished with.
	ExitStatus int
	// Warnings are the SERIALIZATION errors of skipped entries.
	Warnings []error
}

// ExitCode is the process exit code for the result: the script's status
// when it failed, ExitSerialization when entries were skipped, else 0.
func (r *TranslateResult) ExitCode() int {
	switch {
	case r.ExitStatus != 0:
		return r.ExitStatus
	case len(r.Warnings) > 0:
		return ExitSerialization
	}
	return ExitOK
}

// Translate runs the target in a bash session and renders what it changed
// as statements of the configured shell.
//
// A non-nil error is fatal and comes with a nil result: nothing must be
// written to stdout. A script that exited non-zero is not an error; its
// status is reported in the result.
func Translate(ctx context.Context, opts TranslateOptions) (*TranslateResult, error) {
	logger := logging.GetLogger("commands.translate")
	done := logging.LogOperationStart(logger, "translate")
	defer done()

	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	dialect, err := shells.Lookup(cfg.Shell, cfg.ShellSettings())
	if err != nil {
		return nil, err
	}
	order, err := shells.ParseOrder(cfg.Order)
	if err != nil {
		return nil, err
	}

	r := runner.New(runner.Config{
		Interpreter: cfg.Interpreter,
		Login:       cfg.Login,
		Timeout:     cfg.Timeout,
		Env:         opts.Env,
		Dir:         opts.Dir,
	})
	res, runErr := r.Run(ctx, opts.Target)
	if errors.IsFatal(runErr) {
		return nil, runErr
	}
	if runErr != nil {
		logger.Info().Int("status", res.ExitStatus).Msg("Script exited with non-zero status")
	}

	ignore := cfg.Matcher()
	before := res.Before.WithoutVariables(ignore.Match)
	after := res.After.WithoutVariables(ignore.Match)

	changes := diff.Diff(before, after)
	logger.Debug().
		Int("set", len(changes.Set)).
		Int("unset", len(changes.Unset)).
		Int("aliases", len(changes.AliasSet)+len(changes.AliasUnset)).
		Int("functions", len(changes.FuncAdded)+len(changes.FuncRemoved)).
		Msg("Computed change set")

	stmts, warnings := shells.Serialize(changes, dialect, shells.Options{
		Order:    order,
		Annotate: cfg.Annotate,
	})
	for _, w := range warnings {
		logger.Warn().Err(w).Msg("Skipped entry")
	}

	return &TranslateResult{
		Shell:      dialect.Name(),
		Changes:    changes,
		Statements: stmts,
		Output:     shells.Render(stmts),
		ExitStatus: res.ExitStatus,
		Warnings:   warnings,
	}, nil
}
