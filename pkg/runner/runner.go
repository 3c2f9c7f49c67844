// Package runner starts a disposable bash session, runs the capture
// protocol in it around the target script and returns the two snapshots
// together with the script's exit status.
package runner

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/fezjo/basrs/pkg/capture"
	"github.com/fezjo/basrs/pkg/errors"
	"github.com/fezjo/basrs/pkg/logging"
	"github.com/fezjo/basrs/pkg/snapshot"
	"github.com/rs/zerolog"
)

// DefaultInterpreter is looked up on PATH when Config.Interpreter is empty.
const DefaultInterpreter = "bash"

// waitDelay bounds how long Run waits for the child's stderr to close after
// the session was cancelled; background jobs of the script may hold it open.
const waitDelay = time.Second

// stderrLimit caps how much of the child's stderr is kept for debug logs.
const stderrLimit = 64 * 1024

// Config controls how the session is started.
type Config struct {
	// Interpreter is a bash binary name or path.
	Interpreter string
	// Login starts bash as a login shell so profile files run before the
	// baseline capture.
	Login bool
	// Timeout bounds the whole session; zero means no limit.
	Timeout time.Duration
	// Env is the session's initial environment; nil inherits ours.
	Env []string
	// Dir is the session's working directory; empty inherits ours.
	Dir string
}

// Target is what runs between the two capture points.
type Target struct {
	Mode   string
	Source string
	Args   []string
}

// Script sources the file at path with the given positional arguments.
func Script(path string, args ...string) Target {
	return Target{Mode: capture.ModeSource, Source: path, Args: args}
}

// Command evals a bash command string.
func Command(src string) Target {
	return Target{Mode: capture.ModeEval, Source: src}
}

// Result is the outcome of one session.
type Result struct {
	Before     *snapshot.Snapshot
	After      *snapshot.Snapshot
	ExitStatus int
}

// Runner runs capture sessions.
type Runner struct {
	cfg    Config
	logger zerolog.Logger
}

// New creates a Runner.
func New(cfg Config) *Runner {
	if cfg.Interpreter == "" {
		cfg.Interpreter = DefaultInterpreter
	}
	return &Runner{
		cfg:    cfg,
		logger: logging.GetLogger("runner"),
	}
}

// Run executes capture-before, the target and capture-after in one session.
//
// A script that exits non-zero still yields a Result; the returned error is
// then a SCRIPT_EXECUTION error carrying the status. SCRIPT_NOT_FOUND,
// INTERPRETER_SPAWN and CAPTURE errors come with a nil Result.
func (r *Runner) Run(ctx context.Context, t Target) (*Result, error) {
	source, err := r.resolveTarget(t)
	if err != nil {
		return nil, err
	}

	interpreter, err := exec.LookPath(r.cfg.Interpreter)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInterpreterSpawn, "cannot find interpreter %q", r.cfg.Interpreter)
	}

	channel, err := os.CreateTemp("", "basrs-capture-*")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "cannot create capture channel")
	}
	defer func() {
		_ = channel.Close()
		_ = os.Remove(channel.Name())
	}()

	if r.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.Timeout)
		defer cancel()
	}

	args := r.interpreterFlags()
	args = append(args, capture.Args(t.Mode, source, t.Args)...)

	cmd := exec.CommandContext(ctx, interpreter, args...)
	cmd.ExtraFiles = []*os.File{channel} // fd 3 in the child
	cmd.Dir = r.cfg.Dir
	cmd.Env = r.cfg.Env
	if cmd.Env == nil {
		cmd.Env = os.Environ()
	}
	stderr := &limitedBuffer{limit: stderrLimit}
	cmd.Stderr = stderr
	cmd.WaitDelay = waitDelay

	shown := append(r.interpreterFlags(), "-c", "<capture protocol>", capture.ArgZero, t.Mode, source)
	logging.LogCommand(r.logger, interpreter, append(shown, t.Args...))

	done := logging.LogOperationStart(r.logger, "capture session")
	runErr := cmd.Run()
	done()

	if stderr.Len() > 0 {
		r.logger.Debug().Str("stderr", stderr.String()).Msg("Session stderr")
	}

	processStatus := -1
	if runErr != nil {
		var exitErr *exec.ExitError
		if !stderrors.As(runErr, &exitErr) {
			return nil, errors.Wrapf(runErr, errors.ErrInterpreterSpawn, "cannot start %s", interpreter)
		}
		processStatus = exitErr.ExitCode()
	} else {
		processStatus = 0
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, errors.Wrap(ctxErr, errors.ErrCapture, "session did not finish")
	}

	if _, err := channel.Seek(0, io.SeekStart); err != nil {
		return nil, errors.Wrap(err, errors.ErrCapture, "cannot rewind capture channel")
	}
	stream, err := capture.Decode(channel)
	if err != nil {
		return nil, err
	}

	before, err := stream.Snapshot(capture.LabelBefore)
	if err != nil {
		return nil, err
	}
	after, err := stream.Snapshot(capture.LabelAfter)
	if err != nil {
		// The usual cause is a script that called exit after replacing the
		// EXIT trap, exec'd another program or closed fd 3.
		return nil, err
	}

	status := processStatus
	if stream.HasStatus {
		status = stream.Status
		if status != processStatus {
			r.logger.Debug().
				Int("captured", status).
				Int("process", processStatus).
				Msg("Captured status differs from process exit code")
		}
	}

	r.logger.Info().
		Int("before", before.NumVariables()).
		Int("after", after.NumVariables()).
		Int("status", status).
		Msg("Capture session finished")

	result := &Result{Before: before, After: after, ExitStatus: status}
	if status != 0 {
		return result, errors.ScriptExecution(status)
	}
	return result, nil
}

// resolveTarget checks the script path and makes it absolute so bash does
// not search PATH for it.
func (r *Runner) resolveTarget(t Target) (string, error) {
	switch t.Mode {
	case capture.ModeEval:
		return t.Source, nil
	case capture.ModeSource:
	default:
		return "", errors.Newf(errors.ErrInvalidInput, "unknown target mode %q", t.Mode)
	}

	path := t.Source
	if path == "" {
		return "", errors.ScriptNotFound(path, nil)
	}
	if !filepath.IsAbs(path) {
		base := r.cfg.Dir
		if base == "" {
			wd, err := os.Getwd()
			if err != nil {
				return "", errors.Wrap(err, errors.ErrInternal, "cannot determine working directory")
			}
			base = wd
		}
		path = filepath.Join(base, path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", errors.ScriptNotFound(t.Source, err)
	}
	if info.IsDir() {
		return "", errors.ScriptNotFound(t.Source, nil).WithDetail("reason", "is a directory")
	}
	return path, nil
}

func (r *Runner) interpreterFlags() []string {
	if r.cfg.Login {
		return []string{"--login", "--norc"}
	}
	return []string{"--noprofile", "--norc"}
}

// limitedBuffer keeps the first limit bytes written to it and drops the rest.
type limitedBuffer struct {
	bytes.Buffer
	limit int
}

func (b *limitedBuffer) Write(p []byte) (int, error) {
	if room := b.limit - b.Len(); room > 0 {
		if len(p) > room {
			b.Buffer.Write(p[:room])
		} else {
			b.Buffer.Write(p)
		}
	}
	return len(p), nil
}
