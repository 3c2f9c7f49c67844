package basrs

import (
	"bytes"
	stderrors "errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fezjo/basrs/pkg/errors"
	"github.com/fezjo/basrs/pkg/testutil"
)

type cliResult struct {
	stdout string
	stderr string
	err    error
}

func execute(t *testing.T, args ...string) cliResult {
	t.Helper()
	testutil.NewTestEnvironment(t)

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return cliResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func script(t *testing.T, body string) string {
	t.Helper()
	return testutil.CreateFile(t, t.TempDir(), "script.sh", body)
}

func TestSourceCmd(t *testing.T) {
	testutil.RequireBash(t)
	path := script(t, "export BASRS_CLI_TEST='hello world'\n")

	res := execute(t, "source", path)
	require.NoError(t, res.err)
	assert.Equal(t, "set -gx BASRS_CLI_TEST 'hello world'\n", res.stdout)
	assert.Empty(t, res.stderr)
}

func TestSourceCmd_ScriptArguments(t *testing.T) {
	testutil.RequireBash(t)
	path := script(t, "export BASRS_CLI_ARG=\"$1|$2\"\n")

	res := execute(t, "source", "-s", "bash", path, "--flag", "two words")
	require.NoError(t, res.err)
	assert.Equal(t, "export BASRS_CLI_ARG='--flag|two words'\n", res.stdout)
}

func TestSourceCmd_Annotate(t *testing.T) {
	testutil.RequireBash(t)
	path := script(t, "export BASRS_CLI_TEST=1\n")

	res := execute(t, "--annotate", "source", path)
	require.NoError(t, res.err)
	assert.Equal(t, "# Adding BASRS_CLI_TEST\nset -gx BASRS_CLI_TEST '1'\n", res.stdout)
}

func TestEvalCmd(t *testing.T) {
	testutil.RequireBash(t)

	res := execute(t, "eval", "-s", "sh", "export", "BASRS_CLI_EVAL=yes")
	require.NoError(t, res.err)
	assert.Equal(t, "export BASRS_CLI_EVAL='yes'\n", res.stdout)
}

func TestSourceCmd_FailingScript(t *testing.T) {
	testutil.RequireBash(t)
	path := script(t, "export BASRS_CLI_TEST=partial\nexit 3\n")

	res := execute(t, "source", path)
	var exitErr *ExitCodeError
	require.True(t, stderrors.As(res.err, &exitErr))
	assert.Equal(t, 3, exitErr.Code)
	assert.Equal(t, "set -gx BASRS_CLI_TEST 'partial'\n", res.stdout)
	assert.Contains(t, res.stderr, "status 3")
}

func TestSourceCmd_SkippedEntries(t *testing.T) {
	testutil.RequireBash(t)
	path := script(t, "declare -A BASRS_MAP=([k]=v)\nexport BASRS_CLI_TEST=ok\n")

	res := execute(t, "source", path)
	var exitErr *ExitCodeError
	require.True(t, stderrors.As(res.err, &exitErr))
	assert.Equal(t, 2, exitErr.Code)
	assert.Equal(t, "set -gx BASRS_CLI_TEST 'ok'\n", res.stdout)
	assert.Contains(t, res.stderr, "Warning:")
	assert.Contains(t, res.stderr, "BASRS_MAP")
}

func TestSourceCmd_FatalErrorsLeaveStdoutEmpty(t *testing.T) {
	res := execute(t, "source", filepath.Join(t.TempDir(), "missing.sh"))
	require.Error(t, res.err)
	assert.True(t, errors.IsErrorCode(res.err, errors.ErrScriptNotFound))
	assert.Empty(t, res.stdout)

	var stderr bytes.Buffer
	assert.Equal(t, 1, HandleError(res.err, &stderr))
	assert.Contains(t, stderr.String(), "Error:")
	assert.Contains(t, stderr.String(), "missing.sh")
}

func TestUnknownShellFlag(t *testing.T) {
	res := execute(t, "eval", "-s", "tcsh", "true")
	require.Error(t, res.err)
	assert.True(t, errors.IsErrorCode(res.err, errors.ErrUnknownShell))
	assert.Empty(t, res.stdout)
}

func TestConfigCmd(t *testing.T) {
	res := execute(t, "-s", "zsh", "config", "--format", "yaml")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "shell: zsh")
	assert.Contains(t, res.stdout, "interpreter: bash")

	res = execute(t, "config")
	require.NoError(t, res.err)
	assert.Regexp(t, `shell = ['"]fish['"]`, res.stdout)

	res = execute(t, "config", "--template")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, `# shell = "fish"`)
}

func TestConfigCmd_EnvironmentOverride(t *testing.T) {
	t.Setenv("BASRS_ORDER", "additions-first")

	res := execute(t, "config")
	require.NoError(t, res.err)
	assert.Regexp(t, `order = ['"]additions-first['"]`, res.stdout)
}

func TestVersionCmd(t *testing.T) {
	res := execute(t, "version")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "basrs version")
	assert.Contains(t, res.stdout, "commit:")
}

func TestCompletionCmd(t *testing.T) {
	res := execute(t, "completion", "fish")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "basrs")
}

func TestNoSubcommand(t *testing.T) {
	res := execute(t)
	require.Error(t, res.err)

	var stderr bytes.Buffer
	assert.Equal(t, 1, HandleError(res.err, &stderr))
	assert.Contains(t, stderr.String(), "basrs --help")
}

func TestHandleError(t *testing.T) {
	var stderr bytes.Buffer
	assert.Equal(t, 0, HandleError(nil, &stderr))
	assert.Equal(t, 7, HandleError(&ExitCodeError{Code: 7}, &stderr))
	assert.Empty(t, stderr.String())
}
