package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fezjo/basrs/pkg/errors"
	"github.com/fezjo/basrs/pkg/runner"
	"github.com/fezjo/basrs/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) runner.Config {
	return runner.Config{
		Env: []string{
			"PATH=" + os.Getenv("PATH"),
			"HOME=" + t.TempDir(),
			"LC_ALL=C",
			"KEEP_ME=unchanged",
			"DROP_ME=bye",
		},
	}
}

func TestRunScriptNotFound(t *testing.T) {
	r := runner.New(testConfig(t))

	result, err := r.Run(context.Background(), runner.Script(filepath.Join(t.TempDir(), "missing.sh")))
	assert.Nil(t, result)
	assert.True(t, errors.IsErrorCode(err, errors.ErrScriptNotFound), "got %v", err)

	result, err = r.Run(context.Background(), runner.Script(t.TempDir()))
	assert.Nil(t, result)
	assert.True(t, errors.IsErrorCode(err, errors.ErrScriptNotFound), "got %v", err)
}

func TestRunInterpreterMissing(t *testing.T) {
	dir := t.TempDir()
	script := testutil.CreateFile(t, dir, "env.sh", "export A=1\n")

	cfg := testConfig(t)
	cfg.Interpreter = filepath.Join(dir, "no-such-bash")
	result, err := runner.New(cfg).Run(context.Background(), runner.Script(script))

	assert.Nil(t, result)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInterpreterSpawn), "got %v", err)
}

func TestRunCapturesBeforeAndAfter(t *testing.T) {
	testutil.RequireBash(t)
	dir := t.TempDir()
	script := testutil.CreateFile(t, dir, "env.sh", `
export GOPATH=/home/u/go
export PATH="$GOPATH/bin:$PATH"
unset DROP_ME
MULTI=$'first line\nsecond "quoted" line \\ é'
LOCAL_ONLY=1
arr=(one "two words" "")
greet() { echo hi; }
alias ll='ls -l'
echo "this goes nowhere"
echo "neither does this" >&2
`)

	result, err := runner.New(testConfig(t)).Run(context.Background(), runner.Script(script))
	require.NoError(t, err)
	assert.Equal(t, 0, result.ExitStatus)

	_, ok := result.Before.Variable("GOPATH")
	assert.False(t, ok)
	gopath, ok := result.After.Variable("GOPATH")
	require.True(t, ok)
	assert.Equal(t, "/home/u/go", gopath.Value)
	assert.True(t, gopath.Exported)

	beforePath, _ := result.Before.Variable("PATH")
	afterPath, _ := result.After.Variable("PATH")
	assert.Equal(t, "/home/u/go/bin:"+beforePath.Value, afterPath.Value)

	_, ok = result.Before.Variable("DROP_ME")
	assert.True(t, ok)
	_, ok = result.After.Variable("DROP_ME")
	assert.False(t, ok)

	multi, ok := result.After.Variable("MULTI")
	require.True(t, ok)
	assert.Equal(t, "first line\nsecond \"quoted\" line \\ é", multi.Value)
	assert.False(t, multi.Exported)

	local, _ := result.After.Variable("LOCAL_ONLY")
	assert.False(t, local.Exported)

	arr, ok := result.After.Variable("arr")
	require.True(t, ok)
	assert.Equal(t, []string{"one", "two words", ""}, arr.Elements)

	assert.False(t, result.Before.HasFunction("greet"))
	assert.True(t, result.After.HasFunction("greet"))

	alias, ok := result.After.Alias("ll")
	require.True(t, ok)
	assert.Equal(t, "ls -l", alias.Definition)

	keep, _ := result.After.Variable("KEEP_ME")
	assert.Equal(t, "unchanged", keep.Value)

	for _, v := range result.After.Variables() {
		assert.NotContains(t, v.Name, "__basrs_", "capture internals leaked")
	}
	for _, f := range result.After.Functions() {
		assert.NotContains(t, f, "__basrs_", "capture internals leaked")
	}
}

func TestRunKeepsCallerLocale(t *testing.T) {
	testutil.RequireBash(t)
	cfg := testConfig(t)
	cfg.Env[2] = "LC_ALL=POSIX"

	result, err := runner.New(cfg).Run(context.Background(), runner.Command(`export LANG=C`))
	require.NoError(t, err)

	lcAll, ok := result.After.Variable("LC_ALL")
	require.True(t, ok)
	assert.Equal(t, "POSIX", lcAll.Value)
	assert.True(t, lcAll.Exported)
}

func TestRunNonZeroExitStillCaptures(t *testing.T) {
	testutil.RequireBash(t)
	dir := t.TempDir()
	script := testutil.CreateFile(t, dir, "fail.sh", "export BEFORE_EXIT=yes\nexit 3\nexport NEVER=1\n")

	result, err := runner.New(testConfig(t)).Run(context.Background(), runner.Script(script))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrScriptExecution))
	status, ok := errors.ExitStatus(err)
	assert.True(t, ok)
	assert.Equal(t, 3, status)

	require.NotNil(t, result)
	assert.Equal(t, 3, result.ExitStatus)
	_, ok = result.After.Variable("BEFORE_EXIT")
	assert.True(t, ok)
	_, ok = result.After.Variable("NEVER")
	assert.False(t, ok)
}

func TestRunWithStrictModeScript(t *testing.T) {
	testutil.RequireBash(t)
	dir := t.TempDir()
	script := testutil.CreateFile(t, dir, "strict.sh", "set -euo pipefail\nexport STRICT=1\n")

	result, err := runner.New(testConfig(t)).Run(context.Background(), runner.Script(script))
	require.NoError(t, err)
	_, ok := result.After.Variable("STRICT")
	assert.True(t, ok)
}

func TestRunCommandMode(t *testing.T) {
	testutil.RequireBash(t)
	result, err := runner.New(testConfig(t)).Run(context.Background(), runner.Command(`export FROM_EVAL="a b"; unset KEEP_ME`))
	require.NoError(t, err)

	v, ok := result.After.Variable("FROM_EVAL")
	require.True(t, ok)
	assert.Equal(t, "a b", v.Value)
	_, ok = result.After.Variable("KEEP_ME")
	assert.False(t, ok)
}

func TestRunPassesArgumentsAndResolvesRelativePaths(t *testing.T) {
	testutil.RequireBash(t)
	dir := t.TempDir()
	testutil.CreateFile(t, dir, "args.sh", `export FIRST="$1" COUNT="$#"`)

	cfg := testConfig(t)
	cfg.Dir = dir
	result, err := runner.New(cfg).Run(context.Background(), runner.Script("args.sh", "x y", "z"))
	require.NoError(t, err)

	first, _ := result.After.Variable("FIRST")
	count, _ := result.After.Variable("COUNT")
	assert.Equal(t, "x y", first.Value)
	assert.Equal(t, "2", count.Value)
}

func TestRunScriptWithItsOwnExitTrap(t *testing.T) {
	testutil.RequireBash(t)
	dir := t.TempDir()
	script := testutil.CreateFile(t, dir, "trap.sh", "trap 'true' EXIT\nexport T=1\n")

	result, err := runner.New(testConfig(t)).Run(context.Background(), runner.Script(script))
	require.NoError(t, err)
	assert.Equal(t, 0, result.ExitStatus)

	v, ok := result.After.Variable("T")
	require.True(t, ok)
	assert.Equal(t, "1", v.Value)
	assert.True(t, v.Exported)
}

func TestRunScriptThatClearsTheExitTrap(t *testing.T) {
	testutil.RequireBash(t)
	dir := t.TempDir()
	script := testutil.CreateFile(t, dir, "trap.sh", "trap - EXIT\nexport X=1\n")

	result, err := runner.New(testConfig(t)).Run(context.Background(), runner.Script(script))
	require.NoError(t, err)
	_, ok := result.After.Variable("X")
	assert.True(t, ok)
}

func TestRunExitAfterReplacingTheTrapLosesTheCapture(t *testing.T) {
	testutil.RequireBash(t)
	dir := t.TempDir()
	script := testutil.CreateFile(t, dir, "trap.sh", "trap - EXIT\nexport X=1\nexit 0\n")

	result, err := runner.New(testConfig(t)).Run(context.Background(), runner.Script(script))
	assert.Nil(t, result)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCapture), "got %v", err)
}

func TestRunIgnoresCaseInsensitiveMatching(t *testing.T) {
	testutil.RequireBash(t)
	result, err := runner.New(testConfig(t)).Run(context.Background(), runner.Command("shopt -s nocasematch; path=lower"))
	require.NoError(t, err)

	v, ok := result.After.Variable("path")
	require.True(t, ok)
	assert.Equal(t, "lower", v.Value)
	assert.False(t, v.Exported)

	upper, ok := result.After.Variable("PATH")
	require.True(t, ok)
	assert.True(t, upper.Exported)
}

func TestRunSkipsNamerefs(t *testing.T) {
	testutil.RequireBash(t)
	result, err := runner.New(testConfig(t)).Run(context.Background(), runner.Command("declare -n REF=HOME; declare -nx XREF=PATH; declare DECLARED"))
	require.NoError(t, err)

	_, ok := result.After.Variable("REF")
	assert.False(t, ok)
	_, ok = result.After.Variable("XREF")
	assert.False(t, ok)
	_, ok = result.After.Variable("DECLARED")
	assert.False(t, ok)
	_, ok = result.After.Variable("HOME")
	assert.True(t, ok)
}

func TestRunTimeout(t *testing.T) {
	testutil.RequireBash(t)
	cfg := testConfig(t)
	cfg.Timeout = 200 * time.Millisecond

	result, err := runner.New(cfg).Run(context.Background(), runner.Command("sleep 5"))
	assert.Nil(t, result)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCapture), "got %v", err)
}

func TestRunLoginShellCancelsOutProfile(t *testing.T) {
	testutil.RequireBash(t)
	home := t.TempDir()
	testutil.CreateFile(t, home, ".bash_profile", "export FROM_PROFILE=1\n")

	cfg := testConfig(t)
	cfg.Login = true
	cfg.Env[1] = "HOME=" + home

	result, err := runner.New(cfg).Run(context.Background(), runner.Command("export FROM_SCRIPT=1"))
	require.NoError(t, err)

	_, inBefore := result.Before.Variable("FROM_PROFILE")
	_, inAfter := result.After.Variable("FROM_PROFILE")
	assert.True(t, inBefore)
	assert.True(t, inAfter)
}
