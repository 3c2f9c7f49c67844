// pkg/shells/roundtrip_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: the destination shells (skipped when missing)
// PURPOSE: Evaluating a statement reproduces the captured bytes

package shells_test

import (
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fezjo/basrs/pkg/diff"
	"github.com/fezjo/basrs/pkg/snapshot"
	"github.com/fezjo/basrs/pkg/testutil"
)

var trickyValues = []string{
	"",
	"plain",
	"it's",
	`back\slash and \'`,
	"two\nlines\n",
	`$HOME $(echo no) ` + "`echo no`",
	"  leading and trailing  ",
	"*?[glob]",
	"ünïcødé ✓",
	"tab\there",
}

func TestRoundTripThroughShells(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "sh", "fish"} {
		t.Run(shell, func(t *testing.T) {
			bin := testutil.RequireShell(t, shell)
			d := mustLookup(t, shell)

			for _, value := range trickyValues {
				stmt, err := d.SetVar(diff.VarChange{New: snapshot.Scalar("BASRS_RT", value, true)})
				require.NoError(t, err)

				out, err := exec.Command(bin, "-c", stmt+"\nprintf '%s' \"$BASRS_RT\"").Output()
				require.NoError(t, err, "statement: %s", stmt)
				assert.Equal(t, value, string(out), "statement: %s", stmt)
			}
		})
	}
}

func TestRoundTripArrayThroughBash(t *testing.T) {
	bin := testutil.RequireShell(t, "bash")
	d := mustLookup(t, "bash")

	stmt, err := d.SetVar(diff.VarChange{New: snapshot.Variable{
		Name: "ARR", Kind: snapshot.KindArray, Elements: trickyValues,
	}})
	require.NoError(t, err)
	out, err := exec.Command(bin, "-c", stmt+"\nprintf '%s\\0' \"${ARR[@]}\"").Output()
	require.NoError(t, err)

	var want string
	for _, v := range trickyValues {
		want += v + "\x00"
	}
	assert.Equal(t, want, string(out))

	stmt, err = d.SetVar(diff.VarChange{New: snapshot.Variable{
		Name: "M", Kind: snapshot.KindAssoc, Elements: []string{"it's", "a\nb"},
	}})
	require.NoError(t, err)
	out, err = exec.Command(bin, "-c", "f() { "+stmt+"; }; f\nprintf '%s' \"${M[it\\'s]}\"").Output()
	require.NoError(t, err)
	assert.Equal(t, "a\nb", string(out))
}
