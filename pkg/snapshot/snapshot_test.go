package snapshot_test

import (
	"testing"

	"github.com/fezjo/basrs/pkg/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func build(t *testing.T, vars ...snapshot.Variable) *snapshot.Snapshot {
	t.Helper()
	b := snapshot.NewBuilder("test")
	for _, v := range vars {
		require.NoError(t, b.AddVariable(v))
	}
	return b.Build()
}

func TestBuilderKeepsCaptureOrder(t *testing.T) {
	s := build(t,
		snapshot.Scalar("ZED", "1", true),
		snapshot.Scalar("ALPHA", "2", false),
		snapshot.Scalar("MID", "3", true),
	)

	var names []string
	for _, v := range s.Variables() {
		names = append(names, v.Name)
	}
	assert.Equal(t, []string{"ZED", "ALPHA", "MID"}, names)
	assert.Equal(t, 3, s.NumVariables())
}

func TestBuilderRejectsDuplicates(t *testing.T) {
	b := snapshot.NewBuilder("before")
	require.NoError(t, b.AddVariable(snapshot.Scalar("A", "1", true)))
	assert.Error(t, b.AddVariable(snapshot.Scalar("A", "2", true)))

	require.NoError(t, b.AddFunction("f"))
	assert.Error(t, b.AddFunction("f"))

	require.NoError(t, b.AddAlias(snapshot.Alias{Name: "ll", Definition: "ls -l"}))
	assert.Error(t, b.AddAlias(snapshot.Alias{Name: "ll", Definition: "ls -la"}))

	assert.Error(t, b.AddVariable(snapshot.Variable{Name: "M", Kind: snapshot.KindAssoc, Elements: []string{"k"}}))
}

func TestSnapshotIsImmutable(t *testing.T) {
	s := build(t, snapshot.Variable{Name: "ARR", Kind: snapshot.KindArray, Elements: []string{"a", "b"}})

	vars := s.Variables()
	vars[0].Elements[0] = "mutated"
	vars[0].Name = "OTHER"

	got, ok := s.Variable("ARR")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, got.Elements)

	got.Elements[1] = "mutated"
	again, _ := s.Variable("ARR")
	assert.Equal(t, "b", again.Elements[1])
}

func TestVariableEqual(t *testing.T) {
	tests := []struct {
		name  string
		a, b  snapshot.Variable
		equal bool
	}{
		{"same scalar", snapshot.Scalar("A", "x\ny", true), snapshot.Scalar("A", "x\ny", true), true},
		{"value differs by trailing newline", snapshot.Scalar("A", "x", true), snapshot.Scalar("A", "x\n", true), false},
		{"export flag differs", snapshot.Scalar("A", "x", true), snapshot.Scalar("A", "x", false), false},
		{"numeric lookalike is not normalized", snapshot.Scalar("N", "01", false), snapshot.Scalar("N", "1", false), false},
		{
			"array vs scalar",
			snapshot.Variable{Name: "A", Kind: snapshot.KindArray, Elements: []string{"x"}},
			snapshot.Scalar("A", "x", false),
			false,
		},
		{
			"same array",
			snapshot.Variable{Name: "A", Kind: snapshot.KindArray, Elements: []string{"x", ""}},
			snapshot.Variable{Name: "A", Kind: snapshot.KindArray, Elements: []string{"x", ""}},
			true,
		},
		{
			"array order matters",
			snapshot.Variable{Name: "A", Kind: snapshot.KindArray, Elements: []string{"x", "y"}},
			snapshot.Variable{Name: "A", Kind: snapshot.KindArray, Elements: []string{"y", "x"}},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.equal, tt.a.Equal(tt.b))
		})
	}
}

func TestWithoutVariables(t *testing.T) {
	b := snapshot.NewBuilder("after")
	require.NoError(t, b.AddVariable(snapshot.Scalar("KEEP", "1", true)))
	require.NoError(t, b.AddVariable(snapshot.Scalar("RANDOM", "4242", false)))
	require.NoError(t, b.AddFunction("greet"))
	require.NoError(t, b.AddAlias(snapshot.Alias{Name: "ll", Definition: "ls -l"}))
	s := b.Build()

	ig := snapshot.Ignore{Names: []string{"RANDOM"}}
	filtered := s.WithoutVariables(ig.Match)

	assert.Equal(t, "after", filtered.Label())
	_, ok := filtered.Variable("RANDOM")
	assert.False(t, ok)
	_, ok = filtered.Variable("KEEP")
	assert.True(t, ok)
	assert.True(t, filtered.HasFunction("greet"))
	_, ok = filtered.Alias("ll")
	assert.True(t, ok)

	// the original is untouched
	_, ok = s.Variable("RANDOM")
	assert.True(t, ok)
}

func TestIgnoreMatch(t *testing.T) {
	ig := snapshot.Ignore{
		Names:    []string{"PS1", "_"},
		Prefixes: []string{"BASH_FUNC", "%"},
	}

	assert.True(t, ig.Match("PS1"))
	assert.True(t, ig.Match("_"))
	assert.True(t, ig.Match("BASH_FUNC_greet%%"))
	assert.True(t, ig.Match("%1"))
	assert.False(t, ig.Match("PS2"))
	assert.False(t, ig.Match("__"))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "scalar", snapshot.KindScalar.String())
	assert.Equal(t, "array", snapshot.KindArray.String())
	assert.Equal(t, "assoc", snapshot.KindAssoc.String())
	assert.Equal(t, "kind(9)", snapshot.Kind(9).String())
}
