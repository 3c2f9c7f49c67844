package diff

import (
	"github.com/fezjo/basrs/pkg/snapshot"
)

// VarChange is a variable that was added or modified.
type VarChange struct {
	// Old is nil when the variable did not exist before.
	Old *snapshot.Variable
	New snapshot.Variable
}

// Name of the changed variable.
func (c VarChange) Name() string { return c.New.Name }

// Added reports whether the variable is new.
func (c VarChange) Added() bool { return c.Old == nil }

// AliasChange is an alias that was added or redefined.
type AliasChange struct {
	Old *snapshot.Alias
	New snapshot.Alias
}

// Name of the changed alias.
func (c AliasChange) Name() string { return c.New.Name }

// Added reports whether the alias is new.
func (c AliasChange) Added() bool { return c.Old == nil }

// ChangeSet is everything the target script changed in the session.
type ChangeSet struct {
	Set   []VarChange
	Unset []snapshot.Variable

	AliasSet   []AliasChange
	AliasUnset []snapshot.Alias

	FuncAdded   []string
	FuncRemoved []string
}

// Empty reports whether nothing changed.
func (cs ChangeSet) Empty() bool {
	return len(cs.Set) == 0 && len(cs.Unset) == 0 &&
		len(cs.AliasSet) == 0 && len(cs.AliasUnset) == 0 &&
		len(cs.FuncAdded) == 0 && len(cs.FuncRemoved) == 0
}

// Len is the total number of entries.
func (cs ChangeSet) Len() int {
	return len(cs.Set) + len(cs.Unset) +
		len(cs.AliasSet) + len(cs.AliasUnset) +
		len(cs.FuncAdded) + len(cs.FuncRemoved)
}

// Diff compares before against after.
func Diff(before, after *snapshot.Snapshot) ChangeSet {
	var cs ChangeSet

	for _, v := range after.Variables() {
		old, ok := before.Variable(v.Name)
		switch {
		case !ok:
			cs.Set = append(cs.Set, VarChange{New: v})
		case !old.Equal(v):
			cs.Set = append(cs.Set, VarChange{Old: &old, New: v})
		}
	}
	for _, v := range before.Variables() {
		if _, ok := after.Variable(v.Name); !ok {
			cs.Unset = append(cs.Unset, v)
		}
	}

	for _, a := range after.Aliases() {
		old, ok := before.Alias(a.Name)
		switch {
		case !ok:
			cs.AliasSet = append(cs.AliasSet, AliasChange{New: a})
		case old.Definition != a.Definition:
			cs.AliasSet = append(cs.AliasSet, AliasChange{Old: &old, New: a})
		}
	}
	for _, a := range before.Aliases() {
		if _, ok := after.Alias(a.Name); !ok {
			cs.AliasUnset = append(cs.AliasUnset, a)
		}
	}

	for _, f := range after.Functions() {
		if !before.HasFunction(f) {
			cs.FuncAdded = append(cs.FuncAdded, f)
		}
	}
	for _, f := range before.Functions() {
		if !after.HasFunction(f) {
			cs.FuncRemoved = append(cs.FuncRemoved, f)
		}
	}

	return cs
}
