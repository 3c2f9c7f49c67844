// Package diff computes the change set between two snapshots of the same
// session.
//
// The result is minimal: a variable whose shape, export flag and bytes are
// unchanged produces no entry. Within each namespace (variables, aliases,
// functions) a name lands in at most one collection. Additions keep the
// order of the after snapshot; removals keep the order of the before
// snapshot. Diff is pure and deterministic.
package diff
