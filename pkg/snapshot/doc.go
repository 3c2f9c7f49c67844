// Package snapshot holds the point-in-time record of a bash session: its
// variables (scalars, indexed and associative arrays, with their export
// flag), its alias definitions and the names of its functions.
//
// A Snapshot keeps the order in which entries were captured so that every
// derived value (change sets, serialized statements) is reproducible for a
// reproducible capture. Snapshots are built once with a Builder and are
// read-only afterwards: accessors hand out copies.
package snapshot
