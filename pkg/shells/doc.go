// Package shells renders a change set as statements of a destination shell.
//
// Each Dialect knows how to quote values so that evaluating the statement
// in that shell reproduces the original bytes exactly, newlines and quotes
// included. Serialize walks a change set in a fixed order, asks the dialect
// for one statement per entry and collects a SERIALIZATION error for every
// entry the dialect cannot represent; those entries are skipped and the
// rest are still emitted.
//
// Supported dialects: fish, bash, zsh and sh (alias posix).
package shells
