// Package style renders the diagnostics basrs writes to stderr.
//
// Styles are semantic names (Error, Warning, Muted, Name) defined in the
// embedded styles.yaml with adaptive light/dark colors. Colors are only
// used when the destination is a terminal that supports them and NO_COLOR
// is unset; otherwise every style renders as plain text.
package style
