package snapshot

import "strings"

// Ignore matches variable names that are never worth reporting: values the
// interpreter changes on its own (RANDOM, SECONDS, LINENO, ...) and
// user-configured noise.
type Ignore struct {
	Names    []string
	Prefixes []string
}

// Match reports whether name is ignored.
func (ig Ignore) Match(name string) bool {
	for _, n := range ig.Names {
		if n == name {
			return true
		}
	}
	for _, p := range ig.Prefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}
