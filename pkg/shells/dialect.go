package shells

import (
	"regexp"
	"sort"
	"strings"

	"github.com/fezjo/basrs/pkg/diff"
	"github.com/fezjo/basrs/pkg/errors"
	"github.com/fezjo/basrs/pkg/snapshot"
)

// Dialect produces statements for one destination shell.
//
// A method returning an empty string and a nil error means the entry has no
// meaning in that shell and is dropped.
type Dialect interface {
	Name() string
	SetVar(c diff.VarChange) (string, error)
	UnsetVar(v snapshot.Variable) (string, error)
	SetAlias(c diff.AliasChange) (string, error)
	UnsetAlias(a snapshot.Alias) (string, error)
	Comment(text string) string
	// Skip reports variables the destination shell manages itself.
	Skip(name string) bool
}

// Settings tune the dialects built by Lookup.
type Settings struct {
	// FishReadOnly lists variables fish owns; they are never assigned.
	FishReadOnly []string
}

// DefaultFishReadOnly are the variables fish refuses to let scripts set.
var DefaultFishReadOnly = []string{
	"SHLVL", "history", "pipestatus", "status", "version", "FISH_VERSION",
	"fish_pid", "hostname", "_", "fish_private_mode",
}

var constructors = map[string]func(Settings) Dialect{
	"fish": func(s Settings) Dialect {
		ro := s.FishReadOnly
		if ro == nil {
			ro = DefaultFishReadOnly
		}
		return NewFish(ro)
	},
	"bash":  func(Settings) Dialect { return NewPosix(FlavorBash) },
	"zsh":   func(Settings) Dialect { return NewPosix(FlavorZsh) },
	"sh":    func(Settings) Dialect { return NewPosix(FlavorSh) },
	"posix": func(Settings) Dialect { return NewPosix(FlavorSh) },
}

// Lookup returns the dialect registered under name.
func Lookup(name string, s Settings) (Dialect, error) {
	ctor, ok := constructors[strings.ToLower(name)]
	if !ok {
		return nil, errors.Newf(errors.ErrUnknownShell, "unsupported shell %q (supported: %s)",
			name, strings.Join(Names(), ", "))
	}
	return ctor(s), nil
}

// Names lists the registered dialect names.
func Names() []string {
	names := make([]string, 0, len(constructors))
	for n := range constructors {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// validName checks a variable name against the identifier rules shared by
// every supported shell.
func validName(name string) error {
	if !identifier.MatchString(name) {
		return errors.Serialization(name, "not a valid variable name")
	}
	return nil
}

func noNUL(name string, values ...string) error {
	for _, v := range values {
		if strings.IndexByte(v, 0) >= 0 {
			return errors.Serialization(name, "value contains a NUL byte")
		}
	}
	return nil
}
