package shells

import (
	"regexp"
	"strings"

	"github.com/fezjo/basrs/pkg/diff"
	"github.com/fezjo/basrs/pkg/errors"
	"github.com/fezjo/basrs/pkg/snapshot"
)

// Flavor selects which extensions of the POSIX shell language are usable.
type Flavor string

const (
	FlavorSh   Flavor = "sh"
	FlavorBash Flavor = "bash"
	FlavorZsh  Flavor = "zsh"
)

// Posix renders statements for sh, bash and zsh.
type Posix struct {
	flavor Flavor
}

// NewPosix returns the dialect for flavor.
func NewPosix(flavor Flavor) *Posix {
	return &Posix{flavor: flavor}
}

func (p *Posix) Name() string { return string(p.flavor) }

func (p *Posix) Skip(string) bool { return false }

func (p *Posix) Comment(text string) string { return commentText(text) }

// SetVar assigns the new value. When the kind changed or the export flag
// was dropped the variable is unset first so no attribute survives.
func (p *Posix) SetVar(c diff.VarChange) (string, error) {
	v := c.New
	if v.Name == "PWD" && v.Kind == snapshot.KindScalar {
		if err := noNUL(v.Name, v.Value); err != nil {
			return "", err
		}
		return "cd " + posixQuote(v.Value), nil
	}
	if err := validName(v.Name); err != nil {
		return "", err
	}
	if err := noNUL(v.Name, elementsOf(v)...); err != nil {
		return "", err
	}

	reset := c.Old != nil && (c.Old.Kind != v.Kind || (c.Old.Exported && !v.Exported))
	prefix := ""
	if reset {
		prefix = "unset -v " + v.Name + "; "
	}

	switch v.Kind {
	case snapshot.KindScalar:
		if v.Exported {
			return prefix + "export " + v.Name + "=" + posixQuote(v.Value), nil
		}
		return prefix + v.Name + "=" + posixQuote(v.Value), nil

	case snapshot.KindArray:
		if p.flavor == FlavorSh {
			return "", errors.Serialization(v.Name, "sh has no arrays")
		}
		return prefix + v.Name + "=(" + quoteAll(v.Elements) + ")", nil

	case snapshot.KindAssoc:
		// Assigning a whole assoc never merges with stale keys.
		prefix = "unset -v " + v.Name + "; "
		switch p.flavor {
		case FlavorBash:
			var b strings.Builder
			for i := 0; i+1 < len(v.Elements); i += 2 {
				if i > 0 {
					b.WriteByte(' ')
				}
				b.WriteString("[" + posixQuote(v.Elements[i]) + "]=" + posixQuote(v.Elements[i+1]))
			}
			return prefix + "declare -gA " + v.Name + "=(" + b.String() + ")", nil
		case FlavorZsh:
			return prefix + "typeset -gA " + v.Name + "; " + v.Name + "=(" + quoteAll(v.Elements) + ")", nil
		}
		return "", errors.Serialization(v.Name, "sh has no associative arrays")
	}
	return "", errors.Serialization(v.Name, "unknown variable kind "+v.Kind.String())
}

func (p *Posix) UnsetVar(v snapshot.Variable) (string, error) {
	if v.Name == "PWD" {
		return "", nil
	}
	if err := validName(v.Name); err != nil {
		return "", err
	}
	return "unset -v " + v.Name, nil
}

// aliasName matches names every POSIX-family shell accepts unquoted.
var aliasName = regexp.MustCompile(`^[A-Za-z0-9_.:+@%,][A-Za-z0-9_.:+@%,-]*$`)

func (p *Posix) SetAlias(c diff.AliasChange) (string, error) {
	if !aliasName.MatchString(c.New.Name) {
		return "", errors.Serialization(c.New.Name, "not a portable alias name")
	}
	if err := noNUL(c.New.Name, c.New.Definition); err != nil {
		return "", err
	}
	return "alias " + c.New.Name + "=" + posixQuote(c.New.Definition), nil
}

func (p *Posix) UnsetAlias(a snapshot.Alias) (string, error) {
	if !aliasName.MatchString(a.Name) {
		return "", errors.Serialization(a.Name, "not a portable alias name")
	}
	return "unalias " + a.Name, nil
}

// posixQuote wraps s in single quotes, closing and reopening them around
// each embedded quote.
func posixQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func quoteAll(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = posixQuote(v)
	}
	return strings.Join(quoted, " ")
}
