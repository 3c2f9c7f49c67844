package shells

import (
	"slices"
	"strings"

	"github.com/fezjo/basrs/pkg/diff"
	"github.com/fezjo/basrs/pkg/errors"
	"github.com/fezjo/basrs/pkg/snapshot"
)

// Fish renders statements for the fish shell.
type Fish struct {
	readOnly map[string]bool
}

// NewFish returns a fish dialect that never touches the readOnly names.
func NewFish(readOnly []string) *Fish {
	ro := make(map[string]bool, len(readOnly))
	for _, n := range readOnly {
		ro[n] = true
	}
	return &Fish{readOnly: ro}
}

func (f *Fish) Name() string { return "fish" }

func (f *Fish) Skip(name string) bool { return f.readOnly[name] }

func (f *Fish) Comment(text string) string { return commentText(text) }

// SetVar emits `set -gx` for exported and `set -gu` for local variables.
// Names ending in PATH are colon lists in bash and real lists in fish.
func (f *Fish) SetVar(c diff.VarChange) (string, error) {
	v := c.New
	if v.Name == "PWD" && v.Kind == snapshot.KindScalar {
		if err := noNUL(v.Name, v.Value); err != nil {
			return "", err
		}
		return "cd " + fishQuote(v.Value), nil
	}
	if err := validName(v.Name); err != nil {
		return "", err
	}
	if v.Kind == snapshot.KindAssoc {
		return "", errors.Serialization(v.Name, "fish has no associative arrays")
	}

	values := elementsOf(v)
	if v.Kind == snapshot.KindScalar && isPathList(v.Name) {
		values = strings.Split(v.Value, ":")
	}
	if err := noNUL(v.Name, values...); err != nil {
		return "", err
	}

	scope := "-gu"
	if v.Exported {
		scope = "-gx"
	}
	var b strings.Builder
	b.WriteString("set ")
	b.WriteString(scope)
	b.WriteByte(' ')
	b.WriteString(v.Name)
	for _, val := range values {
		b.WriteByte(' ')
		b.WriteString(fishQuote(val))
	}
	return b.String(), nil
}

func (f *Fish) UnsetVar(v snapshot.Variable) (string, error) {
	if v.Name == "PWD" {
		return "", nil
	}
	if err := validName(v.Name); err != nil {
		return "", err
	}
	return "set -e " + v.Name, nil
}

func (f *Fish) SetAlias(c diff.AliasChange) (string, error) {
	if err := fishFunctionName(c.New.Name); err != nil {
		return "", err
	}
	if err := noNUL(c.New.Name, c.New.Definition); err != nil {
		return "", err
	}
	return "alias " + fishQuote(c.New.Name) + " " + fishQuote(c.New.Definition), nil
}

func (f *Fish) UnsetAlias(a snapshot.Alias) (string, error) {
	if err := fishFunctionName(a.Name); err != nil {
		return "", err
	}
	return "functions -e " + fishQuote(a.Name), nil
}

func isPathList(name string) bool {
	return strings.HasSuffix(name, "PATH")
}

// fishFunctionName rejects names fish cannot define a function under.
func fishFunctionName(name string) error {
	switch {
	case name == "":
		return errors.Serialization(name, "empty alias name")
	case strings.HasPrefix(name, "-"):
		return errors.Serialization(name, "alias name starts with '-'")
	case strings.ContainsAny(name, "/\x00"):
		return errors.Serialization(name, "alias name contains '/' or NUL")
	case slices.Contains([]string{"and", "or", "not", "begin", "end", "function", "if", "else", "while", "for", "switch", "case"}, name):
		return errors.Serialization(name, "alias name is a fish keyword")
	}
	return nil
}

// fishQuote single-quotes s. Inside fish single quotes only \\ and \' are
// escapes.
func fishQuote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('\'')
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\', '\'':
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	b.WriteByte('\'')
	return b.String()
}
