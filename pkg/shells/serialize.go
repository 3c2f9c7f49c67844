package shells

import (
	"fmt"
	"strings"

	"github.com/fezjo/basrs/pkg/diff"
	"github.com/fezjo/basrs/pkg/errors"
	"github.com/fezjo/basrs/pkg/logging"
	"github.com/fezjo/basrs/pkg/snapshot"
)

// StatementKind says which change set collection a statement came from.
type StatementKind string

const (
	KindUnset       StatementKind = "unset"
	KindSet         StatementKind = "set"
	KindAliasUnset  StatementKind = "alias-unset"
	KindAliasSet    StatementKind = "alias-set"
	KindFuncRemoved StatementKind = "function-removed"
	KindFuncAdded   StatementKind = "function-added"
	KindAnnotation  StatementKind = "annotation"
)

// Statement is one line (or one multi-line quoted command) of output.
type Statement struct {
	Kind StatementKind
	Name string
	Text string
}

// Order decides whether removals or additions come first.
type Order string

const (
	OrderRemovalsFirst  Order = "removals-first"
	OrderAdditionsFirst Order = "additions-first"
)

// ParseOrder validates an order name; empty means the default.
func ParseOrder(s string) (Order, error) {
	switch Order(s) {
	case "", OrderRemovalsFirst:
		return OrderRemovalsFirst, nil
	case OrderAdditionsFirst:
		return OrderAdditionsFirst, nil
	}
	return "", errors.Newf(errors.ErrInvalidInput, "unknown order %q (want %s or %s)",
		s, OrderRemovalsFirst, OrderAdditionsFirst)
}

// Options control serialization.
type Options struct {
	Order Order
	// Annotate precedes every variable and alias statement with a comment
	// naming the change.
	Annotate bool
}

// Serialize renders cs in dialect d.
//
// With OrderRemovalsFirst the sections are: variable unsets, variable sets,
// alias unsets, alias sets, function removals, function additions.
// OrderAdditionsFirst swaps each pair. Entries that cannot be rendered are
// reported as SERIALIZATION errors and left out; Skip'd names are dropped
// without an error.
func Serialize(cs diff.ChangeSet, d Dialect, opts Options) ([]Statement, []error) {
	logger := logging.GetLogger("shells")
	s := &serializer{d: d, opts: opts}
	skip := func(name string) bool {
		if d.Skip(name) {
			logger.Debug().Str("shell", d.Name()).Str("name", name).Msg("Skipping variable owned by destination shell")
			return true
		}
		return false
	}

	unsetVars := func() {
		for _, v := range cs.Unset {
			if skip(v.Name) {
				continue
			}
			s.emit(KindUnset, v.Name, "Removing "+v.Name, func() (string, error) { return d.UnsetVar(v) })
		}
	}
	setVars := func() {
		for _, c := range cs.Set {
			if skip(c.Name()) {
				continue
			}
			verb := "Updating "
			if c.Added() {
				verb = "Adding "
			}
			s.emit(KindSet, c.Name(), verb+c.Name(), func() (string, error) { return d.SetVar(c) })
		}
	}
	unsetAliases := func() {
		for _, a := range cs.AliasUnset {
			s.emit(KindAliasUnset, a.Name, "Removing alias "+a.Name, func() (string, error) { return d.UnsetAlias(a) })
		}
	}
	setAliases := func() {
		for _, c := range cs.AliasSet {
			verb := "Updating alias "
			if c.Added() {
				verb = "Adding alias "
			}
			s.emit(KindAliasSet, c.Name(), verb+c.Name(), func() (string, error) { return d.SetAlias(c) })
		}
	}
	removedFuncs := func() {
		for _, f := range cs.FuncRemoved {
			s.notice(KindFuncRemoved, f, fmt.Sprintf("basrs: function %s was removed by the script", f))
		}
	}
	addedFuncs := func() {
		for _, f := range cs.FuncAdded {
			s.notice(KindFuncAdded, f, fmt.Sprintf("basrs: function %s was defined by the script; its body was not translated", f))
		}
	}

	sections := []func(){unsetVars, setVars, unsetAliases, setAliases, removedFuncs, addedFuncs}
	if opts.Order == OrderAdditionsFirst {
		sections = []func(){setVars, unsetVars, setAliases, unsetAliases, addedFuncs, removedFuncs}
	}
	for _, section := range sections {
		section()
	}

	logger.Debug().
		Str("shell", d.Name()).
		Int("statements", len(s.out)).
		Int("failed", len(s.errs)).
		Msg("Change set serialized")
	return s.out, s.errs
}

type serializer struct {
	d    Dialect
	opts Options
	out  []Statement
	errs []error
}

func (s *serializer) emit(kind StatementKind, name, annotation string, render func() (string, error)) {
	text, err := render()
	if err != nil {
		if !errors.IsErrorCode(err, errors.ErrSerialization) {
			err = errors.Wrap(err, errors.ErrSerialization, "cannot serialize "+name).
				WithDetail(errors.DetailName, name)
		}
		s.errs = append(s.errs, err)
		return
	}
	if text == "" {
		return
	}
	if s.opts.Annotate {
		s.out = append(s.out, Statement{Kind: KindAnnotation, Name: name, Text: s.d.Comment(annotation)})
	}
	s.out = append(s.out, Statement{Kind: kind, Name: name, Text: text})
}

func (s *serializer) notice(kind StatementKind, name, text string) {
	s.out = append(s.out, Statement{Kind: kind, Name: name, Text: s.d.Comment(text)})
}

// Render joins statements into the text written to stdout: one statement
// per line, newline terminated. No statements render as the empty string.
func Render(stmts []Statement) string {
	var b strings.Builder
	for _, st := range stmts {
		b.WriteString(st.Text)
		b.WriteByte('\n')
	}
	return b.String()
}

// commentText flattens text onto one line for a '#' comment.
func commentText(text string) string {
	return "# " + strings.NewReplacer("\n", `\n`, "\r", `\r`).Replace(text)
}

// elementsOf returns the values a scalar or array carries.
func elementsOf(v snapshot.Variable) []string {
	if v.Kind == snapshot.KindScalar {
		return []string{v.Value}
	}
	return v.Elements
}
