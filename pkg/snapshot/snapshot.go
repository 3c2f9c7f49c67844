package snapshot

import (
	"fmt"
	"slices"
)

// Kind is the shape of a captured variable.
type Kind int

const (
	KindScalar Kind = iota
	KindArray
	KindAssoc
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindArray:
		return "array"
	case KindAssoc:
		return "assoc"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Variable is one shell variable as seen by the session.
type Variable struct {
	Name     string
	Kind     Kind
	Exported bool
	// Value is the raw bytes of a scalar.
	Value string
	// Elements holds array values in index order, or key/value pairs
	// (k1, v1, k2, v2, ...) for associative arrays.
	Elements []string
}

// Scalar is a convenience constructor used by tests and callers that only
// deal with plain environment variables.
func Scalar(name, value string, exported bool) Variable {
	return Variable{Name: name, Kind: KindScalar, Value: value, Exported: exported}
}

// Equal reports byte-for-byte equality of shape, export flag and content.
func (v Variable) Equal(o Variable) bool {
	if v.Name != o.Name || v.Kind != o.Kind || v.Exported != o.Exported {
		return false
	}
	if v.Kind == KindScalar {
		return v.Value == o.Value
	}
	return slices.Equal(v.Elements, o.Elements)
}

func (v Variable) clone() Variable {
	if v.Elements != nil {
		v.Elements = slices.Clone(v.Elements)
	}
	return v
}

// Alias is a bash alias definition.
type Alias struct {
	Name       string
	Definition string
}

// Snapshot is an immutable record of one capture point.
type Snapshot struct {
	label string

	vars     []Variable
	varIndex map[string]int

	funcs     []string
	funcIndex map[string]struct{}

	aliases    []Alias
	aliasIndex map[string]int
}

// Label is the capture point name ("before" or "after").
func (s *Snapshot) Label() string { return s.label }

// Variables returns a copy of the captured variables in capture order.
func (s *Snapshot) Variables() []Variable {
	out := make([]Variable, len(s.vars))
	for i, v := range s.vars {
		out[i] = v.clone()
	}
	return out
}

// Variable looks a variable up by name.
func (s *Snapshot) Variable(name string) (Variable, bool) {
	i, ok := s.varIndex[name]
	if !ok {
		return Variable{}, false
	}
	return s.vars[i].clone(), true
}

// NumVariables returns the number of captured variables.
func (s *Snapshot) NumVariables() int { return len(s.vars) }

// Functions returns the captured function names in capture order.
func (s *Snapshot) Functions() []string { return slices.Clone(s.funcs) }

// HasFunction reports whether name was defined as a function.
func (s *Snapshot) HasFunction(name string) bool {
	_, ok := s.funcIndex[name]
	return ok
}

// Aliases returns the captured aliases in capture order.
func (s *Snapshot) Aliases() []Alias { return slices.Clone(s.aliases) }

// Alias looks an alias up by name.
func (s *Snapshot) Alias(name string) (Alias, bool) {
	i, ok := s.aliasIndex[name]
	if !ok {
		return Alias{}, false
	}
	return s.aliases[i], true
}

// WithoutVariables returns a new snapshot that drops every variable for
// which drop returns true. Functions and aliases are kept as they are.
func (s *Snapshot) WithoutVariables(drop func(name string) bool) *Snapshot {
	b := NewBuilder(s.label)
	for _, v := range s.vars {
		if drop(v.Name) {
			continue
		}
		// names are unique in s, so Add cannot fail
		_ = b.AddVariable(v.clone())
	}
	for _, f := range s.funcs {
		_ = b.AddFunction(f)
	}
	for _, a := range s.aliases {
		_ = b.AddAlias(a)
	}
	return b.Build()
}
