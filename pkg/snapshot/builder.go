package snapshot

import "fmt"

// Builder accumulates captured entries and produces a Snapshot.
// A Builder must not be used after Build.
type Builder struct {
	s *Snapshot
}

// NewBuilder starts an empty snapshot with the given label.
func NewBuilder(label string) *Builder {
	return &Builder{s: &Snapshot{
		label:      label,
		varIndex:   make(map[string]int),
		funcIndex:  make(map[string]struct{}),
		aliasIndex: make(map[string]int),
	}}
}

// AddVariable appends a variable. A name may only be added once.
func (b *Builder) AddVariable(v Variable) error {
	if v.Name == "" {
		return fmt.Errorf("variable with empty name")
	}
	if _, dup := b.s.varIndex[v.Name]; dup {
		return fmt.Errorf("duplicate variable %q", v.Name)
	}
	if v.Kind == KindAssoc && len(v.Elements)%2 != 0 {
		return fmt.Errorf("associative array %q has an odd number of elements", v.Name)
	}
	b.s.varIndex[v.Name] = len(b.s.vars)
	b.s.vars = append(b.s.vars, v.clone())
	return nil
}

// AddFunction records a function name. A name may only be added once.
func (b *Builder) AddFunction(name string) error {
	if name == "" {
		return fmt.Errorf("function with empty name")
	}
	if _, dup := b.s.funcIndex[name]; dup {
		return fmt.Errorf("duplicate function %q", name)
	}
	b.s.funcIndex[name] = struct{}{}
	b.s.funcs = append(b.s.funcs, name)
	return nil
}

// AddAlias records an alias definition. A name may only be added once.
func (b *Builder) AddAlias(a Alias) error {
	if a.Name == "" {
		return fmt.Errorf("alias with empty name")
	}
	if _, dup := b.s.aliasIndex[a.Name]; dup {
		return fmt.Errorf("duplicate alias %q", a.Name)
	}
	b.s.aliasIndex[a.Name] = len(b.s.aliases)
	b.s.aliases = append(b.s.aliases, a)
	return nil
}

// Build returns the finished snapshot.
func (b *Builder) Build() *Snapshot {
	s := b.s
	b.s = nil
	return s
}
