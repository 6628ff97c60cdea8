package object

import (
	"sort"
)

// Scope is a variable binding table with an optional parent. Lookups walk
// the parent chain; bindings are always made in the scope itself.
//
// A Scope is not safe for concurrent mutation.
type Scope struct {
	vars   map[string]Value
	parent *Scope
}

// NewScope returns an empty scope enclosed by parent, which may be nil.
func NewScope(parent *Scope) *Scope {
	return &Scope{vars: map[string]Value{}, parent: parent}
}

// Parent returns the enclosing scope, or nil for a root scope.
func (s *Scope) Parent() *Scope {
	return s.parent
}

// Get looks up name in this scope and then in each enclosing scope.
func (s *Scope) Get(name string) (Value, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// GetLocal looks up name in this scope only.
func (s *Scope) GetLocal(name string) (Value, bool) {
	v, ok := s.vars[name]
	return v, ok
}

// Set binds name to value in this scope. Binding the empty name fails with
// errors.ErrMissingArgument.
func (s *Scope) Set(name string, value Value) error {
	if name == "" {
		return MissingArgumentf("cannot bind the empty name")
	}
	if value == nil {
		return TypeErrorf("cannot bind %q to a nil value", name)
	}
	s.vars[name] = value
	return nil
}

// Delete removes a binding from this scope.
func (s *Scope) Delete(name string) {
	delete(s.vars, name)
}

// Names returns the names bound in this scope, sorted.
func (s *Scope) Names() []string {
	names := make([]string, 0, len(s.vars))
	for name := range s.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of bindings in this scope.
func (s *Scope) Len() int {
	return len(s.vars)
}
