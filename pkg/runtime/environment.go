package runtime

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrUndefinedVariable = errors.New("undefined variable")
	ErrConstAssignment   = errors.New("cannot assign to constant")
)

// Binding is a named slot. Const bindings reject every later write,
// including writes to elements of a stored array.
type Binding struct {
	Value Value
	Const bool
}

// Environment provides lexical scoping for rover runtime values.
type Environment struct {
	bindings map[string]*Binding
	parent   *Environment
}

// NewEnvironment creates a new environment, optionally nested under a parent.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		bindings: make(map[string]*Binding),
		parent:   parent,
	}
}

// Parent exposes the lexical parent (nil when global).
func (e *Environment) Parent() *Environment {
	return e.parent
}

// Snapshot returns copies of the current scope's values.
func (e *Environment) Snapshot() map[string]Value {
	out := make(map[string]Value, len(e.bindings))
	for k, b := range e.bindings {
		out[k] = Copy(b.Value)
	}
	return out
}

// Define inserts or overwrites a binding in the current scope.
func (e *Environment) Define(name string, value Value, isConst bool) {
	e.bindings[name] = &Binding{Value: value, Const: isConst}
}

// Lookup finds the nearest binding for name, searching outward.
func (e *Environment) Lookup(name string) (*Binding, bool) {
	for env := e; env != nil; env = env.parent {
		if b, ok := env.bindings[name]; ok {
			return b, true
		}
	}
	return nil, false
}

// Assign updates an existing binding in the first scope where it appears.
func (e *Environment) Assign(name string, value Value) error {
	b, ok := e.Lookup(name)
	if !ok {
		return fmt.Errorf("%w '%s'", ErrUndefinedVariable, name)
	}
	if b.Const {
		return fmt.Errorf("%w '%s'", ErrConstAssignment, name)
	}
	b.Value = value
	return nil
}

// Get retrieves a copy of the bound value, searching outward through the
// scope chain.
func (e *Environment) Get(name string) (Value, error) {
	b, ok := e.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w '%s'", ErrUndefinedVariable, name)
	}
	return Copy(b.Value), nil
}

// Keys returns the current scope's names in sorted order.
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.bindings))
	for k := range e.bindings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Extend creates a child scope.
func (e *Environment) Extend() *Environment {
	return NewEnvironment(e)
}
