// Package env implements a generic, lexically scoped environment mapping
// variable names to a payload.
//
// The same shape is used by the checker (payload: static facts) and the
// interpreter (payload: runtime values) so that both passes agree on scoping.
//
// An [Env] is a single scope with an optional parent, child scopes are created
// with [Env.Child] and are simply dropped when the construct that created them
// is finished with.
package env

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

var (
	// ErrDuplicateBinding is returned from [Env.Bind] when the name is already
	// bound in the current scope.
	ErrDuplicateBinding = errors.New("duplicate binding")

	// ErrUnboundAssignment is returned from [Env.Assign] when the name is not
	// bound in any enclosing scope.
	ErrUnboundAssignment = errors.New("assignment to unbound name")
)

// Env is a single scope in a chain of scopes.
//
// The zero value is not usable, use [New] or [Env.Child].
type Env[T any] struct {
	values map[string]T
	parent *Env[T]
}

// New returns a new, empty root scope with no parent.
func New[T any]() *Env[T] {
	return &Env[T]{
		values: make(map[string]T),
		parent: nil,
	}
}

// Child creates a new empty scope using the calling one as a parent.
//
// The receiver is not modified.
func (e *Env[T]) Child() *Env[T] {
	return &Env[T]{
		values: make(map[string]T),
		parent: e,
	}
}

// Bind binds name to value in the current scope only.
//
// Binding a name that is already bound in an enclosing scope shadows it, binding
// a name that is already bound in this scope returns [ErrDuplicateBinding].
func (e *Env[T]) Bind(name string, value T) error {
	if e.IsLocal(name) {
		return fmt.Errorf("%w: %q is already bound in this scope", ErrDuplicateBinding, name)
	}

	e.values[name] = value

	return nil
}

// Lookup walks up the scope chain to find name, returning the payload from the
// nearest scope that binds it and true, or the zero value and false if no scope does.
func (e *Env[T]) Lookup(name string) (T, bool) {
	for scope := e; scope != nil; scope = scope.parent {
		if value, ok := scope.values[name]; ok {
			return value, true
		}
	}

	var zero T

	return zero, false
}

// Assign overwrites the payload of name in the nearest scope that binds it.
//
// It never creates a binding, if no scope binds name it returns [ErrUnboundAssignment].
func (e *Env[T]) Assign(name string, value T) error {
	for scope := e; scope != nil; scope = scope.parent {
		if _, ok := scope.values[name]; ok {
			scope.values[name] = value
			return nil
		}
	}

	return fmt.Errorf("%w: %q", ErrUnboundAssignment, name)
}

// IsLocal reports whether name is bound in the current scope, enclosing
// scopes are not consulted.
func (e *Env[T]) IsLocal(name string) bool {
	_, ok := e.values[name]
	return ok
}

// Names returns every name visible from the current scope, sorted.
func (e *Env[T]) Names() []string {
	seen := make(map[string]struct{})

	for scope := e; scope != nil; scope = scope.parent {
		for name := range scope.values {
			seen[name] = struct{}{}
		}
	}

	return slices.Sorted(maps.Keys(seen))
}

// Clone returns a deep copy of the whole scope chain, passing every payload
// through clone.
//
// Mutations through the copy are not visible through the original and vice versa,
// provided clone does not return shared state.
func (e *Env[T]) Clone(clone func(T) T) *Env[T] {
	if e == nil {
		return nil
	}

	values := make(map[string]T, len(e.values))
	for name, value := range e.values {
		values[name] = clone(value)
	}

	return &Env[T]{
		values: values,
		parent: e.parent.Clone(clone),
	}
}
