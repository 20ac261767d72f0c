package env_test

import (
	"errors"
	"slices"
	"testing"

	"go.followtheprocess.codes/dims/internal/env"
	"go.followtheprocess.codes/test"
)

func TestEnv(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		e := env.New[string]()

		got, ok := e.Lookup("anything")
		test.False(t, ok)
		test.Equal(t, got, "")
		test.False(t, e.IsLocal("anything"))
	})

	t.Run("full", func(t *testing.T) {
		e := env.New[string]()

		test.Ok(t, e.Bind("something", "here"))
		test.Ok(t, e.Bind("other", "too"))

		// Try and bind "something" again in the same scope
		err := e.Bind("something", "else")
		test.Err(t, err)
		test.True(t, errors.Is(err, env.ErrDuplicateBinding))

		something, ok := e.Lookup("something")
		test.True(t, ok)
		test.Equal(t, something, "here") // The failed bind changed nothing

		other, ok := e.Lookup("other")
		test.True(t, ok)
		test.Equal(t, other, "too")
	})

	t.Run("parent", func(t *testing.T) {
		e := env.New[string]()

		// Bind some globals
		test.Ok(t, e.Bind("something", "here"))
		test.Ok(t, e.Bind("other", "too"))

		// Create a child scope
		child := e.Child()

		// Bind some locals
		test.Ok(t, child.Bind("more", "here"))

		// Shadow a global with a local
		test.Ok(t, child.Bind("something", "child something value"))

		// Use the child to access
		other, ok := child.Lookup("other")
		test.True(t, ok)
		test.Equal(t, other, "too") // Comes from globals

		something, ok := child.Lookup("something")
		test.True(t, ok)
		test.Equal(t, something, "child something value") // Prefers local scope

		something, ok = e.Lookup("something")
		test.True(t, ok)
		test.Equal(t, something, "here") // Using the global env again

		_, ok = e.Lookup("more")
		test.False(t, ok) // Child bindings are invisible to the parent

		test.True(t, child.IsLocal("more"))
		test.False(t, child.IsLocal("other"))
	})
}

func TestAssign(t *testing.T) {
	t.Run("local", func(t *testing.T) {
		e := env.New[int]()
		test.Ok(t, e.Bind("x", 1))
		test.Ok(t, e.Assign("x", 2))

		got, ok := e.Lookup("x")
		test.True(t, ok)
		test.Equal(t, got, 2)
	})

	t.Run("nearest enclosing", func(t *testing.T) {
		root := env.New[int]()
		test.Ok(t, root.Bind("x", 1))

		middle := root.Child()
		test.Ok(t, middle.Bind("x", 10))

		inner := middle.Child()
		test.Ok(t, inner.Assign("x", 20))

		got, _ := middle.Lookup("x")
		test.Equal(t, got, 20) // The nearest binding was updated

		got, _ = root.Lookup("x")
		test.Equal(t, got, 1) // The shadowed one was not

		test.False(t, inner.IsLocal("x")) // Assign never creates a binding
	})

	t.Run("unbound", func(t *testing.T) {
		root := env.New[int]()
		child := root.Child()

		err := child.Assign("nope", 1)
		test.Err(t, err)
		test.True(t, errors.Is(err, env.ErrUnboundAssignment))

		_, ok := child.Lookup("nope")
		test.False(t, ok)
	})
}

func TestLookupNilPayload(t *testing.T) {
	// A nil payload in an inner scope still shadows an outer binding
	root := env.New[*int]()
	one := 1
	test.Ok(t, root.Bind("x", &one))

	child := root.Child()
	test.Ok(t, child.Bind("x", nil))

	got, ok := child.Lookup("x")
	test.True(t, ok)
	test.True(t, got == nil, test.Context("expected the inner nil binding, got %v", got))
}

func TestChildDoesNotMutateParent(t *testing.T) {
	root := env.New[int]()
	test.Ok(t, root.Bind("x", 1))

	_ = root.Child()
	_ = root.Child()

	test.EqualFunc(t, root.Names(), []string{"x"}, slices.Equal)
}

func TestNames(t *testing.T) {
	root := env.New[int]()
	test.Ok(t, root.Bind("z", 1))
	test.Ok(t, root.Bind("a", 2))

	child := root.Child()
	test.Ok(t, child.Bind("m", 3))
	test.Ok(t, child.Bind("z", 4)) // Shadows, only listed once

	test.EqualFunc(t, child.Names(), []string{"a", "m", "z"}, slices.Equal)
	test.EqualFunc(t, root.Names(), []string{"a", "z"}, slices.Equal)
	test.EqualFunc(t, env.New[int]().Names(), []string{}, slices.Equal)
}

func TestClone(t *testing.T) {
	type fact struct{ assigned bool }

	root := env.New[*fact]()
	test.Ok(t, root.Bind("x", &fact{}))

	child := root.Child()
	test.Ok(t, child.Bind("y", &fact{}))

	clone := child.Clone(func(f *fact) *fact {
		c := *f
		return &c
	})

	// Mutate through the clone
	x, ok := clone.Lookup("x")
	test.True(t, ok)
	x.assigned = true
	test.Ok(t, clone.Bind("z", &fact{}))

	// The original is untouched
	original, _ := child.Lookup("x")
	test.False(t, original.assigned)
	test.False(t, child.IsLocal("z"))

	// The clone keeps the shape of the chain
	test.True(t, clone.IsLocal("y"))
	test.False(t, clone.IsLocal("x"))
	test.EqualFunc(t, clone.Names(), []string{"x", "y", "z"}, slices.Equal)
}
