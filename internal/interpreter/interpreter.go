// Package interpreter implements a tree walking interpreter for .dims programs.
//
// The interpreter only ever runs programs that have already been accepted by the
// checker. Anything that goes wrong at runtime is therefore a bug in the checker
// (or the interpreter) rather than in the program, and is reported as a [Fault]
// wrapped in [ErrInvariant].
package interpreter

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.followtheprocess.codes/dims/internal/env"
	"go.followtheprocess.codes/dims/internal/syntax/ast"
)

// ErrInvariant is returned from [Interpreter.Run] when the program breaks an invariant
// the checker should have guaranteed.
var ErrInvariant = errors.New("internal invariant violated")

// Fault describes a single invariant violation.
type Fault struct {
	Msg  string // What went wrong
	Line int    // The line it went wrong on, 0 if unknown
}

// Error implements the error interface for [Fault].
func (f *Fault) Error() string {
	if f.Line == 0 {
		return f.Msg
	}

	return fmt.Sprintf("Line %d: %s", f.Line, f.Msg)
}

// writeError wraps an error writing program output so it can be told apart from
// a [Fault] when recovered.
type writeError struct {
	err error
}

// Interpreter executes checked programs.
type Interpreter struct {
	stdout io.Writer // Where print statements write to
}

// New returns a new [Interpreter] that writes program output to stdout.
func New(stdout io.Writer) *Interpreter {
	return &Interpreter{stdout: stdout}
}

// Run executes stmt against values, which is modified in place with the
// declarations and assignments stmt makes at the top level.
//
// A fresh program should be run against a new, empty environment. The context is
// consulted before every iteration of a while loop, so cancelling it is the only
// way to stop a program that never terminates.
func (i *Interpreter) Run(ctx context.Context, stmt ast.Stmt, values *env.Env[*Val]) (err error) {
	defer errRecover(&err)

	r := runner{ctx: ctx, stdout: i.stdout}
	r.exec(stmt, values)

	return nil
}

// errRecover is the handler that turns panics into returns from [Interpreter.Run].
func errRecover(errp *error) {
	e := recover()
	if e == nil {
		return
	}

	switch err := e.(type) {
	case *Fault:
		*errp = fmt.Errorf("%w: %w", ErrInvariant, err)
	case writeError:
		*errp = fmt.Errorf("could not write program output: %w", err.err)
	case cancelled:
		*errp = err.err
	default:
		panic(e)
	}
}

// cancelled carries the context error out of a cancelled run.
type cancelled struct {
	err error
}

// runner is the state for a single call to [Interpreter.Run].
type runner struct {
	ctx    context.Context //nolint:containedctx // Scoped to a single run
	stdout io.Writer
}

// fault aborts the run with a [Fault].
func fault(line int, format string, a ...any) {
	panic(&Fault{Msg: fmt.Sprintf(format, a...), Line: line})
}

// lineOf returns the line of a statement, it is itself an invariant violation to
// ask for the line of a statement that does not have one.
func lineOf(stmt ast.Stmt) int {
	line, err := stmt.Line()
	if err != nil {
		fault(0, "line of %s: %v", stmt.Kind(), err)
	}

	return line
}

func (r runner) exec(stmt ast.Stmt, values *env.Env[*Val]) {
	switch stmt := stmt.(type) {
	case *ast.Skip:
		// Nothing to do
	case *ast.Sequence:
		r.exec(stmt.First, values)
		r.exec(stmt.Second, values)
	case *ast.Declaration:
		// Bound to nil, meaning declared but not yet set
		if err := values.Bind(stmt.Name, nil); err != nil {
			fault(lineOf(stmt), "declaration of '%s': %v", stmt.Name, err)
		}
	case *ast.Assignment:
		value := r.eval(stmt.Value, values)
		if err := values.Assign(stmt.Name, &value); err != nil {
			fault(lineOf(stmt), "assignment to '%s': %v", stmt.Name, err)
		}
	case *ast.Print:
		value := r.eval(stmt.Value, values)
		if _, err := fmt.Fprintln(r.stdout, value); err != nil {
			panic(writeError{err: err})
		}
	case *ast.If:
		if r.bool(stmt.Cond, values) {
			r.exec(stmt.Then, values.Child())
		} else {
			r.exec(stmt.Else, values.Child())
		}
	case *ast.While:
		// The body runs directly in the loop's environment, no scope is created
		// for it, unlike in the checker
		for r.bool(stmt.Cond, values) {
			r.exec(stmt.Body, values)

			if err := r.ctx.Err(); err != nil {
				panic(cancelled{err: err})
			}
		}
	case *ast.Block:
		r.exec(stmt.Body, values.Child())
	default:
		fault(0, "unhandled statement %T", stmt)
	}
}

func (r runner) eval(expr ast.Expr, values *env.Env[*Val]) Val {
	switch expr := expr.(type) {
	case *ast.BoolLiteral:
		return BoolVal(expr.Value)
	case *ast.IntLiteral:
		return IntVal(expr.Value)
	case *ast.VariableRef:
		value, ok := values.Lookup(expr.Name)
		if !ok {
			fault(expr.Line(), "use of unbound variable '%s'", expr.Name)
		}

		if value == nil {
			fault(expr.Line(), "use of unset variable '%s'", expr.Name)
		}

		return *value
	case *ast.BinaryOp:
		// Both sides, always, in order. Or does not short circuit
		left := r.eval(expr.Left, values)
		right := r.eval(expr.Right, values)

		switch expr.Op {
		case ast.Add:
			return IntVal(asInt(expr.Left, left) + asInt(expr.Right, right))
		case ast.Sub:
			return IntVal(asInt(expr.Left, left) - asInt(expr.Right, right))
		case ast.Mul:
			return IntVal(asInt(expr.Left, left) * asInt(expr.Right, right))
		case ast.LessThan:
			return BoolVal(asInt(expr.Left, left) < asInt(expr.Right, right))
		case ast.Equal:
			return BoolVal(left == right)
		case ast.Or:
			return BoolVal(asBool(expr.Left, left) || asBool(expr.Right, right))
		default:
			fault(expr.Line(), "unhandled binary operator %s", expr.Op)
		}
	case *ast.UnaryOp:
		operand := r.eval(expr.Operand, values)

		switch expr.Op {
		case ast.Not:
			return BoolVal(!asBool(expr.Operand, operand))
		case ast.Negate:
			return IntVal(-asInt(expr.Operand, operand))
		default:
			fault(expr.Line(), "unhandled unary operator %s", expr.Op)
		}
	default:
		fault(0, "unhandled expression %T", expr)
	}

	panic("unreachable")
}

// bool evaluates a condition.
func (r runner) bool(cond ast.Expr, values *env.Env[*Val]) bool {
	return asBool(cond, r.eval(cond, values))
}

// asInt returns the integer held by value, which was produced by expr.
func asInt(expr ast.Expr, value Val) int {
	if value.Kind != IntKind {
		fault(expr.Line(), "expected an int value but got %s", value.Kind)
	}

	return value.Int
}

// asBool returns the boolean held by value, which was produced by expr.
func asBool(expr ast.Expr, value Val) bool {
	if value.Kind != BoolKind {
		fault(expr.Line(), "expected a bool value but got %s", value.Kind)
	}

	return value.Bool
}
