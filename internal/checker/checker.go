// Package checker implements the static checker for .dims programs, a single pass
// that enforces both typing and definite assignment.
//
// Checking never stops at the first problem, every diagnostic found in the program
// is reported in the order it was discovered, depth first and left to right.
package checker

import (
	"errors"
	"fmt"

	"go.followtheprocess.codes/dims/internal/env"
	"go.followtheprocess.codes/dims/internal/syntax/ast"
)

// ErrCheck is returned from [Check] when the program has at least one diagnostic.
var ErrCheck = errors.New("check failed")

// Fact is what the checker knows about a declared variable.
//
// Facts are shared by pointer so that an assignment anywhere in the scope chain
// marks the variable assigned for every scope that can see it.
type Fact struct {
	Type     ast.Type // The declared type
	Assigned bool     // Whether the variable has been assigned to
}

// Clone returns a copy of f that shares no state with it.
func (f *Fact) Clone() *Fact {
	clone := *f
	return &clone
}

// Result is the outcome of checking a program.
type Result struct {
	// Diagnostics holds every problem found, in discovery order.
	Diagnostics []Diagnostic `json:"diagnostics"`
}

// OK reports whether the program passed the check.
func (r Result) OK() bool {
	return len(r.Diagnostics) == 0
}

// Check checks the program stmt against facts, which is modified in place with
// the declarations and assignments stmt makes at the top level.
//
// A fresh program should be checked against a new, empty environment. If any
// diagnostics are found, the returned error wraps [ErrCheck] and the program
// must not be run.
func Check(stmt ast.Stmt, facts *env.Env[*Fact]) (Result, error) {
	c := &checker{}
	c.stmt(stmt, facts)

	result := Result{Diagnostics: c.diagnostics}
	if !result.OK() {
		return result, fmt.Errorf("%w: %d problem(s) found", ErrCheck, len(c.diagnostics))
	}

	return result, nil
}

// checker holds the diagnostics accumulated during a single check.
type checker struct {
	diagnostics []Diagnostic
}

// report records a diagnostic.
func (c *checker) report(line int, kind Kind, format string, a ...any) {
	c.diagnostics = append(c.diagnostics, Diagnostic{
		Msg:  fmt.Sprintf(format, a...),
		Line: line,
		Kind: kind,
	})
}

// stmt checks a single statement.
func (c *checker) stmt(stmt ast.Stmt, facts *env.Env[*Fact]) {
	switch stmt := stmt.(type) {
	case *ast.Skip:
		// Nothing to do
	case *ast.Sequence:
		c.stmt(stmt.First, facts)
		c.stmt(stmt.Second, facts)
	case *ast.Declaration:
		// Declared variables start out unassigned
		if err := facts.Bind(stmt.Name, &Fact{Type: stmt.Type}); err != nil {
			c.report(stmt.Token.Line, RedeclarationError, "Redeclaration of variable '%s' in same scope.", stmt.Name)
		}
	case *ast.Assignment:
		typ, known := c.expr(stmt.Value, facts)

		fact, ok := facts.Lookup(stmt.Name)
		if !ok {
			c.report(stmt.Token.Line, UnboundAssignment, "Assignment to undeclared variable '%s'.", stmt.Name)
			return
		}

		// Marked regardless of which branch or scope we're in, the analysis is
		// not path sensitive
		fact.Assigned = true

		if known && typ != fact.Type {
			c.report(
				stmt.Token.Line,
				TypeMismatch,
				"Assignment has variable with type '%s' but expression with type '%s'.",
				fact.Type,
				typ,
			)
		}
	case *ast.Print:
		// Anything is fine as long as the expression is
		c.expr(stmt.Value, facts)
	case *ast.If:
		c.condition("If", stmt.Cond, facts)

		// Each branch gets a scope of it's own
		c.stmt(stmt.Then, facts.Child())
		c.stmt(stmt.Else, facts.Child())
	case *ast.While:
		c.condition("While", stmt.Cond, facts)
		c.stmt(stmt.Body, facts.Child())
	case *ast.Block:
		c.stmt(stmt.Body, facts.Child())
	default:
		panic(fmt.Sprintf("checker: unhandled statement %T", stmt))
	}
}

// condition checks the condition of an if or while statement, which must be a bool.
func (c *checker) condition(construct string, cond ast.Expr, facts *env.Env[*Fact]) {
	typ, known := c.expr(cond, facts)
	if known && typ != ast.TypeBool {
		c.report(
			cond.Line(),
			ConditionTypeError,
			"%s statement requires a condition with type '%s' but got '%s'.",
			construct,
			ast.TypeBool,
			typ,
		)
	}
}

// expr checks an expression and returns its type.
//
// The type is unknown, and false is returned, only when the expression is a reference
// to an undeclared variable. Operators always know their result type.
func (c *checker) expr(expr ast.Expr, facts *env.Env[*Fact]) (ast.Type, bool) {
	switch expr := expr.(type) {
	case *ast.BoolLiteral:
		return ast.TypeBool, true
	case *ast.IntLiteral:
		return ast.TypeInt, true
	case *ast.VariableRef:
		fact, ok := facts.Lookup(expr.Name)
		if !ok {
			c.report(expr.Line(), UnresolvedVariable, "Use of undeclared variable '%s'.", expr.Name)
			return ast.TypeInvalid, false
		}

		if !fact.Assigned {
			c.report(expr.Line(), UseOfUnassigned, "Use of unassigned variable '%s'.", expr.Name)
		}

		return fact.Type, true
	case *ast.BinaryOp:
		return c.binaryOp(expr, facts)
	case *ast.UnaryOp:
		return c.unaryOp(expr, facts)
	default:
		panic(fmt.Sprintf("checker: unhandled expression %T", expr))
	}
}

// binaryOp checks both operands of a binary operator, always, and returns the
// operator's result type.
func (c *checker) binaryOp(expr *ast.BinaryOp, facts *env.Env[*Fact]) (ast.Type, bool) {
	left, leftKnown := c.expr(expr.Left, facts)
	right, rightKnown := c.expr(expr.Right, facts)

	switch expr.Op {
	case ast.Add, ast.Sub, ast.Mul, ast.LessThan:
		c.operand(expr, "left", expr.Left, left, leftKnown, ast.TypeInt)
		c.operand(expr, "right", expr.Right, right, rightKnown, ast.TypeInt)
	case ast.Or:
		c.operand(expr, "left", expr.Left, left, leftKnown, ast.TypeBool)
		c.operand(expr, "right", expr.Right, right, rightKnown, ast.TypeBool)
	case ast.Equal:
		if leftKnown && rightKnown && left != right {
			c.report(
				expr.Line(),
				TypeMismatch,
				"Operator '%s' expected operands of the same type, but got '%s' and '%s'.",
				expr.Op,
				left,
				right,
			)
		}
	default:
		panic(fmt.Sprintf("checker: unhandled binary operator %s", expr.Op))
	}

	switch expr.Op {
	case ast.Add, ast.Sub, ast.Mul:
		return ast.TypeInt, true
	default:
		return ast.TypeBool, true
	}
}

// operand reports an [OperandTypeError] on the operand of a binary operator if its
// type is known and is not want.
func (c *checker) operand(expr *ast.BinaryOp, side string, operand ast.Expr, typ ast.Type, known bool, want ast.Type) {
	if known && typ != want {
		c.report(
			operand.Line(),
			OperandTypeError,
			"Operator '%s' expected a %s operand of type '%s', but got '%s'.",
			expr.Op,
			side,
			want,
			typ,
		)
	}
}

// unaryOp checks the operand of a unary operator and returns the operator's result type.
func (c *checker) unaryOp(expr *ast.UnaryOp, facts *env.Env[*Fact]) (ast.Type, bool) {
	typ, known := c.expr(expr.Operand, facts)

	var want ast.Type

	switch expr.Op {
	case ast.Not:
		want = ast.TypeBool
	case ast.Negate:
		want = ast.TypeInt
	default:
		panic(fmt.Sprintf("checker: unhandled unary operator %s", expr.Op))
	}

	if known && typ != want {
		c.report(
			expr.Line(),
			OperandTypeError,
			"Operator '%s' expected an operand of type '%s', but got '%s'.",
			expr.Op,
			want,
			typ,
		)
	}

	return want, true
}
