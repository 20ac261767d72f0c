// Package format provides conversions between .dims syntax trees and external
// document formats.
//
// Notably, the package provides the [Importer] and [Exporter] interfaces for doing this
// in a format-agnostic way, along with JSON, YAML and TOML implementations of both.
package format

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"go.followtheprocess.codes/dims/internal/syntax/ast"
	"go.followtheprocess.codes/dims/internal/syntax/token"
)

// ErrMalformed is returned when an imported document does not describe a valid tree.
var ErrMalformed = errors.New("malformed document")

// Exporter is the interface defining a mechanism for exporting a .dims program
// into an external format.
type Exporter interface {
	// Export exports the [Program] into an external format, written to w.
	Export(w io.Writer, program Program) error
}

// Importer is the interface defining a mechanism for importing external formats
// back into .dims programs.
type Importer interface {
	// Import imports the data from the external format into a [Program].
	Import(r io.Reader) (Program, error)
}

// Program is the exported form of a parsed .dims file.
type Program struct {
	// Name is the name of the file the program was parsed from.
	Name string `json:"name,omitempty" toml:"name,omitempty" yaml:"name,omitempty"`

	// Root is the top level statement.
	Root Node `json:"root" toml:"root" yaml:"root"`
}

// Node is the exported form of a single syntax tree node.
//
// Which of the optional fields are set depends on Kind. The children of a
// Sequence are flattened, so a program of n statements is a single Sequence
// with n children rather than n-1 nested ones.
type Node struct {
	// Kind is the kind of node, e.g. "Assignment" or "BinaryOp".
	Kind string `json:"kind" toml:"kind" yaml:"kind"`

	// Line is the source line, absent for skip.
	Line int `json:"line,omitempty" toml:"line,omitempty" yaml:"line,omitempty"`

	// Name is the variable name for declarations, assignments and references.
	Name string `json:"name,omitempty" toml:"name,omitempty" yaml:"name,omitempty"`

	// Type is the declared type of a declaration.
	Type string `json:"type,omitempty" toml:"type,omitempty" yaml:"type,omitempty"`

	// Op is the operator symbol of a unary or binary operation.
	Op string `json:"op,omitempty" toml:"op,omitempty" yaml:"op,omitempty"`

	// Value is the literal value of an int or bool literal.
	Value string `json:"value,omitempty" toml:"value,omitempty" yaml:"value,omitempty"`

	// Children are the child nodes, in source order.
	Children []Node `json:"children,omitempty" toml:"children,omitempty" yaml:"children,omitempty"`
}

// FromAST converts a parsed program into its exported form.
func FromAST(name string, stmt ast.Stmt) Program {
	return Program{Name: name, Root: fromStmt(stmt)}
}

func fromStmt(stmt ast.Stmt) Node {
	node := Node{Kind: stmt.Kind().String()}
	if line, err := stmt.Line(); err == nil {
		node.Line = line
	}

	switch stmt := stmt.(type) {
	case *ast.Skip:
		// Nothing else to record
	case *ast.Sequence:
		var current ast.Stmt = stmt
		for {
			seq, ok := current.(*ast.Sequence)
			if !ok {
				node.Children = append(node.Children, fromStmt(current))
				break
			}

			node.Children = append(node.Children, fromStmt(seq.First))
			current = seq.Second
		}
	case *ast.Declaration:
		node.Name = stmt.Name
		node.Type = stmt.Type.String()
	case *ast.Assignment:
		node.Name = stmt.Name
		node.Children = []Node{fromExpr(stmt.Value)}
	case *ast.Print:
		node.Children = []Node{fromExpr(stmt.Value)}
	case *ast.If:
		node.Children = []Node{fromExpr(stmt.Cond), fromStmt(stmt.Then), fromStmt(stmt.Else)}
	case *ast.While:
		node.Children = []Node{fromExpr(stmt.Cond), fromStmt(stmt.Body)}
	case *ast.Block:
		node.Children = []Node{fromStmt(stmt.Body)}
	default:
		panic(fmt.Sprintf("format: unhandled statement %T", stmt))
	}

	return node
}

func fromExpr(expr ast.Expr) Node {
	node := Node{Kind: expr.Kind().String(), Line: expr.Line()}

	switch expr := expr.(type) {
	case *ast.BoolLiteral:
		node.Value = strconv.FormatBool(expr.Value)
	case *ast.IntLiteral:
		node.Value = strconv.Itoa(expr.Value)
	case *ast.VariableRef:
		node.Name = expr.Name
	case *ast.UnaryOp:
		node.Op = expr.Op.String()
		node.Children = []Node{fromExpr(expr.Operand)}
	case *ast.BinaryOp:
		node.Op = expr.Op.String()
		node.Children = []Node{fromExpr(expr.Left), fromExpr(expr.Right)}
	default:
		panic(fmt.Sprintf("format: unhandled expression %T", expr))
	}

	return node
}

// AST rebuilds the syntax tree described by p.
//
// Only line information survives a round trip through an external format, the
// byte offsets of the rebuilt tokens are all zero.
func (p Program) AST() (ast.Stmt, error) {
	return toStmt(p.Root)
}

// malformed returns an error wrapping [ErrMalformed].
func malformed(node Node, format string, a ...any) error {
	return fmt.Errorf("%w: %s node on line %d: %s", ErrMalformed, node.Kind, node.Line, fmt.Sprintf(format, a...))
}

// want checks the node has exactly n children.
func want(node Node, n int) error {
	if len(node.Children) != n {
		return malformed(node, "expected %d children, got %d", n, len(node.Children))
	}

	return nil
}

func toStmt(node Node) (ast.Stmt, error) {
	switch node.Kind {
	case ast.KindSkip.String():
		if node.Line == 0 {
			return &ast.Skip{}, nil
		}

		return &ast.Skip{Token: token.Token{Kind: token.Skip, Line: node.Line}}, nil
	case ast.KindSequence.String():
		if len(node.Children) < 2 { //nolint:mnd // A sequence joins at least two statements
			return nil, malformed(node, "expected at least 2 children, got %d", len(node.Children))
		}

		stmts := make([]ast.Stmt, 0, len(node.Children))
		for _, child := range node.Children {
			stmt, err := toStmt(child)
			if err != nil {
				return nil, err
			}

			stmts = append(stmts, stmt)
		}

		// Fold right, the same shape the parser produces
		root := stmts[len(stmts)-1]
		for i := len(stmts) - 2; i >= 0; i-- {
			root = &ast.Sequence{First: stmts[i], Second: root, Token: stmts[i].Start()}
		}

		return root, nil
	case ast.KindDeclaration.String():
		if err := want(node, 0); err != nil {
			return nil, err
		}

		typ, kind, err := declaredType(node)
		if err != nil {
			return nil, err
		}

		return &ast.Declaration{Name: node.Name, Type: typ, Token: token.Token{Kind: kind, Line: node.Line}}, nil
	case ast.KindAssignment.String():
		if err := want(node, 1); err != nil {
			return nil, err
		}

		value, err := toExpr(node.Children[0])
		if err != nil {
			return nil, err
		}

		return &ast.Assignment{Name: node.Name, Value: value, Token: token.Token{Kind: token.Ident, Line: node.Line}}, nil
	case ast.KindPrint.String():
		if err := want(node, 1); err != nil {
			return nil, err
		}

		value, err := toExpr(node.Children[0])
		if err != nil {
			return nil, err
		}

		return &ast.Print{Value: value, Token: token.Token{Kind: token.Print, Line: node.Line}}, nil
	case ast.KindIf.String():
		if err := want(node, 3); err != nil { //nolint:mnd // cond, then, else
			return nil, err
		}

		cond, err := toExpr(node.Children[0])
		if err != nil {
			return nil, err
		}

		then, err := toStmt(node.Children[1])
		if err != nil {
			return nil, err
		}

		els, err := toStmt(node.Children[2])
		if err != nil {
			return nil, err
		}

		return &ast.If{Cond: cond, Then: then, Else: els, Token: token.Token{Kind: token.If, Line: node.Line}}, nil
	case ast.KindWhile.String():
		if err := want(node, 2); err != nil { //nolint:mnd // cond, body
			return nil, err
		}

		cond, err := toExpr(node.Children[0])
		if err != nil {
			return nil, err
		}

		body, err := toStmt(node.Children[1])
		if err != nil {
			return nil, err
		}

		return &ast.While{Cond: cond, Body: body, Token: token.Token{Kind: token.While, Line: node.Line}}, nil
	case ast.KindBlock.String():
		if err := want(node, 1); err != nil {
			return nil, err
		}

		body, err := toStmt(node.Children[0])
		if err != nil {
			return nil, err
		}

		return &ast.Block{Body: body, Token: token.Token{Kind: token.LeftBrace, Line: node.Line}}, nil
	default:
		return nil, malformed(node, "not a statement")
	}
}

func toExpr(node Node) (ast.Expr, error) {
	switch node.Kind {
	case ast.KindBoolLiteral.String():
		value, err := strconv.ParseBool(node.Value)
		if err != nil {
			return nil, malformed(node, "bad boolean %q", node.Value)
		}

		kind := token.False
		if value {
			kind = token.True
		}

		return &ast.BoolLiteral{Value: value, Token: token.Token{Kind: kind, Line: node.Line}}, nil
	case ast.KindIntLiteral.String():
		value, err := strconv.Atoi(node.Value)
		if err != nil {
			return nil, malformed(node, "bad integer %q", node.Value)
		}

		return &ast.IntLiteral{Value: value, Token: token.Token{Kind: token.Int, Line: node.Line}}, nil
	case ast.KindVariableRef.String():
		if node.Name == "" {
			return nil, malformed(node, "missing name")
		}

		return &ast.VariableRef{Name: node.Name, Token: token.Token{Kind: token.Ident, Line: node.Line}}, nil
	case ast.KindUnaryOp.String():
		if err := want(node, 1); err != nil {
			return nil, err
		}

		op, kind, err := unaryOperator(node)
		if err != nil {
			return nil, err
		}

		operand, err := toExpr(node.Children[0])
		if err != nil {
			return nil, err
		}

		return &ast.UnaryOp{Op: op, Operand: operand, Token: token.Token{Kind: kind, Line: node.Line}}, nil
	case ast.KindBinaryOp.String():
		if err := want(node, 2); err != nil { //nolint:mnd // left, right
			return nil, err
		}

		op, kind, err := binaryOperator(node)
		if err != nil {
			return nil, err
		}

		left, err := toExpr(node.Children[0])
		if err != nil {
			return nil, err
		}

		right, err := toExpr(node.Children[1])
		if err != nil {
			return nil, err
		}

		return &ast.BinaryOp{Op: op, Left: left, Right: right, Token: token.Token{Kind: kind, Line: node.Line}}, nil
	default:
		return nil, malformed(node, "not an expression")
	}
}

func declaredType(node Node) (ast.Type, token.Kind, error) {
	switch node.Type {
	case ast.TypeInt.String():
		return ast.TypeInt, token.IntType, nil
	case ast.TypeBool.String():
		return ast.TypeBool, token.BoolType, nil
	default:
		return ast.TypeInvalid, token.Error, malformed(node, "unknown type %q", node.Type)
	}
}

func unaryOperator(node Node) (ast.UnaryOperator, token.Kind, error) {
	switch node.Op {
	case ast.Not.String():
		return ast.Not, token.Bang, nil
	case ast.Negate.String():
		return ast.Negate, token.Minus, nil
	default:
		return ast.UnaryInvalid, token.Error, malformed(node, "unknown operator %q", node.Op)
	}
}

func binaryOperator(node Node) (ast.BinaryOperator, token.Kind, error) {
	switch node.Op {
	case ast.Add.String():
		return ast.Add, token.Plus, nil
	case ast.Sub.String():
		return ast.Sub, token.Minus, nil
	case ast.Mul.String():
		return ast.Mul, token.Star, nil
	case ast.LessThan.String():
		return ast.LessThan, token.Less, nil
	case ast.Equal.String():
		return ast.Equal, token.Eq, nil
	case ast.Or.String():
		return ast.Or, token.Or, nil
	default:
		return ast.BinaryInvalid, token.Error, malformed(node, "unknown operator %q", node.Op)
	}
}
