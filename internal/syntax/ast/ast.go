// Package ast defines an abstract syntax tree for the .dims grammar.
//
// The sets of expression and statement nodes are closed, every node type in this
// package implements exactly one of [Expr] or [Stmt] and nothing outside the package
// can add to them.
package ast

import (
	"errors"

	"go.followtheprocess.codes/dims/internal/syntax/token"
)

// ErrNoLine is returned from [Stmt.Line] when the statement carries no
// line information, which is only ever the case for [Skip].
var ErrNoLine = errors.New("statement has no line number")

// Node is the interface for ast nodes.
type Node interface {
	// Start returns the first token associated with the node.
	Start() token.Token

	// Kind returns the kind of node this is.
	Kind() Kind
}

// Type is the static type of a value in a .dims program.
//
// There are only two and neither converts to the other.
type Type int

//go:generate stringer -type Type -linecomment
const (
	TypeInvalid Type = iota // invalid
	TypeInt                 // int
	TypeBool                // bool
)

// MarshalText implements [encoding.TextMarshaler] for [Type].
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Kind is the type of an ast Node.
type Kind int

// AST Node kinds.
//
//go:generate stringer -type Kind -linecomment
const (
	KindInvalid     Kind = iota // Invalid
	KindSkip                    // Skip
	KindSequence                // Sequence
	KindDeclaration             // Declaration
	KindAssignment              // Assignment
	KindPrint                   // Print
	KindIf                      // If
	KindWhile                   // While
	KindBlock                   // Block
	KindUnaryOp                 // UnaryOp
	KindBinaryOp                // BinaryOp
	KindVariableRef             // VariableRef
	KindBoolLiteral             // BoolLiteral
	KindIntLiteral              // IntLiteral
)

// MarshalText implements [encoding.TextMarshaler] for [Kind].
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}
