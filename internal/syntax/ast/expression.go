package ast

import "go.followtheprocess.codes/dims/internal/syntax/token"

// Expr is an expression node.
type Expr interface {
	Node

	// Line returns the source line the expression appears on.
	Line() int

	exprNode() // Prevents accidental misuse as another node type
}

// UnaryOperator is the operator in a [UnaryOp].
type UnaryOperator int

//go:generate stringer -type UnaryOperator -linecomment
const (
	UnaryInvalid UnaryOperator = iota // Invalid
	Not                               // !
	Negate                            // -
)

// BinaryOperator is the operator in a [BinaryOp].
type BinaryOperator int

//go:generate stringer -type BinaryOperator -linecomment
const (
	BinaryInvalid BinaryOperator = iota // Invalid
	Add                                 // +
	Sub                                 // -
	Mul                                 // *
	LessThan                            // <
	Equal                               // =
	Or                                  // ||
)

// UnaryOp is a prefix operator applied to a single operand e.g. '!done'.
type UnaryOp struct {
	// Operand is the expression the operator applies to.
	Operand Expr

	// Token is the operator token.
	Token token.Token

	// Op is the operator.
	Op UnaryOperator
}

// Start returns the operator token.
func (u *UnaryOp) Start() token.Token {
	return u.Token
}

// Kind returns [KindUnaryOp].
func (u *UnaryOp) Kind() Kind {
	return KindUnaryOp
}

// Line returns the line of the operator.
func (u *UnaryOp) Line() int {
	return u.Token.Line
}

func (u *UnaryOp) exprNode() {}

// BinaryOp is an infix operator applied to two operands e.g. 'x + 1'.
type BinaryOp struct {
	// Left is the left hand operand.
	Left Expr

	// Right is the right hand operand.
	Right Expr

	// Token is the operator token.
	Token token.Token

	// Op is the operator.
	Op BinaryOperator
}

// Start returns the first token of the left operand.
func (b *BinaryOp) Start() token.Token {
	if b.Left != nil {
		return b.Left.Start()
	}

	return b.Token
}

// Kind returns [KindBinaryOp].
func (b *BinaryOp) Kind() Kind {
	return KindBinaryOp
}

// Line returns the line of the operator.
func (b *BinaryOp) Line() int {
	return b.Token.Line
}

func (b *BinaryOp) exprNode() {}

// VariableRef is a read of a named variable.
type VariableRef struct {
	// Name is the variable's name.
	Name string

	// The [token.Ident] token.
	Token token.Token
}

// Start returns the [token.Ident].
func (v *VariableRef) Start() token.Token {
	return v.Token
}

// Kind returns [KindVariableRef].
func (v *VariableRef) Kind() Kind {
	return KindVariableRef
}

// Line returns the line of the identifier.
func (v *VariableRef) Line() int {
	return v.Token.Line
}

func (v *VariableRef) exprNode() {}

// BoolLiteral is a literal 'true' or 'false'.
type BoolLiteral struct {
	// The [token.True] or [token.False] token.
	Token token.Token

	// Value is the literal value.
	Value bool
}

// Start returns the literal token.
func (b *BoolLiteral) Start() token.Token {
	return b.Token
}

// Kind returns [KindBoolLiteral].
func (b *BoolLiteral) Kind() Kind {
	return KindBoolLiteral
}

// Line returns the line of the literal.
func (b *BoolLiteral) Line() int {
	return b.Token.Line
}

func (b *BoolLiteral) exprNode() {}

// IntLiteral is a literal decimal integer.
type IntLiteral struct {
	// The [token.Int] token.
	Token token.Token

	// Value is the parsed integer value.
	Value int
}

// Start returns the literal token.
func (i *IntLiteral) Start() token.Token {
	return i.Token
}

// Kind returns [KindIntLiteral].
func (i *IntLiteral) Kind() Kind {
	return KindIntLiteral
}

// Line returns the line of the literal.
func (i *IntLiteral) Line() int {
	return i.Token.Line
}

func (i *IntLiteral) exprNode() {}
