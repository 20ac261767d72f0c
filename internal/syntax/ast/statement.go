package ast

import "go.followtheprocess.codes/dims/internal/syntax/token"

// Stmt is a statement node.
type Stmt interface {
	Node

	// Line returns the source line the statement begins on.
	//
	// Every statement but [Skip] has one, Skip returns [ErrNoLine].
	Line() (int, error)

	stmtNode() // Prevents accidental misuse as another node type
}

// Skip is the statement that does nothing.
//
// It is produced by an explicit 'skip;' and also stands in for an empty
// statement list, such as an if with no else branch.
type Skip struct {
	// Token is the 'skip' keyword if there was one, otherwise the zero
	// value.
	Token token.Token
}

// Start returns the 'skip' keyword, or [token.EOF] for a synthesised Skip.
func (s *Skip) Start() token.Token {
	return s.Token
}

// Kind returns [KindSkip].
func (s *Skip) Kind() Kind {
	return KindSkip
}

// Line always returns [ErrNoLine].
func (s *Skip) Line() (int, error) {
	return 0, ErrNoLine
}

func (s *Skip) stmtNode() {}

// Sequence runs First and then Second.
//
// Statement lists are folded to the right, so 'a; b; c;' is
// Sequence(a, Sequence(b, c)).
type Sequence struct {
	First  Stmt
	Second Stmt

	// Token is the first token of First.
	Token token.Token
}

// Start returns the first token of the sequence.
func (s *Sequence) Start() token.Token {
	return s.Token
}

// Kind returns [KindSequence].
func (s *Sequence) Kind() Kind {
	return KindSequence
}

// Line returns the line of the first statement in the sequence.
func (s *Sequence) Line() (int, error) {
	return s.Token.Line, nil
}

func (s *Sequence) stmtNode() {}

// Declaration introduces a new, unassigned, variable e.g. 'int x;'.
type Declaration struct {
	// Name is the declared variable's name.
	Name string

	// Token is the type keyword.
	Token token.Token

	// Type is the declared type.
	Type Type
}

// Start returns the type keyword.
func (d *Declaration) Start() token.Token {
	return d.Token
}

// Kind returns [KindDeclaration].
func (d *Declaration) Kind() Kind {
	return KindDeclaration
}

// Line returns the line of the type keyword.
func (d *Declaration) Line() (int, error) {
	return d.Token.Line, nil
}

func (d *Declaration) stmtNode() {}

// Assignment stores the result of an expression in an already declared
// variable e.g. 'x := x + 1;'.
type Assignment struct {
	// Value is the expression being assigned.
	Value Expr

	// Name is the name of the variable being assigned to.
	Name string

	// Token is the [token.Ident] of the target.
	Token token.Token
}

// Start returns the target identifier.
func (a *Assignment) Start() token.Token {
	return a.Token
}

// Kind returns [KindAssignment].
func (a *Assignment) Kind() Kind {
	return KindAssignment
}

// Line returns the line of the target identifier.
func (a *Assignment) Line() (int, error) {
	return a.Token.Line, nil
}

func (a *Assignment) stmtNode() {}

// Print writes the value of an expression as a single line of output.
type Print struct {
	// Value is the expression to print.
	Value Expr

	// Token is the 'print' keyword.
	Token token.Token
}

// Start returns the 'print' keyword.
func (p *Print) Start() token.Token {
	return p.Token
}

// Kind returns [KindPrint].
func (p *Print) Kind() Kind {
	return KindPrint
}

// Line returns the line of the 'print' keyword.
func (p *Print) Line() (int, error) {
	return p.Token.Line, nil
}

func (p *Print) stmtNode() {}

// If is a two way conditional, a missing else branch is a [Skip].
type If struct {
	Cond Expr
	Then Stmt
	Else Stmt

	// Token is the 'if' keyword.
	Token token.Token
}

// Start returns the 'if' keyword.
func (i *If) Start() token.Token {
	return i.Token
}

// Kind returns [KindIf].
func (i *If) Kind() Kind {
	return KindIf
}

// Line returns the line of the 'if' keyword.
func (i *If) Line() (int, error) {
	return i.Token.Line, nil
}

func (i *If) stmtNode() {}

// While runs Body for as long as Cond evaluates to true.
type While struct {
	Cond Expr
	Body Stmt

	// Token is the 'while' keyword.
	Token token.Token
}

// Start returns the 'while' keyword.
func (w *While) Start() token.Token {
	return w.Token
}

// Kind returns [KindWhile].
func (w *While) Kind() Kind {
	return KindWhile
}

// Line returns the line of the 'while' keyword.
func (w *While) Line() (int, error) {
	return w.Token.Line, nil
}

func (w *While) stmtNode() {}

// Block runs Body in a new nested scope e.g. '{ int x; x := 1; }'.
type Block struct {
	Body Stmt

	// Token is the opening '{'.
	Token token.Token
}

// Start returns the opening '{'.
func (b *Block) Start() token.Token {
	return b.Token
}

// Kind returns [KindBlock].
func (b *Block) Kind() Kind {
	return KindBlock
}

// Line returns the line of the opening '{'.
func (b *Block) Line() (int, error) {
	return b.Token.Line, nil
}

func (b *Block) stmtNode() {}
