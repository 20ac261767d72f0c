// Package token provides the set of lexical tokens for a .dims program.
package token

import (
	"fmt"
	"slices"
)

// Kind is the kind of a token.
type Kind int

//go:generate stringer -type Kind -linecomment
const (
	EOF        Kind = iota // EOF
	Error                  // Error
	Comment                // Comment
	Ident                  // Ident
	Int                    // Int
	True                   // true
	False                  // false
	IntType                // int
	BoolType               // bool
	Print                  // print
	Skip                   // skip
	If                     // if
	Then                   // then
	Else                   // else
	Endif                  // endif
	While                  // while
	Do                     // do
	Endwhile               // endwhile
	LeftParen              // (
	RightParen             // )
	LeftBrace              // {
	RightBrace             // }
	Semicolon              // ;
	Assign                 // :=
	Plus                   // +
	Minus                  // -
	Star                   // *
	Less                   // <
	Eq                     // =
	Or                     // ||
	Bang                   // !
)

// Operator precedence levels, from loosest to tightest binding.
const (
	LowestPrecedence  = iota // Anything that is not a binary operator
	OrPrecedence             // ||
	EqPrecedence             // =
	LessPrecedence           // <
	SumPrecedence            // + -
	ProductPrecedence        // *
	PrefixPrecedence         // Unary ! and -
)

// Token is a lexical token in a .dims program.
type Token struct {
	Kind  Kind // The kind of token this is
	Start int  // Byte offset from the start of the file to the start of this token
	End   int  // Byte offset from the start of the file to the end of this token
	Line  int  // Line the token appears on (1 indexed)
}

// String implement [fmt.Stringer] for a [Token].
func (t Token) String() string {
	return fmt.Sprintf("<Token::%s start=%d, end=%d, line=%d>", t.Kind, t.Start, t.End, t.Line)
}

// Is reports whether the token is any of the provided [Kind]s.
func (t Token) Is(kinds ...Kind) bool {
	return slices.Contains(kinds, t.Kind)
}

// Precedence returns the binding power of the token when it appears as a
// binary operator, tokens that cannot be binary operators return [LowestPrecedence].
func (t Token) Precedence() int {
	switch t.Kind {
	case Or:
		return OrPrecedence
	case Eq:
		return EqPrecedence
	case Less:
		return LessPrecedence
	case Plus, Minus:
		return SumPrecedence
	case Star:
		return ProductPrecedence
	default:
		return LowestPrecedence
	}
}

// MarshalText implements [encoding.TextMarshaler] for [Kind].
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Keyword reports whether a string refers to a keyword, returning it's [Kind]
// and true if it is. Otherwise [Ident] and false are returned.
func Keyword(text string) (kind Kind, ok bool) {
	switch text {
	case "true":
		return True, true
	case "false":
		return False, true
	case "int":
		return IntType, true
	case "bool":
		return BoolType, true
	case "print":
		return Print, true
	case "skip":
		return Skip, true
	case "if":
		return If, true
	case "then":
		return Then, true
	case "else":
		return Else, true
	case "endif":
		return Endif, true
	case "while":
		return While, true
	case "do":
		return Do, true
	case "endwhile":
		return Endwhile, true
	default:
		return Ident, false
	}
}
