package checker

import "fmt"

// Kind is the category of a [Diagnostic].
type Kind int

//go:generate stringer -type Kind -linecomment
const (
	RedeclarationError Kind = iota // RedeclarationError
	UnboundAssignment              // UnboundAssignment
	UnresolvedVariable             // UnresolvedVariable
	UseOfUnassigned                // UseOfUnassigned
	TypeMismatch                   // TypeMismatch
	ConditionTypeError             // ConditionTypeError
	OperandTypeError               // OperandTypeError
)

// MarshalText implements [encoding.TextMarshaler] for [Kind].
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Diagnostic is a single static semantic error in a program.
type Diagnostic struct {
	Msg  string `json:"msg"`  // A descriptive message explaining the error
	Line int    `json:"line"` // The source line the error was found on
	Kind Kind   `json:"kind"` // The category of error
}

// String renders the diagnostic as 'Line <n>: <msg>'.
func (d Diagnostic) String() string {
	return fmt.Sprintf("Line %d: %s", d.Line, d.Msg)
}
