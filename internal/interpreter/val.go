package interpreter

import "strconv"

// ValKind is the variant of a [Val].
type ValKind int

const (
	// IntKind is an integer value.
	IntKind ValKind = iota

	// BoolKind is a boolean value.
	BoolKind
)

// String implements [fmt.Stringer] for [ValKind].
func (k ValKind) String() string {
	switch k {
	case IntKind:
		return "int"
	case BoolKind:
		return "bool"
	default:
		return "ValKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Val is a runtime value, either an integer or a boolean.
//
// Vals are compared structurally with ==, two Vals are equal if they are the
// same kind and hold the same value.
type Val struct {
	Kind ValKind // Which of the fields below is meaningful
	Int  int     // The value of an IntKind
	Bool bool    // The value of a BoolKind
}

// IntVal returns an integer [Val].
func IntVal(n int) Val {
	return Val{Kind: IntKind, Int: n}
}

// BoolVal returns a boolean [Val].
func BoolVal(b bool) Val {
	return Val{Kind: BoolKind, Bool: b}
}

// String renders the value the way print does, as a decimal integer or
// 'true' / 'false'.
func (v Val) String() string {
	switch v.Kind {
	case IntKind:
		return strconv.Itoa(v.Int)
	case BoolKind:
		return strconv.FormatBool(v.Bool)
	default:
		return "<invalid value>"
	}
}
