package token_test

import (
	"fmt"
	"go/format"
	"math/rand/v2"
	"os"
	"testing"

	"go.followtheprocess.codes/dims/internal/syntax/token"
	"go.followtheprocess.codes/test"
)

func FuzzTokenString(f *testing.F) {
	// Generate some random integers as seeds
	for range 100 {
		f.Add(rand.Int(), rand.Int(), rand.Int(), rand.Int())
	}

	f.Fuzz(func(t *testing.T, kind, start, end, line int) {
		tok := token.Token{
			Kind:  token.Kind(kind),
			Start: start,
			End:   end,
			Line:  line,
		}

		got := tok.String()

		// It should always look like this, regardless of the numbers
		want := fmt.Sprintf("<Token::%s start=%d, end=%d, line=%d>", token.Kind(kind), start, end, line)

		test.Equal(t, got, want)
	})
}

func TestKeyword(t *testing.T) {
	tests := []struct {
		text string     // Text input
		want token.Kind // Expected token Kind return
		ok   bool       // Expected ok return
	}{
		{text: "true", want: token.True, ok: true},
		{text: "false", want: token.False, ok: true},
		{text: "int", want: token.IntType, ok: true},
		{text: "bool", want: token.BoolType, ok: true},
		{text: "print", want: token.Print, ok: true},
		{text: "skip", want: token.Skip, ok: true},
		{text: "if", want: token.If, ok: true},
		{text: "then", want: token.Then, ok: true},
		{text: "else", want: token.Else, ok: true},
		{text: "endif", want: token.Endif, ok: true},
		{text: "while", want: token.While, ok: true},
		{text: "do", want: token.Do, ok: true},
		{text: "endwhile", want: token.Endwhile, ok: true},
		{text: "x", want: token.Ident, ok: false},
		{text: "If", want: token.Ident, ok: false},
		{text: "integer", want: token.Ident, ok: false},
		{text: "endIf", want: token.Ident, ok: false},
		{text: "myVar", want: token.Ident, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := token.Keyword(tt.text)
			test.Equal(t, ok, tt.ok)
			test.Equal(t, got, tt.want)
		})
	}
}

func TestIs(t *testing.T) {
	tok := token.Token{Kind: token.Endif, Start: 10, End: 15, Line: 3}

	test.True(t, tok.Is(token.Endif))
	test.True(t, tok.Is(token.Else, token.Endif, token.EOF))
	test.False(t, tok.Is(token.Endwhile))
	test.False(t, tok.Is())
}

func TestKindString(t *testing.T) {
	tests := []struct {
		want string
		kind token.Kind
	}{
		{kind: token.EOF, want: "EOF"},
		{kind: token.Ident, want: "Ident"},
		{kind: token.Endwhile, want: "endwhile"},
		{kind: token.Assign, want: ":="},
		{kind: token.Or, want: "||"},
		{kind: token.Bang, want: "!"},
		{kind: token.Kind(-1), want: "Kind(-1)"},
		{kind: token.Kind(9999), want: "Kind(9999)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			test.Equal(t, tt.kind.String(), tt.want)
		})
	}
}

func TestPrecedence(t *testing.T) {
	tests := []struct {
		kind token.Kind // Kind of token
		want int        // Expected precedence
	}{
		{kind: token.Or, want: token.OrPrecedence},
		{kind: token.Eq, want: token.EqPrecedence},
		{kind: token.Less, want: token.LessPrecedence},
		{kind: token.Plus, want: token.SumPrecedence},
		{kind: token.Minus, want: token.SumPrecedence},
		{kind: token.Star, want: token.ProductPrecedence},
		{kind: token.Bang, want: token.LowestPrecedence},
		{kind: token.Semicolon, want: token.LowestPrecedence},
		{kind: token.Ident, want: token.LowestPrecedence},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			test.Equal(t, token.Token{Kind: tt.kind}.Precedence(), tt.want)
		})
	}

	// Binding power must strictly increase up the table
	test.True(t, token.OrPrecedence < token.EqPrecedence)
	test.True(t, token.EqPrecedence < token.LessPrecedence)
	test.True(t, token.LessPrecedence < token.SumPrecedence)
	test.True(t, token.SumPrecedence < token.ProductPrecedence)
	test.True(t, token.ProductPrecedence < token.PrefixPrecedence)
}

func TestSourceFormatted(t *testing.T) {
	// The precedence and kind tables are aligned by hand
	src, err := os.ReadFile("token.go")
	test.Ok(t, err)

	formatted, err := format.Source(src)
	test.Ok(t, err)

	test.Diff(t, string(src), string(formatted))
}
