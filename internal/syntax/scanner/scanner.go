// Package scanner implements a lexical scanner for .dims files, reading the raw
// source text and emitting a stream of tokens to be consumed by the parser.
//
// The scanner is a concurrent, state-function based scanner similar to that described by Rob Pike
// in his talk [Lexical Scanning in Go], based on the implementation of text/template in the Go
// standard library.
//
// The scanner proceeds one utf-8 rune at a time until a particular token is recognised,
// the token is then "emitted" over a channel where it may be consumed by a client e.g. the parser.
//
// The 'run' method consumes these "scanFns" which return states in a continual loop until nil is returned
// marking the fact that either "there is nothing more to scan" or "we've hit an error" at which point
// the scanner closes the tokens channel, which will be picked up by the parser as a
// signal that the input stream has ended.
//
// [Lexical Scanning in Go]: https://go.dev/talks/2011/lex.slide#1
package scanner

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"go.followtheprocess.codes/dims/internal/syntax"
	"go.followtheprocess.codes/dims/internal/syntax/token"
)

const (
	eof        = rune(-1) // eof signifies we have reached the end of the input.
	bufferSize = 32       // benchmarks suggest this is the optimum token channel buffer size
)

// scanFn represents the state of the scanner as a function that does the work
// associated with the current state, then returns the next state.
type scanFn func(*Scanner) scanFn

// Scanner is the .dims file scanner.
type Scanner struct {
	handler           syntax.ErrorHandler // The installed error handler
	tokens            chan token.Token    // Channel on which to emit scanned tokens
	name              string              // Name of the file
	src               []byte              // Raw source text
	start             int                 // The start position of the current token
	pos               int                 // Current scanner position in src (bytes, 0 indexed)
	line              int                 // Current line number, 1 indexed
	currentLineOffset int                 // Offset at which the current line started
}

// New returns a new [Scanner] and kicks off the state machine in a goroutine.
//
// The goroutine exits once the final token has been received, so callers
// must call [Scanner.Scan] until it returns [token.EOF].
//
// A nil handler discards errors, they are still signalled by a [token.Error].
func New(name string, src []byte, handler syntax.ErrorHandler) *Scanner {
	s := &Scanner{
		handler: handler,
		tokens:  make(chan token.Token, bufferSize),
		name:    name,
		src:     src,
		line:    1,
	}

	// run terminates when the scanning state machine is finished and all the
	// tokens are drained from s.tokens, so no other synchronisation needed here
	go s.run()

	return s
}

// Scan scans the input and returns the next token.
//
// Once the input is exhausted it returns [token.EOF] forever.
func (s *Scanner) Scan() token.Token {
	return <-s.tokens
}

// next returns the next utf8 rune in the input, or [eof], and advances the scanner
// over that rune such that successive calls to [Scanner.next] iterate through
// src one rune at a time.
//
// Invalid utf8 is returned as [utf8.RuneError], which nothing in the grammar accepts.
func (s *Scanner) next() rune {
	if s.pos >= len(s.src) {
		return eof
	}

	char, width := utf8.DecodeRune(s.src[s.pos:])

	s.pos += width

	if char == '\n' {
		s.line++
		s.currentLineOffset = s.pos
	}

	return char
}

// peek returns the next utf8 rune in the input, or [eof], but does not
// advance the scanner.
//
// Successive calls to peek simply return the same rune again and again.
func (s *Scanner) peek() rune {
	if s.pos >= len(s.src) {
		return eof
	}

	char, _ := utf8.DecodeRune(s.src[s.pos:])

	return char
}

// skip ignores any characters for which the predicate returns true, stopping at the
// first one that returns false such that after it returns, [Scanner.next] returns the
// first 'false' char.
//
// The scanner start position is brought up to the current position before returning, effectively
// ignoring everything it's travelled over in the meantime.
func (s *Scanner) skip(predicate func(r rune) bool) {
	for predicate(s.peek()) {
		s.next()
	}

	s.start = s.pos
}

// takeWhile consumes characters so long as the predicate returns true, stopping at the
// first one that returns false such that after it returns, [Scanner.next] returns the first 'false' rune.
func (s *Scanner) takeWhile(predicate func(r rune) bool) {
	for predicate(s.peek()) {
		s.next()
	}
}

// takeUntil consumes characters until it hits the specified rune or eof.
//
// It stops before it consumes the rune such that after it returns,
// the next call to [Scanner.next] returns it.
func (s *Scanner) takeUntil(r rune) {
	for {
		next := s.peek()
		if next == r || next == eof {
			return
		}

		s.next()
	}
}

// emit passes a token over the tokens channel, using the scanner's internal
// state to populate position information.
func (s *Scanner) emit(kind token.Kind) {
	s.tokens <- token.Token{
		Kind:  kind,
		Start: s.start,
		End:   s.pos,
		Line:  s.line,
	}

	s.start = s.pos
}

// run starts the state machine for the scanner, it runs with each [scanFn] returning the next
// state until one returns nil (typically in response to an error or eof), at which point the tokens channel
// is closed as a signal to the receiver that no more tokens will be sent.
func (s *Scanner) run() {
	for state := scanStart; state != nil; {
		state = state(s)
	}

	close(s.tokens)
}

// error calculates the position information and calls the installed error handler
// with the information, emitting an error token in the process.
//
// The handler is called before the token is sent so that by the time a receiver
// sees the [token.Error], the error has been reported.
func (s *Scanner) error(msg string) scanFn {
	// Column is the number of bytes between the last newline and the current position
	// +1 because columns are 1 indexed
	startCol := 1 + s.start - s.currentLineOffset
	endCol := max(s.pos-s.currentLineOffset, startCol)

	position := syntax.Position{
		Name:     s.name,
		Offset:   s.start,
		Line:     s.line,
		StartCol: startCol,
		EndCol:   endCol,
	}

	if s.handler != nil {
		s.handler(position, msg)
	}

	s.emit(token.Error)

	return nil
}

// errorf calls error with a formatted message.
func (s *Scanner) errorf(format string, a ...any) scanFn {
	return s.error(fmt.Sprintf(format, a...))
}

// scanStart is the initial state of the scanner.
//
// Whitespace is ignored.
func scanStart(s *Scanner) scanFn {
	s.skip(unicode.IsSpace)

	switch char := s.next(); char {
	case eof:
		s.emit(token.EOF)
		return nil
	case '/':
		return scanSlash
	case ':':
		return scanColon
	case '|':
		return scanPipe
	case '(':
		s.emit(token.LeftParen)
	case ')':
		s.emit(token.RightParen)
	case '{':
		s.emit(token.LeftBrace)
	case '}':
		s.emit(token.RightBrace)
	case ';':
		s.emit(token.Semicolon)
	case '+':
		s.emit(token.Plus)
	case '-':
		s.emit(token.Minus)
	case '*':
		s.emit(token.Star)
	case '<':
		s.emit(token.Less)
	case '=':
		s.emit(token.Eq)
	case '!':
		s.emit(token.Bang)
	default:
		switch {
		case isDigit(char):
			return scanInt
		case isIdentStart(char):
			return scanIdent
		default:
			return s.errorf("unrecognised character: %q", char)
		}
	}

	return scanStart
}

// scanSlash scans a '/', which in .dims is only valid as the opening
// of a '//' line comment.
//
// It assumes the first '/' has already been consumed.
func scanSlash(s *Scanner) scanFn {
	if s.peek() != '/' {
		return s.error("unexpected '/', comments begin with '//'")
	}

	s.next()

	return scanComment
}

// scanComment scans a line comment.
//
// The comment opening characters have already been consumed.
func scanComment(s *Scanner) scanFn {
	s.skip(isLineSpace)

	// Absorb the whole line as the comment
	s.takeUntil('\n')

	s.emit(token.Comment)

	return scanStart
}

// scanColon scans a ':=' assignment operator.
//
// It assumes the ':' has already been consumed.
func scanColon(s *Scanner) scanFn {
	if s.peek() != '=' {
		return s.error("unexpected ':', did you mean ':='?")
	}

	s.next()
	s.emit(token.Assign)

	return scanStart
}

// scanPipe scans a '||' operator.
//
// It assumes the first '|' has already been consumed.
func scanPipe(s *Scanner) scanFn {
	if s.peek() != '|' {
		return s.error("unexpected '|', did you mean '||'?")
	}

	s.next()
	s.emit(token.Or)

	return scanStart
}

// scanInt scans a decimal integer literal.
//
// The first digit has already been consumed. The parser is responsible
// for checking the value fits in an int.
func scanInt(s *Scanner) scanFn {
	s.takeWhile(isDigit)
	s.emit(token.Int)

	return scanStart
}

// scanIdent scans an identifier or keyword.
//
// The first character has already been consumed.
func scanIdent(s *Scanner) scanFn {
	s.takeWhile(isIdent)

	text := string(s.src[s.start:s.pos])
	kind, _ := token.Keyword(text)

	s.emit(kind)

	return scanStart
}

// isDigit reports whether r is a valid ASCII digit.
func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// isAlpha reports whether r is an alpha character.
func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// isIdentStart reports whether r may begin an identifier.
func isIdentStart(r rune) bool {
	return isAlpha(r) || r == '_'
}

// isIdent reports whether r is a valid identifier character.
func isIdent(r rune) bool {
	return isAlpha(r) || isDigit(r) || r == '_'
}

// isLineSpace reports whether r is a non line terminating whitespace character,
// imagine [unicode.IsSpace] but without '\n' or '\r'.
func isLineSpace(r rune) bool {
	return r == ' ' || r == '\t'
}
