// Package parser implements the .dims parser.
//
// The parser consumes a stream of tokens from the scanner and builds a single root
// [ast.Stmt] by recursive descent, with a Pratt style expression parser handling
// operator precedence.
//
// Syntax errors are passed to the installed [syntax.ErrorHandler] at the moment they
// occur, after which the parser resynchronises at the next statement boundary so that
// a single parse reports as many errors as it can.
package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"go.followtheprocess.codes/dims/internal/syntax"
	"go.followtheprocess.codes/dims/internal/syntax/ast"
	"go.followtheprocess.codes/dims/internal/syntax/scanner"
	"go.followtheprocess.codes/dims/internal/syntax/token"
)

// ErrParse is a generic parsing error, details on the error are passed
// to the parser's [syntax.ErrorHandler] at the moment it occurs.
var ErrParse = errors.New("parse error")

// Parser is the .dims file parser.
type Parser struct {
	handler    syntax.ErrorHandler // The installed error handler, to be called in response to parse errors
	scanner    *scanner.Scanner    // Scanner to produce tokens
	name       string              // Name of the file being parsed
	src        []byte              // Raw source text
	current    token.Token         // Current token under inspection
	next       token.Token         // Next token in the stream
	hadErrors  bool                // Whether we encountered parse errors
	scanFailed bool                // Whether the scanner reported an error, later parse errors are suppressed
	drained    bool                // Whether the scanner has sent it's final token
}

// New initialises and returns a new [Parser] that reads from r.
//
// The scanner is started immediately, callers must call [Parser.Parse] so that
// it runs to completion.
func New(name string, r io.Reader, handler syntax.ErrorHandler) (*Parser, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read from input: %w", err)
	}

	p := &Parser{
		handler: handler,
		scanner: scanner.New(name, src, handler),
		name:    name,
		src:     src,
	}

	// Read 2 tokens so current and next are set
	p.advance()
	p.advance()

	return p, nil
}

// Parse parses the file to completion returning the root [ast.Stmt].
//
// A program is a list of statements folded into nested [ast.Sequence] nodes,
// the empty program is an [ast.Skip].
//
// The returned error will simply signify whether or not there were parse errors,
// the installed error handler passed to [New] will have the full detail and should
// be preferred.
func (p *Parser) Parse() (ast.Stmt, error) {
	stmt := p.parseStatements()

	// Anything left means we stopped early on a stray closing keyword
	for !p.current.Is(token.EOF) {
		p.errorf("unexpected %s", p.current.Kind)
		p.synchronise()
		stmt = sequence(stmt, p.parseStatements())
	}

	// The scanner goroutine only exits once everything has been received
	for !p.drained {
		p.advance()
	}

	if p.hadErrors || p.scanFailed {
		return nil, ErrParse
	}

	return stmt, nil
}

// advance advances the parser by a single token, skipping comments.
func (p *Parser) advance() {
	p.current = p.next

	if p.drained {
		// The channel is closed, keep pointing at the end of the input
		p.next = token.Token{Kind: token.EOF, Start: len(p.src), End: len(p.src), Line: p.current.Line}
		return
	}

	p.next = p.scanner.Scan()
	for p.next.Is(token.Comment) {
		p.next = p.scanner.Scan()
	}

	switch p.next.Kind {
	case token.Error:
		p.scanFailed = true
		p.drained = true
	case token.EOF:
		p.drained = true
	}
}

// expect asserts that the next token is one of the given kinds, emitting a syntax error if not.
//
// The parser is advanced only if the next token is of one of these kinds such that after returning
// p.current will be one of the kinds.
//
// It returns an [ErrParse] is the expectation is violated, nil otherwise.
func (p *Parser) expect(kinds ...token.Kind) error {
	if p.next.Is(token.Error) {
		// The scanner has emitted an error and has already
		// passed it to the error handler
		return ErrParse
	}

	if len(kinds) == 0 {
		return nil
	}

	if !p.next.Is(kinds...) {
		// Point at the offending token, or if we ran out of input, just
		// after the last thing we saw as in "something should have gone here"
		pos := p.positionOf(p.next.Start, p.next.End)
		if p.next.Is(token.EOF) {
			pos = p.positionOf(p.current.End, p.current.End)
		}

		if len(kinds) == 1 {
			p.errorAt(pos, fmt.Sprintf("expected %s, got %s", kinds[0], p.next.Kind))
		} else {
			p.errorAt(pos, fmt.Sprintf("expected one of %v, got %s", kinds, p.next.Kind))
		}

		return ErrParse
	}

	p.advance()

	return nil
}

// position returns the position of the current token as a [syntax.Position].
func (p *Parser) position() syntax.Position {
	return p.positionOf(p.current.Start, p.current.End)
}

// positionOf returns the [syntax.Position] of the source text between the
// byte offsets start and end.
func (p *Parser) positionOf(start, end int) syntax.Position {
	// Bounds check in case of the synthesised EOF
	start = min(start, len(p.src))
	lineOffset := bytes.LastIndexByte(p.src[:start], '\n') + 1

	// Columns are 1 indexed, EndCol points at the last byte inclusive. Applying this
	// correction here means you can click a syntax error in the terminal and be
	// taken to a precise location in an editor
	startCol := 1 + start - lineOffset
	endCol := max(end-lineOffset, startCol)

	return syntax.Position{
		Name:     p.name,
		Offset:   start,
		Line:     1 + bytes.Count(p.src[:start], []byte("\n")),
		StartCol: startCol,
		EndCol:   endCol,
	}
}

// errorAt calls the installed error handler with the position and message.
//
// Once the scanner has failed, the remaining token stream is meaningless so errors
// are recorded but not reported.
func (p *Parser) errorAt(pos syntax.Position, msg string) {
	p.hadErrors = true

	if p.scanFailed || p.handler == nil {
		return
	}

	p.handler(pos, msg)
}

// errorf reports a formatted error at the current token.
func (p *Parser) errorf(format string, a ...any) {
	p.errorAt(p.position(), fmt.Sprintf(format, a...))
}

// text returns the chunk of source text described by the p.current token.
func (p *Parser) text() string {
	return string(p.src[p.current.Start:p.current.End])
}

// synchronise is called during error recovery, after a parse error we are unsure of
// the local state as the syntax is invalid.
//
// synchronise discards tokens up to and including the next ';', or up to but not
// including a keyword that closes a statement list, after which point the parser
// should be back in sync and can continue normally. It always makes progress.
func (p *Parser) synchronise() {
	if p.current.Is(token.Semicolon) {
		p.advance()
		return
	}

	for {
		p.advance()

		switch p.current.Kind {
		case token.Semicolon:
			p.advance()
			return
		case token.Else, token.Endif, token.Endwhile, token.RightBrace, token.EOF:
			return
		}
	}
}

// parseStatements parses statements until it reaches one of the terminators or EOF,
// folding them right into an [ast.Sequence].
//
// On return p.current is the terminator (or EOF), it is the callers job to check it.
func (p *Parser) parseStatements(terminators ...token.Kind) ast.Stmt {
	var stmts []ast.Stmt

	for !p.current.Is(token.EOF) && !p.current.Is(terminators...) {
		if p.current.Is(token.Else, token.Endif, token.Endwhile, token.RightBrace) {
			// Closes something, but not anything we're in
			return sequence(stmts...)
		}

		stmt, err := p.parseStatement()
		if err != nil {
			p.synchronise()
			continue
		}

		stmts = append(stmts, stmt)

		p.advance()
	}

	return sequence(stmts...)
}

// sequence folds a list of statements to the right into nested [ast.Sequence]
// nodes, an empty list is an [ast.Skip] and a list of one is just that statement.
func sequence(stmts ...ast.Stmt) ast.Stmt {
	if len(stmts) == 0 {
		return &ast.Skip{}
	}

	result := stmts[len(stmts)-1]

	for i := len(stmts) - 2; i >= 0; i-- {
		result = &ast.Sequence{
			First:  stmts[i],
			Second: result,
			Token:  stmts[i].Start(),
		}
	}

	return result
}

// parseStatement parses a single statement.
//
// On entry p.current is the first token of the statement, on a successful
// return it is the last.
func (p *Parser) parseStatement() (ast.Stmt, error) {
	switch p.current.Kind {
	case token.IntType, token.BoolType:
		return p.parseDeclaration()
	case token.Ident:
		return p.parseAssignment()
	case token.Print:
		return p.parsePrint()
	case token.Skip:
		return p.parseSkip()
	case token.If:
		return p.parseIf()
	case token.While:
		return p.parseWhile()
	case token.LeftBrace:
		return p.parseBlock()
	case token.Error:
		// Already reported by the scanner
		return nil, ErrParse
	default:
		p.errorf("expected statement, got %s", p.current.Kind)
		return nil, ErrParse
	}
}

// parseDeclaration parses a variable declaration e.g. 'int x;'.
func (p *Parser) parseDeclaration() (*ast.Declaration, error) {
	decl := &ast.Declaration{Token: p.current, Type: parseType(p.current)}

	if err := p.expect(token.Ident); err != nil {
		return nil, err
	}

	decl.Name = p.text()

	if err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}

	return decl, nil
}

// parseAssignment parses an assignment e.g. 'x := 1 + 2;'.
func (p *Parser) parseAssignment() (*ast.Assignment, error) {
	assign := &ast.Assignment{Token: p.current, Name: p.text()}

	if err := p.expect(token.Assign); err != nil {
		return nil, err
	}

	p.advance()

	value, err := p.parseExpression(token.LowestPrecedence)
	if err != nil {
		return nil, err
	}

	assign.Value = value

	if err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}

	return assign, nil
}

// parsePrint parses a print statement e.g. 'print x;'.
func (p *Parser) parsePrint() (*ast.Print, error) {
	stmt := &ast.Print{Token: p.current}

	p.advance()

	value, err := p.parseExpression(token.LowestPrecedence)
	if err != nil {
		return nil, err
	}

	stmt.Value = value

	if err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}

	return stmt, nil
}

// parseSkip parses an explicit 'skip;'.
func (p *Parser) parseSkip() (*ast.Skip, error) {
	skip := &ast.Skip{Token: p.current}

	if err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}

	return skip, nil
}

// parseCondition parses the parenthesised condition of an if or while
// e.g. '(x < 10)', on return p.current is the closing ')'.
func (p *Parser) parseCondition() (ast.Expr, error) {
	if err := p.expect(token.LeftParen); err != nil {
		return nil, err
	}

	p.advance()

	cond, err := p.parseExpression(token.LowestPrecedence)
	if err != nil {
		return nil, err
	}

	if err := p.expect(token.RightParen); err != nil {
		return nil, err
	}

	return cond, nil
}

// parseIf parses an if statement, the else branch is optional.
//
//	if (x < 10) then
//	    print x;
//	else
//	    print 10;
//	endif
func (p *Parser) parseIf() (*ast.If, error) {
	stmt := &ast.If{Token: p.current}

	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}

	stmt.Cond = cond

	if err := p.expect(token.Then); err != nil {
		return nil, err
	}

	p.advance()

	stmt.Then = p.parseStatements(token.Else, token.Endif)
	stmt.Else = &ast.Skip{}

	if p.current.Is(token.Else) {
		p.advance()
		stmt.Else = p.parseStatements(token.Endif)
	}

	if !p.current.Is(token.Endif) {
		p.errorf("expected %s, got %s", token.Endif, p.current.Kind)
		return nil, ErrParse
	}

	return stmt, nil
}

// parseWhile parses a while loop.
//
//	while (i < 10) do
//	    i := i + 1;
//	endwhile
func (p *Parser) parseWhile() (*ast.While, error) {
	stmt := &ast.While{Token: p.current}

	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}

	stmt.Cond = cond

	if err := p.expect(token.Do); err != nil {
		return nil, err
	}

	p.advance()

	stmt.Body = p.parseStatements(token.Endwhile)

	if !p.current.Is(token.Endwhile) {
		p.errorf("expected %s, got %s", token.Endwhile, p.current.Kind)
		return nil, ErrParse
	}

	return stmt, nil
}

// parseBlock parses a '{ ... }' block.
func (p *Parser) parseBlock() (*ast.Block, error) {
	block := &ast.Block{Token: p.current}

	p.advance()

	block.Body = p.parseStatements(token.RightBrace)

	if !p.current.Is(token.RightBrace) {
		p.errorf("expected %s, got %s", token.RightBrace, p.current.Kind)
		return nil, ErrParse
	}

	return block, nil
}

// parseExpression parses an expression given a precedence level.
//
// On entry p.current is the first token of the expression, on a successful return
// it is the last.
func (p *Parser) parseExpression(precedence int) (ast.Expr, error) {
	// Prefix expressions, when the expression begins with one of these tokens
	var (
		expr ast.Expr
		err  error
	)

	switch p.current.Kind {
	case token.Int:
		expr, err = p.parseIntLiteral()
	case token.True, token.False:
		expr = &ast.BoolLiteral{Token: p.current, Value: p.current.Is(token.True)}
	case token.Ident:
		expr = &ast.VariableRef{Token: p.current, Name: p.text()}
	case token.Bang, token.Minus:
		expr, err = p.parseUnaryOp()
	case token.LeftParen:
		expr, err = p.parseGroup()
	case token.Error:
		return nil, ErrParse
	default:
		p.errorf("expected expression, got %s", p.current.Kind)
		return nil, ErrParse
	}

	if err != nil {
		return nil, err
	}

	// Infix operators, keep folding to the left for as long as the next operator
	// binds tighter than the one that got us here, so 'a - b - c' is '((a - b) - c)'
	// and 'a + b * c' is '(a + (b * c))'
	for precedence < p.next.Precedence() {
		p.advance()

		expr, err = p.parseBinaryOp(expr)
		if err != nil {
			return nil, err
		}
	}

	return expr, nil
}

// parseIntLiteral parses a decimal integer literal, which must fit in an int.
func (p *Parser) parseIntLiteral() (*ast.IntLiteral, error) {
	value, err := strconv.Atoi(p.text())
	if err != nil {
		p.errorf("integer literal %s does not fit in an int", p.text())
		return nil, ErrParse
	}

	return &ast.IntLiteral{Token: p.current, Value: value}, nil
}

// parseUnaryOp parses a prefix operator and its operand.
func (p *Parser) parseUnaryOp() (*ast.UnaryOp, error) {
	op := &ast.UnaryOp{Token: p.current, Op: ast.Not}
	if p.current.Is(token.Minus) {
		op.Op = ast.Negate
	}

	p.advance()

	operand, err := p.parseExpression(token.PrefixPrecedence)
	if err != nil {
		return nil, err
	}

	op.Operand = operand

	return op, nil
}

// parseBinaryOp parses the right hand side of an infix operator, p.current is the operator.
func (p *Parser) parseBinaryOp(left ast.Expr) (*ast.BinaryOp, error) {
	op := &ast.BinaryOp{Left: left, Token: p.current, Op: binaryOperator(p.current)}
	precedence := p.current.Precedence()

	p.advance()

	right, err := p.parseExpression(precedence)
	if err != nil {
		return nil, err
	}

	op.Right = right

	return op, nil
}

// parseGroup parses a parenthesised expression, the parentheses themselves
// leave no trace in the tree.
func (p *Parser) parseGroup() (ast.Expr, error) {
	p.advance()

	expr, err := p.parseExpression(token.LowestPrecedence)
	if err != nil {
		return nil, err
	}

	if err := p.expect(token.RightParen); err != nil {
		return nil, err
	}

	return expr, nil
}

// parseType returns the [ast.Type] named by a type keyword.
func parseType(tok token.Token) ast.Type {
	switch tok.Kind {
	case token.IntType:
		return ast.TypeInt
	case token.BoolType:
		return ast.TypeBool
	default:
		return ast.TypeInvalid
	}
}

// binaryOperator returns the [ast.BinaryOperator] for an operator token.
func binaryOperator(tok token.Token) ast.BinaryOperator {
	switch tok.Kind {
	case token.Plus:
		return ast.Add
	case token.Minus:
		return ast.Sub
	case token.Star:
		return ast.Mul
	case token.Less:
		return ast.LessThan
	case token.Eq:
		return ast.Equal
	case token.Or:
		return ast.Or
	default:
		return ast.BinaryInvalid
	}
}
