package parser

import (
	"fmt"
	"strings"

	"rover/interpreter-go/pkg/ast"
	"rover/interpreter-go/pkg/lexer"
)

// TokenSource is the lookahead contract the parser consumes. *lexer.Lexer
// satisfies it.
type TokenSource interface {
	Peek() lexer.Token
	Consume() lexer.Token
	ConsumeIf(kinds ...lexer.Kind) (lexer.Token, bool)
}

// Diagnostic is a single syntax error.
type Diagnostic struct {
	Message string
	Line    int
	Column  int
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: %s", d.Line, d.Column, d.Message)
}

// Error reports every diagnostic recorded while parsing, in source order.
type Error struct {
	Diagnostics []Diagnostic
}

func (e *Error) Error() string {
	if e == nil || len(e.Diagnostics) == 0 {
		return "parser: syntax error"
	}
	if len(e.Diagnostics) == 1 {
		return "parser: " + e.Diagnostics[0].String()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "parser: %d syntax errors", len(e.Diagnostics))
	for _, d := range e.Diagnostics {
		b.WriteString("\n  ")
		b.WriteString(d.String())
	}
	return b.String()
}

// syntaxError unwinds a single statement after its diagnostic has been
// recorded.
type syntaxError struct {
	diag Diagnostic
}

func (e syntaxError) Error() string { return e.diag.String() }

// Parser builds a rover AST from a token stream.
type Parser struct {
	tokens      TokenSource
	diagnostics []Diagnostic
}

// New constructs a parser reading from tokens.
func New(tokens TokenSource) *Parser {
	return &Parser{tokens: tokens}
}

// Parse lexes and parses a complete rover program.
func Parse(source string) (*ast.Program, error) {
	return New(lexer.New(source)).ParseProgram()
}

// ParseProgram consumes the token source up to EOF. Statements that fail
// are skipped after resynchronising so later errors are still reported; if
// anything failed no program is returned.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	start := p.tokens.Peek()
	body := p.statementsUntil(lexer.EOF)
	if len(p.diagnostics) > 0 {
		return nil, &Error{Diagnostics: p.diagnostics}
	}
	program := ast.NewProgram(body)
	ast.SetPos(program, position(start))
	return program, nil
}

// Diagnostics returns everything recorded so far.
func (p *Parser) Diagnostics() []Diagnostic {
	return p.diagnostics
}

func (p *Parser) statementsUntil(end lexer.Kind) []ast.Statement {
	body := make([]ast.Statement, 0)
	for {
		next := p.tokens.Peek().Kind
		if next == end || next == lexer.EOF {
			return body
		}
		before := p.tokens.Peek()
		stmt, err := p.parseStatement()
		if err != nil {
			p.synchronize()
			if after := p.tokens.Peek(); after.Kind != lexer.EOF && after.Pos == before.Pos {
				// a stray '}' at top level; step over it
				p.tokens.Consume()
			}
			continue
		}
		body = append(body, stmt)
	}
}

// synchronize skips tokens until just after a ';', or until a token that can
// begin a statement or close a block. Illegal tokens skipped on the way are
// still reported.
func (p *Parser) synchronize() {
	for {
		switch p.tokens.Peek().Kind {
		case lexer.EOF, lexer.RightBrace, lexer.If, lexer.While, lexer.Var, lexer.Const:
			return
		case lexer.Semicolon:
			p.tokens.Consume()
			return
		case lexer.Illegal:
			tok := p.tokens.Consume()
			p.errorAt(tok, "%s", tok.Text)
		default:
			p.tokens.Consume()
		}
	}
}

func (p *Parser) errorAt(tok lexer.Token, format string, args ...any) error {
	diag := Diagnostic{
		Message: fmt.Sprintf(format, args...),
		Line:    tok.Pos.Line,
		Column:  tok.Pos.Column,
	}
	p.diagnostics = append(p.diagnostics, diag)
	return syntaxError{diag: diag}
}

// unexpected records a diagnostic for tok. Illegal tokens report the lexer's
// message instead of a generic expectation.
func (p *Parser) unexpected(tok lexer.Token, expected string) error {
	if tok.Kind == lexer.Illegal {
		p.tokens.Consume()
		return p.errorAt(tok, "%s", tok.Text)
	}
	return p.errorAt(tok, "expected %s, found %s", expected, tok)
}

func (p *Parser) expect(kind lexer.Kind, context string) (lexer.Token, error) {
	if tok, ok := p.tokens.ConsumeIf(kind); ok {
		return tok, nil
	}
	expected := fmt.Sprintf("'%s'", kind)
	if kind == lexer.Identifier {
		expected = "identifier"
	}
	if context != "" {
		expected += " " + context
	}
	return lexer.Token{}, p.unexpected(p.tokens.Peek(), expected)
}

func position(tok lexer.Token) ast.Position {
	return ast.Position{Line: tok.Pos.Line, Column: tok.Pos.Column}
}
