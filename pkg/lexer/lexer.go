package lexer

import (
	"fmt"
	"unicode"
)

// Lexer turns rover source into tokens on demand. It holds at most one
// token of lookahead; once the input is exhausted every call yields EOF.
type Lexer struct {
	input  []rune
	pos    int
	line   int
	column int

	peeked *Token
}

// New creates a lexer over the given source.
func New(source string) *Lexer {
	return &Lexer{input: []rune(source), line: 1, column: 1}
}

// Peek returns the next token without consuming it.
func (l *Lexer) Peek() Token {
	if l.peeked == nil {
		tok := l.scan()
		l.peeked = &tok
	}
	return *l.peeked
}

// Consume returns the next token and advances past it.
func (l *Lexer) Consume() Token {
	tok := l.Peek()
	if tok.Kind != EOF {
		l.peeked = nil
	}
	return tok
}

// ConsumeIf consumes the next token only when its kind is one of kinds.
func (l *Lexer) ConsumeIf(kinds ...Kind) (Token, bool) {
	tok := l.Peek()
	for _, kind := range kinds {
		if tok.Kind == kind {
			return l.Consume(), true
		}
	}
	return Token{}, false
}

// All drains the lexer, returning every token up to and including EOF.
func (l *Lexer) All() []Token {
	var out []Token
	for {
		tok := l.Consume()
		out = append(out, tok)
		if tok.Kind == EOF {
			return out
		}
	}
}

func (l *Lexer) current() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) next() rune {
	if l.pos+1 >= len(l.input) {
		return 0
	}
	return l.input[l.pos+1]
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.input)
}

func (l *Lexer) advance() rune {
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

func (l *Lexer) skipTrivia() {
	for !l.atEnd() {
		ch := l.current()
		switch {
		case unicode.IsSpace(ch):
			l.advance()
		case ch == '/' && l.next() == '/':
			for !l.atEnd() && l.current() != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

func (l *Lexer) scan() Token {
	l.skipTrivia()
	start := Pos{Line: l.line, Column: l.column}
	if l.atEnd() {
		return Token{Kind: EOF, Pos: start}
	}

	ch := l.advance()
	switch {
	case ch == 0:
		return Token{Kind: EOF, Pos: start}
	case isLetter(ch):
		return l.scanWord(ch, start)
	case isDigit(ch):
		return l.scanNumber(ch, start)
	case ch == '"':
		return l.scanString(start)
	}

	simple := func(kind Kind) Token { return Token{Kind: kind, Pos: start} }
	twoChar := func(second rune, matched, single Kind) Token {
		if l.current() == second && !l.atEnd() {
			l.advance()
			return simple(matched)
		}
		return simple(single)
	}

	switch ch {
	case '+':
		return simple(Plus)
	case '-':
		return simple(Minus)
	case '*':
		return simple(Star)
	case '/':
		return simple(Slash)
	case '{':
		return simple(LeftBrace)
	case '}':
		return simple(RightBrace)
	case '(':
		return simple(LeftParen)
	case ')':
		return simple(RightParen)
	case '[':
		return simple(LeftSquare)
	case ']':
		return simple(RightSquare)
	case ',':
		return simple(Comma)
	case ';':
		return simple(Semicolon)
	case '=':
		return twoChar('=', Equal, Assign)
	case '!':
		return twoChar('=', NotEqual, Not)
	case '<':
		return twoChar('=', LessEqual, Less)
	case '>':
		return twoChar('=', GreaterEqual, Greater)
	case '&':
		if l.current() == '&' && !l.atEnd() {
			l.advance()
			return simple(And)
		}
	case '|':
		if l.current() == '|' && !l.atEnd() {
			l.advance()
			return simple(Or)
		}
	}
	return Token{Kind: Illegal, Text: fmt.Sprintf("unexpected character %q", ch), Pos: start}
}

func (l *Lexer) scanWord(first rune, start Pos) Token {
	word := []rune{first}
	for !l.atEnd() && (isLetter(l.current()) || isDigit(l.current()) || l.current() == '_') {
		word = append(word, l.advance())
	}
	text := string(word)
	if kind, ok := keywords[text]; ok {
		return Token{Kind: kind, Pos: start}
	}
	return Token{Kind: Identifier, Text: text, Pos: start}
}

func (l *Lexer) scanNumber(first rune, start Pos) Token {
	digits := []rune{first}
	for !l.atEnd() && isDigit(l.current()) {
		digits = append(digits, l.advance())
	}
	if l.atEnd() || l.current() != '.' {
		return Token{Kind: Int, Text: string(digits), Pos: start}
	}
	digits = append(digits, l.advance())
	for !l.atEnd() && isDigit(l.current()) {
		digits = append(digits, l.advance())
	}
	return Token{Kind: Float, Text: string(digits), Pos: start}
}

func (l *Lexer) scanString(start Pos) Token {
	var text []rune
	for !l.atEnd() {
		ch := l.advance()
		if ch == '"' {
			return Token{Kind: String, Text: string(text), Pos: start}
		}
		text = append(text, ch)
	}
	return Token{Kind: Illegal, Text: "unterminated string literal", Pos: start}
}

func isLetter(ch rune) bool {
	return ch < unicode.MaxASCII && unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}
