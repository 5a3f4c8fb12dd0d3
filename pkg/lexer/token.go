package lexer

import "fmt"

// Kind classifies a lexical unit.
type Kind int

const (
	EOF Kind = iota
	Illegal

	// Keywords.
	If
	Else
	While
	Var
	Const

	Identifier
	Int
	Float
	String

	LeftBrace
	RightBrace
	LeftParen
	RightParen
	LeftSquare
	RightSquare
	Comma
	Semicolon

	Assign
	Plus
	Minus
	Star
	Slash
	Equal
	NotEqual
	Less
	LessEqual
	Greater
	GreaterEqual
	Not
	And
	Or
)

var kindNames = map[Kind]string{
	EOF:          "end of file",
	Illegal:      "illegal token",
	If:           "if",
	Else:         "else",
	While:        "while",
	Var:          "var",
	Const:        "const",
	Identifier:   "identifier",
	Int:          "integer literal",
	Float:        "float literal",
	String:       "string literal",
	LeftBrace:    "{",
	RightBrace:   "}",
	LeftParen:    "(",
	RightParen:   ")",
	LeftSquare:   "[",
	RightSquare:  "]",
	Comma:        ",",
	Semicolon:    ";",
	Assign:       "=",
	Plus:         "+",
	Minus:        "-",
	Star:         "*",
	Slash:        "/",
	Equal:        "==",
	NotEqual:     "!=",
	Less:         "<",
	LessEqual:    "<=",
	Greater:      ">",
	GreaterEqual: ">=",
	Not:          "!",
	And:          "&&",
	Or:           "||",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("unknown_kind_%d", int(k))
}

var keywords = map[string]Kind{
	"if":    If,
	"else":  Else,
	"while": While,
	"var":   Var,
	"const": Const,
}

// Pos is a 1-based source position.
type Pos struct {
	Line   int
	Column int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is a classified lexical unit. Text holds the identifier name, the
// literal text, or the diagnostic message of an Illegal token.
type Token struct {
	Kind Kind
	Text string
	Pos  Pos
}

func (t Token) String() string {
	switch t.Kind {
	case Identifier, Int, Float:
		return fmt.Sprintf("%s %q", t.Kind, t.Text)
	case String:
		return fmt.Sprintf("string %q", t.Text)
	case Illegal:
		return t.Text
	case EOF:
		return t.Kind.String()
	default:
		return fmt.Sprintf("'%s'", t.Kind)
	}
}
