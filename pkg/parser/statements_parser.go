package parser

import (
	"rover/interpreter-go/pkg/ast"
	"rover/interpreter-go/pkg/lexer"
)

func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.tokens.Peek().Kind {
	case lexer.If:
		return p.parseIf()
	case lexer.While:
		return p.parseWhile()
	case lexer.LeftBrace:
		return p.parseBlock()
	case lexer.Var, lexer.Const:
		return p.parseDefinition()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseIf() (ast.Statement, error) {
	keyword := p.tokens.Consume()
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	var elseBranch ast.Statement
	if _, ok := p.tokens.ConsumeIf(lexer.Else); ok {
		if p.tokens.Peek().Kind == lexer.If {
			elseBranch, err = p.parseIf()
		} else {
			elseBranch, err = p.parseBlock()
		}
		if err != nil {
			return nil, err
		}
	}
	stmt := ast.NewIfStatement(cond, then, elseBranch)
	ast.SetPos(stmt, position(keyword))
	return stmt, nil
}

func (p *Parser) parseWhile() (ast.Statement, error) {
	keyword := p.tokens.Consume()
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	loop := ast.NewWhileLoop(cond, body)
	ast.SetPos(loop, position(keyword))
	return loop, nil
}

// parseBlock recovers from failures inside its own body so the closing brace
// still balances the opening one. Errors stay in p.diagnostics.
func (p *Parser) parseBlock() (*ast.Block, error) {
	open, err := p.expect(lexer.LeftBrace, "to open block")
	if err != nil {
		return nil, err
	}
	body := p.statementsUntil(lexer.RightBrace)
	if _, err := p.expect(lexer.RightBrace, "to close block"); err != nil {
		return nil, err
	}
	block := ast.NewBlock(body)
	ast.SetPos(block, position(open))
	return block, nil
}

func (p *Parser) parseDefinition() (ast.Statement, error) {
	keyword := p.tokens.Consume()
	isConst := keyword.Kind == lexer.Const
	kind := "variable"
	if isConst {
		kind = "constant"
	}
	nameTok, err := p.expect(lexer.Identifier, "after "+keyword.Kind.String())
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Assign, "after "+kind+" name"); err != nil {
		return nil, err
	}
	init, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Semicolon, "after definition"); err != nil {
		return nil, err
	}
	name := ast.NewIdentifier(nameTok.Text)
	ast.SetPos(name, position(nameTok))
	def := ast.NewDefinition(name, init, isConst)
	ast.SetPos(def, position(keyword))
	return def, nil
}

func (p *Parser) parseExpressionStatement() (ast.Statement, error) {
	start := p.tokens.Peek()
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Semicolon, "after expression"); err != nil {
		return nil, err
	}
	stmt := ast.NewExpressionStatement(expr)
	ast.SetPos(stmt, position(start))
	return stmt, nil
}
