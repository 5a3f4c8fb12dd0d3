package parser

import (
	"rover/interpreter-go/pkg/ast"
	"rover/interpreter-go/pkg/lexer"
)

var binaryOperators = map[lexer.Kind]ast.Operator{
	lexer.Plus:         ast.OpAdd,
	lexer.Minus:        ast.OpSubtract,
	lexer.Star:         ast.OpMultiply,
	lexer.Slash:        ast.OpDivide,
	lexer.Equal:        ast.OpEqual,
	lexer.NotEqual:     ast.OpNotEqual,
	lexer.Less:         ast.OpLess,
	lexer.LessEqual:    ast.OpLessEqual,
	lexer.Greater:      ast.OpGreater,
	lexer.GreaterEqual: ast.OpGreaterEqual,
	lexer.And:          ast.OpAnd,
	lexer.Or:           ast.OpOr,
}

func (p *Parser) parseExpression() (ast.Expression, error) {
	return p.parseAssignment()
}

// parseAssignment is right-associative: a = b = c is a = (b = c). The target
// is not checked here; the evaluator rejects non-assignable left sides.
func (p *Parser) parseAssignment() (ast.Expression, error) {
	left, err := p.parseLogicOr()
	if err != nil {
		return nil, err
	}
	op, ok := p.tokens.ConsumeIf(lexer.Assign)
	if !ok {
		return left, nil
	}
	right, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	return p.binary(op, ast.OpAssign, left, right), nil
}

func (p *Parser) parseLogicOr() (ast.Expression, error) {
	return p.leftAssoc(p.parseLogicAnd, lexer.Or)
}

// parseLogicAnd takes its right operand from the full expression grammar,
// so a && b = c groups as a && (b = c).
func (p *Parser) parseLogicAnd() (ast.Expression, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	op, ok := p.tokens.ConsumeIf(lexer.And)
	if !ok {
		return left, nil
	}
	right, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return p.binary(op, ast.OpAnd, left, right), nil
}

func (p *Parser) parseEquality() (ast.Expression, error) {
	return p.leftAssoc(p.parseComparison, lexer.Equal, lexer.NotEqual)
}

func (p *Parser) parseComparison() (ast.Expression, error) {
	return p.leftAssoc(p.parseTerm, lexer.Less, lexer.LessEqual, lexer.Greater, lexer.GreaterEqual)
}

func (p *Parser) parseTerm() (ast.Expression, error) {
	return p.leftAssoc(p.parseFactor, lexer.Plus, lexer.Minus)
}

func (p *Parser) parseFactor() (ast.Expression, error) {
	return p.leftAssoc(p.parseUnary, lexer.Star, lexer.Slash)
}

func (p *Parser) leftAssoc(operand func() (ast.Expression, error), kinds ...lexer.Kind) (ast.Expression, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.tokens.ConsumeIf(kinds...)
		if !ok {
			return left, nil
		}
		right, err := operand()
		if err != nil {
			return nil, err
		}
		left = p.binary(op, binaryOperators[op.Kind], left, right)
	}
}

func (p *Parser) binary(tok lexer.Token, op ast.Operator, left, right ast.Expression) ast.Expression {
	expr := ast.NewBinaryExpression(op, left, right)
	ast.SetPos(expr, position(tok))
	return expr
}

func (p *Parser) parseUnary() (ast.Expression, error) {
	tok, ok := p.tokens.ConsumeIf(lexer.Not, lexer.Minus)
	if !ok {
		return p.parsePostfix()
	}
	operand, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	op := ast.OpNot
	if tok.Kind == lexer.Minus {
		op = ast.OpNegate
	}
	expr := ast.NewUnaryExpression(op, operand)
	ast.SetPos(expr, position(tok))
	return expr, nil
}

// parsePostfix applies any chain of calls and index operations.
func (p *Parser) parsePostfix() (ast.Expression, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.tokens.ConsumeIf(lexer.LeftParen, lexer.LeftSquare)
		if !ok {
			return expr, nil
		}
		if tok.Kind == lexer.LeftParen {
			args, err := p.parseExpressionList(lexer.RightParen, "argument")
			if err != nil {
				return nil, err
			}
			call := ast.NewFunctionCall(expr, args)
			ast.SetPos(call, expr.Pos())
			expr = call
			continue
		}
		index, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RightSquare, "after index"); err != nil {
			return nil, err
		}
		indexExpr := ast.NewIndexExpression(expr, index)
		ast.SetPos(indexExpr, position(tok))
		expr = indexExpr
	}
}

// parseExpressionList reads one or more comma-separated expressions and the
// closing token. Empty lists are rejected.
func (p *Parser) parseExpressionList(closing lexer.Kind, what string) ([]ast.Expression, error) {
	if tok := p.tokens.Peek(); tok.Kind == closing {
		return nil, p.errorAt(tok, "expected %s, found %s", what, tok)
	}
	items := make([]ast.Expression, 0, 2)
	for {
		item, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if _, ok := p.tokens.ConsumeIf(lexer.Comma); !ok {
			break
		}
	}
	if _, err := p.expect(closing, "after "+what+" list"); err != nil {
		return nil, err
	}
	return items, nil
}

func (p *Parser) parsePrimary() (ast.Expression, error) {
	tok := p.tokens.Peek()
	var expr ast.Expression
	switch tok.Kind {
	case lexer.Int:
		p.tokens.Consume()
		expr = ast.NewIntegerLiteral(tok.Text)
	case lexer.Float:
		p.tokens.Consume()
		expr = ast.NewFloatLiteral(tok.Text)
	case lexer.String:
		p.tokens.Consume()
		expr = ast.NewStringLiteral(tok.Text)
	case lexer.Identifier:
		p.tokens.Consume()
		expr = ast.NewIdentifier(tok.Text)
	case lexer.LeftParen:
		p.tokens.Consume()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RightParen, "to close parenthesis"); err != nil {
			return nil, err
		}
		return inner, nil
	case lexer.LeftSquare:
		p.tokens.Consume()
		elements, err := p.parseExpressionList(lexer.RightSquare, "array element")
		if err != nil {
			return nil, err
		}
		expr = ast.NewArrayLiteral(elements)
	default:
		return nil, p.unexpected(tok, "expression")
	}
	ast.SetPos(expr, position(tok))
	return expr, nil
}
