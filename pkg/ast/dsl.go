package ast

import "strconv"

// Identifier and literal helpers.

func ID(name string) *Identifier {
	return NewIdentifier(name)
}

func Str(value string) *StringLiteral {
	return NewStringLiteral(value)
}

func Int(value int64) *IntegerLiteral {
	return NewIntegerLiteral(strconv.FormatInt(value, 10))
}

func Flt(text string) *FloatLiteral {
	return NewFloatLiteral(text)
}

func Arr(elements ...Expression) *ArrayLiteral {
	return NewArrayLiteral(elements)
}

// Expression helpers.

func Bin(op Operator, left, right Expression) *BinaryExpression {
	return NewBinaryExpression(op, left, right)
}

func Un(op Operator, operand Expression) *UnaryExpression {
	return NewUnaryExpression(op, operand)
}

func Assign(target, value Expression) *BinaryExpression {
	return NewBinaryExpression(OpAssign, target, value)
}

func Call(name string, args ...Expression) *FunctionCall {
	return NewFunctionCall(ID(name), args)
}

func CallExpr(callee Expression, args ...Expression) *FunctionCall {
	return NewFunctionCall(callee, args)
}

func Index(array, index Expression) *IndexExpression {
	return NewIndexExpression(array, index)
}

// Statement helpers.

func Expr(expr Expression) *ExpressionStatement {
	return NewExpressionStatement(expr)
}

func Blk(body ...Statement) *Block {
	return NewBlock(body)
}

func Var(name string, init Expression) *Definition {
	return NewDefinition(ID(name), init, false)
}

func Const(name string, init Expression) *Definition {
	return NewDefinition(ID(name), init, true)
}

func If(cond Expression, then *Block, elseBranch Statement) *IfStatement {
	return NewIfStatement(cond, then, elseBranch)
}

func While(cond Expression, body *Block) *WhileLoop {
	return NewWhileLoop(cond, body)
}

func Prog(body ...Statement) *Program {
	return NewProgram(body)
}
