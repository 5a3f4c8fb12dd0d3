package interpreter

import (
	"fmt"

	"rover/interpreter-go/pkg/ast"
	"rover/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateStatement(node ast.Statement, env *runtime.Environment) error {
	switch n := node.(type) {
	case *ast.ExpressionStatement:
		_, err := i.evaluateExpression(n.Expression, env)
		return err
	case *ast.Block:
		return i.evaluateBlock(n, env)
	case *ast.Definition:
		return i.evaluateDefinition(n, env)
	case *ast.IfStatement:
		return i.evaluateIfStatement(n, env)
	case *ast.WhileLoop:
		return i.evaluateWhileLoop(n, env)
	default:
		return fmt.Errorf("interpreter: unsupported statement %T", node)
	}
}

func (i *Interpreter) evaluateBlock(block *ast.Block, env *runtime.Environment) error {
	scope := env.Extend()
	for _, stmt := range block.Body {
		if err := i.evaluateStatement(stmt, scope); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) evaluateDefinition(def *ast.Definition, env *runtime.Environment) error {
	val, err := i.evaluateExpression(def.Initializer, env)
	if err != nil {
		return err
	}
	env.Define(def.Name.Name, val, def.IsConst)
	return nil
}

func (i *Interpreter) evaluateIfStatement(stmt *ast.IfStatement, env *runtime.Environment) error {
	cond, err := i.evaluateExpression(stmt.Condition, env)
	if err != nil {
		return err
	}
	if runtime.Truthy(cond) {
		return i.evaluateBlock(stmt.Then, env)
	}
	if stmt.Else == nil {
		return nil
	}
	return i.evaluateStatement(stmt.Else, env)
}

func (i *Interpreter) evaluateWhileLoop(loop *ast.WhileLoop, env *runtime.Environment) error {
	for {
		cond, err := i.evaluateExpression(loop.Condition, env)
		if err != nil {
			return err
		}
		if !runtime.Truthy(cond) {
			return nil
		}
		if err := i.evaluateBlock(loop.Body, env); err != nil {
			return err
		}
	}
}
