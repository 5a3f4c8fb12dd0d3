package interpreter

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"rover/interpreter-go/pkg/ast"
	"rover/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateExpression(node ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.IntegerLiteral:
		val, err := strconv.ParseInt(n.Text, 10, 64)
		if err != nil {
			return i.fail(n, ErrInvalidLiteral, "invalid integer literal %s", n.Text)
		}
		return runtime.IntegerValue{Val: val}, nil
	case *ast.FloatLiteral:
		val, err := strconv.ParseFloat(n.Text, 64)
		if err != nil {
			return i.fail(n, ErrInvalidLiteral, "invalid float literal %s", n.Text)
		}
		return runtime.FloatValue{Val: val}, nil
	case *ast.StringLiteral:
		return runtime.StringValue{Val: n.Value}, nil
	case *ast.Identifier:
		val, err := env.Get(n.Name)
		if err != nil {
			return i.fail(n, ErrUndefinedVariable, "%s", err)
		}
		return val, nil
	case *ast.ArrayLiteral:
		elements := make([]runtime.Value, 0, len(n.Elements))
		for _, el := range n.Elements {
			val, err := i.evaluateExpression(el, env)
			if err != nil {
				return nil, err
			}
			elements = append(elements, val)
		}
		return runtime.NewArray(elements...), nil
	case *ast.UnaryExpression:
		return i.evaluateUnaryExpression(n, env)
	case *ast.BinaryExpression:
		if n.Operator == ast.OpAssign {
			return i.evaluateAssignment(n, env)
		}
		return i.evaluateBinaryExpression(n, env)
	case *ast.IndexExpression:
		return i.evaluateIndexExpression(n, env)
	case *ast.FunctionCall:
		return i.evaluateFunctionCall(n, env)
	default:
		return nil, fmt.Errorf("interpreter: unsupported expression %T", node)
	}
}

// wrapInteger folds integer arithmetic results into [0, 99].
func wrapInteger(v int64) int64 {
	return ((v % 100) + 100) % 100
}

func (i *Interpreter) evaluateUnaryExpression(expr *ast.UnaryExpression, env *runtime.Environment) (runtime.Value, error) {
	operand, err := i.evaluateExpression(expr.Operand, env)
	if err != nil {
		return nil, err
	}
	switch expr.Operator {
	case ast.OpNegate:
		switch v := operand.(type) {
		case runtime.IntegerValue:
			return runtime.IntegerValue{Val: wrapInteger(-v.Val)}, nil
		case runtime.FloatValue:
			return runtime.FloatValue{Val: -v.Val}, nil
		}
	case ast.OpNot:
		switch v := operand.(type) {
		case runtime.IntegerValue:
			return runtime.Bool(v.Val == 0), nil
		case runtime.FloatValue:
			return runtime.Bool(v.Val == 0), nil
		}
	default:
		return nil, fmt.Errorf("interpreter: unsupported unary operator %s", expr.Operator)
	}
	return i.fail(expr, ErrTypeMismatch, "type mismatch: unary '%s' requires an integer or float, got %s", expr.Operator, operand.Kind())
}

// evaluateBinaryExpression always evaluates both operands, left first; &&
// and || do not short-circuit.
func (i *Interpreter) evaluateBinaryExpression(expr *ast.BinaryExpression, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.evaluateExpression(expr.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluateExpression(expr.Right, env)
	if err != nil {
		return nil, err
	}

	switch expr.Operator {
	case ast.OpAnd:
		return runtime.Bool(runtime.Truthy(left) && runtime.Truthy(right)), nil
	case ast.OpOr:
		return runtime.Bool(runtime.Truthy(left) || runtime.Truthy(right)), nil
	case ast.OpAdd, ast.OpSubtract, ast.OpMultiply, ast.OpDivide:
		return i.applyArithmetic(expr, left, right)
	case ast.OpEqual, ast.OpNotEqual, ast.OpLess, ast.OpLessEqual, ast.OpGreater, ast.OpGreaterEqual:
		return i.applyComparison(expr, left, right)
	default:
		return nil, fmt.Errorf("interpreter: unsupported binary operator %s", expr.Operator)
	}
}

func (i *Interpreter) operandMismatch(expr *ast.BinaryExpression, left, right runtime.Value) (runtime.Value, error) {
	return i.fail(expr, ErrTypeMismatch, "type mismatch: operator %s requires two integers or two floats, got %s and %s",
		expr.Operator, left.Kind(), right.Kind())
}

func (i *Interpreter) applyArithmetic(expr *ast.BinaryExpression, left, right runtime.Value) (runtime.Value, error) {
	switch lv := left.(type) {
	case runtime.IntegerValue:
		rv, ok := right.(runtime.IntegerValue)
		if !ok {
			break
		}
		// + - * reduce their operands first so the int64 result cannot overflow
		var result int64
		switch expr.Operator {
		case ast.OpAdd:
			result = wrapInteger(lv.Val) + wrapInteger(rv.Val)
		case ast.OpSubtract:
			result = wrapInteger(lv.Val) - wrapInteger(rv.Val)
		case ast.OpMultiply:
			result = wrapInteger(lv.Val) * wrapInteger(rv.Val)
		case ast.OpDivide:
			if rv.Val == 0 {
				return i.fail(expr, ErrDivisionByZero, "division by zero")
			}
			result = lv.Val / rv.Val
		}
		return runtime.IntegerValue{Val: wrapInteger(result)}, nil
	case runtime.FloatValue:
		rv, ok := right.(runtime.FloatValue)
		if !ok {
			break
		}
		switch expr.Operator {
		case ast.OpAdd:
			return runtime.FloatValue{Val: lv.Val + rv.Val}, nil
		case ast.OpSubtract:
			return runtime.FloatValue{Val: lv.Val - rv.Val}, nil
		case ast.OpMultiply:
			return runtime.FloatValue{Val: lv.Val * rv.Val}, nil
		default:
			return runtime.FloatValue{Val: lv.Val / rv.Val}, nil
		}
	}
	return i.operandMismatch(expr, left, right)
}

func (i *Interpreter) applyComparison(expr *ast.BinaryExpression, left, right runtime.Value) (runtime.Value, error) {
	var cmp int
	switch lv := left.(type) {
	case runtime.IntegerValue:
		rv, ok := right.(runtime.IntegerValue)
		if !ok {
			return i.operandMismatch(expr, left, right)
		}
		cmp = compareOrdered(lv.Val, rv.Val)
	case runtime.FloatValue:
		rv, ok := right.(runtime.FloatValue)
		if !ok {
			return i.operandMismatch(expr, left, right)
		}
		l := lv.Val
		if scale := i.opts.FloatComparisonScale; scale != 0 {
			l *= scale
		}
		if math.IsNaN(l) || math.IsNaN(rv.Val) {
			return runtime.Bool(expr.Operator == ast.OpNotEqual), nil
		}
		cmp = compareOrdered(l, rv.Val)
	default:
		return i.operandMismatch(expr, left, right)
	}
	return runtime.Bool(comparisonOp(expr.Operator, cmp)), nil
}

func compareOrdered[T int64 | float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func comparisonOp(op ast.Operator, cmp int) bool {
	switch op {
	case ast.OpLess:
		return cmp < 0
	case ast.OpLessEqual:
		return cmp <= 0
	case ast.OpGreater:
		return cmp > 0
	case ast.OpGreaterEqual:
		return cmp >= 0
	case ast.OpEqual:
		return cmp == 0
	case ast.OpNotEqual:
		return cmp != 0
	default:
		return false
	}
}

// evaluateAssignment evaluates the value before resolving the target, then
// stores a copy and yields the value.
func (i *Interpreter) evaluateAssignment(assign *ast.BinaryExpression, env *runtime.Environment) (runtime.Value, error) {
	val, err := i.evaluateExpression(assign.Right, env)
	if err != nil {
		return nil, err
	}
	loc, rerr, err := i.resolveLocation(assign.Left, env)
	if err != nil {
		return nil, err
	}
	if rerr != nil {
		return i.report(rerr)
	}
	if loc.constant {
		return i.fail(assign, ErrConstAssignment, "cannot assign to constant '%s'", loc.name)
	}
	if err := loc.store(val); err != nil {
		kind := ErrUndefinedVariable
		if errors.Is(err, ErrConstAssignment) {
			kind = ErrConstAssignment
		}
		return i.fail(assign, kind, "%s", err)
	}
	return val, nil
}

func (i *Interpreter) evaluateIndexExpression(expr *ast.IndexExpression, env *runtime.Environment) (runtime.Value, error) {
	base, err := i.evaluateExpression(expr.Array, env)
	if err != nil {
		return nil, err
	}
	arr, ok := base.(*runtime.ArrayValue)
	if !ok {
		return i.fail(expr, ErrNotArray, "not an array: cannot index %s", base.Kind())
	}
	idxVal, err := i.evaluateExpression(expr.Index, env)
	if err != nil {
		return nil, err
	}
	idx, rerr := checkIndex(expr, arr, idxVal)
	if rerr != nil {
		return i.report(rerr)
	}
	return runtime.Copy(arr.Elements[idx]), nil
}

func checkIndex(expr *ast.IndexExpression, arr *runtime.ArrayValue, idxVal runtime.Value) (int, *RuntimeError) {
	iv, ok := idxVal.(runtime.IntegerValue)
	if !ok {
		return 0, newRuntimeError(expr, ErrIndexType, "index must be an integer, got %s", idxVal.Kind())
	}
	if iv.Val < 0 || iv.Val >= int64(len(arr.Elements)) {
		return 0, newRuntimeError(expr, ErrIndexOutOfBounds, "index out of bounds: %d not in array of length %d", iv.Val, len(arr.Elements))
	}
	return int(iv.Val), nil
}
