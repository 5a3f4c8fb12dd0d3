package interpreter

import (
	"rover/interpreter-go/pkg/ast"
	"rover/interpreter-go/pkg/runtime"
)

// location is an assignable slot: a binding, or an element of an array held
// (possibly nested) by a binding. constant is inherited from the root binding.
type location struct {
	env      *runtime.Environment
	binding  *runtime.Binding
	array    *runtime.ArrayValue
	index    int
	constant bool
	name     string
}

func (l location) load() runtime.Value {
	if l.array != nil {
		return l.array.Elements[l.index]
	}
	return l.binding.Value
}

// store writes a copy of v. Variables go back through the environment, which
// rejects constants.
func (l location) store(v runtime.Value) error {
	if l.array != nil {
		l.array.Elements[l.index] = runtime.Copy(v)
		return nil
	}
	return l.env.Assign(l.name, runtime.Copy(v))
}

// resolveLocation maps expr onto the slot it names: a variable, an element
// of an array slot, or the target of a push call. Failures the caller
// should report come back as a *RuntimeError; err is reserved for errors that
// already halted evaluation.
func (i *Interpreter) resolveLocation(expr ast.Expression, env *runtime.Environment) (location, *RuntimeError, error) {
	switch n := expr.(type) {
	case *ast.Identifier:
		b, ok := env.Lookup(n.Name)
		if !ok {
			return location{}, newRuntimeError(n, ErrUndefinedVariable, "undefined variable '%s'", n.Name), nil
		}
		return location{env: env, binding: b, constant: b.Const, name: n.Name}, nil, nil
	case *ast.IndexExpression:
		base, rerr, err := i.resolveLocation(n.Array, env)
		if rerr != nil || err != nil {
			return location{}, rerr, err
		}
		idxVal, err := i.evaluateExpression(n.Index, env)
		if err != nil {
			return location{}, nil, err
		}
		arr, ok := base.load().(*runtime.ArrayValue)
		if !ok {
			return location{}, newRuntimeError(n, ErrNotArray, "not an array: cannot index %s", base.load().Kind()), nil
		}
		idx, rerr := checkIndex(n, arr, idxVal)
		if rerr != nil {
			return location{}, rerr, nil
		}
		return location{array: arr, index: idx, constant: base.constant, name: base.name}, nil, nil
	case *ast.FunctionCall:
		if callee, ok := n.Callee.(*ast.Identifier); ok && callee.Name == "push" {
			if rerr := i.checkArity(n, "push", 2); rerr != nil {
				return location{}, rerr, nil
			}
			return i.pushInPlace(n, env)
		}
	}
	return location{}, newRuntimeError(expr, ErrInvalidTarget, "invalid assignment target"), nil
}
