package interpreter

import (
	"errors"
	"fmt"

	"rover/interpreter-go/pkg/ast"
	"rover/interpreter-go/pkg/runtime"
)

// Sentinel kinds carried by RuntimeError. Match them with errors.Is.
var (
	ErrTypeMismatch      = errors.New("type mismatch")
	ErrUndefinedVariable = runtime.ErrUndefinedVariable
	ErrConstAssignment   = runtime.ErrConstAssignment
	ErrInvalidTarget     = errors.New("invalid assignment target")
	ErrNotArray          = errors.New("not an array")
	ErrIndexType         = errors.New("index must be an integer")
	ErrIndexOutOfBounds  = errors.New("index out of bounds")
	ErrCallee            = errors.New("callee must be a function name")
	ErrUnknownFunction   = errors.New("unknown function")
	ErrArity             = errors.New("wrong number of arguments")
	ErrBuiltinArgument   = errors.New("invalid built-in argument")
	ErrFormat            = errors.New("invalid format string")
	ErrDivisionByZero    = errors.New("division by zero")
	ErrInvalidLiteral    = errors.New("invalid literal")
)

// RuntimeError is an evaluation failure attached to the node that caused it.
type RuntimeError struct {
	Kind    error
	Message string
	Pos     ast.Position
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

func (e *RuntimeError) Unwrap() error {
	return e.Kind
}

func newRuntimeError(node ast.Node, kind error, format string, args ...any) *RuntimeError {
	rerr := &RuntimeError{Kind: kind, Message: fmt.Sprintf(format, args...)}
	if node != nil {
		rerr.Pos = node.Pos()
	}
	return rerr
}

// fail reports an evaluation error. In strict mode the error halts
// evaluation; otherwise it is recorded and the failing node yields NoValue.
func (i *Interpreter) fail(node ast.Node, kind error, format string, args ...any) (runtime.Value, error) {
	return i.report(newRuntimeError(node, kind, format, args...))
}

func (i *Interpreter) report(rerr *RuntimeError) (runtime.Value, error) {
	i.diagnostics = append(i.diagnostics, rerr)
	if i.opts.Strict {
		return nil, rerr
	}
	if i.opts.Diagnostics != nil {
		fmt.Fprintf(i.opts.Diagnostics, "runtime error: %s\n", rerr)
	}
	return runtime.NoValue{}, nil
}
