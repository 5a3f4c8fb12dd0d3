package interpreter

import (
	"errors"
	"io"
	"strings"

	"rover/interpreter-go/pkg/ast"
	"rover/interpreter-go/pkg/runtime"
)

// BuiltinNames lists the functions callable from rover code.
var BuiltinNames = []string{"length", "pop", "printf", "push"}

func (i *Interpreter) evaluateFunctionCall(call *ast.FunctionCall, env *runtime.Environment) (runtime.Value, error) {
	callee, ok := call.Callee.(*ast.Identifier)
	if !ok {
		return i.fail(call, ErrCallee, "callee must be a function name")
	}
	switch callee.Name {
	case "printf":
		return i.builtinPrintf(call, env)
	case "length":
		return i.builtinLength(call, env)
	case "push":
		return i.builtinPush(call, env)
	case "pop":
		return i.builtinPop(call, env)
	default:
		return i.fail(call, ErrUnknownFunction, "unknown function '%s'", callee.Name)
	}
}

func (i *Interpreter) checkArity(call *ast.FunctionCall, name string, want int) *RuntimeError {
	if got := len(call.Arguments); got != want {
		return newRuntimeError(call, ErrArity, "%s expects %d argument(s), got %d", name, want, got)
	}
	return nil
}

func (i *Interpreter) builtinLength(call *ast.FunctionCall, env *runtime.Environment) (runtime.Value, error) {
	if rerr := i.checkArity(call, "length", 1); rerr != nil {
		return i.report(rerr)
	}
	val, err := i.evaluateExpression(call.Arguments[0], env)
	if err != nil {
		return nil, err
	}
	arr, ok := val.(*runtime.ArrayValue)
	if !ok {
		return i.fail(call, ErrBuiltinArgument, "length expects an array, got %s", val.Kind())
	}
	return runtime.IntegerValue{Val: int64(len(arr.Elements))}, nil
}

// arrayLocation resolves the first argument of push and pop to a writable
// array slot.
func (i *Interpreter) arrayLocation(call *ast.FunctionCall, name string, env *runtime.Environment) (location, *RuntimeError, error) {
	loc, rerr, err := i.resolveLocation(call.Arguments[0], env)
	if err != nil {
		return location{}, nil, err
	}
	if rerr != nil {
		if errors.Is(rerr, ErrInvalidTarget) {
			rerr = newRuntimeError(call, ErrBuiltinArgument, "%s expects an array variable or element as its first argument", name)
		}
		return location{}, rerr, nil
	}
	if _, ok := loc.load().(*runtime.ArrayValue); !ok {
		return location{}, newRuntimeError(call, ErrBuiltinArgument, "%s expects an array, got %s", name, loc.load().Kind()), nil
	}
	if loc.constant {
		return location{}, newRuntimeError(call, ErrConstAssignment, "cannot assign to constant '%s'", loc.name), nil
	}
	return loc, nil, nil
}

// pushInPlace evaluates the pushed value first, then appends it to the
// target array. The returned location is the target itself, which lets
// push(...) stand wherever an array slot is expected.
func (i *Interpreter) pushInPlace(call *ast.FunctionCall, env *runtime.Environment) (location, *RuntimeError, error) {
	val, err := i.evaluateExpression(call.Arguments[1], env)
	if err != nil {
		return location{}, nil, err
	}
	loc, rerr, err := i.arrayLocation(call, "push", env)
	if rerr != nil || err != nil {
		return location{}, rerr, err
	}
	arr := loc.load().(*runtime.ArrayValue)
	arr.Elements = append(arr.Elements, runtime.Copy(val))
	return loc, nil, nil
}

func (i *Interpreter) builtinPush(call *ast.FunctionCall, env *runtime.Environment) (runtime.Value, error) {
	if rerr := i.checkArity(call, "push", 2); rerr != nil {
		return i.report(rerr)
	}
	loc, rerr, err := i.pushInPlace(call, env)
	if err != nil {
		return nil, err
	}
	if rerr != nil {
		return i.report(rerr)
	}
	return runtime.Copy(loc.load()), nil
}

func (i *Interpreter) builtinPop(call *ast.FunctionCall, env *runtime.Environment) (runtime.Value, error) {
	if rerr := i.checkArity(call, "pop", 1); rerr != nil {
		return i.report(rerr)
	}
	loc, rerr, err := i.arrayLocation(call, "pop", env)
	if err != nil {
		return nil, err
	}
	if rerr != nil {
		return i.report(rerr)
	}
	arr := loc.load().(*runtime.ArrayValue)
	n := len(arr.Elements)
	if n == 0 {
		return runtime.NoValue{}, nil
	}
	last := arr.Elements[n-1]
	arr.Elements[n-1] = nil
	arr.Elements = arr.Elements[:n-1]
	return last, nil
}

var printfEscapes = map[rune]rune{
	'\\': '\\',
	'n':  '\n',
	't':  '\t',
	'r':  '\r',
	'v':  '\v',
	'b':  '\b',
	'a':  '\a',
	'f':  '\f',
	'0':  0,
}

// builtinPrintf writes the format string, substituting each {} with the
// next argument. Arguments are evaluated only when their placeholder is
// reached. A formatting error stops output at that point.
func (i *Interpreter) builtinPrintf(call *ast.FunctionCall, env *runtime.Environment) (runtime.Value, error) {
	if len(call.Arguments) == 0 {
		return i.fail(call, ErrArity, "printf expects at least 1 argument(s), got 0")
	}
	formatVal, err := i.evaluateExpression(call.Arguments[0], env)
	if err != nil {
		return nil, err
	}
	format, ok := formatVal.(runtime.StringValue)
	if !ok {
		return i.fail(call, ErrBuiltinArgument, "printf expects a format string as its first argument, got %s", formatVal.Kind())
	}

	out := &printfWriter{w: i.opts.Output}
	defer out.flush()

	args := call.Arguments[1:]
	runes := []rune(format.Val)
	for pos := 0; pos < len(runes); pos++ {
		ch := runes[pos]
		switch {
		case ch == '\\':
			pos++
			if pos >= len(runes) {
				out.emit()
				return i.fail(call, ErrFormat, "printf: trailing backslash in format string")
			}
			esc, ok := printfEscapes[runes[pos]]
			if !ok {
				out.emit()
				return i.fail(call, ErrFormat, "printf: unknown escape sequence \\%c", runes[pos])
			}
			out.buf.WriteRune(esc)
		case ch == '{' && pos+1 < len(runes) && runes[pos+1] == '}':
			pos++
			if len(args) == 0 {
				out.emit()
				return i.fail(call, ErrFormat, "printf: too few arguments for format string")
			}
			// Text before the placeholder goes out first in case the argument
			// prints on its own.
			out.emit()
			val, err := i.evaluateExpression(args[0], env)
			if err != nil {
				return nil, err
			}
			args = args[1:]
			out.buf.WriteString(placeholderText(val))
		default:
			out.buf.WriteRune(ch)
		}
	}
	return runtime.NoValue{}, nil
}

// printfWriter batches literal text between placeholders. Writers with a
// Flush method (bufio.Writer and friends) are flushed when printf returns.
type printfWriter struct {
	w   io.Writer
	buf strings.Builder
}

func (p *printfWriter) emit() {
	if p.buf.Len() == 0 {
		return
	}
	_, _ = p.w.Write([]byte(p.buf.String()))
	p.buf.Reset()
}

func (p *printfWriter) flush() {
	p.emit()
	if f, ok := p.w.(interface{ Flush() error }); ok {
		_ = f.Flush()
	}
}
