package interpreter

import (
	"bytes"
	"testing"

	"rover/interpreter-go/pkg/parser"
	"rover/interpreter-go/pkg/runtime"
)

type runResult struct {
	stdout string
	stderr string
	interp *Interpreter
	err    error
}

func runSource(t *testing.T, source string, opts ...Option) runResult {
	t.Helper()
	program, err := parser.Parse(source)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	var stdout, stderr bytes.Buffer
	opts = append([]Option{WithOutput(&stdout), WithDiagnostics(&stderr)}, opts...)
	interp := New(opts...)
	runErr := interp.Run(program)
	return runResult{stdout: stdout.String(), stderr: stderr.String(), interp: interp, err: runErr}
}

func mustRun(t *testing.T, source string, opts ...Option) runResult {
	t.Helper()
	res := runSource(t, source, opts...)
	if res.err != nil {
		t.Fatalf("run failed: %v", res.err)
	}
	return res
}

func globalValue(t *testing.T, interp *Interpreter, name string) runtime.Value {
	t.Helper()
	val, err := interp.GlobalEnvironment().Get(name)
	if err != nil {
		t.Fatalf("global %s: %v", name, err)
	}
	return val
}

func intValue(v int64) runtime.IntegerValue {
	return runtime.IntegerValue{Val: v}
}

func intArray(values ...int64) *runtime.ArrayValue {
	out := make([]runtime.Value, len(values))
	for idx, v := range values {
		out[idx] = intValue(v)
	}
	return runtime.NewArray(out...)
}

func runProgram(t *testing.T, interp *Interpreter, source string) error {
	t.Helper()
	program, err := parser.Parse(source)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return interp.Run(program)
}
