package interpreter

import (
	"io"
	"os"

	"rover/interpreter-go/pkg/ast"
	"rover/interpreter-go/pkg/runtime"
)

// Options controls how programs are evaluated.
type Options struct {
	// Output receives printf text. Defaults to os.Stdout.
	Output io.Writer
	// Diagnostics receives best-effort runtime errors. Defaults to os.Stderr;
	// WithDiagnostics(nil) silences them.
	Diagnostics io.Writer
	// Strict halts on the first runtime error instead of reporting it and
	// continuing.
	Strict bool
	// FloatComparisonScale, when nonzero, multiplies the left operand of a
	// float comparison before comparing. Zero compares plainly.
	FloatComparisonScale float64
}

type Option func(*Options)

func WithOutput(w io.Writer) Option {
	return func(o *Options) { o.Output = w }
}

func WithDiagnostics(w io.Writer) Option {
	return func(o *Options) { o.Diagnostics = w }
}

func WithStrict(strict bool) Option {
	return func(o *Options) { o.Strict = strict }
}

func WithFloatComparisonScale(scale float64) Option {
	return func(o *Options) { o.FloatComparisonScale = scale }
}

// WithOptions replaces every option at once. Nil writers keep their defaults.
func WithOptions(opts Options) Option {
	return func(o *Options) {
		if opts.Output == nil {
			opts.Output = o.Output
		}
		if opts.Diagnostics == nil {
			opts.Diagnostics = o.Diagnostics
		}
		*o = opts
	}
}

// Interpreter drives evaluation of rover AST nodes.
type Interpreter struct {
	global      *runtime.Environment
	opts        Options
	diagnostics []*RuntimeError
}

// New returns an interpreter with an empty global environment.
func New(opts ...Option) *Interpreter {
	o := Options{Output: os.Stdout, Diagnostics: os.Stderr}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Output == nil {
		o.Output = io.Discard
	}
	return &Interpreter{
		global: runtime.NewEnvironment(nil),
		opts:   o,
	}
}

// GlobalEnvironment returns the interpreter's global environment.
func (i *Interpreter) GlobalEnvironment() *runtime.Environment {
	return i.global
}

// Diagnostics returns every runtime error recorded so far, in order.
func (i *Interpreter) Diagnostics() []*RuntimeError {
	return i.diagnostics
}

// Run executes a program against the global environment. Successive calls
// share bindings. Only strict mode returns evaluation errors.
func (i *Interpreter) Run(program *ast.Program) error {
	if program == nil {
		return nil
	}
	for _, stmt := range program.Body {
		if err := i.evaluateStatement(stmt, i.global); err != nil {
			return err
		}
	}
	return nil
}

// ExecuteStatement runs a single statement in env (the global environment
// when env is nil).
func (i *Interpreter) ExecuteStatement(stmt ast.Statement, env *runtime.Environment) error {
	if env == nil {
		env = i.global
	}
	return i.evaluateStatement(stmt, env)
}

// EvaluateExpression evaluates expr in env (the global environment when env
// is nil).
func (i *Interpreter) EvaluateExpression(expr ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	if env == nil {
		env = i.global
	}
	return i.evaluateExpression(expr, env)
}
