package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"gopkg.in/urfave/cli.v1"

	"rover/interpreter-go/pkg/driver"
	"rover/interpreter-go/pkg/interpreter"
)

const cliToolVersion = "0.1.0-dev"

// exitStatus carries a non-zero exit code out of a cli action. It does not
// implement cli.ExitCoder, so the library never calls os.Exit for us.
type exitStatus int

func (s exitStatus) Error() string { return fmt.Sprintf("exit status %d", int(s)) }

var (
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "rover.yml to load instead of searching upwards from the source file",
	}
	strictFlag = cli.BoolFlag{
		Name:  "strict",
		Usage: "stop at the first runtime error",
	}
	floatScaleFlag = cli.Float64Flag{
		Name:  "float-scale",
		Usage: "multiply the left operand of float comparisons (0 disables)",
	}
	noColorFlag = cli.BoolFlag{
		Name:  "no-color",
		Usage: "disable colored diagnostics",
	}
	commonFlags = []cli.Flag{configFlag, strictFlag, floatScaleFlag, noColorFlag}
)

// stdinIsTerminal is swapped out by tests.
var stdinIsTerminal = func() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	app := newApp()
	if err := app.Run(append([]string{"rover"}, args...)); err != nil {
		var status exitStatus
		if errors.As(err, &status) {
			return int(status)
		}
		// flag parse failures have already printed usage
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "rover"
	app.Usage = "run rover programs"
	app.UsageText = "rover [global options] <file.rv>\n   rover [global options] command [arguments...]"
	app.Version = cliToolVersion
	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr
	app.Flags = commonFlags
	app.Action = func(ctx *cli.Context) error {
		if !ctx.Args().Present() {
			if stdinIsTerminal() {
				return replAction(ctx)
			}
			cli.ShowAppHelp(ctx)
			return exitStatus(1)
		}
		return runAction(ctx)
	}
	app.Commands = []cli.Command{
		{
			Name:      "run",
			Usage:     "parse and execute a source file",
			ArgsUsage: "<file.rv>",
			Flags:     commonFlags,
			Action:    runAction,
		},
		{
			Name:      "check",
			Usage:     "parse a source file and report syntax errors",
			ArgsUsage: "<file.rv>",
			Flags:     commonFlags,
			Action:    checkAction,
		},
		{
			Name:   "repl",
			Usage:  "start an interactive session",
			Flags:  commonFlags,
			Action: replAction,
		},
	}
	return app
}

// settings is the merged view of rover.yml and command line flags.
type settings struct {
	config *driver.Config
	opts   interpreter.Options
	errOut *color.Color
}

func loadSettings(ctx *cli.Context, sourcePath string) (*settings, error) {
	start := "."
	if sourcePath != "" {
		start = filepath.Dir(sourcePath)
	}
	cfg, err := driver.ResolveConfig(stringFlag(ctx, configFlag.Name), start)
	if err != nil {
		return nil, err
	}
	opts := interpreter.Options{
		Strict:               cfg.Strict || boolFlag(ctx, strictFlag.Name),
		FloatComparisonScale: cfg.FloatComparisonScale,
	}
	if isSet(ctx, floatScaleFlag.Name) {
		opts.FloatComparisonScale = float64Flag(ctx, floatScaleFlag.Name)
	}
	mode := cfg.Color
	if boolFlag(ctx, noColorFlag.Name) {
		mode = driver.ColorNever
	}
	return &settings{config: cfg, opts: opts, errOut: diagnosticColor(mode, os.Stderr)}, nil
}

func diagnosticColor(mode driver.ColorMode, w *os.File) *color.Color {
	c := color.New(color.FgRed)
	switch mode {
	case driver.ColorAlways:
		c.EnableColor()
	case driver.ColorNever:
		c.DisableColor()
	default:
		if isatty.IsTerminal(w.Fd()) || isatty.IsCygwinTerminal(w.Fd()) {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return c
}

func sourceArgument(ctx *cli.Context) (string, error) {
	args := ctx.Args()
	switch {
	case len(args) == 0:
		return "", fmt.Errorf("missing source file argument")
	case len(args) > 1:
		return "", fmt.Errorf("unexpected arguments: %v", []string(args[1:]))
	}
	return args.First(), nil
}

func runAction(ctx *cli.Context) error {
	path, err := sourceArgument(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitStatus(1)
	}
	cfg, err := loadSettings(ctx, path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		return exitStatus(1)
	}
	src, ok := loadSource(cfg, path)
	if !ok {
		return exitStatus(1)
	}

	stdout := bufio.NewWriter(os.Stdout)
	defer stdout.Flush()
	opts := cfg.opts
	opts.Output = stdout
	opts.Diagnostics = colorWriter{c: cfg.errOut, w: os.Stderr}
	interp := interpreter.New(interpreter.WithOptions(opts))
	if err := interp.Run(src.Program); err != nil {
		stdout.Flush()
		cfg.errOut.Fprintf(os.Stderr, "runtime error: %v\n", err)
		return exitStatus(1)
	}
	return nil
}

func checkAction(ctx *cli.Context) error {
	path, err := sourceArgument(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitStatus(1)
	}
	cfg, err := loadSettings(ctx, path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		return exitStatus(1)
	}
	if _, ok := loadSource(cfg, path); !ok {
		return exitStatus(1)
	}
	fmt.Fprintln(os.Stdout, "ok")
	return nil
}

// loadSource reads and parses path, printing every problem to stderr.
func loadSource(cfg *settings, path string) (*driver.Source, bool) {
	src, err := driver.LoadFile(path)
	if err == nil {
		return src, true
	}
	var perr *driver.ParseError
	if errors.As(err, &perr) {
		for _, line := range driver.DescribeDiagnostics(perr.Path, perr.Diagnostics) {
			cfg.errOut.Fprintln(os.Stderr, line)
		}
		return nil, false
	}
	cfg.errOut.Fprintln(os.Stderr, err)
	return nil, false
}

// colorWriter paints everything written through it.
type colorWriter struct {
	c *color.Color
	w io.Writer
}

func (cw colorWriter) Write(p []byte) (int, error) {
	if _, err := cw.c.Fprint(cw.w, string(p)); err != nil {
		return 0, err
	}
	return len(p), nil
}

func isSet(ctx *cli.Context, name string) bool {
	return ctx.IsSet(name) || ctx.GlobalIsSet(name)
}

func boolFlag(ctx *cli.Context, name string) bool {
	return ctx.Bool(name) || ctx.GlobalBool(name)
}

func stringFlag(ctx *cli.Context, name string) string {
	if ctx.IsSet(name) {
		return ctx.String(name)
	}
	return ctx.GlobalString(name)
}

func float64Flag(ctx *cli.Context, name string) float64 {
	if ctx.IsSet(name) {
		return ctx.Float64(name)
	}
	return ctx.GlobalFloat64(name)
}
