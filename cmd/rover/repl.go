package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/peterh/liner"
	"gopkg.in/urfave/cli.v1"

	"rover/interpreter-go/pkg/driver"
	"rover/interpreter-go/pkg/interpreter"
	"rover/interpreter-go/pkg/lexer"
)

const (
	promptMain = "rover> "
	promptCont = "  ...> "
)

// lineReader is the part of *liner.State the session loop needs.
type lineReader interface {
	Prompt(prompt string) (string, error)
}

func replAction(ctx *cli.Context) error {
	cfg, err := loadSettings(ctx, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		return exitStatus(1)
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath, err := cfg.config.HistoryPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	fmt.Fprintf(os.Stdout, "rover %s. Type :help for commands.\n", cliToolVersion)
	s := newSession(cfg, os.Stdout, os.Stderr)
	s.history = ln.AppendHistory
	s.loop(ln)
	return nil
}

// session runs successive inputs against one interpreter, so definitions
// persist between lines.
type session struct {
	interp  *interpreter.Interpreter
	out     *lineTracker
	errOut  io.Writer
	cfg     *settings
	history func(string)
}

func newSession(cfg *settings, out, errOut io.Writer) *session {
	tracked := &lineTracker{w: out, atLineStart: true}
	opts := cfg.opts
	opts.Output = tracked
	opts.Diagnostics = colorWriter{c: cfg.errOut, w: errOut}
	return &session{
		interp: interpreter.New(interpreter.WithOptions(opts)),
		out:    tracked,
		errOut: errOut,
		cfg:    cfg,
	}
}

// lineTracker remembers whether the last byte written ended a line.
type lineTracker struct {
	w           io.Writer
	atLineStart bool
}

func (t *lineTracker) Write(p []byte) (int, error) {
	n, err := t.w.Write(p)
	if n > 0 {
		t.atLineStart = p[n-1] == '\n'
	}
	return n, err
}

// endLine terminates printf output that did not end with a newline.
func (t *lineTracker) endLine() {
	if !t.atLineStart {
		fmt.Fprintln(t)
	}
}

func (s *session) loop(in lineReader) {
	for {
		src, ok := readInput(in)
		if !ok {
			fmt.Fprintln(s.out)
			return
		}
		trimmed := strings.TrimSpace(src)
		if trimmed == "" {
			continue
		}
		if s.history != nil {
			s.history(strings.ReplaceAll(src, "\n", " "))
		}
		if strings.HasPrefix(trimmed, ":") {
			if quit := s.command(trimmed); quit {
				return
			}
			continue
		}
		s.eval(src)
	}
}

// eval parses and runs one input. In strict mode a runtime error stops the
// rest of that input; earlier statements keep their effects.
func (s *session) eval(src string) {
	defer s.out.endLine()
	parsed, err := driver.ParseSource("<repl>", src)
	if err != nil {
		var perr *driver.ParseError
		if errors.As(err, &perr) {
			for _, d := range perr.Diagnostics {
				s.cfg.errOut.Fprintln(s.errOut, d.String())
			}
			return
		}
		s.cfg.errOut.Fprintln(s.errOut, err)
		return
	}
	if err := s.interp.Run(parsed.Program); err != nil {
		s.out.endLine()
		s.cfg.errOut.Fprintf(s.errOut, "runtime error: %v\n", err)
	}
}

func (s *session) command(cmd string) bool {
	switch strings.ToLower(cmd) {
	case ":quit", ":q", ":exit":
		return true
	case ":vars":
		env := s.interp.GlobalEnvironment()
		for _, name := range env.Keys() {
			binding, ok := env.Lookup(name)
			if !ok {
				continue
			}
			kind := "var"
			if binding.Const {
				kind = "const"
			}
			fmt.Fprintf(s.out, "%s %s = %s\n", kind, name, interpreter.Inspect(binding.Value))
		}
	case ":builtins":
		names := append([]string(nil), interpreter.BuiltinNames...)
		sort.Strings(names)
		fmt.Fprintln(s.out, strings.Join(names, " "))
	case ":help":
		fmt.Fprintln(s.out, ":vars      list global bindings")
		fmt.Fprintln(s.out, ":builtins  list built-in functions")
		fmt.Fprintln(s.out, ":quit      leave the session")
	default:
		fmt.Fprintf(s.out, "unknown command %s. Type :help for commands.\n", cmd)
	}
	return false
}

// readInput collects lines until brackets balance. ok is false at end of
// input.
func readInput(in lineReader) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := in.Prompt(prompt)
		if err != nil {
			if errors.Is(err, io.EOF) && b.Len() > 0 {
				return b.String(), true
			}
			if errors.Is(err, liner.ErrPromptAborted) {
				return "", true
			}
			return "", false
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		if openDepth(b.String()) <= 0 {
			return b.String(), true
		}
	}
}

// openDepth counts unclosed brackets of every kind, ignoring any inside
// string literals or comments.
func openDepth(src string) int {
	depth := 0
	lx := lexer.New(src)
	for {
		tok := lx.Consume()
		switch tok.Kind {
		case lexer.EOF:
			return depth
		case lexer.LeftBrace, lexer.LeftParen, lexer.LeftSquare:
			depth++
		case lexer.RightBrace, lexer.RightParen, lexer.RightSquare:
			depth--
		}
	}
}
