package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunFilePrintsOutput(t *testing.T) {
	path := writeSource(t, t.TempDir(), `
var a = [1, 2];
push(a, 3);
printf("{} items, last={}\n", length(a), pop(a));
`)
	for _, args := range [][]string{{path}, {"run", path}} {
		code, stdout, stderr := captureCLI(t, args)
		if code != 0 {
			t.Fatalf("%v: exit code %d, stderr: %q", args, code, stderr)
		}
		if stdout != "3 items, last=3\n" {
			t.Fatalf("%v: stdout = %q", args, stdout)
		}
	}
}

func TestRunReportsParseErrors(t *testing.T) {
	path := writeSource(t, t.TempDir(), "var x = ;\nvar y = 1")
	code, stdout, stderr := captureCLI(t, []string{"run", path})
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if stdout != "" {
		t.Fatalf("nothing should run on a parse error, got %q", stdout)
	}
	got := strings.Split(strings.TrimSpace(stderr), "\n")
	if len(got) != 2 {
		t.Fatalf("expected 2 diagnostics, got %q", got)
	}
	if want := path + ":1:9 expected expression, found ';'"; got[0] != want {
		t.Fatalf("first diagnostic = %q, want %q", got[0], want)
	}
	if !strings.HasPrefix(got[1], path+":") || !strings.HasSuffix(got[1], "expected ';' after definition, found end of file") {
		t.Fatalf("second diagnostic = %q", got[1])
	}
}

func TestRunMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.rv")
	code, _, stderr := captureCLI(t, []string{"run", path})
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(stderr, "driver: read "+path) {
		t.Fatalf("unexpected stderr %q", stderr)
	}
}

func TestRunRequiresSingleArgument(t *testing.T) {
	code, _, stderr := captureCLI(t, []string{"run"})
	if code != 1 || !strings.Contains(stderr, "missing source file argument") {
		t.Fatalf("code=%d stderr=%q", code, stderr)
	}
	code, _, stderr = captureCLI(t, []string{"run", "a.rv", "b.rv"})
	if code != 1 || !strings.Contains(stderr, "unexpected arguments: [b.rv]") {
		t.Fatalf("code=%d stderr=%q", code, stderr)
	}
}

func TestRuntimeErrorsAreLenientByDefault(t *testing.T) {
	path := writeSource(t, t.TempDir(), `printf("a"); missing; printf("b");`)
	code, stdout, stderr := captureCLI(t, []string{path})
	if code != 0 {
		t.Fatalf("exit code %d", code)
	}
	if stdout != "ab" {
		t.Fatalf("stdout = %q", stdout)
	}
	if stderr != "runtime error: 1:14: undefined variable 'missing'\n" {
		t.Fatalf("stderr = %q", stderr)
	}
}

func TestStrictFlagHaltsOnRuntimeError(t *testing.T) {
	path := writeSource(t, t.TempDir(), `printf("a"); missing; printf("b");`)
	for _, args := range [][]string{{"--strict", path}, {"run", "--strict", path}} {
		code, stdout, stderr := captureCLI(t, args)
		if code != 1 {
			t.Fatalf("%v: expected exit code 1, got %d", args, code)
		}
		if stdout != "a" {
			t.Fatalf("%v: stdout = %q", args, stdout)
		}
		if stderr != "runtime error: 1:14: undefined variable 'missing'\n" {
			t.Fatalf("%v: stderr = %q", args, stderr)
		}
	}
}

func TestConfigFileIsFoundNextToSource(t *testing.T) {
	root := t.TempDir()
	writeConfigFile(t, root, "strict: true\n")
	sub := filepath.Join(root, "src")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	path := writeSource(t, sub, `missing; printf("after");`)
	code, stdout, _ := captureCLI(t, []string{path})
	if code != 1 || stdout != "" {
		t.Fatalf("strict config not applied: code=%d stdout=%q", code, stdout)
	}
}

func TestExplicitConfigFlag(t *testing.T) {
	cfgDir := t.TempDir()
	cfgPath := writeConfigFile(t, cfgDir, "float_comparison_scale: 10\n")
	path := writeSource(t, t.TempDir(), `if (0.5 < 1.0) { printf("1"); } else { printf("0"); }`)

	code, stdout, stderr := captureCLI(t, []string{"--config", cfgPath, path})
	if code != 0 || stdout != "0" {
		t.Fatalf("scaled comparison: code=%d stdout=%q stderr=%q", code, stdout, stderr)
	}
	code, stdout, _ = captureCLI(t, []string{"--config", cfgPath, "--float-scale", "0", path})
	if code != 0 || stdout != "1" {
		t.Fatalf("flag should override config: code=%d stdout=%q", code, stdout)
	}
}

func TestInvalidConfigFails(t *testing.T) {
	root := t.TempDir()
	writeConfigFile(t, root, "color: purple\n")
	path := writeSource(t, root, `printf("x");`)
	code, stdout, stderr := captureCLI(t, []string{path})
	if code != 1 || stdout != "" {
		t.Fatalf("code=%d stdout=%q", code, stdout)
	}
	if !strings.Contains(stderr, "failed to load config: config validation failed") {
		t.Fatalf("unexpected stderr %q", stderr)
	}
}

func TestCheckCommand(t *testing.T) {
	dir := t.TempDir()
	good := writeSource(t, dir, `missing;`)
	code, stdout, _ := captureCLI(t, []string{"check", good})
	if code != 0 || stdout != "ok\n" {
		t.Fatalf("check good: code=%d stdout=%q", code, stdout)
	}

	bad := filepath.Join(dir, "bad.rv")
	writeFile(t, bad, `const c;`)
	code, stdout, stderr := captureCLI(t, []string{"check", bad})
	if code != 1 || stdout != "" {
		t.Fatalf("check bad: code=%d stdout=%q", code, stdout)
	}
	if !strings.Contains(stderr, bad+":1:8 expected '=' after constant name, found ';'") {
		t.Fatalf("unexpected stderr %q", stderr)
	}
}

func TestNoArgumentsWithoutTerminalPrintsUsage(t *testing.T) {
	prev := stdinIsTerminal
	stdinIsTerminal = func() bool { return false }
	t.Cleanup(func() { stdinIsTerminal = prev })

	code, stdout, _ := captureCLI(t, nil)
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(stdout, "USAGE:") {
		t.Fatalf("expected usage text, got %q", stdout)
	}
}

func TestVersionFlag(t *testing.T) {
	code, stdout, _ := captureCLI(t, []string{"--version"})
	if code != 0 {
		t.Fatalf("exit code %d", code)
	}
	if !strings.Contains(stdout, cliToolVersion) {
		t.Fatalf("stdout = %q", stdout)
	}
}

func writeSource(t *testing.T, dir, contents string) string {
	t.Helper()
	path := filepath.Join(dir, "main.rv")
	writeFile(t, path, contents)
	return path
}

func writeConfigFile(t *testing.T, dir, contents string) string {
	t.Helper()
	path := filepath.Join(dir, "rover.yml")
	writeFile(t, path, contents)
	return path
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(strings.TrimSpace(contents)+"\n"), 0o644); err != nil {
		t.Fatalf("write file %s: %v", path, err)
	}
}

func captureCLI(t *testing.T, args []string) (int, string, string) {
	t.Helper()

	stdout := os.Stdout
	stderr := os.Stderr

	rOut, wOut, err := os.Pipe()
	if err != nil {
		t.Fatalf("stdout pipe: %v", err)
	}
	rErr, wErr, err := os.Pipe()
	if err != nil {
		t.Fatalf("stderr pipe: %v", err)
	}

	os.Stdout = wOut
	os.Stderr = wErr

	code := run(args)

	if err := wOut.Close(); err != nil {
		t.Fatalf("stdout close: %v", err)
	}
	if err := wErr.Close(); err != nil {
		t.Fatalf("stderr close: %v", err)
	}

	os.Stdout = stdout
	os.Stderr = stderr

	outBytes, err := io.ReadAll(rOut)
	if err != nil {
		t.Fatalf("stdout read: %v", err)
	}
	errBytes, err := io.ReadAll(rErr)
	if err != nil {
		t.Fatalf("stderr read: %v", err)
	}

	if err := rOut.Close(); err != nil {
		t.Fatalf("stdout pipe close: %v", err)
	}
	if err := rErr.Close(); err != nil {
		t.Fatalf("stderr pipe close: %v", err)
	}

	return code, string(outBytes), string(errBytes)
}
