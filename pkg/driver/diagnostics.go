package driver

import (
	"fmt"
	"strings"

	"rover/interpreter-go/pkg/parser"
)

// ParseError reports every syntax error found in one source file.
type ParseError struct {
	Path        string
	Diagnostics []parser.Diagnostic
}

func (e *ParseError) Error() string {
	lines := DescribeDiagnostics(e.Path, e.Diagnostics)
	if len(lines) == 0 {
		return fmt.Sprintf("%s: syntax error", e.Path)
	}
	return strings.Join(lines, "\n")
}

// DescribeDiagnostics formats each diagnostic as "path:line:col message".
func DescribeDiagnostics(path string, diags []parser.Diagnostic) []string {
	out := make([]string, 0, len(diags))
	for _, diag := range diags {
		out = append(out, DescribeDiagnostic(path, diag))
	}
	return out
}

// DescribeDiagnostic formats a single parser diagnostic for CLI output.
func DescribeDiagnostic(path string, diag parser.Diagnostic) string {
	message := strings.TrimSpace(diag.Message)
	location := formatLocation(path, diag.Line, diag.Column)
	if location == "" {
		return message
	}
	return location + " " + message
}

func formatLocation(path string, line, column int) string {
	path = strings.TrimSpace(path)
	switch {
	case path != "" && line > 0 && column > 0:
		return fmt.Sprintf("%s:%d:%d", path, line, column)
	case path != "" && line > 0:
		return fmt.Sprintf("%s:%d", path, line)
	case path != "":
		return path
	case line > 0 && column > 0:
		return fmt.Sprintf("%d:%d", line, column)
	default:
		return ""
	}
}
