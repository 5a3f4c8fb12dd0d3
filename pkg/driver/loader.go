package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"rover/interpreter-go/pkg/ast"
	"rover/interpreter-go/pkg/parser"
)

// Source is a loaded rover program together with the text it came from.
type Source struct {
	Path    string
	Text    string
	Program *ast.Program
}

// LoadFile reads and parses a rover source file. Syntax errors are returned
// as a *ParseError carrying the file path.
func LoadFile(path string) (*Source, error) {
	if path == "" {
		return nil, fmt.Errorf("driver: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("driver: resolve %s: %w", path, err)
	}
	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("driver: read %s: %w", path, err)
	}
	return ParseSource(path, string(data))
}

// ParseSource parses text that was read from path. The path only labels
// diagnostics.
func ParseSource(path, text string) (*Source, error) {
	program, err := parser.Parse(text)
	if err != nil {
		var perr *parser.Error
		if errors.As(err, &perr) {
			return nil, &ParseError{Path: path, Diagnostics: perr.Diagnostics}
		}
		return nil, fmt.Errorf("driver: parse %s: %w", path, err)
	}
	return &Source{Path: path, Text: text, Program: program}, nil
}
