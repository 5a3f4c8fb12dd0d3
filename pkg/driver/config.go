package driver

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the file FindConfig searches for.
const ConfigFileName = "rover.yml"

// ErrConfigNotFound is returned by FindConfig when no rover.yml exists in
// the start directory or any of its parents.
var ErrConfigNotFound = errors.New("rover.yml not found")

// ColorMode selects when CLI diagnostics are colorized.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// IsValid reports whether the mode is one of the known values.
func (m ColorMode) IsValid() bool {
	switch m {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}

// Config is the parsed contents of rover.yml.
type Config struct {
	Path                 string
	Strict               bool
	FloatComparisonScale float64
	Color                ColorMode
	HistoryFile          string
}

// DefaultConfig returns the settings used when no rover.yml is present.
func DefaultConfig() *Config {
	return &Config{Color: ColorAuto, HistoryFile: "~/.rover_history"}
}

// ValidationError aggregates configuration validation failures.
type ValidationError struct {
	Path   string
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed")
	if e.Path != "" {
		b.WriteString(" for ")
		b.WriteString(e.Path)
	}
	b.WriteString(":")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

type configFile struct {
	Strict               *bool    `yaml:"strict"`
	FloatComparisonScale *float64 `yaml:"float_comparison_scale"`
	Color                string   `yaml:"color"`
	HistoryFile          *string  `yaml:"history_file"`
}

// LoadConfig parses rover.yml from disk. An empty file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()
	return decodeConfig(file, absPath)
}

func decodeConfig(r io.Reader, path string) (*Config, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var raw configFile
	if err := decoder.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg := DefaultConfig()
	cfg.Path = path
	if raw.Strict != nil {
		cfg.Strict = *raw.Strict
	}
	if raw.FloatComparisonScale != nil {
		cfg.FloatComparisonScale = *raw.FloatComparisonScale
	}
	if raw.Color != "" {
		cfg.Color = ColorMode(strings.ToLower(strings.TrimSpace(raw.Color)))
	}
	if raw.HistoryFile != nil {
		cfg.HistoryFile = strings.TrimSpace(*raw.HistoryFile)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	errs := ValidationError{Path: c.Path}
	if !c.Color.IsValid() {
		errs.Issues = append(errs.Issues, fmt.Sprintf("color must be one of auto, always, never (got %q)", string(c.Color)))
	}
	if math.IsNaN(c.FloatComparisonScale) || math.IsInf(c.FloatComparisonScale, 0) {
		errs.Issues = append(errs.Issues, "float_comparison_scale must be a finite number")
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// FindConfig walks from start (a directory or a file inside one) towards
// the filesystem root and returns the first rover.yml it finds.
func FindConfig(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("config: resolve start directory %q: %w", start, err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	origin := dir
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s found from %s upwards: %w", ConfigFileName, origin, ErrConfigNotFound)
		}
		dir = parent
	}
}

// ResolveConfig loads an explicit config path, or else the nearest rover.yml
// above start. A missing file is not an error; the defaults are returned.
func ResolveConfig(explicit, start string) (*Config, error) {
	if explicit != "" {
		return LoadConfig(explicit)
	}
	path, err := FindConfig(start)
	if err != nil {
		if errors.Is(err, ErrConfigNotFound) {
			return DefaultConfig(), nil
		}
		return nil, err
	}
	return LoadConfig(path)
}

// HistoryPath expands a leading ~ in the configured history file. An empty
// setting disables history and returns "".
func (c *Config) HistoryPath() (string, error) {
	path := c.HistoryFile
	if path == "" {
		return "", nil
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("config: resolve user home: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path, nil
}
