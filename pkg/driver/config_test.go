package driver

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigBasic(t *testing.T) {
	path := writeConfig(t, `
strict: true
float_comparison_scale: 1000
color: Never
history_file: /tmp/rover-history
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if !cfg.Strict {
		t.Fatalf("Strict = false, want true")
	}
	if cfg.FloatComparisonScale != 1000 {
		t.Fatalf("FloatComparisonScale = %v, want 1000", cfg.FloatComparisonScale)
	}
	if cfg.Color != ColorNever {
		t.Fatalf("Color = %q, want never", cfg.Color)
	}
	if cfg.HistoryFile != "/tmp/rover-history" {
		t.Fatalf("HistoryFile = %q", cfg.HistoryFile)
	}
	if cfg.Path != path {
		t.Fatalf("Path = %q, want %q", cfg.Path, path)
	}
}

func TestLoadConfigEmptyUsesDefaults(t *testing.T) {
	path := writeConfig(t, "")
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	def := DefaultConfig()
	if cfg.Strict != def.Strict || cfg.Color != def.Color || cfg.HistoryFile != def.HistoryFile || cfg.FloatComparisonScale != 0 {
		t.Fatalf("unexpected defaults: %#v", cfg)
	}
}

func TestLoadConfigRejectsUnknownFields(t *testing.T) {
	path := writeConfig(t, "stict: true\n")
	_, err := LoadConfig(path)
	if err == nil {
		t.Fatalf("expected error for unknown field")
	}
	if !strings.Contains(err.Error(), "stict") {
		t.Fatalf("error should name the field, got %v", err)
	}
}

func TestLoadConfigValidationAggregates(t *testing.T) {
	path := writeConfig(t, `
color: sometimes
float_comparison_scale: .inf
`)
	_, err := LoadConfig(path)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if len(verr.Issues) != 2 {
		t.Fatalf("expected 2 issues, got %v", verr.Issues)
	}
	msg := verr.Error()
	if !strings.HasPrefix(msg, "config validation failed for "+path+":") || !strings.Contains(msg, `(got "sometimes")`) {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), ConfigFileName))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestFindConfigWalksUpwards(t *testing.T) {
	root := t.TempDir()
	want := filepath.Join(root, ConfigFileName)
	writeFile(t, want, "strict: true\n")
	child := filepath.Join(root, "src", "nested")
	if err := os.MkdirAll(child, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	entry := filepath.Join(child, "main.rv")
	writeFile(t, entry, "var x = 1;\n")

	for _, start := range []string{child, entry} {
		got, err := FindConfig(start)
		if err != nil {
			t.Fatalf("FindConfig(%s) returned error: %v", start, err)
		}
		if got != want {
			t.Fatalf("FindConfig(%s) = %q, want %q", start, got, want)
		}
	}
}

func TestResolveConfigWithoutFile(t *testing.T) {
	// TempDir lives under the system temp root, which has no rover.yml.
	cfg, err := ResolveConfig("", t.TempDir())
	if err != nil {
		t.Fatalf("ResolveConfig returned error: %v", err)
	}
	if cfg.Path != "" || cfg.Color != ColorAuto {
		t.Fatalf("expected defaults, got %#v", cfg)
	}
}

func TestResolveConfigExplicitPath(t *testing.T) {
	path := writeConfig(t, "strict: true\n")
	cfg, err := ResolveConfig(path, "/")
	if err != nil {
		t.Fatalf("ResolveConfig returned error: %v", err)
	}
	if !cfg.Strict {
		t.Fatalf("explicit config not used: %#v", cfg)
	}
}

func TestHistoryPathExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := DefaultConfig()
	got, err := cfg.HistoryPath()
	if err != nil {
		t.Fatalf("HistoryPath error: %v", err)
	}
	if want := filepath.Join(home, ".rover_history"); got != want {
		t.Fatalf("HistoryPath = %q, want %q", got, want)
	}

	cfg.HistoryFile = ""
	if got, _ := cfg.HistoryPath(); got != "" {
		t.Fatalf("empty history_file should disable history, got %q", got)
	}
}

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ConfigFileName)
	if err := os.WriteFile(path, []byte(strings.TrimSpace(contents)+"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write file %s: %v", path, err)
	}
}
