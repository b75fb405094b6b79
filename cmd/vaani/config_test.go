package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/oukeidos/vaani/internal/config"
)

func TestConfigInitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vaani", "config.yaml")

	out, err := executeCommand(t, "--config", path, "config", "init")
	if err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if !strings.Contains(out, "Wrote "+path) {
		t.Fatalf("unexpected output: %s", out)
	}
	if err := os.WriteFile(path, []byte("language: tamil\nsearch:\n  max_results: 4\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err = executeCommand(t, "--config", path, "config", "show")
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	var cfg config.Config
	if err := yaml.Unmarshal([]byte(out), &cfg); err != nil {
		t.Fatalf("show output is not YAML: %v\n%s", err, out)
	}
	if cfg.Language != "ta-IN" || cfg.Search.MaxResults != 4 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestConfigInit_KeepsExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("language: ta-IN\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := executeCommand(t, "--config", path, "config", "init"); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "language: ta-IN\n" {
		t.Fatalf("existing config overwritten: %q", data)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 2 {
		t.Fatalf("expected a sibling file, got %d entries", len(entries))
	}
}

func TestExplicitMissingConfigFails(t *testing.T) {
	withFakeServices(t)
	_, err := executeCommand(t, "--config", filepath.Join(t.TempDir(), "nope.yaml"), "ask", "q")
	if err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}
