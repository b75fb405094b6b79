package files

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteOutput(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	path := filepath.Join(dir, "report.json")

	got, err := WriteOutput(path, []byte("one"), false)
	if err != nil {
		t.Fatalf("WriteOutput: %v", err)
	}
	if got != path {
		t.Fatalf("path = %q, want %q", got, path)
	}

	second, err := WriteOutput(path, []byte("two"), false)
	if err != nil {
		t.Fatalf("WriteOutput: %v", err)
	}
	if second != filepath.Join(dir, "report_1.json") {
		t.Fatalf("expected sibling name, got %q", second)
	}
	if data, _ := os.ReadFile(path); string(data) != "one" {
		t.Fatalf("original overwritten: %q", data)
	}

	if _, err := WriteOutput(path, []byte("three"), true); err != nil {
		t.Fatalf("WriteOutput overwrite: %v", err)
	}
	if data, _ := os.ReadFile(path); string(data) != "three" {
		t.Fatalf("expected overwrite, got %q", data)
	}
	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".tmp" {
			t.Fatalf("temp file left behind: %s", e.Name())
		}
	}
}
