package modconf

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testDoc = `{
	"core.ui": { "width": 120, "theme": { "bg": "blue" } },
	"core.log": { "level": "debug" },
	"weird": "not an object"
}`

func TestNewInvalidJSON(t *testing.T) {
	if _, err := New([]byte(`{"broken`)); err == nil {
		t.Error("New() accepted invalid JSON")
	}
}

func TestNewEmpty(t *testing.T) {
	o, err := New(nil)
	if err != nil {
		t.Fatalf("New(nil) error = %v", err)
	}
	if got := o.Overrides("anything"); got != nil {
		t.Errorf("Overrides() on empty doc = %v, want nil", got)
	}
}

func TestOverridesLookup(t *testing.T) {
	o, err := New([]byte(testDoc))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	// Dotted module names are single keys, not paths.
	got := o.Overrides("core.ui")
	if got == nil {
		t.Fatal("Overrides(core.ui) = nil")
	}
	if got["width"] != float64(120) {
		t.Errorf("width = %v, want 120", got["width"])
	}
	theme, ok := got["theme"].(map[string]any)
	if !ok || theme["bg"] != "blue" {
		t.Errorf("theme = %v, want nested object", got["theme"])
	}

	if got := o.Overrides("missing"); got != nil {
		t.Errorf("Overrides(missing) = %v, want nil", got)
	}
}

func TestOverridesNonObject(t *testing.T) {
	o, err := New([]byte(testDoc))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if got := o.Overrides("weird"); got != nil {
		t.Errorf("Overrides(weird) = %v, want nil for non-object", got)
	}
}

func TestSet(t *testing.T) {
	o, err := New(nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := o.Set("core.ui", "width", 100); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := o.Set("core.ui", "theme.bg", "green"); err != nil {
		t.Fatalf("Set() nested error = %v", err)
	}

	got := o.Overrides("core.ui")
	if got == nil {
		t.Fatal("Overrides() = nil after Set")
	}
	if got["width"] != float64(100) {
		t.Errorf("width = %v, want 100", got["width"])
	}
	theme, ok := got["theme"].(map[string]any)
	if !ok || theme["bg"] != "green" {
		t.Errorf("theme = %v, want nested set to apply", got["theme"])
	}
}

func TestDelete(t *testing.T) {
	o, err := New([]byte(testDoc))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if !o.Delete("core.log") {
		t.Error("Delete() = false for existing module")
	}
	if o.Overrides("core.log") != nil {
		t.Error("Overrides() still returns deleted module")
	}
	if o.Delete("core.log") {
		t.Error("Delete() = true for already-deleted module")
	}
	// Other modules untouched
	if o.Overrides("core.ui") == nil {
		t.Error("Delete() removed an unrelated module")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "overrides.json")
	if err := os.WriteFile(path, []byte(testDoc), 0o644); err != nil {
		t.Fatal(err)
	}

	o, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if o.Overrides("core.log") == nil {
		t.Error("Overrides(core.log) = nil after LoadFile")
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("LoadFile() on missing file succeeded")
	}
}

func TestPretty(t *testing.T) {
	o, err := New([]byte(`{"core.ui":{"width":120}}`))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	out := string(o.Pretty())
	if !strings.Contains(out, "\n") {
		t.Error("Pretty() output is not formatted")
	}
	if !strings.Contains(out, `"core.ui"`) {
		t.Errorf("Pretty() output missing content: %s", out)
	}
}
