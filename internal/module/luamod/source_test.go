package luamod

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/modkit/internal/module"
)

// writeModule writes a Lua module file, creating parent directories.
func writeModule(t *testing.T, path, code string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(code), 0o644); err != nil {
		t.Fatal(err)
	}
}

const minimalModule = `
local M = {}
function M.setup() return { success = true } end
return M
`

func TestSourceResolveNestedPath(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, filepath.Join(dir, "core", "ui.lua"), minimalModule)

	s := NewSource(WithPaths(dir))
	defer s.Close()

	d, err := s.Resolve("core.ui")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if d.Name != "core.ui" {
		t.Errorf("Name = %q, want %q", d.Name, "core.ui")
	}
}

func TestSourceResolveFlatFile(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, filepath.Join(dir, "core.ui.lua"), minimalModule)

	s := NewSource(WithPaths(dir))
	defer s.Close()

	if _, err := s.Resolve("core.ui"); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
}

func TestSourceResolveInitFile(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, filepath.Join(dir, "core", "ui", "init.lua"), minimalModule)

	s := NewSource(WithPaths(dir))
	defer s.Close()

	if _, err := s.Resolve("core.ui"); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
}

func TestSourceFirstPathWins(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writeModule(t, filepath.Join(first, "mod.lua"), `
local M = {}
M.name = "mod.first"
function M.setup() return { success = true } end
return M
`)
	writeModule(t, filepath.Join(second, "mod.lua"), `
local M = {}
M.name = "mod.second"
function M.setup() return { success = true } end
return M
`)

	s := NewSource(WithPaths(first, second))
	defer s.Close()

	d, err := s.Resolve("mod")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if d.Name != "mod.first" {
		t.Errorf("Name = %q, want the module from the first path", d.Name)
	}
}

func TestSourceResolveNotFound(t *testing.T) {
	s := NewSource(WithPaths(t.TempDir()))
	defer s.Close()

	_, err := s.Resolve("ghost")
	if !errors.Is(err, module.ErrNotFound) {
		t.Errorf("Resolve() error = %v, want ErrNotFound", err)
	}
}

func TestSourceResolveNonTable(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, filepath.Join(dir, "bad.lua"), `return 42`)

	s := NewSource(WithPaths(dir))
	defer s.Close()

	_, err := s.Resolve("bad")
	if !errors.Is(err, ErrBadModule) {
		t.Errorf("Resolve() error = %v, want ErrBadModule", err)
	}
}

func TestSourceResolveSyntaxError(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, filepath.Join(dir, "broken.lua"), `local M = {`)

	s := NewSource(WithPaths(dir))
	defer s.Close()

	if _, err := s.Resolve("broken"); err == nil {
		t.Error("Resolve() on unparsable file succeeded")
	}
}

func TestSourceAddPath(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, filepath.Join(dir, "mod.lua"), minimalModule)

	s := NewSource()
	defer s.Close()

	if _, err := s.Resolve("mod"); err == nil {
		t.Fatal("Resolve() succeeded with no paths configured")
	}

	s.AddPath(dir)
	if _, err := s.Resolve("mod"); err != nil {
		t.Errorf("Resolve() after AddPath error = %v", err)
	}
	if len(s.Paths()) != 1 {
		t.Errorf("Paths() has %d entries, want 1", len(s.Paths()))
	}
}
