package luamod

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/modkit/internal/log"
	"github.com/dshills/modkit/internal/module"
	lua "github.com/yuin/gopher-lua"
)

// Source locates module descriptors in Lua files on disk.
//
// A dotted module name maps to file candidates under each search path, in
// order: "core.ui" tries core/ui.lua, core.ui.lua, then core/ui/init.lua.
// The first path that yields a file wins.
//
// All modules from one Source share a single Lua state. gopher-lua states
// are not goroutine-safe, which matches the module system's single-threaded
// execution model.
type Source struct {
	paths  []string
	state  *lua.LState
	bridge *Bridge
	logger *log.Logger
}

// SourceOption configures a Source.
type SourceOption func(*Source)

// WithPaths sets the module search paths.
func WithPaths(paths ...string) SourceOption {
	return func(s *Source) {
		s.paths = paths
	}
}

// WithSourceLogger sets the logging sink.
func WithSourceLogger(l *log.Logger) SourceOption {
	return func(s *Source) {
		s.logger = l
	}
}

// NewSource creates a Lua-backed module source.
func NewSource(opts ...SourceOption) *Source {
	L := lua.NewState()
	s := &Source{
		state:  L,
		bridge: NewBridge(L),
		logger: log.Discard,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Close releases the underlying Lua state. Hooks of descriptors produced by
// this source must not be called after Close.
func (s *Source) Close() {
	s.state.Close()
}

// AddPath appends a search path.
func (s *Source) AddPath(path string) {
	s.paths = append(s.paths, path)
}

// Paths returns the configured search paths.
func (s *Source) Paths() []string {
	return s.paths
}

// Resolve locates name, evaluates its file, and decodes the returned table
// into a descriptor.
func (s *Source) Resolve(name string) (*module.Descriptor, error) {
	path, ok := s.findFile(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", module.ErrNotFound, name)
	}

	s.logger.Trace("module %q resolved to %s", name, path)

	tbl, err := s.evalFile(path)
	if err != nil {
		return nil, fmt.Errorf("module %q: %w", name, err)
	}

	return s.decode(name, tbl), nil
}

// findFile probes the search paths for a file backing name.
func (s *Source) findFile(name string) (string, bool) {
	nested := filepath.FromSlash(strings.ReplaceAll(name, ".", "/"))

	for _, base := range s.paths {
		candidates := []string{
			filepath.Join(base, nested+".lua"),
			filepath.Join(base, name+".lua"),
			filepath.Join(base, nested, "init.lua"),
		}
		for _, candidate := range candidates {
			if stat, err := os.Stat(candidate); err == nil && !stat.IsDir() {
				return candidate, true
			}
		}
	}

	return "", false
}

// evalFile runs a module file and returns the table it returns.
func (s *Source) evalFile(path string) (*lua.LTable, error) {
	fn, err := s.state.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse module file: %w", err)
	}

	s.state.Push(fn)
	if err := s.state.PCall(0, 1, nil); err != nil {
		return nil, fmt.Errorf("failed to evaluate module file: %w", err)
	}

	ret := s.state.Get(-1)
	s.state.Pop(1)

	tbl, ok := ret.(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("%w (got %s)", ErrBadModule, ret.Type())
	}

	return tbl, nil
}
