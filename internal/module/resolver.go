package module

import (
	"fmt"

	"github.com/dshills/modkit/internal/log"
)

// Source resolves a module name to a descriptor. Implementations locate
// modules on disk, in memory, or anywhere else; the resolver does not care.
type Source interface {
	Resolve(name string) (*Descriptor, error)
}

// ConfigSource supplies per-module configuration overrides. The returned map
// must structurally match the module's Config.Public shape; no schema
// validation is performed. A nil return means no overrides.
type ConfigSource interface {
	Overrides(name string) map[string]any
}

// RemoteSource is a placeholder for fetching modules from a remote source.
// It satisfies Source and always fails.
type RemoteSource struct{}

// Resolve always returns ErrRemoteFetch.
func (RemoteSource) Resolve(name string) (*Descriptor, error) {
	return nil, fmt.Errorf("%w: %s", ErrRemoteFetch, name)
}

// Resolver loads modules into a registry, resolving declared dependencies
// transitively before activating the requester.
//
// Resolution is single-threaded and synchronous. Recursion into dependencies
// is the only nested control flow and terminates via the already-loaded
// short-circuit: a module is registered before its dependencies resolve, so
// a cycle (A requires B requires A) sees A present and skips re-entry.
type Resolver struct {
	registry *Registry
	source   Source
	configs  ConfigSource
	logger   *log.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithSource sets the module source locator.
func WithSource(s Source) ResolverOption {
	return func(r *Resolver) {
		r.source = s
	}
}

// WithConfigSource sets the configuration override supplier.
func WithConfigSource(cs ConfigSource) ResolverOption {
	return func(r *Resolver) {
		r.configs = cs
	}
}

// WithLogger sets the logging sink.
func WithLogger(l *log.Logger) ResolverOption {
	return func(r *Resolver) {
		r.logger = l
	}
}

// NewResolver creates a resolver with a fresh registry.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{
		registry: NewRegistry(),
		logger:   log.Discard,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Registry returns the resolver's registry.
func (r *Resolver) Registry() *Registry {
	return r.registry
}

// Load resolves name to a descriptor via the source locator, merges any
// configuration overrides from the ConfigSource into it, and loads it.
// Loading an already-loaded name is rejected, not merged.
func (r *Resolver) Load(name string) error {
	return r.LoadWithOverrides(name, nil)
}

// LoadWithOverrides is Load with caller-supplied configuration overrides,
// merged after (and therefore over) any ConfigSource overrides.
func (r *Resolver) LoadWithOverrides(name string, overrides map[string]any) error {
	if r.registry.IsLoaded(name) {
		r.logger.Warn("module %q is already loaded", name)
		return fmt.Errorf("module %q: %w", name, ErrAlreadyLoaded)
	}

	if r.source == nil {
		r.logger.Warn("no module source configured, cannot resolve %q", name)
		return fmt.Errorf("module %q: %w", name, ErrNotFound)
	}

	desc, err := r.source.Resolve(name)
	if err != nil {
		r.logger.Warn("could not resolve module %q: %v", name, err)
		return fmt.Errorf("module %q: %w", name, err)
	}

	if r.configs != nil {
		if ov := r.configs.Overrides(name); len(ov) > 0 {
			desc.Config.Public = MergeOverrides(desc.Config.Public, ov)
			r.logger.Trace("merged %d config override(s) into %q", len(ov), name)
		}
	}

	if len(overrides) > 0 {
		desc.Config.Public = MergeOverrides(desc.Config.Public, overrides)
	}

	return r.LoadDescriptor(desc)
}

// LoadDescriptor loads a module from an in-memory descriptor:
//
//  1. Reject if the name is already registered.
//  2. Run the setup hook. A missing hook or nil result is a contract
//     violation; success=false is a normal decline.
//  3. Register the descriptor before recursing into dependencies, so that
//     cyclic and diamond graphs short-circuit on the already-loaded check.
//  4. Load each required dependency, wiring its public table into
//     Required. A dependency failure rolls the registration back.
//  5. Commit the entry and run the load hook.
//
// An error escaping the load hook propagates to the caller with the module
// still registered. This mirrors the behavior of the system this was built
// from: by the time load runs the module is already marked loaded, and the
// hook's failure is treated as fatal rather than recoverable.
func (r *Resolver) LoadDescriptor(d *Descriptor) error {
	if r.registry.IsLoaded(d.Name) {
		r.logger.Warn("module %q is already loaded", d.Name)
		return fmt.Errorf("module %q: %w", d.Name, ErrAlreadyLoaded)
	}

	if d.Setup == nil {
		r.logger.Error("module %q has no setup hook", d.Name)
		return fmt.Errorf("module %q: %w", d.Name, ErrSetupContract)
	}

	result := d.Setup()
	if result == nil {
		r.logger.Error("module %q setup returned no result", d.Name)
		return fmt.Errorf("module %q: %w", d.Name, ErrSetupContract)
	}

	if !result.Success {
		r.logger.Info("module %q declined to load", d.Name)
		return fmt.Errorf("module %q: %w", d.Name, ErrDeclined)
	}

	d.ensureTables()

	// Register before recursing. A dependency cycle back to this module
	// must see it present and skip re-entry.
	r.registry.Insert(d.Name, d)

	for _, dep := range result.Requires {
		if !r.registry.IsLoaded(dep) {
			r.logger.Trace("module %q requires %q, loading", d.Name, dep)
			if err := r.Load(dep); err != nil {
				r.registry.Remove(d.Name)
				r.logger.Error("module %q failed: dependency %q did not load: %v", d.Name, dep, err)
				return fmt.Errorf("module %q requires %q: %w", d.Name, dep, ErrDependencyFailed)
			}
		}
		// A source may hand back a descriptor whose declared name differs
		// from the name it was asked for; it then registers under its own
		// name and the requested one stays absent.
		depDesc, ok := r.registry.Get(dep)
		if !ok {
			r.registry.Remove(d.Name)
			r.logger.Error("module %q failed: dependency %q registered under a different name", d.Name, dep)
			return fmt.Errorf("module %q requires %q: %w", d.Name, dep, ErrDependencyFailed)
		}
		d.Required[dep] = depDesc.Public
	}

	r.registry.Commit(d.Name)

	if d.Load != nil {
		if err := d.Load(); err != nil {
			return fmt.Errorf("module %q load hook: %w", d.Name, err)
		}
	}

	r.logger.Debug("module %q loaded", d.Name)
	return nil
}

// Unload runs a module's teardown hook and removes it from the registry.
//
// Dependents are not notified: any Required entries pointing at the unloaded
// module's public table keep their references. This is a known limitation,
// not an oversight to silently repair.
func (r *Resolver) Unload(name string) error {
	d, ok := r.registry.Get(name)
	if !ok {
		r.logger.Info("module %q is not loaded, nothing to unload", name)
		return fmt.Errorf("module %q: %w", name, ErrNotLoaded)
	}

	if d.Unload != nil {
		if err := d.Unload(); err != nil {
			// Teardown already half-ran; removal proceeds regardless.
			r.logger.Warn("module %q unload hook failed: %v", name, err)
		}
	}

	r.registry.Remove(name)
	r.logger.Debug("module %q unloaded", name)
	return nil
}

// IsLoaded reports whether name is registered.
func (r *Resolver) IsLoaded(name string) bool {
	return r.registry.IsLoaded(name)
}

// Public returns the public table of a loaded module. The returned map is
// the shared instance, not a copy.
func (r *Resolver) Public(name string) (map[string]any, bool) {
	d, ok := r.registry.Get(name)
	if !ok {
		r.logger.Info("module %q is not loaded, no public interface", name)
		return nil, false
	}
	return d.Public, true
}

// Config returns the public configuration of a loaded module. The returned
// map is the shared instance, not a copy.
func (r *Resolver) Config(name string) (map[string]any, bool) {
	d, ok := r.registry.Get(name)
	if !ok {
		r.logger.Info("module %q is not loaded, no config", name)
		return nil, false
	}
	return d.Config.Public, true
}

// UnloadAll unloads every registered module in reverse insertion order.
func (r *Resolver) UnloadAll() {
	names := r.registry.Names()
	for i := len(names) - 1; i >= 0; i-- {
		_ = r.Unload(names[i])
	}
}
