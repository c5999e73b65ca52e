package module

// Func is a callable exposed through a module's public table. Arguments and
// results are dynamically typed because public tables are shared across
// modules that may be implemented in Go or in Lua.
type Func func(args ...any) ([]any, error)

// SetupResult is returned by a module's setup hook.
type SetupResult struct {
	// Success reports whether the module wants to be loaded. A false value
	// is a normal outcome (e.g. platform mismatch), not an error.
	Success bool

	// Requires lists the names of modules that must be loaded before this
	// module's load hook runs. Order is preserved.
	Requires []string
}

// Config holds a module's configuration split.
type Config struct {
	// Public is the user-overridable configuration. Override documents are
	// merged into it before setup runs; override values win on conflicting
	// keys and nested maps merge recursively.
	Public map[string]any
}

// Descriptor describes a loadable module: its identity, dependencies,
// lifecycle hooks, and the data it shares with dependents.
type Descriptor struct {
	// Name is the unique identifier. Dot-delimited paths (e.g. "core.ui")
	// are a namespacing convention, not enforced structurally.
	Name string

	// Dependencies are the declared dependency names, in declaration order.
	// The resolver acts on the Requires set returned by Setup; sources that
	// synthesize a setup hook derive it from this list.
	Dependencies []string

	// Setup produces the SetupResult. A nil Setup hook, or a Setup that
	// returns nil, is a contract violation by the module author.
	Setup func() *SetupResult

	// Load is the activation hook, invoked exactly once after all
	// dependencies have resolved. Optional.
	Load func() error

	// Unload is the teardown hook, invoked on explicit unload. Optional.
	Unload func() error

	// Public is the module's exposed interface, shared by reference with
	// every dependent. Never copied.
	Public map[string]any

	// Private is module-internal state. The resolver never touches it.
	Private map[string]any

	// Config is the module's configuration.
	Config Config

	// Required maps dependency name → that dependency's Public table.
	// Populated by the resolver; empty until dependencies resolve.
	Required map[string]map[string]any
}

// ensureTables initializes the maps a descriptor needs during resolution.
func (d *Descriptor) ensureTables() {
	if d.Public == nil {
		d.Public = make(map[string]any)
	}
	if d.Config.Public == nil {
		d.Config.Public = make(map[string]any)
	}
	if d.Required == nil {
		d.Required = make(map[string]map[string]any)
	}
}
