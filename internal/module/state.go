package module

// State represents the registry state of a module entry.
type State int

// Module entry states.
const (
	// StateResolving - the module is registered but its dependencies are
	// still being resolved. Entries in this state exist so that cyclic
	// dependency graphs short-circuit instead of recursing forever.
	StateResolving State = iota

	// StateLoaded - the module and all of its dependencies resolved.
	StateLoaded
)

// String returns a string representation of the state.
func (s State) String() string {
	switch s {
	case StateResolving:
		return "resolving"
	case StateLoaded:
		return "loaded"
	default:
		return "unknown"
	}
}
