package module

// Registry tracks loaded modules by name. It is an explicit object owned by
// its resolver rather than process-global state, so independent registries
// can coexist (one per test case, one per application root).
//
// The registry is not safe for concurrent use. Module resolution is
// single-threaded and re-entrant by design; if a caller introduces
// concurrency, every mutation must be serialized behind a single lock and
// the insert-before-recurse ordering in the resolver must stay atomic
// relative to concurrent loads of the same name.
type Registry struct {
	// Entries by module name
	entries map[string]*entry

	// Insertion order (for deterministic iteration)
	order []string

	// Count of fully loaded modules. Matches the number of StateLoaded
	// entries at all times; entries still resolving are not counted.
	loadedCount int
}

// entry pairs a descriptor with its registry state.
type entry struct {
	desc  *Descriptor
	state State
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*entry),
	}
}

// Get returns the descriptor registered under name.
func (r *Registry) Get(name string) (*Descriptor, bool) {
	e, ok := r.entries[name]
	if !ok {
		return nil, false
	}
	return e.desc, true
}

// IsLoaded reports whether name is registered. Entries still resolving
// count as loaded: that is what breaks cyclic dependency graphs, because a
// recursive load of an in-flight module sees it present and skips re-entry.
func (r *Registry) IsLoaded(name string) bool {
	_, ok := r.entries[name]
	return ok
}

// State returns the registry state of name.
func (r *Registry) State(name string) (State, bool) {
	e, ok := r.entries[name]
	if !ok {
		return 0, false
	}
	return e.state, true
}

// Insert registers a descriptor in the resolving state. The loaded count is
// not touched until the entry is committed.
func (r *Registry) Insert(name string, d *Descriptor) {
	if _, exists := r.entries[name]; exists {
		return
	}
	r.entries[name] = &entry{desc: d, state: StateResolving}
	r.order = append(r.order, name)
}

// Commit marks a resolving entry as loaded and increments the loaded count.
func (r *Registry) Commit(name string) {
	e, ok := r.entries[name]
	if !ok || e.state == StateLoaded {
		return
	}
	e.state = StateLoaded
	r.loadedCount++
}

// Remove deletes the entry for name. The loaded count is decremented only
// for committed entries, so rolling back a resolving entry never skews it.
func (r *Registry) Remove(name string) {
	e, ok := r.entries[name]
	if !ok {
		return
	}
	if e.state == StateLoaded {
		r.loadedCount--
	}
	delete(r.entries, name)
	r.removeFromOrder(name)
}

// Count returns the number of fully loaded modules.
func (r *Registry) Count() int {
	return r.loadedCount
}

// Names returns registered module names in insertion order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// removeFromOrder removes a name from the insertion order slice.
func (r *Registry) removeFromOrder(name string) {
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			return
		}
	}
}
