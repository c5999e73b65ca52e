// Package module implements a dependency-aware module manager: a registry
// of named modules loaded on demand, with transitive dependency resolution,
// shared public interfaces, per-module configuration, and clean unloading.
//
// # Lifecycle
//
// A module is described by a Descriptor. Loading runs its setup hook,
// registers the descriptor, recursively loads every dependency the setup
// result names, wires each dependency's public table into the requester's
// Required map, and finally runs the load hook. Registration happens before
// the dependency recursion so that cyclic graphs terminate: a cycle back to
// an in-flight module sees it already registered and skips re-entry.
//
// If a dependency fails to load, the requesting module is rolled back out
// of the registry; a module is never left half-activated with a missing
// dependency.
//
// # Sharing
//
// Public tables and public configuration are shared by reference. Two
// modules that both depend on "core.log" hold the same map instance, and
// mutations are visible to every holder. Unloading a module does not chase
// down dependents; their Required references simply go stale.
//
// # Concurrency
//
// The package is single-threaded by design. Nothing locks; see Registry's
// documentation for what a concurrent embedding would have to serialize.
//
// # Sources
//
// Descriptors come from a Source. The luamod subpackage provides a
// filesystem-backed source that reads module definitions from Lua files;
// in-memory descriptors can be loaded directly with LoadDescriptor.
package module
