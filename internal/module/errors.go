package module

import "errors"

// Module system errors. All load/unload failures are matched with errors.Is
// so callers can distinguish expected outcomes (a module declining to load)
// from author bugs (a setup hook breaking its contract).
var (
	// ErrAlreadyLoaded is returned when loading a module that is already
	// registered. Reloading is rejected, not merged.
	ErrAlreadyLoaded = errors.New("module is already loaded")

	// ErrNotFound is returned when no source can resolve a module name.
	ErrNotFound = errors.New("module not found")

	// ErrSetupContract is returned when a setup hook is missing or returns
	// nil. This is an author bug, distinct from a deliberate decline.
	ErrSetupContract = errors.New("module setup returned no result")

	// ErrDeclined is returned when a setup hook reports success=false.
	// This is a normal outcome, not an error condition worth alarming on.
	ErrDeclined = errors.New("module declined to load")

	// ErrDependencyFailed is returned when a required dependency could not
	// be loaded. The requesting module is rolled back.
	ErrDependencyFailed = errors.New("module dependency failed to load")

	// ErrNotLoaded is returned by unload and the accessors when the named
	// module is not registered.
	ErrNotLoaded = errors.New("module is not loaded")

	// ErrRemoteFetch is returned by RemoteSource: fetching modules from a
	// remote source is not implemented.
	ErrRemoteFetch = errors.New("remote module fetch is not implemented")
)
