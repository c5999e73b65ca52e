package luamod

import "errors"

// Lua source errors.
var (
	// ErrBadModule is returned when a module file does not evaluate to a
	// Lua table.
	ErrBadModule = errors.New("lua module file must return a table")
)
