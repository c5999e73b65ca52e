// Package luamod provides a module.Source backed by Lua files.
//
// A module file returns a table:
//
//	local M = {}
//
//	M.name = "core.ui"
//	M.requires = { "core.log" }
//
//	M.public = {
//	    greet = function(who) return "hello " .. who end,
//	}
//
//	M.config = {
//	    public = { width = 80 },
//	}
//
//	function M.setup()
//	    return { success = true, requires = M.requires }
//	end
//
//	function M.load()
//	    M.required["core.log"].write("core.ui loaded")
//	end
//
//	function M.unload() end
//
//	return M
//
// Dotted module names map to files: "core.ui" is looked up as core/ui.lua,
// core.ui.lua, or core/ui/init.lua under each search path in order.
//
// Hooks and public functions are bridged both ways: Lua functions become Go
// closures in the descriptor, and when the resolver wires dependencies the
// dependency public tables are mirrored back into the module table as
// M.required before the load hook runs. The mirror is a snapshot: each entry
// is converted to a fresh Lua table at that point, so a dependency mutating
// its public table afterwards is visible to Go-side holders of the shared
// map but not through M.required. Functions reached through the snapshot
// still call into the live dependency.
package luamod
