package luamod

import (
	"github.com/dshills/modkit/internal/module"
	lua "github.com/yuin/gopher-lua"
)

// decode turns a Lua module table into a descriptor.
//
// Recognized fields, all optional:
//
//	name     string  — overrides the requested name
//	requires {string}
//	setup    function() -> { success = bool, requires = {string} }
//	load     function()
//	unload   function()
//	public   table   — the exposed interface
//	private  table   — module-internal state
//	config   { public = table }
//
// When the table declares requires but no setup hook, a setup returning
// { success = true, requires = <declared> } is synthesized so that plain
// data modules do not have to write one.
func (s *Source) decode(requested string, tbl *lua.LTable) *module.Descriptor {
	d := &module.Descriptor{Name: requested}

	if name, ok := tbl.RawGetString("name").(lua.LString); ok && name != "" {
		d.Name = string(name)
	}

	d.Dependencies = s.decodeNames(tbl.RawGetString("requires"))
	d.Public = s.decodeTable(tbl.RawGetString("public"))
	d.Private = s.decodeTable(tbl.RawGetString("private"))

	if cfg, ok := tbl.RawGetString("config").(*lua.LTable); ok {
		d.Config.Public = s.decodeTable(cfg.RawGetString("public"))
	}

	if setup, ok := tbl.RawGetString("setup").(*lua.LFunction); ok {
		d.Setup = s.setupHook(d.Name, setup)
	} else {
		deps := d.Dependencies
		d.Setup = func() *module.SetupResult {
			return &module.SetupResult{Success: true, Requires: deps}
		}
	}

	if load, ok := tbl.RawGetString("load").(*lua.LFunction); ok {
		d.Load = func() error {
			s.injectRequired(tbl, d)
			_, err := s.bridge.CallLua(load)
			return err
		}
	}

	if unload, ok := tbl.RawGetString("unload").(*lua.LFunction); ok {
		d.Unload = func() error {
			_, err := s.bridge.CallLua(unload)
			return err
		}
	}

	return d
}

// setupHook wraps a Lua setup function. A hook that raises, returns
// nothing, or returns a non-table yields a nil SetupResult, which the
// resolver treats as a contract violation. A missing or non-boolean
// success field counts as a decline.
func (s *Source) setupHook(name string, fn *lua.LFunction) func() *module.SetupResult {
	return func() *module.SetupResult {
		results, err := s.bridge.CallLua(fn)
		if err != nil {
			s.logger.Error("module %q setup hook raised: %v", name, err)
			return nil
		}
		if len(results) == 0 {
			return nil
		}

		m, ok := results[0].(map[string]any)
		if !ok {
			return nil
		}

		result := &module.SetupResult{}
		if success, ok := m["success"].(bool); ok {
			result.Success = success
		}
		if requires, ok := m["requires"]; ok {
			result.Requires = s.namesFromGo(requires)
		}
		return result
	}
}

// injectRequired mirrors the resolver-populated Required map into the Lua
// module table as "required", so the load hook (and anything it wires up)
// can reach its dependencies' public interfaces. Each entry is converted to
// a fresh Lua table, so later mutations of a dependency's public map are not
// reflected here. Wrapped functions still invoke the live dependency.
func (s *Source) injectRequired(tbl *lua.LTable, d *module.Descriptor) {
	req := s.state.NewTable()
	for dep, public := range d.Required {
		req.RawSetString(dep, s.bridge.ToLuaValue(public))
	}
	tbl.RawSetString("required", req)
}

// decodeTable converts a Lua table value to a Go map. Non-tables and
// array-shaped tables yield nil.
func (s *Source) decodeTable(lv lua.LValue) map[string]any {
	tbl, ok := lv.(*lua.LTable)
	if !ok {
		return nil
	}
	if m, ok := s.bridge.ToGoValue(tbl).(map[string]any); ok {
		return m
	}
	return nil
}

// decodeNames converts a Lua array of strings to a []string.
func (s *Source) decodeNames(lv lua.LValue) []string {
	tbl, ok := lv.(*lua.LTable)
	if !ok {
		return nil
	}
	return s.namesFromGo(s.bridge.ToGoValue(tbl))
}

// namesFromGo extracts string elements from a decoded Lua array.
func (s *Source) namesFromGo(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	names := make([]string, 0, len(arr))
	for _, e := range arr {
		if name, ok := e.(string); ok {
			names = append(names, name)
		}
	}
	return names
}
