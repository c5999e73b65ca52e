// Package main is a demo driver for the modkit module system: it loads the
// named modules from Lua search paths, prints the registry, and unloads.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/tidwall/pretty"

	"github.com/dshills/modkit/internal/log"
	"github.com/dshills/modkit/internal/modconf"
	"github.com/dshills/modkit/internal/module"
	"github.com/dshills/modkit/internal/module/luamod"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		paths       pathList
		configPath  string
		levelName   string
		jsonOut     bool
		showVersion bool
	)

	flag.Var(&paths, "path", "Module search path (repeatable)")
	flag.StringVar(&configPath, "config", "", "Path to JSON config override file")
	flag.StringVar(&levelName, "log-level", "info", "Log level (trace, debug, info, warn, error)")
	flag.BoolVar(&jsonOut, "json", false, "Print registry state as JSON")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("modkit %s (%s)\n", version, commit)
		return 0
	}

	names := flag.Args()
	if len(names) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: modkit [flags] module-name ...")
		flag.PrintDefaults()
		return 2
	}

	logCfg := log.DefaultConfig()
	logCfg.Level = log.ParseLevel(levelName)
	logger := log.New(logCfg)

	source := luamod.NewSource(
		luamod.WithPaths(paths...),
		luamod.WithSourceLogger(logger.WithComponent("luamod")),
	)
	defer source.Close()

	opts := []module.ResolverOption{
		module.WithSource(source),
		module.WithLogger(logger.WithComponent("resolver")),
	}

	if configPath != "" {
		overrides, err := modconf.LoadFile(configPath, modconf.WithLogger(logger.WithComponent("modconf")))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		opts = append(opts, module.WithConfigSource(overrides))
	}

	resolver := module.NewResolver(opts...)
	defer resolver.UnloadAll()

	failures := 0
	for _, name := range names {
		if err := resolver.Load(name); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			failures++
		}
	}

	if err := printState(resolver, jsonOut); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if failures > 0 {
		return 1
	}
	return 0
}

// printState writes the registry contents to stdout.
func printState(r *module.Resolver, jsonOut bool) error {
	names := r.Registry().Names()

	if !jsonOut {
		fmt.Printf("%d module(s) loaded\n", r.Registry().Count())
		for _, name := range names {
			fmt.Printf("  %s\n", name)
		}
		return nil
	}

	type moduleState struct {
		Name   string         `json:"name"`
		Config map[string]any `json:"config,omitempty"`
	}
	state := struct {
		Count   int           `json:"count"`
		Modules []moduleState `json:"modules"`
	}{Count: r.Registry().Count()}

	for _, name := range names {
		ms := moduleState{Name: name}
		if cfg, ok := r.Config(name); ok {
			ms.Config = cfg
		}
		state.Modules = append(state.Modules, ms)
	}

	out, err := json.Marshal(state)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(pretty.Pretty(out))
	return err
}

// pathList collects repeated -path flags.
type pathList []string

func (p *pathList) String() string {
	return fmt.Sprintf("%v", []string(*p))
}

func (p *pathList) Set(value string) error {
	*p = append(*p, value)
	return nil
}
