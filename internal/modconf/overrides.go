// Package modconf supplies per-module configuration overrides from a JSON
// document keyed by module name.
package modconf

import (
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/dshills/modkit/internal/log"
)

// Overrides holds an override document:
//
//	{
//	    "core.ui": { "width": 120 },
//	    "core.log": { "level": "debug" }
//	}
//
// Top-level keys are module names; their objects are merged into the
// module's public configuration before setup runs. Override shapes are the
// caller's responsibility; no schema validation is performed.
//
// Overrides implements module.ConfigSource.
type Overrides struct {
	doc    []byte
	logger *log.Logger
}

// Option configures an Overrides.
type Option func(*Overrides)

// WithLogger sets the logging sink.
func WithLogger(l *log.Logger) Option {
	return func(o *Overrides) {
		o.logger = l
	}
}

// New creates an override source from a JSON document. A nil or empty
// document yields an empty source.
func New(doc []byte, opts ...Option) (*Overrides, error) {
	if len(doc) == 0 {
		doc = []byte("{}")
	}
	if !gjson.ValidBytes(doc) {
		return nil, fmt.Errorf("override document is not valid JSON")
	}

	o := &Overrides{
		doc:    doc,
		logger: log.Discard,
	}

	for _, opt := range opts {
		opt(o)
	}

	return o, nil
}

// LoadFile creates an override source from a JSON file.
func LoadFile(path string, opts ...Option) (*Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read override file: %w", err)
	}
	return New(data, opts...)
}

// Overrides returns the override map for a module, or nil when the
// document has no object for it.
func (o *Overrides) Overrides(name string) map[string]any {
	res := gjson.GetBytes(o.doc, escapeName(name))
	if !res.Exists() {
		return nil
	}
	if !res.IsObject() {
		o.logger.Warn("overrides for module %q are not an object, ignoring", name)
		return nil
	}

	m, ok := res.Value().(map[string]any)
	if !ok {
		return nil
	}
	return m
}

// Set stores an override value for a module. The key may be a dotted path
// into the module's configuration ("x.y" sets a nested value).
func (o *Overrides) Set(name, key string, value any) error {
	doc, err := sjson.SetBytes(o.doc, escapeName(name)+"."+key, value)
	if err != nil {
		return fmt.Errorf("failed to set override %s.%s: %w", name, key, err)
	}
	o.doc = doc
	return nil
}

// Delete removes all overrides for a module. Returns true if any existed.
func (o *Overrides) Delete(name string) bool {
	path := escapeName(name)
	if !gjson.GetBytes(o.doc, path).Exists() {
		return false
	}
	doc, err := sjson.DeleteBytes(o.doc, path)
	if err != nil {
		return false
	}
	o.doc = doc
	return true
}

// Bytes returns the raw override document.
func (o *Overrides) Bytes() []byte {
	return o.doc
}

// Pretty returns the override document formatted for display.
func (o *Overrides) Pretty() []byte {
	return pretty.Pretty(o.doc)
}

// escapeName escapes the dots in a module name so gjson/sjson treat it as
// a single top-level key rather than a path.
func escapeName(name string) string {
	return strings.ReplaceAll(name, ".", `\.`)
}
