package resolve

import (
	"fmt"
	"os"

	"github.com/maypok86/otter"

	"github.com/mvp-joe/embedsync/internal/extract"
)

// sourceCacheCapacity bounds each per-run cache. Runs touch at most a
// few thousand distinct source files in practice.
const sourceCacheCapacity = 4096

// Cache memoizes referenced source files for the lifetime of one run:
// parsed TypeScript units and raw lexical source text, both keyed by
// resolved absolute path and populated lazily on first reference.
type Cache struct {
	units otter.Cache[string, *extract.Unit]
	raw   otter.Cache[string, string]
}

// NewCache creates an empty source cache.
func NewCache() (*Cache, error) {
	units, err := otter.MustBuilder[string, *extract.Unit](sourceCacheCapacity).Build()
	if err != nil {
		return nil, fmt.Errorf("building unit cache: %w", err)
	}
	raw, err := otter.MustBuilder[string, string](sourceCacheCapacity).Build()
	if err != nil {
		return nil, fmt.Errorf("building raw cache: %w", err)
	}
	return &Cache{units: units, raw: raw}, nil
}

// Unit returns the parsed unit for a TypeScript file, parsing it on
// first reference.
func (c *Cache) Unit(path string) (*extract.Unit, error) {
	if unit, ok := c.units.Get(path); ok {
		return unit, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	unit := extract.ParseTypeScript(data)
	if unit == nil {
		// An unparseable file has no symbols; report the miss the same
		// way as a readable file without the declaration.
		return nil, extract.ErrSymbolNotFound
	}
	c.units.Set(path, unit)
	return unit, nil
}

// Raw returns the raw text of a lexical source file, reading it on
// first reference.
func (c *Cache) Raw(path string) (string, error) {
	if text, ok := c.raw.Get(path); ok {
		return text, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	text := string(data)
	c.raw.Set(path, text)
	return text, nil
}

// Close releases both caches.
func (c *Cache) Close() {
	c.units.Close()
	c.raw.Close()
}
