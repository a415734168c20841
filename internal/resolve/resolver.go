// Package resolve turns one directive into either extracted declaration
// text or a structured failure, never both.
package resolve

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mvp-joe/embedsync/internal/directive"
	"github.com/mvp-joe/embedsync/internal/extract"
)

// ErrSourceNotFound reports a directive whose source file does not
// exist at the resolved path.
var ErrSourceNotFound = errors.New("source file not found")

// Resolution is the outcome of resolving one directive. Exactly one of
// Text and Err is set.
type Resolution struct {
	Text string
	Err  error
}

// extractFunc is the per-grammar extraction capability: given a
// resolved source path and a symbol name, produce the declaration text.
// Adding a grammar means adding one entry to extractors.
type extractFunc func(r *Resolver, absPath, symbol string) (string, error)

var extractors = map[directive.Kind]extractFunc{
	directive.KindTypeScript: extractTypeScript,
	directive.KindCSharp:     extractCSharp,
}

// Resolver loads referenced source files and extracts declaration text,
// memoizing file contents in its cache for the lifetime of one run.
type Resolver struct {
	cache *Cache
}

// New creates a resolver backed by cache.
func New(cache *Cache) *Resolver {
	return &Resolver{cache: cache}
}

// Resolve resolves one directive. The directive's source path is
// resolved against docDir, the directory of the document that contains
// the marker, never the process working directory.
func (r *Resolver) Resolve(docDir string, d directive.Directive) Resolution {
	rel := filepath.FromSlash(strings.TrimSpace(d.SourcePath))
	abs, err := filepath.Abs(filepath.Join(docDir, rel))
	if err != nil {
		return Resolution{Err: fmt.Errorf("resolving %s: %w", d.SourcePath, err)}
	}

	if _, err := os.Stat(abs); err != nil {
		return Resolution{Err: fmt.Errorf("%w: %s", ErrSourceNotFound, abs)}
	}

	extractor, ok := extractors[d.Kind]
	if !ok {
		return Resolution{Err: fmt.Errorf("unsupported directive kind %q", d.Kind)}
	}

	text, err := extractor(r, abs, d.Symbol)
	if err != nil {
		return Resolution{Err: err}
	}
	return Resolution{Text: text}
}

func extractTypeScript(r *Resolver, absPath, symbol string) (string, error) {
	unit, err := r.cache.Unit(absPath)
	if err != nil {
		return "", err
	}
	text, ok := unit.Lookup(symbol)
	if !ok {
		return "", extract.ErrSymbolNotFound
	}
	return text, nil
}

func extractCSharp(r *Resolver, absPath, symbol string) (string, error) {
	source, err := r.cache.Raw(absPath)
	if err != nil {
		return "", err
	}
	return extract.ExtractCSharp(source, symbol)
}
