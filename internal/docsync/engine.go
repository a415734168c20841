// Package docsync orchestrates one synchronization run: discover
// documents, rewrite each one against its referenced source files, and
// write the results back in place.
package docsync

import (
	"fmt"
	"os"

	"github.com/mvp-joe/embedsync/internal/resolve"
	"github.com/mvp-joe/embedsync/internal/rewrite"
)

// DocumentSummary describes one processed document.
type DocumentSummary struct {
	Path       string
	Directives int
	Rewritten  bool
}

// RunSummary aggregates one run across all documents.
type RunSummary struct {
	Documents  []DocumentSummary
	Directives int // total directives found
	Touched    int // documents containing at least one directive
	Updated    int // documents rewritten (or that would be, in check mode)
	Reports    []rewrite.Report
}

// ProgressReporter receives run progress. Implementations must tolerate
// being called with zero documents.
type ProgressReporter interface {
	OnRunStart(totalDocs int)
	OnDocument(path string)
	OnRunComplete()
}

// Options control a sync run.
type Options struct {
	// Check resolves and compares without writing anything back.
	Check bool
	// Progress receives per-document progress; may be nil.
	Progress ProgressReporter
}

// Engine runs directive resolution and rewriting over documents.
// Documents are processed one at a time; the only state shared between
// them is the resolver's read-only source cache and the accumulated
// reports.
type Engine struct {
	cache    *resolve.Cache
	resolver rewrite.Resolver
}

// NewEngine creates an engine with fresh source caches. Callers own the
// engine for exactly one run; Close releases the caches.
func NewEngine() (*Engine, error) {
	cache, err := resolve.NewCache()
	if err != nil {
		return nil, err
	}
	return &Engine{cache: cache, resolver: resolve.New(cache)}, nil
}

// Close releases the engine's source caches.
func (e *Engine) Close() {
	e.cache.Close()
}

// SyncDocuments processes each document in order. Per-directive
// failures are collected in the summary and never stop the run; a
// document that cannot be read or written aborts the run outright.
func (e *Engine) SyncDocuments(paths []string, opts Options) (*RunSummary, error) {
	summary := &RunSummary{}

	if opts.Progress != nil {
		opts.Progress.OnRunStart(len(paths))
	}

	for _, path := range paths {
		if opts.Progress != nil {
			opts.Progress.OnDocument(path)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return summary, fmt.Errorf("reading document %s: %w", path, err)
		}

		result := rewrite.Rewrite(e.resolver, path, string(data))

		doc := DocumentSummary{
			Path:       path,
			Directives: result.Directives,
			Rewritten:  result.Changed,
		}
		summary.Documents = append(summary.Documents, doc)
		summary.Directives += result.Directives
		summary.Reports = append(summary.Reports, result.Reports...)

		if result.Directives == 0 {
			continue
		}
		summary.Touched++

		if !result.Changed {
			continue
		}
		summary.Updated++

		if opts.Check {
			continue
		}
		if err := os.WriteFile(path, []byte(result.Text), 0o644); err != nil {
			return summary, fmt.Errorf("writing document %s: %w", path, err)
		}
	}

	if opts.Progress != nil {
		opts.Progress.OnRunComplete()
	}
	return summary, nil
}
