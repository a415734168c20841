package docsync

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// compiledPattern holds both the pattern string and compiled glob.
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// Discovery expands glob patterns into the set of documents to process.
type Discovery struct {
	rootDir        string
	docPatterns    []compiledPattern
	ignorePatterns []compiledPattern
}

// NewDiscovery compiles patterns for document discovery under rootDir.
// Each entry of docPatterns may itself be a comma-separated list.
func NewDiscovery(rootDir string, docPatterns, ignorePatterns []string) (*Discovery, error) {
	d := &Discovery{rootDir: rootDir}

	for _, pattern := range splitPatterns(docPatterns) {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		d.docPatterns = append(d.docPatterns, compiledPattern{pattern: pattern, glob: g})
	}

	for _, pattern := range splitPatterns(ignorePatterns) {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		d.ignorePatterns = append(d.ignorePatterns, compiledPattern{pattern: pattern, glob: g})
	}

	return d, nil
}

// HasPatterns reports whether any document pattern survived compilation.
// No patterns at all is a condition the caller must surface, unlike an
// empty match set.
func (d *Discovery) HasPatterns() bool {
	return len(d.docPatterns) > 0
}

// splitPatterns flattens comma-separated pattern lists and drops empty
// entries.
func splitPatterns(patterns []string) []string {
	var out []string
	for _, p := range patterns {
		for _, part := range strings.Split(p, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Documents walks the root directory and returns the de-duplicated,
// sorted absolute paths of all matching documents. An empty result is
// not an error; it means there is nothing to do.
func (d *Discovery) Documents() ([]string, error) {
	seen := make(map[string]bool)

	err := filepath.Walk(d.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(d.rootDir, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		if d.shouldIgnore(relPath) {
			return nil
		}
		if !d.matchesAnyPattern(relPath, d.docPatterns) {
			return nil
		}

		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		seen[abs] = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	docs := make([]string, 0, len(seen))
	for path := range seen {
		docs = append(docs, path)
	}
	sort.Strings(docs)
	return docs, nil
}

// MatchesDocument reports whether an absolute path is one of the
// documents this discovery would select. Used by the watcher to decide
// whether a file event is relevant.
func (d *Discovery) MatchesDocument(path string) bool {
	relPath, err := filepath.Rel(d.rootDir, path)
	if err != nil {
		return false
	}
	relPath = filepath.ToSlash(relPath)
	if d.shouldIgnore(relPath) {
		return false
	}
	return d.matchesAnyPattern(relPath, d.docPatterns)
}

// shouldIgnore checks if a path matches any ignore pattern.
func (d *Discovery) shouldIgnore(relPath string) bool {
	if d.matchesAnyPattern(relPath, d.ignorePatterns) {
		return true
	}

	// A directory prefix should match patterns written with a /** suffix,
	// so "node_modules/a/b.md" is ignored by pattern "node_modules/**".
	return d.matchesAnyPattern(relPath+"/**", d.ignorePatterns)
}

// matchesAnyPattern checks if a path matches any of the given patterns.
func (d *Discovery) matchesAnyPattern(path string, patterns []compiledPattern) bool {
	for _, cp := range patterns {
		if cp.glob.Match(path) {
			return true
		}
	}

	// A root-level file has no slash, so "**/*.md" would not match
	// "README.md". Retry those patterns without their **/ prefix.
	if !strings.Contains(path, "/") {
		for _, cp := range patterns {
			if strings.HasPrefix(cp.pattern, "**/") {
				simplified := strings.TrimPrefix(cp.pattern, "**/")
				if g, err := glob.Compile(simplified, '/'); err == nil && g.Match(path) {
					return true
				}
			}
		}
	}

	return false
}
