package docsync

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Document Discovery:
// - Match documents by glob pattern, returning sorted absolute paths
// - Match root-level files against **/-prefixed patterns
// - Split comma-separated pattern lists
// - Skip ignored directories
// - De-duplicate paths matched by multiple patterns
// - Return an empty (non-error) result when nothing matches

func writeTestFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("content\n"), 0o644))
}

func TestDiscovery_MatchesPatterns(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "README.md"))
	writeTestFile(t, filepath.Join(root, "docs", "guide.md"))
	writeTestFile(t, filepath.Join(root, "docs", "image.png"))

	d, err := NewDiscovery(root, []string{"**/*.md"}, nil)
	require.NoError(t, err)

	docs, err := d.Documents()
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, filepath.Join(root, "README.md"), docs[0])
	assert.Equal(t, filepath.Join(root, "docs", "guide.md"), docs[1])
}

func TestDiscovery_CommaSeparatedPatterns(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "a.md"))
	writeTestFile(t, filepath.Join(root, "b.txt"))

	d, err := NewDiscovery(root, []string{"*.md, *.txt"}, nil)
	require.NoError(t, err)

	docs, err := d.Documents()
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestDiscovery_IgnorePatterns(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "docs", "keep.md"))
	writeTestFile(t, filepath.Join(root, "node_modules", "pkg", "skip.md"))

	d, err := NewDiscovery(root, []string{"**/*.md"}, []string{"node_modules/**"})
	require.NoError(t, err)

	docs, err := d.Documents()
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, filepath.Join(root, "docs", "keep.md"), docs[0])
}

func TestDiscovery_Deduplicates(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "a.md"))

	d, err := NewDiscovery(root, []string{"*.md", "**/*.md"}, nil)
	require.NoError(t, err)

	docs, err := d.Documents()
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestDiscovery_EmptyResultIsNotAnError(t *testing.T) {
	t.Parallel()

	d, err := NewDiscovery(t.TempDir(), []string{"**/*.md"}, nil)
	require.NoError(t, err)

	docs, err := d.Documents()
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestDiscovery_HasPatterns(t *testing.T) {
	t.Parallel()

	root := t.TempDir()

	d, err := NewDiscovery(root, []string{" "}, nil)
	require.NoError(t, err)
	assert.False(t, d.HasPatterns())

	d, err = NewDiscovery(root, []string{"**/*.md"}, nil)
	require.NoError(t, err)
	assert.True(t, d.HasPatterns())
}

func TestDiscovery_MatchesDocument(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	d, err := NewDiscovery(root, []string{"docs/**/*.md"}, []string{"docs/drafts/**"})
	require.NoError(t, err)

	assert.True(t, d.MatchesDocument(filepath.Join(root, "docs", "api", "a.md")))
	assert.False(t, d.MatchesDocument(filepath.Join(root, "docs", "drafts", "b.md")))
	assert.False(t, d.MatchesDocument(filepath.Join(root, "src", "c.md")))
}
