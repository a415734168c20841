package docsync

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the Sync Engine:
// - Rewrite a document in place from a TypeScript source file
// - Leave documents without directives unwritten (mtime-safe no-op)
// - Produce byte-identical output on a second run
// - Check mode reports staleness without writing
// - Per-directive failures populate reports but do not abort the run
// - Run totals: directives, touched, updated

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := NewEngine()
	require.NoError(t, err)
	t.Cleanup(engine.Close)
	return engine
}

func writeDoc(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestEngine_RewritesDocument(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeDoc(t, filepath.Join(root, "src", "api.ts"), "export interface User {\n  id: number;\n}\n")
	doc := filepath.Join(root, "docs", "api.md")
	writeDoc(t, doc, "# API\n\n<!-- ts-embed: ../src/api.ts#User -->\n<!-- /ts-embed -->\n")

	engine := newTestEngine(t)
	summary, err := engine.SyncDocuments([]string{doc}, Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Directives)
	assert.Equal(t, 1, summary.Touched)
	assert.Equal(t, 1, summary.Updated)
	assert.Empty(t, summary.Reports)

	content, err := os.ReadFile(doc)
	require.NoError(t, err)
	assert.Contains(t, string(content), "```typescript")
	assert.Contains(t, string(content), "export interface User {")
	assert.Contains(t, string(content), "<!-- /ts-embed -->")
}

func TestEngine_SecondRunIsNoOp(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeDoc(t, filepath.Join(root, "api.ts"), "const limit = 10;\n")
	doc := filepath.Join(root, "api.md")
	writeDoc(t, doc, "<!-- ts-embed: api.ts#limit -->\n<!-- /ts-embed -->\n")

	engine := newTestEngine(t)
	_, err := engine.SyncDocuments([]string{doc}, Options{})
	require.NoError(t, err)

	after, err := os.ReadFile(doc)
	require.NoError(t, err)

	// Fresh engine, as a new run would use.
	second := newTestEngine(t)
	summary, err := second.SyncDocuments([]string{doc}, Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Updated)

	final, err := os.ReadFile(doc)
	require.NoError(t, err)
	assert.Equal(t, string(after), string(final))
}

func TestEngine_NoDirectivesNoWrite(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	doc := filepath.Join(root, "plain.md")
	writeDoc(t, doc, "# Nothing here\n")

	before, err := os.Stat(doc)
	require.NoError(t, err)

	engine := newTestEngine(t)
	summary, err := engine.SyncDocuments([]string{doc}, Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Touched)
	assert.Equal(t, 0, summary.Updated)

	after, err := os.Stat(doc)
	require.NoError(t, err)
	assert.Equal(t, before.ModTime(), after.ModTime())
}

func TestEngine_CheckModeDoesNotWrite(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeDoc(t, filepath.Join(root, "api.ts"), "const limit = 10;\n")
	doc := filepath.Join(root, "api.md")
	original := "<!-- ts-embed: api.ts#limit -->\nstale\n<!-- /ts-embed -->\n"
	writeDoc(t, doc, original)

	engine := newTestEngine(t)
	summary, err := engine.SyncDocuments([]string{doc}, Options{Check: true})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Updated)

	content, err := os.ReadFile(doc)
	require.NoError(t, err)
	assert.Equal(t, original, string(content))
}

func TestEngine_FailureDoesNotAbortRun(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeDoc(t, filepath.Join(root, "api.ts"), "const limit = 10;\n")

	bad := filepath.Join(root, "bad.md")
	writeDoc(t, bad, "<!-- ts-embed: nowhere.ts#X -->\nkept\n<!-- /ts-embed -->\n")
	good := filepath.Join(root, "good.md")
	writeDoc(t, good, "<!-- ts-embed: api.ts#limit -->\n<!-- /ts-embed -->\n")

	engine := newTestEngine(t)
	summary, err := engine.SyncDocuments([]string{bad, good}, Options{})
	require.NoError(t, err)

	require.Len(t, summary.Reports, 1)
	assert.Equal(t, bad, summary.Reports[0].Document)
	assert.Equal(t, 1, summary.Reports[0].Line)
	assert.Equal(t, "nowhere.ts#X", summary.Reports[0].Ref)

	// The failing document kept its stale body; the good one synced.
	badContent, err := os.ReadFile(bad)
	require.NoError(t, err)
	assert.Contains(t, string(badContent), "kept")

	goodContent, err := os.ReadFile(good)
	require.NoError(t, err)
	assert.Contains(t, string(goodContent), "const limit = 10;")
}

func TestEngine_UnreadableDocumentIsFatal(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t)
	_, err := engine.SyncDocuments([]string{filepath.Join(t.TempDir(), "gone.md")}, Options{})
	assert.Error(t, err)
}
