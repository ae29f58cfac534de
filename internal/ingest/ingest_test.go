package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripFrontmatter(t *testing.T) {
	input := "---\ntitle: Guide\ntags: [md]\n---\n# Heading\n\nBody text."
	got := string(stripFrontmatter([]byte(input)))

	assert.NotContains(t, got, "title: Guide")
	assert.Contains(t, got, "# Heading")

	// No frontmatter: untouched.
	plain := "# Heading\n\nBody text."
	assert.Equal(t, plain, string(stripFrontmatter([]byte(plain))))
}

func TestMarkdownToText(t *testing.T) {
	md := "# Tables\n\nUse *pipes* to separate `columns`.\n\n- item one\n- item two"
	got := markdownToText([]byte(md))

	assert.Contains(t, got, "Tables")
	assert.Contains(t, got, "Use pipes to separate columns.")
	assert.Contains(t, got, "item one")
	assert.NotContains(t, got, "*")
	assert.NotContains(t, got, "#")
	assert.NotContains(t, got, "`")
}

func TestProcessFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "guide.md")
	content := "---\ntitle: Guide\n---\n# Markdown Guide\n\nTables use pipes. Headings use hashes."
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	docs, err := ProcessFile(path, ChunkerConfig{MaxTokens: 400, OverlapTokens: 50})
	require.NoError(t, err)
	require.NotEmpty(t, docs)

	assert.Equal(t, "guide_chunk_0", docs[0].ID)
	assert.Equal(t, "guide", docs[0].Source)
	assert.Equal(t, 0, docs[0].Metadata["chunkIndex"])
	assert.Equal(t, len(docs), docs[0].Metadata["totalChunks"])
	assert.NotContains(t, docs[0].Content, "title: Guide")
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), []byte("Alpha doc."), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.md"), []byte("Beta doc."), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignore.txt"), []byte("not markdown"), 0o644))

	docs, err := LoadDirectory(context.Background(), dir, ChunkerConfig{MaxTokens: 400, OverlapTokens: 50})
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	sources := []string{docs[0].Source, docs[1].Source}
	assert.ElementsMatch(t, []string{"a", "b"}, sources)
}

func TestLoadDirectory_Missing(t *testing.T) {
	_, err := LoadDirectory(context.Background(), "/does/not/exist", ChunkerConfig{MaxTokens: 400})
	assert.Error(t, err)
}
