package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RaSh6119/Agentic-Hybrid-RAG-Engine/rag"
)

func TestTextLoader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Tesla_Inc.txt")
	require.NoError(t, os.WriteFile(path, []byte("Tesla was founded in 2003."), 0o644))

	docs, err := NewTextLoader(path, WithMetadata(map[string]any{"topic": "Tesla"})).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 1)

	assert.Equal(t, "Tesla was founded in 2003.", docs[0].Content)
	assert.Equal(t, "Tesla_Inc.txt", docs[0].Metadata["source"])
	assert.Equal(t, "Tesla", docs[0].Metadata["topic"])
}

func TestTextLoaderMissingFile(t *testing.T) {
	_, err := NewTextLoader("/nonexistent/path.txt").Load(context.Background())
	assert.Error(t, err)
}

func TestDirectoryLoader(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("alpha"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("beta"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.md"), []byte("nope"), 0o644))

	docs, err := NewDirectoryLoader(dir).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestDirectoryLoaderEmpty(t *testing.T) {
	_, err := NewDirectoryLoader(t.TempDir()).Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, rag.ErrEmptyCorpus)
}
