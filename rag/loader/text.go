// Package loader reads source documents from disk.
package loader

import (
	"context"
	"fmt"
	"maps"
	"os"
	"path/filepath"

	"github.com/RaSh6119/Agentic-Hybrid-RAG-Engine/rag"
)

// TextLoader loads a single text file as one document
type TextLoader struct {
	filePath string
	metadata map[string]any
}

// TextLoaderOption configures the TextLoader
type TextLoaderOption func(*TextLoader)

// WithMetadata sets additional metadata for loaded documents
func WithMetadata(metadata map[string]any) TextLoaderOption {
	return func(l *TextLoader) {
		maps.Copy(l.metadata, metadata)
	}
}

// NewTextLoader creates a new TextLoader
func NewTextLoader(filePath string, opts ...TextLoaderOption) *TextLoader {
	l := &TextLoader{
		filePath: filePath,
		metadata: make(map[string]any),
	}

	l.metadata["source"] = filepath.Base(filePath)
	l.metadata["type"] = "text"

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Load loads the file content as a single document
func (l *TextLoader) Load(ctx context.Context) ([]rag.Document, error) {
	content, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", l.filePath, err)
	}

	metadata := make(map[string]any)
	maps.Copy(metadata, l.metadata)

	doc := rag.Document{
		ID:       fmt.Sprintf("text_%s", filepath.Base(l.filePath)),
		Content:  string(content),
		Metadata: metadata,
	}

	return []rag.Document{doc}, nil
}

// DirectoryLoader loads every *.txt file in a directory, one document per
// file. Files that fail to read are skipped, mirroring ingestion's
// keep-going policy.
type DirectoryLoader struct {
	dir     string
	pattern string
	onSkip  func(path string, err error)
}

// DirectoryLoaderOption configures the DirectoryLoader
type DirectoryLoaderOption func(*DirectoryLoader)

// WithPattern sets the file glob pattern (default *.txt)
func WithPattern(pattern string) DirectoryLoaderOption {
	return func(l *DirectoryLoader) {
		l.pattern = pattern
	}
}

// WithSkipHandler sets a callback invoked for every unreadable file
func WithSkipHandler(fn func(path string, err error)) DirectoryLoaderOption {
	return func(l *DirectoryLoader) {
		l.onSkip = fn
	}
}

// NewDirectoryLoader creates a new DirectoryLoader
func NewDirectoryLoader(dir string, opts ...DirectoryLoaderOption) *DirectoryLoader {
	l := &DirectoryLoader{
		dir:     dir,
		pattern: "*.txt",
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Load loads all matching files from the directory
func (l *DirectoryLoader) Load(ctx context.Context) ([]rag.Document, error) {
	paths, err := filepath.Glob(filepath.Join(l.dir, l.pattern))
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", l.dir, err)
	}

	var docs []rag.Document
	for _, path := range paths {
		loaded, err := NewTextLoader(path).Load(ctx)
		if err != nil {
			if l.onSkip != nil {
				l.onSkip(path, err)
			}
			continue
		}
		docs = append(docs, loaded...)
	}

	if len(docs) == 0 {
		return nil, fmt.Errorf("%w in %s", rag.ErrEmptyCorpus, l.dir)
	}

	return docs, nil
}

var (
	_ rag.DocumentLoader = (*TextLoader)(nil)
	_ rag.DocumentLoader = (*DirectoryLoader)(nil)
)
