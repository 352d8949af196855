package output

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

const (
	ContentTypeMarkdown = "text/markdown; charset=utf-8"
	ContentTypeJSON     = "application/json"
	ContentTypeCSV      = "text/csv; charset=utf-8"
)

// Artifact is one rendered file
type Artifact struct {
	Key         string // slash-separated, see Key
	ContentType string
	Data        []byte
}

// Sink stores artifacts and reports where they went
type Sink interface {
	Write(ctx context.Context, a Artifact) (string, error)
}

// FileSink writes artifacts below a base directory
type FileSink struct {
	baseDir string
}

// NewFileSink creates a sink rooted at baseDir; artifact keys already start with "outputs/"
func NewFileSink(baseDir string) *FileSink {
	return &FileSink{baseDir: baseDir}
}

// Write creates parent directories as needed and writes the artifact
func (s *FileSink) Write(ctx context.Context, a Artifact) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := filepath.Join(s.baseDir, filepath.FromSlash(a.Key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, a.Data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
