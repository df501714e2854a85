package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// LocalStorageClient archives briefings on the local filesystem.
type LocalStorageClient struct {
	baseDir string
}

// NewLocalStorageClient creates a local storage client rooted at baseDir.
func NewLocalStorageClient(baseDir string) (*LocalStorageClient, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory %s: %w", baseDir, err)
	}

	return &LocalStorageClient{
		baseDir: baseDir,
	}, nil
}

// Close is a no-op for local storage.
func (l *LocalStorageClient) Close() error {
	return nil
}

// StoreFile writes a file into the briefing folder for the timestamp.
func (l *LocalStorageClient) StoreFile(ctx context.Context, fileData []byte, filename string, timestamp time.Time) error {
	filePath := filepath.Join(l.baseDir, filepath.FromSlash(BriefingFolderPath(timestamp)), filename)

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	if err := os.WriteFile(filePath, fileData, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filePath, err)
	}

	return nil
}

// GetFile retrieves a file from local storage by its archive path.
func (l *LocalStorageClient) GetFile(ctx context.Context, filePath string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(l.baseDir, filepath.FromSlash(filePath)))
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}
	return data, nil
}

// ListBriefings lists archived briefings, newest first.
func (l *LocalStorageClient) ListBriefings(ctx context.Context, limit int) ([]string, error) {
	root := filepath.Join(l.baseDir, briefingPrefix)

	var paths []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip unreadable entries
		}
		if info.Name() == "index.html" {
			relPath, _ := filepath.Rel(l.baseDir, path)
			paths = append(paths, filepath.ToSlash(relPath))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk briefings directory: %w", err)
	}

	// Folder names sort chronologically, so reverse for newest first.
	sort.Strings(paths)
	for i, j := 0, len(paths)-1; i < j; i, j = i+1, j-1 {
		paths[i], paths[j] = paths[j], paths[i]
	}

	if limit > 0 && limit < len(paths) {
		paths = paths[:limit]
	}

	return paths, nil
}

// GetLatestBriefing returns the most recently archived briefing path.
func (l *LocalStorageClient) GetLatestBriefing(ctx context.Context) (string, error) {
	briefings, err := l.ListBriefings(ctx, 1)
	if err != nil {
		return "", err
	}
	if len(briefings) == 0 {
		return "", fmt.Errorf("no briefings found")
	}
	return briefings[0], nil
}
