// Package storage archives generated briefings, either on the local
// filesystem or in a GCS bucket depending on deployment mode.
package storage

import (
	"context"
	"time"
)

// StorageClient is the archive behind the briefing service. Each
// generated briefing is stored as a folder of files (index.html plus
// briefing.json) keyed by its generation timestamp.
type StorageClient interface {
	// Close releases any underlying resources.
	Close() error

	// StoreFile stores one file inside the briefing folder for the
	// given generation timestamp.
	StoreFile(ctx context.Context, fileData []byte, filename string, timestamp time.Time) error

	// GetFile retrieves a stored file by its full path.
	GetFile(ctx context.Context, filePath string) ([]byte, error)

	// ListBriefings lists archived briefings, newest first.
	ListBriefings(ctx context.Context, limit int) ([]string, error)

	// GetLatestBriefing returns the path of the most recent briefing.
	GetLatestBriefing(ctx context.Context) (string, error)
}
