package storage

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	"skybrief/internal/logger"
)

// GCSClient archives briefings in a Google Cloud Storage bucket.
type GCSClient struct {
	client *storage.Client
	bucket string
	log    *logger.Logger
}

// NewGCSClient creates a GCS-backed storage client.
func NewGCSClient(ctx context.Context, bucketName string) (*GCSClient, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	return &GCSClient{
		client: client,
		bucket: bucketName,
		log:    logger.GetGlobalLogger().WithComponent("storage"),
	}, nil
}

// Close closes the GCS client.
func (g *GCSClient) Close() error {
	return g.client.Close()
}

// StoreFile uploads a file into the briefing folder for the timestamp.
func (g *GCSClient) StoreFile(ctx context.Context, fileData []byte, filename string, timestamp time.Time) error {
	objectPath := BriefingFolderPath(timestamp) + "/" + filename

	g.log.Debug("storing file to GCS", map[string]interface{}{
		"bucket": g.bucket,
		"object": objectPath,
	})

	obj := g.client.Bucket(g.bucket).Object(objectPath)

	writer := obj.NewWriter(ctx)
	writer.ContentType = ContentType(filename)
	writer.CacheControl = "public, max-age=3600"
	writer.Metadata = map[string]string{
		"generated-at": timestamp.Format(time.RFC3339),
		"filename":     filename,
	}

	if _, err := writer.Write(fileData); err != nil {
		writer.Close()
		return fmt.Errorf("failed to write file to GCS: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize GCS upload: %w", err)
	}

	return nil
}

// GetFile retrieves a file from the bucket.
func (g *GCSClient) GetFile(ctx context.Context, filePath string) ([]byte, error) {
	obj := g.client.Bucket(g.bucket).Object(filePath)

	reader, err := obj.NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create reader for %s: %w", filePath, err)
	}
	defer reader.Close()

	fileData, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	return fileData, nil
}

// ListBriefings lists archived briefings in the bucket, newest first.
func (g *GCSClient) ListBriefings(ctx context.Context, limit int) ([]string, error) {
	query := &storage.Query{Prefix: briefingPrefix + "/"}
	it := g.client.Bucket(g.bucket).Objects(ctx, query)

	var paths []string
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}
		if strings.HasSuffix(attrs.Name, "/index.html") {
			paths = append(paths, attrs.Name)
		}
	}

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
func (g *GCSClient) GetLatestBriefing(ctx context.Context) (string, error) {
	briefings, err := g.ListBriefings(ctx, 1)
	if err != nil {
		return "", err
	}
	if len(briefings) == 0 {
		return "", fmt.Errorf("no briefings found")
	}
	return briefings[0], nil
}
