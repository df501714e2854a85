package storage

import (
	"context"
	"fmt"

	"skybrief/internal/config"
)

// DeploymentMode selects the storage backend.
type DeploymentMode string

const (
	DeploymentLocal DeploymentMode = "local"
	DeploymentGCS   DeploymentMode = "gcs"
)

// ModeFor picks the deployment mode from configuration. A configured
// bucket means GCS, otherwise briefings are archived locally.
func ModeFor(cfg *config.Config) DeploymentMode {
	if cfg.GCSBucket != "" {
		return DeploymentGCS
	}
	return DeploymentLocal
}

// NewStorageClient creates a storage client for the deployment mode.
func NewStorageClient(ctx context.Context, mode DeploymentMode, cfg *config.Config) (StorageClient, error) {
	switch mode {
	case DeploymentLocal:
		briefingsDir := cfg.LocalReportsDir
		if briefingsDir == "" {
			briefingsDir = "reports"
		}

		localClient, err := NewLocalStorageClient(briefingsDir)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize local storage client: %w", err)
		}
		return localClient, nil

	case DeploymentGCS:
		gcsClient, err := NewGCSClient(ctx, cfg.GCSBucket)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize GCS client: %w", err)
		}
		return gcsClient, nil

	default:
		return nil, fmt.Errorf("unsupported deployment mode: %s", mode)
	}
}
