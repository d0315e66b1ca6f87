// Package uploader pushes finished report directories to object storage.
package uploader

import (
	"context"

	"github.com/kyungjunleeme/Text2SQL/internal/config"
)

// Uploader uploads a run directory and returns its remote URL prefix.
type Uploader interface {
	Enabled() bool
	UploadDir(ctx context.Context, dir string) (string, error)
}

// NoopUploader is used when no storage target is configured.
type NoopUploader struct{}

func (n NoopUploader) Enabled() bool {
	return false
}

func (n NoopUploader) UploadDir(_ context.Context, _ string) (string, error) {
	return "", nil
}

// FromConfig builds the uploader for the configured storage target. GCS
// wins when both are enabled.
func FromConfig(cfg config.StorageConfig) (Uploader, error) {
	if cfg.GCS.Enabled {
		return NewGCS(cfg.GCS)
	}
	if cfg.S3.Enabled {
		return NewS3(cfg.S3)
	}
	return NoopUploader{}, nil
}
