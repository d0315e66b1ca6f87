package uploader

import (
	"context"
	"testing"

	cfg "github.com/kyungjunleeme/Text2SQL/internal/config"
)

func TestFromConfigNoTarget(t *testing.T) {
	u, err := FromConfig(cfg.StorageConfig{})
	if err != nil {
		t.Fatalf("from config: %v", err)
	}
	if u.Enabled() {
		t.Fatalf("no storage target should yield a disabled uploader")
	}
	url, err := u.UploadDir(context.Background(), t.TempDir())
	if err != nil || url != "" {
		t.Fatalf("noop upload: url=%q err=%v", url, err)
	}
}

func TestDisabledUploadersAreInert(t *testing.T) {
	g, err := NewGCS(cfg.GCSConfig{Bucket: "b"})
	if err != nil {
		t.Fatalf("new gcs: %v", err)
	}
	if g.Enabled() {
		t.Fatalf("gcs should stay disabled without enabled flag")
	}
	if url, err := g.UploadDir(context.Background(), t.TempDir()); err != nil || url != "" {
		t.Fatalf("disabled gcs upload: url=%q err=%v", url, err)
	}

	s, err := NewS3(cfg.S3Config{Bucket: "b"})
	if err != nil {
		t.Fatalf("new s3: %v", err)
	}
	if s.Enabled() {
		t.Fatalf("s3 should stay disabled without enabled flag")
	}
	if url, err := s.UploadDir(context.Background(), t.TempDir()); err != nil || url != "" {
		t.Fatalf("disabled s3 upload: url=%q err=%v", url, err)
	}
}
