package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/s3blob"

	"helpdesk/internal/shared/config"
)

// BucketBlobStore stores attachments in a gocloud.dev bucket. The bucket
// URL decides the backend: s3:// for deployments, file:// for local
// development and tests.
type BucketBlobStore struct {
	bucket        *blob.Bucket
	publicBaseURL string
}

func Open(ctx context.Context, cfg *config.StorageConfig) (*BucketBlobStore, error) {
	bucket, err := blob.OpenBucket(ctx, cfg.BucketURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open bucket %s: %w", cfg.BucketURL, err)
	}

	return &BucketBlobStore{
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
	}, nil
}

func (s *BucketBlobStore) Exists(ctx context.Context, key string) (bool, error) {
	return s.bucket.Exists(ctx, key)
}

func (s *BucketBlobStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	w, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("failed to open writer for %s: %w", key, err)
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return w.Close()
}

func (s *BucketBlobStore) SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	return s.bucket.SignedURL(ctx, key, &blob.SignedURLOptions{Expiry: ttl})
}

func (s *BucketBlobStore) PublicURL(key string) string {
	return s.publicBaseURL + "/" + key
}

func (s *BucketBlobStore) Close() error {
	return s.bucket.Close()
}
