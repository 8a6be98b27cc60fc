//go:build gcp

package archive

import (
	"context"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
)

// GCSStore keeps snapshots in a Google Cloud Storage bucket.
type GCSStore struct {
	client *storage.Client
	bucket string
	prefix string
}

// GCSConfig configures a GCSStore.
type GCSConfig struct {
	Bucket string
	Prefix string
}

// NewGCSStore uses application default credentials.
func NewGCSStore(ctx context.Context, cfg GCSConfig) (*GCSStore, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create gcs client: %w", err)
	}
	return &GCSStore{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

func (s *GCSStore) object(raw string) *storage.ObjectHandle {
	return s.client.Bucket(s.bucket).Object(objectName(s.prefix, raw))
}

func (s *GCSStore) Store(ctx context.Context, data []byte) (string, error) {
	id := Digest(data)
	obj := s.object(id[len(digestPrefix):])
	if _, err := obj.Attrs(ctx); err == nil {
		return id, nil
	}

	w := obj.If(storage.Conditions{DoesNotExist: true}).NewWriter(ctx)
	w.ContentType = "text/csv"
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("gcs write %s: %w", id, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("gcs close %s: %w", id, err)
	}
	return id, nil
}

func (s *GCSStore) Get(ctx context.Context, id string) ([]byte, error) {
	raw, err := parseDigest(id)
	if err != nil {
		return nil, err
	}
	r, err := s.object(raw).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("gcs get %s: %w", id, err)
	}
	defer func() { _ = r.Close() }()
	return io.ReadAll(r)
}

func (s *GCSStore) Exists(ctx context.Context, id string) (bool, error) {
	raw, err := parseDigest(id)
	if err != nil {
		return false, err
	}
	_, err = s.object(raw).Attrs(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("gcs attrs %s: %w", id, err)
	}
	return true, nil
}

func (s *GCSStore) Delete(ctx context.Context, id string) error {
	raw, err := parseDigest(id)
	if err != nil {
		return err
	}
	if err := s.object(raw).Delete(ctx); err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("gcs delete %s: %w", id, err)
	}
	return nil
}

func (s *GCSStore) Close() error {
	return s.client.Close()
}
