package minio

import (
	"context"
	"io"
	"path"

	"github.com/hupe1980/assetkit/resolver"
	"github.com/minio/minio-go/v7"
)

// Resolver implements resolver.Resolver for MinIO and S3-compatible storage.
type Resolver struct {
	client *minio.Client
	bucket string
	prefix string
}

// NewResolver creates a new MinIO resolver.
// rootPrefix is prepended to all keys (e.g. "content/").
func NewResolver(client *minio.Client, bucket, rootPrefix string) *Resolver {
	return &Resolver{
		client: client,
		bucket: bucket,
		prefix: rootPrefix,
	}
}

func (r *Resolver) key(name string) string {
	return path.Join(r.prefix, name)
}

// Exists reports whether the object for name exists.
func (r *Resolver) Exists(ctx context.Context, name string) (bool, error) {
	_, err := r.client.StatObject(ctx, r.bucket, r.key(name), minio.StatObjectOptions{})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Resolve opens the object for name.
func (r *Resolver) Resolve(ctx context.Context, name string) (io.ReadCloser, error) {
	obj, err := r.client.GetObject(ctx, r.bucket, r.key(name), minio.GetObjectOptions{})
	if err != nil {
		if isNotFound(err) {
			return nil, resolver.ErrNotFound
		}
		return nil, err
	}

	// GetObject is lazy; Stat surfaces a missing key before the reader sees it.
	if _, err := obj.Stat(); err != nil {
		_ = obj.Close()
		if isNotFound(err) {
			return nil, resolver.ErrNotFound
		}
		return nil, err
	}
	return obj, nil
}

func isNotFound(err error) bool {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NotFound", "NoSuchBucket":
		return true
	}
	return false
}
