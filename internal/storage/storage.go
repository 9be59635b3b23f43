// Package storage holds the document storage abstraction and its backends:
// a local directory and an S3-compatible object store (MinIO).
// Keys are flat stored names; backends never interpret them.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"docscan/internal/config"
)

// ErrNotFound is returned by Get when no object exists under the key.
var ErrNotFound = errors.New("object not found")

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known; if unknown, set to -1 and the implementation
// will buffer/chunk as supported by the backend.
// ContentType and Metadata are optional.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about an object in storage.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is the document storage interface shared by all backends.
// Implementations must be safe for concurrent use. A Put to an existing key
// replaces the object (last write wins).
type Storage interface {
	// Put uploads an object under the given key using the provided reader and options.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get retrieves an object's content as a streaming reader alongside its info.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Delete removes an object by key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// List enumerates every object. Any failure aborts the whole listing.
	List(ctx context.Context) ([]ObjectInfo, error)
	// PingContext checks that the backing location is reachable.
	PingContext(ctx context.Context) error
}

// New builds the backend selected by cfg.Backend.
func New(cfg config.StorageConfig, minioCfg config.MinIOConfig) (Storage, error) {
	switch cfg.Backend {
	case "", "local":
		return NewLocal(cfg.UploadDir)
	case "minio", "s3":
		return NewMinIO(minioCfg)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
