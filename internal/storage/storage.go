// Package storage holds the object store behind uploaded document files.
// Implementations stream content and never touch local disk.
package storage

import (
	"context"
	"errors"
	"io"
	"net/textproto"
	"time"
)

// ErrNotFound is returned by Get when no object exists under the key.
var ErrNotFound = errors.New("object not found")

// OriginalFilenameMeta is the user metadata key holding the uploaded file name.
const OriginalFilenameMeta = "Original-Filename"

// canonicalMetadata returns md with header-canonical keys, the form S3 reports
// user metadata in.
func canonicalMetadata(md map[string]string) map[string]string {
	if len(md) == 0 {
		return md
	}
	out := make(map[string]string, len(md))
	for k, v := range md {
		out[textproto.CanonicalMIMEHeaderKey(k)] = v
	}
	return out
}

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known; if unknown, set to -1 and the implementation
// will chunk as supported by the backend.
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

// OriginalFilename returns the uploaded file name, or "" when none was recorded.
func (o ObjectInfo) OriginalFilename() string {
	return canonicalMetadata(o.Metadata)[OriginalFilenameMeta]
}

// Storage is an S3-compatible object store.
type Storage interface {
	// Put uploads an object under the given key using the provided reader and options.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get retrieves an object's content as a streaming reader alongside its info.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Delete removes an object by key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Ping checks that the bucket is reachable.
	Ping(ctx context.Context) error
}
