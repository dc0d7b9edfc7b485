// Package storage keeps uploaded media (logos, favicons, team images) in an
// S3-compatible bucket and turns object keys into client-facing URLs.
package storage

import (
	"context"
	"io"
	"time"
)

// MediaURLExpiry is how long a presigned media URL stays valid when no public
// base URL is configured.
const MediaURLExpiry = 7 * 24 * time.Hour

// PutObjectOptions describe an upload. Size is the exact byte count, or -1
// when unknown.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo is what the backend reports about a stored object.
type ObjectInfo struct {
	Key  string
	Size int64
	ETag string
}

// Storage stores media objects under caller-chosen keys. Keys are never
// overwritten; replacing media means writing a new key and deleting the old one.
type Storage interface {
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// PresignGet returns a time-limited URL that can be used to download the object without credentials.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
	// URL returns the absolute URL clients use to fetch key.
	URL(ctx context.Context, key string) (string, error)
}

// OptionalURL resolves key through s and returns nil for an empty key, which
// is how unset media fields are rendered.
func OptionalURL(ctx context.Context, s Storage, key string) (*string, error) {
	if key == "" {
		return nil, nil
	}
	u, err := s.URL(ctx, key)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
