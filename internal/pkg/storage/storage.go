// Package storage abstracts where uploaded media bytes live. The media
// service talks to this interface only, so a deployment can move from local
// disk to an object store without touching the upload flow.
package storage

import (
	"context"
	"io"
)

// Storage stores and retrieves blobs by relative path.
type Storage interface {
	// Save writes content at the relative path, creating parents as needed.
	Save(ctx context.Context, path string, content io.Reader) error

	// Get opens the blob at the relative path for reading.
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes the blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, path string) error
}
