package storage

import (
	"context"
	"io"
	"time"
)

// FileStorage abstracts where uploaded files land. The only producer
// today is the absence-justification upload; local disk backs it in
// development and the interface leaves room for an object store.
type FileStorage interface {
	// Upload stores the file under path and returns the stored key
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// Delete removes a stored file. Missing files are not an error.
	Delete(ctx context.Context, path string) error

	// GetURL resolves a stored key to a client-reachable URL. Local
	// storage ignores expiry.
	GetURL(ctx context.Context, path string, expiry time.Duration) (string, error)

	// Exists reports whether a key is present
	Exists(ctx context.Context, path string) (bool, error)
}
