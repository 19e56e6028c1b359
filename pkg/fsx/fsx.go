package fsx

import (
	"context"

	"github.com/redlaboral/portal/pkg/kernel"
)

// FileSystem abstracts binary object storage for uploads (candidate
// photos, CVs, company logos, service images). Paths are slash-separated
// keys relative to the storage root.
type FileSystem interface {
	// WriteFile stores data under path and returns its public URL
	WriteFile(ctx context.Context, path string, data []byte, contentType string) (kernel.BucketURL, error)

	// ReadFile retrieves the full content stored at path
	ReadFile(ctx context.Context, path string) ([]byte, error)

	// DeleteFile removes the object at path. Deleting a missing object
	// is not an error.
	DeleteFile(ctx context.Context, path string) error

	// Exists checks whether an object is stored at path
	Exists(ctx context.Context, path string) (bool, error)
}
