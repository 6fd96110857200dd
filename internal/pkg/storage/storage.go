package storage

import (
	"context"
	"io"
)

// FileStorage keeps generated report files.
type FileStorage interface {
	// Upload stores file under path and returns the cleaned key
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	Download(ctx context.Context, path string) (io.ReadCloser, error)

	Delete(ctx context.Context, path string) error

	// GetURL returns the public URL of a stored key
	GetURL(ctx context.Context, path string) (string, error)
}
