// Package storage abstracts where uploaded blobs live. The application
// only ever stores keys and URLs; the provider decides the backend.
package storage

import (
	"context"
	"io"
)

// Provider stores and removes uploaded files. Put returns the retrievable
// URL for the stored blob; Delete must be safe to call for compensation
// after a failed database write.
type Provider interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	URL(key string) string
}
