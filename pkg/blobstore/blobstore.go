package blobstore

import "context"

// BlobRef identifies a stored object so it can be deleted without another
// lookup.
type BlobRef struct {
	Path string
	URL  string
}

// Store is the blob-storage capability the media pipeline runs against.
// Put returns the public URL of the written object.
type Store interface {
	Put(ctx context.Context, path string, data []byte, contentType string) (string, error)
	ListPrefix(ctx context.Context, prefix string) ([]BlobRef, error)
	Delete(ctx context.Context, path string) error
}
