// Package storage uploads pet photos to object storage.
package storage

import "context"

// Uploader stores a raw object in a bucket and returns its public URL.
// Upload failures are fatal for the request that triggered them; blobs
// uploaded earlier in the same batch are not rolled back.
type Uploader interface {
	Upload(ctx context.Context, bucket, filename, contentType string, content []byte) (string, error)
}
