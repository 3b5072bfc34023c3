package storage

import (
	"context"
	"fmt"
	"strconv"
	"time"

	gcs "cloud.google.com/go/storage"
)

const uploadTimeout = 50 * time.Second

// GCSUploader implements Uploader on top of Google Cloud Storage.
type GCSUploader struct {
	client *gcs.Client
}

// NewGCSUploader creates an uploader using application default credentials.
func NewGCSUploader(ctx context.Context) (*GCSUploader, error) {
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &GCSUploader{client: client}, nil
}

// Upload writes the object under a timestamp-prefixed name so repeated
// filenames never collide, and returns the public URL.
func (u *GCSUploader) Upload(ctx context.Context, bucket, filename, contentType string, content []byte) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	objectName := strconv.FormatInt(time.Now().UnixNano(), 10) + "_" + filename

	wc := u.client.Bucket(bucket).Object(objectName).NewWriter(ctx)
	wc.ContentType = contentType
	if _, err := wc.Write(content); err != nil {
		_ = wc.Close()
		return "", fmt.Errorf("failed to write object %s: %w", objectName, err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize object %s: %w", objectName, err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, objectName), nil
}

// Close releases the underlying client.
func (u *GCSUploader) Close() error {
	return u.client.Close()
}
