// Package storage keeps uploaded product images, either in a local directory
// served by the HTTP server or in an S3-compatible bucket.
package storage

import (
	"context"
	"io"
)

// ImageStore persists image objects under flat names and hands back the URL
// clients use to fetch them.
type ImageStore interface {
	Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error)
	// Delete removes the object a previous Save returned url for. Unknown
	// or foreign URLs are ignored.
	Delete(ctx context.Context, url string) error
}
