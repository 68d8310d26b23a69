// Package storage abstracts the object store behind a small interface so the
// quote pipeline and admin media endpoints can run against GCS, Cloudflare R2
// or a fake in tests.
package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ObjectStore persists raw bytes under caller-chosen keys and resolves
// public URLs for stored objects.
type ObjectStore interface {
	// Upload stores the object and returns its key (path) on success.
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	// PublicURL resolves the public URL for a stored object key.
	PublicURL(key string) string
	// KeyFromURL recovers the object key from one of this store's public
	// URLs.
	KeyFromURL(url string) (string, error)
	// Delete removes objects best effort, returning the first error seen.
	Delete(ctx context.Context, keys []string) error
}

// ObjectKey builds a collision-resistant key: prefix, creation time and a
// random component, keeping the original extension.
func ObjectKey(prefix, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".bin"
	}
	return fmt.Sprintf("%s/%d-%s%s", prefix, time.Now().UTC().Unix(), uuid.New().String(), ext)
}
