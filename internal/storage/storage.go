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

// BlobStore persists uploaded attachment payloads and hands back the URL
// the frontend stores on the note.
type BlobStore interface {
	// Save writes the payload under a generated key derived from the
	// original filename and returns its public URL.
	Save(ctx context.Context, filename string, contentType string, r io.Reader, size int64) (string, error)
}

// objectKey builds a collision-free key that keeps the original extension
// so browsers infer the content type from the URL.
func objectKey(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("%d-%s%s", time.Now().UnixNano(), uuid.New().String()[:8], ext)
}
