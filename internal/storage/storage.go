// Package storage holds the article image store. Objects are addressed by a flat filename;
// implementations live side by side (local directory, S3-compatible bucket).
package storage

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"blogapi/internal/model"
)

// DefaultImageContent is the placeholder served for articles without an uploaded image.
//
//go:embed default.png
var DefaultImageContent []byte

var (
	// ErrNotFound is returned by Get when the named image does not exist.
	ErrNotFound = errors.New("image not found")
	// ErrInvalidName is returned for names that are empty or reach outside the store.
	ErrInvalidName = errors.New("invalid image name")
)

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known; if unknown, set to -1.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about a stored image.
type ObjectInfo struct {
	Key          string
	Size         int64
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is the image store used by the article service.
type Storage interface {
	// Put stores the content of r under name.
	Put(ctx context.Context, name string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get opens a stored image. It returns ErrNotFound when the image is absent.
	Get(ctx context.Context, name string) (io.ReadCloser, ObjectInfo, error)
	// Delete removes an image. Deleting the default image or a missing image is a no-op.
	Delete(ctx context.Context, name string) error
}

// GenerateName builds a collision-resistant name for an uploaded file:
// articulo-<unix millis>-<8 hex chars>-<original base name>.
func GenerateName(original string, now time.Time) string {
	base := path.Base(strings.ReplaceAll(original, `\`, "/"))
	if base == "." || base == ".." || base == "/" {
		base = "archivo"
	}
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("articulo-%d-%s-%s", now.UnixMilli(), suffix, base)
}

// CheckName rejects names that are not a single flat path element.
// Dots inside a name ("foto..png") are allowed; only "." and ".." themselves are refused.
func CheckName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, "/\\\x00") {
		return ErrInvalidName
	}
	return nil
}

// isProtected reports whether Delete must leave the object alone.
func isProtected(name string) bool {
	return name == "" || name == model.DefaultImage
}

// defaultImageReader returns a fresh reader over the embedded placeholder.
func defaultImageReader() *bytes.Reader {
	return bytes.NewReader(DefaultImageContent)
}
