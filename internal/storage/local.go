package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"

	"blogapi/internal/model"
)

// localStorage keeps images as plain files inside a single directory.
type localStorage struct {
	dir string
}

// NewLocal creates a directory-backed image store, creating the directory if needed.
// The default image is seeded when absent; an existing one is left as is.
func NewLocal(dir string) (Storage, error) {
	if dir == "" {
		return nil, fmt.Errorf("image directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create image directory: %w", err)
	}
	l := &localStorage{dir: dir}
	if err := l.seedDefault(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *localStorage) seedDefault() error {
	p := filepath.Join(l.dir, model.DefaultImage)
	if _, err := os.Stat(p); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat default image: %w", err)
	}
	if _, err := l.Put(context.Background(), model.DefaultImage, defaultImageReader(), PutObjectOptions{
		Size: int64(len(DefaultImageContent)),
	}); err != nil {
		return fmt.Errorf("seed default image: %w", err)
	}
	return nil
}

func (l *localStorage) path(name string) (string, error) {
	if err := CheckName(name); err != nil {
		return "", err
	}
	return filepath.Join(l.dir, name), nil
}

// Put writes to a temporary file in the same directory and renames it into place,
// so readers never observe a partially written image.
func (l *localStorage) Put(ctx context.Context, name string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error) {
	p, err := l.path(name)
	if err != nil {
		return ObjectInfo{}, err
	}
	if err := ctx.Err(); err != nil {
		return ObjectInfo{}, err
	}

	tmp, err := os.CreateTemp(l.dir, ".upload-*")
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("create temp file: %w", err)
	}
	n, err := io.Copy(tmp, r)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
		return ObjectInfo{}, fmt.Errorf("write image: %w", err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		_ = os.Remove(tmp.Name())
		return ObjectInfo{}, fmt.Errorf("commit image: %w", err)
	}

	st, err := os.Stat(p)
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("stat image: %w", err)
	}
	return ObjectInfo{
		Key:          name,
		Size:         n,
		ContentType:  contentTypeOf(name, opt.ContentType),
		LastModified: st.ModTime(),
		Metadata:     opt.Metadata,
	}, nil
}

// Get checks existence before opening so a missing file maps to ErrNotFound.
func (l *localStorage) Get(ctx context.Context, name string) (io.ReadCloser, ObjectInfo, error) {
	p, err := l.path(name)
	if err != nil {
		return nil, ObjectInfo{}, err
	}
	st, err := os.Stat(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ObjectInfo{}, ErrNotFound
		}
		return nil, ObjectInfo{}, fmt.Errorf("stat image: %w", err)
	}
	if st.IsDir() {
		return nil, ObjectInfo{}, ErrNotFound
	}
	f, err := os.Open(p)
	if err != nil {
		return nil, ObjectInfo{}, fmt.Errorf("open image: %w", err)
	}
	return f, ObjectInfo{
		Key:          name,
		Size:         st.Size(),
		ContentType:  contentTypeOf(name, ""),
		LastModified: st.ModTime(),
	}, nil
}

func (l *localStorage) Delete(ctx context.Context, name string) error {
	if isProtected(name) {
		return nil
	}
	p, err := l.path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove image: %w", err)
	}
	return nil
}

func contentTypeOf(name, declared string) string {
	if declared != "" {
		return declared
	}
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
