package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogapi/internal/model"
)

func newTestLocal(t *testing.T) (string, Storage) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "articulos")
	st, err := NewLocal(dir)
	require.NoError(t, err)
	return dir, st
}

func TestLocal_PutGet(t *testing.T) {
	ctx := context.Background()
	dir, st := newTestLocal(t)

	info, err := st.Put(ctx, "foo.png", strings.NewReader("png-bytes"), PutObjectOptions{Size: -1})
	require.NoError(t, err)
	assert.Equal(t, "foo.png", info.Key)
	assert.Equal(t, int64(9), info.Size)
	assert.Equal(t, "image/png", info.ContentType)
	assert.FileExists(t, filepath.Join(dir, "foo.png"))

	rc, got, err := st.Get(ctx, "foo.png")
	require.NoError(t, err)
	defer rc.Close()
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(body))
	assert.Equal(t, int64(9), got.Size)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "temporary upload files must not linger")
}

func TestLocal_GetMissing(t *testing.T) {
	_, st := newTestLocal(t)

	rc, _, err := st.Get(context.Background(), "missing.png")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, rc)
}

func TestLocal_InvalidNames(t *testing.T) {
	ctx := context.Background()
	_, st := newTestLocal(t)

	for _, name := range []string{"", "..", "../secret.png", "a/b.png", `a\b.png`} {
		_, _, err := st.Get(ctx, name)
		assert.ErrorIs(t, err, ErrInvalidName, "get %q", name)

		_, err = st.Put(ctx, name, strings.NewReader("x"), PutObjectOptions{})
		assert.ErrorIs(t, err, ErrInvalidName, "put %q", name)
	}
}

func TestLocal_Delete(t *testing.T) {
	ctx := context.Background()
	dir, st := newTestLocal(t)

	for _, name := range []string{"bar.jpg", model.DefaultImage} {
		_, err := st.Put(ctx, name, strings.NewReader("data"), PutObjectOptions{})
		require.NoError(t, err)
	}

	require.NoError(t, st.Delete(ctx, "bar.jpg"))
	assert.NoFileExists(t, filepath.Join(dir, "bar.jpg"))

	// sentinel survives
	require.NoError(t, st.Delete(ctx, model.DefaultImage))
	assert.FileExists(t, filepath.Join(dir, model.DefaultImage))

	// missing file is a no-op
	assert.NoError(t, st.Delete(ctx, "bar.jpg"))
	assert.NoError(t, st.Delete(ctx, ""))
}

func TestLocal_DeleteFailure(t *testing.T) {
	ctx := context.Background()
	dir, st := newTestLocal(t)

	// a non-empty directory cannot be removed with os.Remove
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "busy.png", "inner"), 0o755))

	err := st.Delete(ctx, "busy.png")
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestNewLocal_RequiresDir(t *testing.T) {
	_, err := NewLocal("")
	assert.Error(t, err)
}

func TestNewLocal_SeedsDefaultImage(t *testing.T) {
	ctx := context.Background()
	_, st := newTestLocal(t)

	rc, info, err := st.Get(ctx, model.DefaultImage)
	require.NoError(t, err)
	defer rc.Close()
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, DefaultImageContent, body)
	assert.Equal(t, "image/png", info.ContentType)
}

func TestNewLocal_KeepsExistingDefaultImage(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, model.DefaultImage), []byte("custom"), 0o644))

	_, err := NewLocal(dir)
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(dir, model.DefaultImage))
	require.NoError(t, err)
	assert.Equal(t, "custom", string(got))
}

func TestGenerateName(t *testing.T) {
	now := time.UnixMilli(1700000000123)

	a := GenerateName("foto.png", now)
	b := GenerateName("foto.png", now)

	assert.True(t, strings.HasPrefix(a, "articulo-1700000000123-"))
	assert.True(t, strings.HasSuffix(a, "-foto.png"))
	assert.NotEqual(t, a, b)
	assert.NoError(t, CheckName(a))

	assert.True(t, strings.HasSuffix(GenerateName("../../etc/passwd.png", now), "-passwd.png"))
	assert.True(t, strings.HasSuffix(GenerateName(`C:\fotos\gato.gif`, now), "-gato.gif"))
	assert.True(t, strings.HasSuffix(GenerateName("", now), "-archivo"))
	assert.NoError(t, CheckName(GenerateName("..png", now)))

	dotted := GenerateName("foto..png", now)
	assert.True(t, strings.HasSuffix(dotted, "-foto..png"))
	assert.NoError(t, CheckName(dotted))
	assert.Equal(t, "image/png", contentTypeOf(dotted, ""))
	assert.True(t, strings.HasSuffix(GenerateName("..", now), "-archivo"))
}

func TestCheckName(t *testing.T) {
	for _, name := range []string{"foto.png", "foto..png", "mi foto.png", "canción.png"} {
		assert.NoError(t, CheckName(name), name)
	}
	for _, name := range []string{"", ".", "..", "a/b.png", `a\b.png`, "a\x00.png"} {
		assert.ErrorIs(t, CheckName(name), ErrInvalidName, name)
	}
}
