package media

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	return buf.Bytes()
}

func TestSaveStoresUnderGeneratedName(t *testing.T) {
	t.Parallel()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	path, err := store.Save("../../etc/passwd.png", bytes.NewReader(pngBytes(t)))
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(path, "/media/"), "got %s", path)
	name := strings.TrimPrefix(path, "/media/")
	assert.NotContains(t, name, "/", "stored name must not carry directories")
	assert.True(t, strings.HasSuffix(name, ".png"))

	_, err = os.Stat(filepath.Join(store.Root(), name))
	assert.NoError(t, err, "file should exist on disk")
}

func TestSaveGeneratesUniqueNames(t *testing.T) {
	t.Parallel()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	first, err := store.Save("same.png", bytes.NewReader(pngBytes(t)))
	require.NoError(t, err)
	second, err := store.Save("same.png", bytes.NewReader(pngBytes(t)))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestSaveRejectsNonImages(t *testing.T) {
	t.Parallel()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Save("page.html", strings.NewReader("<html></html>"))
	assert.ErrorIs(t, err, ErrNotAnImage)

	entries, err := os.ReadDir(store.Root())
	require.NoError(t, err)
	assert.Empty(t, entries, "rejected uploads must not be written")
}

func TestRemoveIgnoresMissingFiles(t *testing.T) {
	t.Parallel()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Remove("/media/never-existed.png"))

	path, err := store.Save("x.png", bytes.NewReader(pngBytes(t)))
	require.NoError(t, err)
	require.NoError(t, store.Remove(path))
	require.NoError(t, store.Remove(path), "second remove is a no-op")
}
