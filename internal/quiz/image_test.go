package quiz

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadImage(t *testing.T) {
	t.Run("PNG", func(t *testing.T) {
		_, ext, err := ReadImage(bytes.NewReader(pngHeader))
		require.NoError(t, err)
		assert.Equal(t, ".png", ext)
	})

	t.Run("JPEG", func(t *testing.T) {
		jpeg := append([]byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10}, []byte("JFIF\x00")...)
		_, ext, err := ReadImage(bytes.NewReader(jpeg))
		require.NoError(t, err)
		assert.Equal(t, ".jpg", ext)
	})

	t.Run("Empty", func(t *testing.T) {
		_, _, err := ReadImage(bytes.NewReader(nil))
		assert.ErrorIs(t, err, ErrImageEmpty)
	})

	t.Run("NotAnImage", func(t *testing.T) {
		_, _, err := ReadImage(strings.NewReader("<html></html>"))
		assert.ErrorIs(t, err, ErrImageType)
	})

	t.Run("TooLarge", func(t *testing.T) {
		big := make([]byte, MaxImageBytes+10)
		copy(big, pngHeader)
		_, _, err := ReadImage(bytes.NewReader(big))
		assert.ErrorIs(t, err, ErrImageTooLarge)
	})
}

func TestLocalImageStore(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "covers")
	store := NewLocalImageStore(dir, "/uploads/")

	url, err := store.Save(ctx, bytes.NewReader(pngHeader))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	stored := filepath.Join(dir, filepath.Base(url))
	data, err := os.ReadFile(stored)
	require.NoError(t, err)
	assert.Equal(t, pngHeader, data)

	require.NoError(t, store.Delete(ctx, url))
	_, err = os.Stat(stored)
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, store.Delete(ctx, url), "deleting twice is not an error")
	assert.NoError(t, store.Delete(ctx, "https://cdn.example.com/elsewhere.png"))
}
