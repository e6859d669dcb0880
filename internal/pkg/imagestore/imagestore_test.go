package imagestore

import (
	"bytes"
	"context"
	"image"
	"image/color"
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

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newStore(t *testing.T, maxBytes int64) *DiskStore {
	t.Helper()

	s, err := NewDiskStore(filepath.Join(t.TempDir(), "images"), "uploads/images/", maxBytes)
	require.NoError(t, err)
	return s
}

func TestDiskStore_SaveAndDelete(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, 1<<20)

	url, err := s.Save(ctx, bytes.NewReader(pngBytes(t)))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/images/"))
	assert.True(t, strings.HasSuffix(url, ".png"))
	assert.True(t, s.Owns(url))

	stored := filepath.Join(s.Dir(), filepath.Base(url))
	_, err = os.Stat(stored)
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, url))
	_, err = os.Stat(stored)
	assert.ErrorIs(t, err, os.ErrNotExist)

	assert.NoError(t, s.Delete(ctx, url), "deleting twice is harmless")
}

func TestDiskStore_SaveRejects(t *testing.T) {
	ctx := context.Background()

	_, err := newStore(t, 1<<20).Save(ctx, strings.NewReader("#!/bin/sh\necho pwned\n"))
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, err = newStore(t, 16).Save(ctx, bytes.NewReader(pngBytes(t)))
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestDiskStore_DeleteForeignURL(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, 1<<20)

	outside := filepath.Join(filepath.Dir(s.Dir()), "keep.txt")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0o600))

	assert.ErrorIs(t, s.Delete(ctx, "https://cdn.example.com/a.png"), ErrNotOwned)
	assert.ErrorIs(t, s.Delete(ctx, "/uploads/images/"), ErrNotOwned)

	// Traversal collapses to a file name inside the store.
	assert.NoError(t, s.Delete(ctx, "/uploads/images/../keep.txt"))
	_, err := os.Stat(outside)
	assert.NoError(t, err)
}
