// Package imagestore keeps uploaded images on local disk and serves them
// under a public URL prefix.
package imagestore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var (
	ErrTooLarge        = errors.New("image exceeds the maximum upload size")
	ErrUnsupportedType = errors.New("unsupported image type, allowed: jpeg, png, gif, webp")
	ErrNotOwned        = errors.New("image is not held by this store")
)

var allowedMimeTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

type DiskStore struct {
	dir        string
	publicPath string
	maxBytes   int64
}

// NewDiskStore creates dir when missing. publicPath is the URL prefix the
// directory is served under.
func NewDiskStore(dir, publicPath string, maxBytes int64) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll -> %w", err)
	}

	return &DiskStore{
		dir:        dir,
		publicPath: "/" + strings.Trim(publicPath, "/"),
		maxBytes:   maxBytes,
	}, nil
}

func (s *DiskStore) Dir() string {
	return s.dir
}

func (s *DiskStore) PublicPath() string {
	return s.publicPath
}

// Save stores the image read from r and returns its public URL.
func (s *DiskStore) Save(ctx context.Context, r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("io.ReadAll -> %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return "", ErrTooLarge
	}
	if err = ctx.Err(); err != nil {
		return "", err
	}

	mtype := mimetype.Detect(data)
	if !mimetype.EqualsAny(mtype.String(), allowedMimeTypes...) {
		return "", ErrUnsupportedType
	}

	name := uuid.NewString() + mtype.Extension()
	f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("os.OpenFile -> %w", err)
	}
	defer f.Close()

	if _, err = io.Copy(f, bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("io.Copy -> %w", err)
	}

	return path.Join(s.publicPath, name), nil
}

// Owns reports whether url points into this store.
func (s *DiskStore) Owns(url string) bool {
	return strings.HasPrefix(url, s.publicPath+"/") && s.fileName(url) != ""
}

// Delete removes the image behind url. Missing files are not an error.
func (s *DiskStore) Delete(_ context.Context, url string) error {
	if !s.Owns(url) {
		return ErrNotOwned
	}

	err := os.Remove(filepath.Join(s.dir, s.fileName(url)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("os.Remove -> %w", err)
	}

	return nil
}

func (s *DiskStore) fileName(url string) string {
	name := path.Base(strings.TrimPrefix(url, s.publicPath+"/"))
	if name == "." || name == "/" || name == ".." {
		return ""
	}
	return name
}
