package filestorage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/santhosh-gopisetti/Pixperfect-backend/internal/common"
)

// LocalStorage stores blobs under a directory on local disk. Addresses
// are resolved against a public base URL; the api serves the directory
// statically under that base.
type LocalStorage struct {
	root      string
	publicURL string
}

func NewLocalStorage(root, publicURL string) (*LocalStorage, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, fmt.Errorf("local storage root is required")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Join(abs, "tmp"), 0o755); err != nil {
		return nil, err
	}
	return &LocalStorage{
		root:      abs,
		publicURL: strings.TrimRight(publicURL, "/"),
	}, nil
}

// Root returns the directory blobs live in, for static serving.
func (f *LocalStorage) Root() string {
	return f.root
}

// Put writes to a temp file and renames into place, so a concurrent
// reader never observes a partial blob.
func (f *LocalStorage) Put(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	key := newObjectKey(name)
	dst := filepath.Join(f.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(filepath.Join(f.root, "tmp"), "put-*")
	if err != nil {
		return "", err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", err
	}
	if err := os.Rename(tmpPath, dst); err != nil {
		os.Remove(tmpPath)
		return "", err
	}

	return key, nil
}

func (f *LocalStorage) ResolveURL(_ context.Context, key string) (string, error) {
	return f.publicURL + "/" + key, nil
}

func (f *LocalStorage) GetReader(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := f.pathFromKey(key)
	if err != nil {
		return nil, err
	}
	rc, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", common.ErrObjectNotFound, key)
	}
	return rc, err
}

// Delete removes a blob. An already-absent key is reported as
// common.ErrObjectNotFound so callers can log it apart from I/O failure.
func (f *LocalStorage) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := f.pathFromKey(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", common.ErrObjectNotFound, key)
		}
		return err
	}
	return nil
}

// pathFromKey rejects keys escaping the storage root.
func (f *LocalStorage) pathFromKey(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(f.root, clean), nil
}
