package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/hack-pad/hackpadfs"
	"github.com/hack-pad/hackpadfs/mem"
)

// snapshotExt is appended to keys to form file names, so List can tell
// snapshot files apart from anything else living in the directory.
const snapshotExt = ".ink"

// FileStore persists snapshots as one file per key on a hackpadfs
// filesystem.
type FileStore struct {
	fsys hackpadfs.FS
	dir  string
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a store rooted at dir on fsys, creating the
// directory if needed. dir follows fs conventions: slash-separated and
// unrooted, "." for the filesystem root.
func NewFileStore(fsys hackpadfs.FS, dir string) (*FileStore, error) {
	if dir == "" {
		dir = "."
	}
	if dir != "." {
		if err := hackpadfs.MkdirAll(fsys, dir, 0o755); err != nil {
			return nil, fmt.Errorf("%w: create root %q: %v", ErrUnavailable, dir, err)
		}
	}
	return &FileStore{fsys: fsys, dir: dir}, nil
}

// NewMemStore creates a FileStore over a fresh in-memory filesystem.
// Nothing survives the process; it exists for tests and previews.
func NewMemStore() (*FileStore, error) {
	fsys, err := mem.NewFS()
	if err != nil {
		return nil, fmt.Errorf("%w: init memory fs: %v", ErrUnavailable, err)
	}
	return &FileStore{fsys: fsys, dir: "."}, nil
}

// Save writes data under key, replacing any previous value.
func (s *FileStore) Save(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	name, err := s.keyPath(key)
	if err != nil {
		return err
	}
	f, err := hackpadfs.OpenFile(s.fsys, name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("%w: open %q: %v", ErrUnavailable, name, err)
	}
	w, ok := f.(io.Writer)
	if !ok {
		f.Close()
		return fmt.Errorf("%w: filesystem is read-only", ErrUnavailable)
	}
	if _, err := w.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("%w: write %q: %v", ErrUnavailable, name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close %q: %v", ErrUnavailable, name, err)
	}
	return nil
}

// Load returns the data stored under key.
func (s *FileStore) Load(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name, err := s.keyPath(key)
	if err != nil {
		return nil, err
	}
	f, err := s.fsys.Open(name)
	if err != nil {
		if errors.Is(err, hackpadfs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, key)
		}
		return nil, fmt.Errorf("%w: open %q: %v", ErrUnavailable, name, err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("%w: read %q: %v", ErrUnavailable, name, err)
	}
	return data, nil
}

// Delete removes key. Absent keys are ignored.
func (s *FileStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	name, err := s.keyPath(key)
	if err != nil {
		return err
	}
	if err := hackpadfs.Remove(s.fsys, name); err != nil {
		if errors.Is(err, hackpadfs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("%w: remove %q: %v", ErrUnavailable, name, err)
	}
	return nil
}

// List returns all stored keys in lexical order.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := hackpadfs.ReadDir(s.fsys, s.dir)
	if err != nil {
		return nil, fmt.Errorf("%w: list %q: %v", ErrUnavailable, s.dir, err)
	}
	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, snapshotExt) {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, snapshotExt))
	}
	sort.Strings(keys)
	return keys, nil
}

// Close releases the backing filesystem if it holds resources.
func (s *FileStore) Close() error {
	if c, ok := s.fsys.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// keyPath maps a key to its file path. Keys must be plain names; path
// separators would let one key escape the store's directory.
func (s *FileStore) keyPath(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("store: invalid key %q", key)
	}
	return path.Join(s.dir, key+snapshotExt), nil
}
