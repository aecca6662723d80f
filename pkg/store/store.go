// Package store loads and saves documents.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrNoPath is returned when saving a document that has no file name.
var ErrNoPath = errors.New("no file name")

// Store reads and writes whole documents.
type Store interface {
	Load(path string) ([]byte, error)
	Save(path string, data []byte) (int, error)
}

// FileStore keeps documents on the local file system.
type FileStore struct {
	Perm fs.FileMode
}

// Load returns the content of path. A missing file is reported with an
// error matching fs.ErrNotExist.
func (s FileStore) Load(path string) ([]byte, error) {
	if path == "" {
		return nil, ErrNoPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// Save writes data to a temporary file next to path and renames it into
// place. It returns the number of bytes written.
func (s FileStore) Save(path string, data []byte) (int, error) {
	if path == "" {
		return 0, ErrNoPath
	}
	perm := s.Perm
	if perm == 0 {
		perm = 0644
	}
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return 0, err
	}
	n, err := tmp.Write(data)
	if err == nil {
		err = tmp.Chmod(perm)
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(tmp.Name(), path)
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
		return 0, err
	}
	return n, nil
}
