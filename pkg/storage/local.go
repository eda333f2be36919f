// Package storage is the media-store collaborator: uploaded images go in,
// retrievable relative paths come out. The HTTP layer serves the root
// directory under /media/.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

type Store interface {
	Save(dir, filename string, r io.Reader) (string, error)
}

type LocalStore struct {
	root string
}

func NewLocalStore(root string) *LocalStore {
	return &LocalStore{root: root}
}

// Save writes the file under root/dir with a timestamp prefix to avoid
// collisions and returns the path relative to the store root.
func (s *LocalStore) Save(dir, filename string, r io.Reader) (string, error) {
	if err := os.MkdirAll(filepath.Join(s.root, dir), 0o755); err != nil {
		return "", err
	}

	name := fmt.Sprintf("%d_%s", time.Now().UnixNano(), filepath.Base(filename))
	rel := filepath.Join(dir, name)

	f, err := os.Create(filepath.Join(s.root, rel))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return rel, nil
}
