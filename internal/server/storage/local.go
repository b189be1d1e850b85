package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/gophcatalog/internal/filex"
)

// LocalURLPrefix is where the HTTP server mounts LocalStore.Handler.
const LocalURLPrefix = "/uploads/"

type LocalStore struct {
	dir string
}

// NewLocalStore creates dir if needed.
func NewLocalStore(dir string) (*LocalStore, error) {
	abs, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, err
	}
	return &LocalStore{dir: abs}, nil
}

func (s *LocalStore) Dir() string { return s.dir }

func (s *LocalStore) Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error) {
	if !validName(name) {
		return "", fmt.Errorf("invalid object name %q", name)
	}
	if _, err := filex.WriteFileAtomic(s.dir, name, r); err != nil {
		return "", err
	}
	return LocalURLPrefix + name, nil
}

func (s *LocalStore) Delete(ctx context.Context, url string) error {
	if !strings.HasPrefix(url, LocalURLPrefix) {
		return nil
	}
	name := path.Base(url)
	if !validName(name) {
		return nil
	}

	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", name, err)
	}
	return nil
}

// Handler serves stored files; mount it at LocalURLPrefix.
func (s *LocalStore) Handler() http.Handler {
	return http.StripPrefix(LocalURLPrefix, http.FileServer(http.Dir(s.dir)))
}

func validName(name string) bool {
	return name != "" && name != "." && name != ".." &&
		!strings.ContainsAny(name, `/\`) && !strings.HasPrefix(name, ".")
}
