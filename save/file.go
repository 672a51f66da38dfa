package save

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileStore writes one YAML file per key under a base directory.
type FileStore struct {
	basePath string
}

func NewFileStore(basePath string) *FileStore {
	return &FileStore{basePath: basePath}
}

// FilePath returns the path for key.
func (f *FileStore) FilePath(key string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':':
			return '_'
		}
		return r
	}, key)
	return filepath.Join(f.basePath, name+".yaml")
}

func (f *FileStore) Load(key string) ([]byte, error) {
	data, err := os.ReadFile(f.FilePath(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("save: load %s: %w", key, err)
	}
	return data, nil
}

// Save writes to a temp file and renames it over the target.
func (f *FileStore) Save(key string, data []byte) error {
	if err := os.MkdirAll(f.basePath, 0o755); err != nil {
		return fmt.Errorf("save: mkdir %s: %w", f.basePath, err)
	}
	tmp, err := os.CreateTemp(f.basePath, "."+filepath.Base(f.FilePath(key))+".*")
	if err != nil {
		return fmt.Errorf("save: save %s: %w", key, err)
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(name)
		return fmt.Errorf("save: save %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return fmt.Errorf("save: save %s: %w", key, err)
	}
	if err := os.Rename(name, f.FilePath(key)); err != nil {
		os.Remove(name)
		return fmt.Errorf("save: save %s: %w", key, err)
	}
	return nil
}
