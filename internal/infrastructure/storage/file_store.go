package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore persists each namespace as a JSON file under a data directory.
// Writes go through a temp file and rename so a crash mid-write never leaves
// a truncated snapshot.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(namespace string) string {
	return filepath.Join(s.dir, namespace+".json")
}

func (s *FileStore) Read(namespace string, v any) error {
	data, err := os.ReadFile(s.path(namespace))
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNamespaceNotFound
		}
		return fmt.Errorf("read namespace %s: %w", namespace, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode namespace %s: %w", namespace, err)
	}
	return nil
}

func (s *FileStore) Write(namespace string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode namespace %s: %w", namespace, err)
	}

	tmp, err := os.CreateTemp(s.dir, namespace+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", namespace, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write namespace %s: %w", namespace, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file for %s: %w", namespace, err)
	}

	if err := os.Rename(tmpName, s.path(namespace)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace namespace %s: %w", namespace, err)
	}
	return nil
}

func (s *FileStore) Delete(namespace string) error {
	err := os.Remove(s.path(namespace))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete namespace %s: %w", namespace, err)
	}
	return nil
}
