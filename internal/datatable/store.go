package datatable

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"cadtools/internal/domain"
)

const fileExt = ".xml"

var namePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,128}$`)

// FileStore keeps one XML file per table under a directory.
type FileStore struct {
	dir string
}

// NewFileStore creates a FileStore rooted at dir, creating the directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating table directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(name string) (string, error) {
	if !namePattern.MatchString(name) {
		return "", domain.ErrInvalidTableName
	}
	return filepath.Join(s.dir, name+fileExt), nil
}

func (s *FileStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("FileStore.List: %w", err)
	}
	names := []string{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), fileExt) {
			continue
		}
		name := strings.TrimSuffix(e.Name(), fileExt)
		if namePattern.MatchString(name) {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names, nil
}

// Load returns the stored table; a table that was never saved loads empty.
func (s *FileStore) Load(ctx context.Context, name string) (*Table, error) {
	p, err := s.path(name)
	if err != nil {
		return nil, err
	}
	t, err := ReadFile(p, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrTableReadFailed, name, err)
	}
	t.Name = name
	return t, nil
}

func (s *FileStore) Save(ctx context.Context, t *Table) error {
	p, err := s.path(t.Name)
	if err != nil {
		return err
	}
	if err := WriteFile(p, t); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrTableWriteFailed, t.Name, err)
	}
	return nil
}

func (s *FileStore) Delete(ctx context.Context, name string) error {
	p, err := s.path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.ErrTableNotFound
		}
		return fmt.Errorf("%w: %s: %v", domain.ErrTableWriteFailed, name, err)
	}
	return nil
}
