package persist

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"GroceryHub/internal/grocery"
)

// FileStore keeps the document in a single local JSON file. It is the
// always-available fallback behind the remote stores.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

func (s *FileStore) Name() string { return "file:" + s.Path }

func (s *FileStore) Ping(ctx context.Context) error {
	dir := filepath.Dir(s.Path)
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	return nil
}

func (s *FileStore) Load(ctx context.Context) (grocery.Document, bool, error) {
	b, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		return grocery.Document{}, false, nil
	}
	if err != nil {
		return grocery.Document{}, false, err
	}

	doc, err := DecodeDocument(b)
	if err != nil {
		return grocery.Document{}, false, err
	}
	return doc, true, nil
}

func (s *FileStore) Save(ctx context.Context, doc grocery.Document) error {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	// Write-then-rename so a crash mid-write cannot truncate the only copy.
	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.Path)
}
