package catalog

import "context"

// Store loads and saves a whole catalog.
type Store interface {
	Load(ctx context.Context) (*Catalog, error)
	Save(ctx context.Context, c *Catalog) error
}

// FileStore keeps the catalog in a photos.json file.
type FileStore struct {
	Path string
}

// NewFileStore returns a store backed by path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

func (s *FileStore) Load(ctx context.Context) (*Catalog, error) {
	return LoadFile(s.Path)
}

func (s *FileStore) Save(ctx context.Context, c *Catalog) error {
	return c.WriteFile(s.Path)
}
