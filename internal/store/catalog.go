package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// CatalogStore persists the product catalog as a JSON object keyed by
// product id. Files are written whole via tmp+rename so a concurrent reader
// never observes a partial write.
type CatalogStore struct {
	path string
}

func NewCatalogStore(path string) *CatalogStore {
	return &CatalogStore{path: path}
}

// Load reads the catalog file. A missing file is an empty catalog, not an
// error.
func (s *CatalogStore) Load() (map[string]*Product, error) {
	catalog := make(map[string]*Product)
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return catalog, nil
		}
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var recs map[string]productRecord
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", s.path, err)
	}
	for _, rec := range recs {
		p := fromRecord(rec)
		catalog[p.ID] = p
	}
	return catalog, nil
}

func (s *CatalogStore) Save(catalog map[string]*Product) error {
	recs := make(map[string]productRecord, len(catalog))
	for id, p := range catalog {
		recs[id] = p.toRecord()
	}
	data, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	return writeFileAtomic(s.path, data)
}

// writeFileAtomic replaces path wholesale via tmp+rename. Any failure is
// tagged ErrPersistence so callers can report it as its own kind.
func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w: %w", filepath.Dir(path), ErrPersistence, err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w: %w", tmp, ErrPersistence, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace %s: %w: %w", path, ErrPersistence, err)
	}
	return nil
}
