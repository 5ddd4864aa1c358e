package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCatalogLoadMissingFile(t *testing.T) {
	t.Parallel()

	s := NewCatalogStore(filepath.Join(t.TempDir(), "catalog.json"))
	catalog, err := s.Load()
	require.NoError(t, err)
	require.Empty(t, catalog)
}

func TestCatalogRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "catalog.json")
	s := NewCatalogStore(path)

	catalog := map[string]*Product{
		"A": {ID: "A", Kind: KindBase, Name: "Mug", PriceCents: 500, Stock: 10},
		"B": {ID: "B", Kind: KindPhysical, Name: "Box", PriceCents: 250, Stock: 5, WeightKg: 1.2},
		"C": {ID: "C", Kind: KindDigital, Name: "Album", PriceCents: 999, Stock: 3, DownloadLink: "https://dl.example.com/c"},
	}
	require.NoError(t, s.Save(catalog))

	loaded, err := s.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 3)
	require.Equal(t, *catalog["A"], *loaded["A"])
	require.Equal(t, *catalog["B"], *loaded["B"])
	require.Equal(t, *catalog["C"], *loaded["C"])

	// empty catalog round-trips too
	require.NoError(t, s.Save(map[string]*Product{}))
	loaded, err = s.Load()
	require.NoError(t, err)
	require.Empty(t, loaded)
}

func TestCatalogLoadUnknownTagFallsBackToBase(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "catalog.json")
	data := `{
	  "X": {"type": "subscription", "product_id": "X", "name": "Odd", "price": 100, "quantity_available": 2},
	  "Y": {"product_id": "Y", "name": "Untagged", "price": 200, "quantity_available": 4}
	}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	loaded, err := NewCatalogStore(path).Load()
	require.NoError(t, err)
	require.Equal(t, KindBase, loaded["X"].Kind)
	require.Equal(t, KindBase, loaded["Y"].Kind)
	require.Equal(t, int64(200), loaded["Y"].PriceCents)
	require.Equal(t, 4, loaded["Y"].Stock)
}

func TestCatalogSaveReplacesWholeFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "catalog.json")
	s := NewCatalogStore(path)
	require.NoError(t, s.Save(map[string]*Product{"A": {ID: "A", Kind: KindBase, Name: "Mug", PriceCents: 500, Stock: 1}}))
	require.NoError(t, s.Save(map[string]*Product{"B": {ID: "B", Kind: KindBase, Name: "Pen", PriceCents: 100, Stock: 2}}))

	loaded, err := s.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	require.Contains(t, loaded, "B")

	_, err = os.Stat(path + ".tmp")
	require.True(t, os.IsNotExist(err), "tmp file should not linger")
}
