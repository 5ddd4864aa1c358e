package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/jaskshop/internal/store"
)

func searchFixture(t *testing.T) *InventoryService {
	t.Helper()
	f := newFixture(t, nil)
	for _, p := range []store.Product{
		{ID: "KB1", Kind: store.KindBase, Name: "Mechanical Keyboard", PriceCents: 8999, Stock: 4},
		{ID: "LAMP", Kind: store.KindBase, Name: "Desk Lamp", PriceCents: 2500, Stock: 9},
	} {
		_, err := f.inv.Register(p)
		require.NoError(t, err)
	}
	return f.inv
}

func TestFindEmptyQueryReturnsAll(t *testing.T) {
	t.Parallel()

	inv := searchFixture(t)
	require.Len(t, inv.Find(""), 5)
	require.Len(t, inv.Find("   "), 5)
}

func TestFindSubstring(t *testing.T) {
	t.Parallel()

	inv := searchFixture(t)

	got := inv.Find("lamp")
	require.NotEmpty(t, got)
	require.Equal(t, "LAMP", got[0].ID)

	// id matches count too
	got = inv.Find("kb1")
	require.NotEmpty(t, got)
	require.Equal(t, "KB1", got[0].ID)
}

func TestFindFuzzyToleratesTypos(t *testing.T) {
	t.Parallel()

	inv := searchFixture(t)

	got := inv.Find("desk lmap")
	require.NotEmpty(t, got)
	require.Equal(t, "LAMP", got[0].ID)
}

func TestFindNoMatch(t *testing.T) {
	t.Parallel()

	inv := searchFixture(t)
	require.Empty(t, inv.Find("zzzzzzzzzzzz"))
}
