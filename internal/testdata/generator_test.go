package testdata

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/jaskshop/internal/store"
)

func TestSampleCatalog(t *testing.T) {
	t.Parallel()

	catalog := SampleCatalog(9)
	require.Len(t, catalog, 9)

	kinds := map[store.Kind]int{}
	for id, p := range catalog {
		require.Equal(t, id, p.ID)
		require.NotEmpty(t, p.Name)
		require.Positive(t, p.PriceCents)
		require.Positive(t, p.Stock)
		kinds[p.Kind]++
		switch p.Kind {
		case store.KindPhysical:
			require.Positive(t, p.WeightKg)
		case store.KindDigital:
			require.NotEmpty(t, p.DownloadLink)
		}
	}
	require.Equal(t, 3, kinds[store.KindBase])
	require.Equal(t, 3, kinds[store.KindPhysical])
	require.Equal(t, 3, kinds[store.KindDigital])
}
