package testdata

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/jask/jaskshop/internal/store"
)

// SampleCatalog returns a mixed catalog of n products for tests and demo
// seeding. Roughly a third each of base, physical and digital kinds.
func SampleCatalog(n int) map[string]*store.Product {
	names := []string{"Notebook", "Desk Lamp", "Ebook Reader", "Coffee Beans", "Album Download", "Poster", "Keyboard", "Font Pack"}
	catalog := make(map[string]*store.Product, n)
	for i := 0; i < n; i++ {
		p := &store.Product{
			ID:         fmt.Sprintf("P%03d", i+1),
			Kind:       store.KindBase,
			Name:       fmt.Sprintf("%s %d", names[rand.Intn(len(names))], i+1),
			PriceCents: int64(rand.Intn(20000) + 500),
			Stock:      rand.Intn(50) + 1,
		}
		switch i % 3 {
		case 1:
			p.Kind = store.KindPhysical
			p.WeightKg = float64(rand.Intn(40)+1) / 10
		case 2:
			p.Kind = store.KindDigital
			p.DownloadLink = fmt.Sprintf("https://downloads.example.com/%s", uuid.NewString())
		}
		catalog[p.ID] = p
	}
	return catalog
}
