package store

// Kind discriminates product variants at serialization boundaries.
type Kind string

const (
	KindBase     Kind = "product"
	KindPhysical Kind = "physical"
	KindDigital  Kind = "digital"
)

// Product is a sellable catalog entry. ID is immutable once registered;
// Stock only moves through DecreaseStock/IncreaseStock so it can never go
// negative. WeightKg is meaningful for KindPhysical, DownloadLink for
// KindDigital.
type Product struct {
	ID         string
	Kind       Kind
	Name       string
	PriceCents int64
	Stock      int

	WeightKg     float64
	DownloadLink string
}

// DecreaseStock reserves n units. Succeeds only for 0 < n <= Stock; stock is
// untouched on failure.
func (p *Product) DecreaseStock(n int) error {
	if n <= 0 || n > p.Stock {
		return ErrInsufficientStock
	}
	p.Stock -= n
	return nil
}

// IncreaseStock returns n units to availability. Non-positive n is a no-op.
func (p *Product) IncreaseStock(n int) {
	if n > 0 {
		p.Stock += n
	}
}

type productRecord struct {
	Type         string  `json:"type"`
	ProductID    string  `json:"product_id"`
	Name         string  `json:"name"`
	PriceCents   int64   `json:"price"`
	Stock        int     `json:"quantity_available"`
	WeightKg     float64 `json:"weight,omitempty"`
	DownloadLink string  `json:"download_link,omitempty"`
}

func (p *Product) toRecord() productRecord {
	rec := productRecord{
		Type:       string(p.Kind),
		ProductID:  p.ID,
		Name:       p.Name,
		PriceCents: p.PriceCents,
		Stock:      p.Stock,
	}
	switch p.Kind {
	case KindPhysical:
		rec.WeightKg = p.WeightKg
	case KindDigital:
		rec.DownloadLink = p.DownloadLink
	}
	return rec
}

// fromRecord rebuilds the variant from its stored tag. Records written by
// older versions carry no tag; those and unrecognized tags load as the base
// kind.
func fromRecord(rec productRecord) *Product {
	p := &Product{
		ID:         rec.ProductID,
		Kind:       KindBase,
		Name:       rec.Name,
		PriceCents: rec.PriceCents,
		Stock:      rec.Stock,
	}
	switch Kind(rec.Type) {
	case KindPhysical:
		p.Kind = KindPhysical
		p.WeightKg = rec.WeightKg
	case KindDigital:
		p.Kind = KindDigital
		p.DownloadLink = rec.DownloadLink
	}
	return p
}
