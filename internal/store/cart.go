package store

import (
	"encoding/json"
	"fmt"
	"os"
)

// CartLine reserves a quantity of one catalog product. The catalog owns the
// product; the line only references it by id. Quantity is always positive
// while the line exists; a line driven to zero is removed by its owner.
type CartLine struct {
	ProductID string
	Quantity  int
}

// SetQuantity replaces the reserved quantity. Negative values are rejected.
func (l *CartLine) SetQuantity(v int) error {
	if v < 0 {
		return ErrInvalidQuantity
	}
	l.Quantity = v
	return nil
}

// Subtotal is price times quantity. Pure.
func (l CartLine) Subtotal(p *Product) int64 {
	return p.PriceCents * int64(l.Quantity)
}

type cartRecord struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// CartStore persists cart lines as a JSON list of {product_id, quantity}
// pairs, in the order given.
type CartStore struct {
	path string
}

func NewCartStore(path string) *CartStore {
	return &CartStore{path: path}
}

// Load reads cart lines and resolves each against the catalog. Lines whose
// product has since left the catalog are dropped, not reported, as are lines
// with a non-positive quantity (a hand-edited file must not smuggle them in).
// A missing file is an empty cart.
func (s *CartStore) Load(catalog map[string]*Product) ([]CartLine, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read cart: %w", err)
	}
	var recs []cartRecord
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("parse cart %s: %w", s.path, err)
	}
	var lines []CartLine
	for _, rec := range recs {
		if _, ok := catalog[rec.ProductID]; !ok {
			continue // stale reference
		}
		if rec.Quantity <= 0 {
			continue
		}
		lines = append(lines, CartLine{ProductID: rec.ProductID, Quantity: rec.Quantity})
	}
	return lines, nil
}

func (s *CartStore) Save(lines []CartLine) error {
	recs := make([]cartRecord, 0, len(lines))
	for _, l := range lines {
		recs = append(recs, cartRecord{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	data, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	return writeFileAtomic(s.path, data)
}
