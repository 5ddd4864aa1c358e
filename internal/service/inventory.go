package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/jask/jaskshop/internal/database"
	"github.com/jask/jaskshop/internal/database/repository"
	"github.com/jask/jaskshop/internal/store"
)

// InventoryService owns the (catalog, cart) pair for the process lifetime.
// Every mutating operation first changes the in-memory maps, then persists
// the affected stores before reporting success. A persistence failure is
// returned to the caller even though memory already moved; the files catch
// up on the next successful save.
//
// A single mutex serializes operations: the TUI runs commands on their own
// goroutines, and the two maps plus the two files must change as one unit.
type InventoryService struct {
	Catalog *store.CatalogStore
	Cart    *store.CartStore
	Sales   *repository.SaleRepo // optional; nil disables checkout history

	mu       sync.Mutex
	products map[string]*store.Product
	lines    map[string]*store.CartLine
	order    []string // cart insertion order, drives save output
}

// NewInventory loads both stores and returns a ready service. Missing files
// mean an empty catalog or cart, not an error.
func NewInventory(catalog *store.CatalogStore, cart *store.CartStore, sales *repository.SaleRepo) (*InventoryService, error) {
	products, err := catalog.Load()
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	loaded, err := cart.Load(products)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	s := &InventoryService{
		Catalog:  catalog,
		Cart:     cart,
		Sales:    sales,
		products: products,
		lines:    make(map[string]*store.CartLine, len(loaded)),
	}
	for i := range loaded {
		l := loaded[i]
		s.lines[l.ProductID] = &l
		s.order = append(s.order, l.ProductID)
	}
	return s, nil
}

// AddToCart reserves qty units of a product into the cart. The quantity
// change and the stock decrement happen together or not at all.
func (s *InventoryService) AddToCart(productID string, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[productID]
	if !ok {
		return store.ErrNotFound
	}
	if err := p.DecreaseStock(qty); err != nil {
		return err
	}
	if l, ok := s.lines[productID]; ok {
		l.Quantity += qty
	} else {
		s.lines[productID] = &store.CartLine{ProductID: productID, Quantity: qty}
		s.order = append(s.order, productID)
	}
	return s.persistLocked()
}

// RemoveFromCart deletes a cart line and returns its units to stock.
func (s *InventoryService) RemoveFromCart(productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.lines[productID]
	if !ok {
		return store.ErrNotFound
	}
	s.products[productID].IncreaseStock(l.Quantity)
	s.dropLineLocked(productID)
	return s.persistLocked()
}

// UpdateQuantity sets a line to newQty, moving the difference between stock
// and reservation. newQty of zero removes the line; shrinking a line always
// succeeds.
func (s *InventoryService) UpdateQuantity(productID string, newQty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.lines[productID]
	if !ok {
		return store.ErrNotFound
	}
	if newQty < 0 {
		return store.ErrInvalidQuantity
	}
	p := s.products[productID]
	delta := newQty - l.Quantity
	if delta > 0 {
		if err := p.DecreaseStock(delta); err != nil {
			return err
		}
	} else if delta < 0 {
		p.IncreaseStock(-delta)
	}
	if err := l.SetQuantity(newQty); err != nil {
		return err
	}
	if newQty == 0 {
		s.dropLineLocked(productID)
	}
	return s.persistLocked()
}

// CartTotal sums line subtotals in cents. Pure read.
func (s *InventoryService) CartTotal() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalLocked()
}

// CheckoutResult summarizes a finalized sale.
type CheckoutResult struct {
	SaleID     string
	TotalCents int64
	Lines      int
}

// Checkout finalizes the sale: reserved units are consumed, not returned.
// The sale is recorded in the history ledger first (when configured), then
// the cart is cleared and the empty cart persisted. The catalog file is
// untouched; stock does not move on checkout.
func (s *InventoryService) Checkout(ctx context.Context) (CheckoutResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := CheckoutResult{TotalCents: s.totalLocked(), Lines: len(s.order)}
	if s.Sales != nil && len(s.order) > 0 {
		sale := repository.Sale{
			ID:         uuid.NewString(),
			TotalCents: res.TotalCents,
			CreatedAt:  database.Now(),
		}
		saleLines := make([]repository.SaleLine, 0, len(s.order))
		for _, id := range s.order {
			l := s.lines[id]
			p := s.products[id]
			saleLines = append(saleLines, repository.SaleLine{
				SaleID:         sale.ID,
				ProductID:      id,
				Name:           p.Name,
				Quantity:       l.Quantity,
				UnitPriceCents: p.PriceCents,
			})
		}
		if err := s.Sales.Insert(ctx, sale, saleLines); err != nil {
			return CheckoutResult{}, fmt.Errorf("record sale: %w", err)
		}
		res.SaleID = sale.ID
	}
	s.lines = make(map[string]*store.CartLine)
	s.order = nil
	if err := s.Cart.Save(nil); err != nil {
		return CheckoutResult{}, fmt.Errorf("save cart: %w", err)
	}
	return res, nil
}

// Register inserts a new product and persists the catalog. A blank id gets
// a generated one. The cart is unaffected.
func (s *InventoryService) Register(p store.Product) (store.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		p.ID = uuid.NewString()
	}
	if _, ok := s.products[p.ID]; ok {
		return store.Product{}, store.ErrDuplicateID
	}
	if p.PriceCents < 0 || p.Stock < 0 {
		return store.Product{}, store.ErrInvalidQuantity
	}
	switch p.Kind {
	case store.KindPhysical:
		if p.WeightKg <= 0 {
			return store.Product{}, fmt.Errorf("weight must be positive: %w", store.ErrInvalidQuantity)
		}
	case store.KindDigital, store.KindBase:
	default:
		p.Kind = store.KindBase
	}

	cp := p
	s.products[p.ID] = &cp
	if err := s.Catalog.Save(s.products); err != nil {
		return store.Product{}, fmt.Errorf("save catalog: %w", err)
	}
	return p, nil
}

// Products returns a catalog snapshot sorted by id.
func (s *InventoryService) Products() []store.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]store.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Product looks up one catalog entry.
func (s *InventoryService) Product(id string) (store.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return store.Product{}, false
	}
	return *p, true
}

// CartEntry pairs a line with its product for display.
type CartEntry struct {
	Line    store.CartLine
	Product store.Product
}

// CartEntries returns the cart in insertion order.
func (s *InventoryService) CartEntries() []CartEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]CartEntry, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, CartEntry{Line: *s.lines[id], Product: *s.products[id]})
	}
	return out
}

func (s *InventoryService) totalLocked() int64 {
	var total int64
	for _, id := range s.order {
		total += s.lines[id].Subtotal(s.products[id])
	}
	return total
}

func (s *InventoryService) dropLineLocked(productID string) {
	delete(s.lines, productID)
	for i, id := range s.order {
		if id == productID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// persistLocked writes catalog then cart. There is no cross-file
// transaction: a failure between the two writes leaves the files on
// different operations until the next successful save.
func (s *InventoryService) persistLocked() error {
	if err := s.Catalog.Save(s.products); err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}
	if err := s.Cart.Save(s.linesLocked()); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

func (s *InventoryService) linesLocked() []store.CartLine {
	out := make([]store.CartLine, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.lines[id])
	}
	return out
}
