package repository

import "time"

// Sale represents a finalized checkout.
type Sale struct {
	ID         string
	TotalCents int64
	CreatedAt  time.Time
}

// SaleLine represents one cart line consumed by a sale. Name and unit price
// are denormalized so history survives later catalog edits.
type SaleLine struct {
	SaleID         string
	ProductID      string
	Name           string
	Quantity       int
	UnitPriceCents int64
}
