package repository

import (
	"context"
	"database/sql"

	"github.com/jask/jaskshop/internal/database"
)

// SaleRepo handles the sales-history ledger.
type SaleRepo struct {
	db *sql.DB
}

func NewSaleRepo(db *sql.DB) *SaleRepo { return &SaleRepo{db: db} }

// Insert records a sale and its lines in one transaction.
func (r *SaleRepo) Insert(ctx context.Context, sale Sale, lines []SaleLine) error {
	return database.WithTx(r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO sales(id, total, created_at) VALUES(?, ?, ?)`,
			sale.ID, sale.TotalCents, sale.CreatedAt)
		if err != nil {
			return err
		}
		for _, l := range lines {
			_, err := tx.ExecContext(ctx, `
			INSERT INTO sale_lines(sale_id, product_id, name, quantity, unit_price)
			VALUES(?, ?, ?, ?, ?)`,
				sale.ID, l.ProductID, l.Name, l.Quantity, l.UnitPriceCents)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// ListRecent returns the newest sales first.
func (r *SaleRepo) ListRecent(ctx context.Context, limit int) ([]Sale, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, total, created_at FROM sales ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Sale
	for rows.Next() {
		var s Sale
		if err := rows.Scan(&s.ID, &s.TotalCents, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Lines returns the line items of one sale.
func (r *SaleRepo) Lines(ctx context.Context, saleID string) ([]SaleLine, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT sale_id, product_id, name, quantity, unit_price
	FROM sale_lines WHERE sale_id = ? ORDER BY product_id`, saleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SaleLine
	for rows.Next() {
		var l SaleLine
		if err := rows.Scan(&l.SaleID, &l.ProductID, &l.Name, &l.Quantity, &l.UnitPriceCents); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
