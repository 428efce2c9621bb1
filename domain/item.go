package domain

import "github.com/shopspring/decimal"

type Item struct {
	ID        int64           `db:"id" json:"id"`
	Name      string          `db:"name" json:"name"`
	Category  string          `db:"category" json:"category"`
	Unit      string          `db:"unit" json:"unit"`
	UnitPrice decimal.Decimal `db:"unit_price" json:"unit_price"`
	StockQty  decimal.Decimal `db:"stock_qty" json:"stock_qty"`
	IsActive  bool            `db:"is_active" json:"is_active"`
	CreatedAt string          `db:"created_at" json:"created_at,omitempty"`
	UpdatedAt string          `db:"updated_at" json:"updated_at,omitempty"`
}

// ItemSnapshot is the slice of an Item the billing engine prices against.
// It is a point-in-time copy; stock may change before commit.
type ItemSnapshot struct {
	ID        int64           `db:"id"`
	Name      string          `db:"name"`
	UnitPrice decimal.Decimal `db:"unit_price"`
	StockQty  decimal.Decimal `db:"stock_qty"`
	IsActive  bool            `db:"is_active"`
}
