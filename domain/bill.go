package domain

import "github.com/shopspring/decimal"

// Bill is an immutable record of a completed sale. Bills are never updated
// or deleted once committed.
type Bill struct {
	ID           int64           `db:"id" json:"id"`
	Reference    string          `db:"reference" json:"reference"`
	CustomerName *string         `db:"customer_name" json:"customer_name,omitempty"`
	StoreName    *string         `db:"store_name" json:"store_name,omitempty"`
	TotalAmount  decimal.Decimal `db:"total_amount" json:"total_amount"`
	CreatedAt    string          `db:"created_at" json:"created_at"`
	Lines        []BillLine      `json:"lines"`
}

// BillLine carries name and price snapshots copied at sale time, so a later
// edit to the item never alters a historical bill.
type BillLine struct {
	ID        int64           `db:"id" json:"-"`
	BillID    int64           `db:"bill_id" json:"-"`
	ItemID    int64           `db:"item_id" json:"item_id"`
	ItemName  string          `db:"item_name" json:"item_name"`
	UnitPrice decimal.Decimal `db:"unit_price" json:"unit_price"`
	Quantity  decimal.Decimal `db:"quantity" json:"quantity"`
	LineTotal decimal.Decimal `db:"line_total" json:"line_total"`
}

// CartLine is one requested (item, quantity) pair. Carts are ephemeral
// caller input and are never persisted.
type CartLine struct {
	ItemID   int64           `json:"item_id"`
	Quantity decimal.Decimal `json:"quantity"`
}

type Cart struct {
	Lines        []CartLine `json:"items"`
	CustomerName *string    `json:"customer_name,omitempty"`
	StoreName    *string    `json:"store_name,omitempty"`
}
