package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"storelite/ims/domain"
)

// NotFoundError reports an item id with no active row. Soft-deleted items
// are indistinguishable from ids that never existed.
type NotFoundError struct {
	ItemID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("item %d not found", e.ItemID)
}

// InsufficientStockError reports a stock check failure, with the quantities
// involved so the caller can suggest a smaller order.
type InsufficientStockError struct {
	ItemID    int64
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for item %d: %s available, %s requested",
		e.ItemID, e.Available, e.Requested)
}

// Store reads item rows for pricing and applies stock decrements on behalf
// of the billing transaction. It is the only component that writes stock_qty.
type Store struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// FetchForPricing loads a consistent read of the items referenced by a cart.
// It takes no locks; the result is advisory and may be stale by commit time.
// If any requested id has no active row the whole call fails, so the caller
// sees one coherent error instead of a partial snapshot.
func (s *Store) FetchForPricing(ctx context.Context, itemIDs []int64) (map[int64]domain.ItemSnapshot, error) {
	if len(itemIDs) == 0 {
		return nil, errors.New("no item ids to fetch")
	}

	query, args, err := sqlx.In(
		`SELECT id, name, unit_price, stock_qty, is_active FROM items WHERE id IN (?)`, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("build pricing query: %w", err)
	}

	var rows []domain.ItemSnapshot
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("fetch items for pricing: %w", err)
	}

	snapshot := make(map[int64]domain.ItemSnapshot, len(rows))
	for _, row := range rows {
		if row.IsActive {
			snapshot[row.ID] = row
		}
	}
	for _, id := range itemIDs {
		if _, ok := snapshot[id]; !ok {
			return nil, &NotFoundError{ItemID: id}
		}
	}
	return snapshot, nil
}

// DecrementStock subtracts qty from an item's stock inside the given
// transaction. The read locks the row (SELECT ... FOR UPDATE on PostgreSQL),
// so the check-then-write is atomic with respect to concurrent commits; on
// SQLite the single-connection pool serializes transactions instead.
// Returns the post-decrement stock, or InsufficientStockError without
// writing anything.
func (s *Store) DecrementStock(ctx context.Context, tx *sqlx.Tx, itemID int64, qty decimal.Decimal) (decimal.Decimal, error) {
	lockQuery := `SELECT stock_qty FROM items WHERE id = ? AND is_active = TRUE`
	if s.db.DriverName() == "pgx" {
		lockQuery += " FOR UPDATE"
	}

	var stock decimal.Decimal
	if err := tx.GetContext(ctx, &stock, tx.Rebind(lockQuery), itemID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Decimal{}, &NotFoundError{ItemID: itemID}
		}
		return decimal.Decimal{}, fmt.Errorf("lock item %d: %w", itemID, err)
	}

	if stock.LessThan(qty) {
		return decimal.Decimal{}, &InsufficientStockError{ItemID: itemID, Available: stock, Requested: qty}
	}

	newStock := stock.Sub(qty)
	if _, err := tx.ExecContext(ctx,
		tx.Rebind(`UPDATE items SET stock_qty = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`),
		newStock, itemID); err != nil {
		return decimal.Decimal{}, fmt.Errorf("decrement stock for item %d: %w", itemID, err)
	}
	return newStock, nil
}
