package billing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrEmptyCart means the cart had no lines. Not retryable.
var ErrEmptyCart = errors.New("cart has no lines")

// ErrTransactionFailed wraps infrastructure failures during commit. Nothing
// was persisted, so resubmitting the identical cart is safe.
var ErrTransactionFailed = errors.New("bill transaction failed")

// InvalidQuantityError reports a non-positive quantity after duplicate cart
// lines were merged.
type InvalidQuantityError struct {
	ItemID   int64
	Quantity decimal.Decimal
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("invalid quantity %s for item %d: must be greater than zero", e.Quantity, e.ItemID)
}

// StockChangedError means stock that passed the optimistic pre-check was
// depleted by a concurrent sale before this commit acquired the row lock.
// The caller must re-plan from fresh data rather than retry blindly.
type StockChangedError struct {
	ItemID    int64
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *StockChangedError) Error() string {
	return fmt.Sprintf("stock changed for item %d during commit: %s available, %s requested",
		e.ItemID, e.Available, e.Requested)
}
