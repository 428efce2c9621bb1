package billing

import (
	"github.com/shopspring/decimal"

	"storelite/ims/domain"
	"storelite/ims/internal/catalog"
)

// LineDraft is one priced line of a plan. Name and price are frozen copies
// of the snapshot, not references to live catalog rows.
type LineDraft struct {
	ItemID    int64
	ItemName  string
	UnitPrice decimal.Decimal
	Quantity  decimal.Decimal
	LineTotal decimal.Decimal
}

// Plan is a validated, fully priced bill awaiting commit.
type Plan struct {
	Lines      []LineDraft
	GrandTotal decimal.Decimal
}

// BuildPlan validates a cart against a catalog snapshot and prices it.
// Pure function of its inputs: no I/O, deterministic, unit-testable without
// a database.
//
// Duplicate lines for the same item are merged (quantities summed) before
// validation. Checks run in order and the first failure wins: positive
// quantities, then existence/active, then stock sufficiency. The stock check
// here is the optimistic pre-check; the authoritative one happens under lock
// at commit time.
func BuildPlan(lines []domain.CartLine, snapshot map[int64]domain.ItemSnapshot) (*Plan, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	quantities := make(map[int64]decimal.Decimal, len(lines))
	order := make([]int64, 0, len(lines))
	for _, line := range lines {
		if _, seen := quantities[line.ItemID]; !seen {
			order = append(order, line.ItemID)
		}
		quantities[line.ItemID] = quantities[line.ItemID].Add(line.Quantity)
	}

	for _, id := range order {
		if !quantities[id].IsPositive() {
			return nil, &InvalidQuantityError{ItemID: id, Quantity: quantities[id]}
		}
	}
	for _, id := range order {
		snap, ok := snapshot[id]
		if !ok || !snap.IsActive {
			return nil, &catalog.NotFoundError{ItemID: id}
		}
	}
	for _, id := range order {
		if quantities[id].GreaterThan(snapshot[id].StockQty) {
			return nil, &catalog.InsufficientStockError{
				ItemID:    id,
				Available: snapshot[id].StockQty,
				Requested: quantities[id],
			}
		}
	}

	plan := &Plan{Lines: make([]LineDraft, 0, len(order))}
	for _, id := range order {
		snap := snapshot[id]
		qty := quantities[id]
		// Banker's rounding per line; the grand total sums the already
		// rounded line totals so it is always reproducible from the
		// persisted lines.
		lineTotal := snap.UnitPrice.Mul(qty).RoundBank(2)
		plan.Lines = append(plan.Lines, LineDraft{
			ItemID:    id,
			ItemName:  snap.Name,
			UnitPrice: snap.UnitPrice,
			Quantity:  qty,
			LineTotal: lineTotal,
		})
		plan.GrandTotal = plan.GrandTotal.Add(lineTotal)
	}
	return plan, nil
}
