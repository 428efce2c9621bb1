package billing

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"storelite/ims/domain"
	"storelite/ims/internal/catalog"
)

// Service turns carts into durable bills: plan against an unlocked snapshot
// for fast failure, then re-check stock under row locks inside a single
// all-or-nothing transaction.
type Service struct {
	db      *sqlx.DB
	catalog *catalog.Store
	logger  *log.Logger
}

func NewService(logger *log.Logger, db *sqlx.DB, cat *catalog.Store) *Service {
	return &Service{db: db, catalog: cat, logger: logger}
}

// CreateBill validates, prices and commits one cart. A bill row exists in
// storage if and only if every line's stock decrement succeeded and all
// writes committed together.
func (s *Service) CreateBill(ctx context.Context, cart domain.Cart) (*domain.Bill, error) {
	if len(cart.Lines) == 0 {
		return nil, ErrEmptyCart
	}

	ids := make([]int64, 0, len(cart.Lines))
	seen := make(map[int64]struct{}, len(cart.Lines))
	for _, line := range cart.Lines {
		if _, ok := seen[line.ItemID]; ok {
			continue
		}
		seen[line.ItemID] = struct{}{}
		ids = append(ids, line.ItemID)
	}

	snapshot, err := s.catalog.FetchForPricing(ctx, ids)
	if err != nil {
		return nil, err
	}

	plan, err := BuildPlan(cart.Lines, snapshot)
	if err != nil {
		return nil, err
	}

	return s.Commit(ctx, plan, cart.CustomerName, cart.StoreName)
}

// Commit executes a plan as a single transaction: re-check and decrement
// stock under row locks, then insert the bill header and line snapshots.
// Any failure rolls back everything; no partial bills are observable.
func (s *Service) Commit(ctx context.Context, plan *Plan, customerName, storeName *string) (*domain.Bill, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: begin: %v", ErrTransactionFailed, err)
	}
	defer tx.Rollback()

	// Lock rows in ascending item id across all callers so two commits
	// touching the same two items cannot deadlock.
	locked := make([]LineDraft, len(plan.Lines))
	copy(locked, plan.Lines)
	sort.Slice(locked, func(i, j int) bool { return locked[i].ItemID < locked[j].ItemID })

	for _, line := range locked {
		if _, err := s.catalog.DecrementStock(ctx, tx, line.ItemID, line.Quantity); err != nil {
			var insufficient *catalog.InsufficientStockError
			if errors.As(err, &insufficient) {
				return nil, &StockChangedError{
					ItemID:    insufficient.ItemID,
					Available: insufficient.Available,
					Requested: insufficient.Requested,
				}
			}
			var notFound *catalog.NotFoundError
			if errors.As(err, &notFound) {
				// Deactivated between plan and commit.
				return nil, notFound
			}
			return nil, fmt.Errorf("%w: %v", ErrTransactionFailed, err)
		}
	}

	bill := &domain.Bill{
		Reference:    uuid.NewString(),
		CustomerName: customerName,
		StoreName:    storeName,
		TotalAmount:  plan.GrandTotal,
		Lines:        make([]domain.BillLine, 0, len(plan.Lines)),
	}

	err = tx.QueryRowxContext(ctx,
		tx.Rebind(`INSERT INTO bills (reference, customer_name, store_name, total_amount)
			VALUES (?, ?, ?, ?) RETURNING id, created_at`),
		bill.Reference, customerName, storeName, bill.TotalAmount).
		Scan(&bill.ID, &bill.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: insert bill: %v", ErrTransactionFailed, err)
	}

	for _, line := range plan.Lines {
		var lineID int64
		err = tx.QueryRowxContext(ctx,
			tx.Rebind(`INSERT INTO bill_lines (bill_id, item_id, item_name, unit_price, quantity, line_total)
				VALUES (?, ?, ?, ?, ?, ?) RETURNING id`),
			bill.ID, line.ItemID, line.ItemName, line.UnitPrice, line.Quantity, line.LineTotal).
			Scan(&lineID)
		if err != nil {
			return nil, fmt.Errorf("%w: insert bill line for item %d: %v", ErrTransactionFailed, line.ItemID, err)
		}
		bill.Lines = append(bill.Lines, domain.BillLine{
			ID:        lineID,
			BillID:    bill.ID,
			ItemID:    line.ItemID,
			ItemName:  line.ItemName,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
			LineTotal: line.LineTotal,
		})
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: commit: %v", ErrTransactionFailed, err)
	}

	s.logger.Printf("bill %s committed: %d lines, total %s", bill.Reference, len(bill.Lines), bill.TotalAmount)
	return bill, nil
}
