package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storelite/ims/domain"
	"storelite/ims/internal/api"
	"storelite/ims/internal/billing"
	"storelite/ims/internal/catalog"
	"storelite/ims/internal/migrations"

	_ "modernc.org/sqlite"
)

func newTestRouter(t *testing.T) (http.Handler, *sqlx.DB) {
	t.Helper()
	db, err := sqlx.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	t.Cleanup(func() { _ = db.Close() })

	migrations.Run(db)

	logger := log.New(io.Discard, "", 0)
	svc := billing.NewService(logger, db, catalog.NewStore(db))
	return api.New(db, svc, "test_secret").Router(), db
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func registerUser(t *testing.T, router http.Handler, email, role string) string {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/auth/register", "", map[string]string{
		"username": "user-" + role,
		"email":    email,
		"password": "secret123",
		"role":     role,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func createItem(t *testing.T, router http.Handler, token, name, category, price, stock string) int64 {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/items", token, map[string]any{
		"name":       name,
		"category":   category,
		"unit":       "pc",
		"unit_price": price,
		"stock_qty":  stock,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.ID
}

func TestHealth(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthRequired(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/items", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginFlow(t *testing.T) {
	router, _ := newTestRouter(t)
	registerUser(t, router, "owner@store.test", "admin")

	rec := doJSON(t, router, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "owner@store.test",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "owner@store.test",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestItemCRUDRoleEnforcement(t *testing.T) {
	router, _ := newTestRouter(t)
	admin := registerUser(t, router, "admin@store.test", "admin")
	cashier := registerUser(t, router, "cashier@store.test", "cashier")

	rec := doJSON(t, router, http.MethodPost, "/items", cashier, map[string]any{
		"name": "X", "category": "grocery", "unit_price": "1.00", "stock_qty": "1",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code, "cashiers cannot create items")

	id := createItem(t, router, admin, "Rice 1kg", "Grocery", "160.00", "10")
	assert.NotZero(t, id)

	rec = doJSON(t, router, http.MethodGet, "/items?query=rice", cashier, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var items []domain.Item
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "grocery", items[0].Category, "category stored in canonical form")
}

func TestCreateItemValidation(t *testing.T) {
	router, _ := newTestRouter(t)
	admin := registerUser(t, router, "admin@store.test", "admin")

	rec := doJSON(t, router, http.MethodPost, "/items", admin, map[string]any{
		"name": "Bad", "category": "electronics", "unit_price": "1.00", "stock_qty": "1",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "unknown category must be rejected")

	rec = doJSON(t, router, http.MethodPost, "/items", admin, map[string]any{
		"name": "Bad", "category": "grocery", "unit_price": "1.005", "stock_qty": "1",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "prices have at most 2 decimal places")

	rec = doJSON(t, router, http.MethodPost, "/items", admin, map[string]any{
		"name": "Bad", "category": "grocery", "unit_price": "-1.00", "stock_qty": "1",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "negative prices rejected")
}

func TestCreateBillEndToEnd(t *testing.T) {
	router, _ := newTestRouter(t)
	admin := registerUser(t, router, "admin@store.test", "admin")
	cashier := registerUser(t, router, "cashier@store.test", "cashier")
	itemID := createItem(t, router, admin, "Rice 1kg", "grocery", "160.00", "10")

	rec := doJSON(t, router, http.MethodPost, "/bills", cashier, map[string]any{
		"items":         []map[string]any{{"item_id": itemID, "quantity": 3}},
		"customer_name": "Walk-in",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var bill domain.Bill
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bill))
	assert.NotEmpty(t, bill.Reference)
	require.Len(t, bill.Lines, 1)
	assert.True(t, bill.TotalAmount.Equal(decimal.RequireFromString("480.00")))

	// Monetary amounts cross the wire as exact decimal strings, not floats.
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	assert.True(t, bytes.HasPrefix(raw["total_amount"], []byte(`"`)), "total_amount must be a JSON string, got %s", raw["total_amount"])

	rec = doJSON(t, router, http.MethodGet, "/items?query=rice", cashier, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var items []domain.Item
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.True(t, items[0].StockQty.Equal(decimal.RequireFromString("7")))
}

func TestCreateBillErrorMapping(t *testing.T) {
	router, _ := newTestRouter(t)
	admin := registerUser(t, router, "admin@store.test", "admin")
	itemID := createItem(t, router, admin, "Milk 1L", "dairy", "80.00", "2")

	t.Run("empty cart", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/bills", admin, map[string]any{"items": []any{}})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "empty_cart")
	})

	t.Run("unknown item", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/bills", admin, map[string]any{
			"items": []map[string]any{{"item_id": 999, "quantity": 1}},
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "item_not_found")
	})

	t.Run("insufficient stock", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/bills", admin, map[string]any{
			"items": []map[string]any{{"item_id": itemID, "quantity": 5}},
		})
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "insufficient_stock")
	})

	t.Run("invalid quantity", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/bills", admin, map[string]any{
			"items": []map[string]any{{"item_id": itemID, "quantity": 0}},
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "invalid_quantity")
	})
}

func TestListAndGetBills(t *testing.T) {
	router, _ := newTestRouter(t)
	admin := registerUser(t, router, "admin@store.test", "admin")
	itemID := createItem(t, router, admin, "Bread", "bakery", "45.00", "10")

	rec := doJSON(t, router, http.MethodPost, "/bills", admin, map[string]any{
		"items": []map[string]any{{"item_id": itemID, "quantity": 2}},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created domain.Bill
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doJSON(t, router, http.MethodGet, "/bills", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var bills []domain.Bill
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bills))
	require.Len(t, bills, 1)
	require.Len(t, bills[0].Lines, 1)
	assert.True(t, bills[0].TotalAmount.Equal(decimal.RequireFromString("90.00")))

	rec = doJSON(t, router, http.MethodGet, "/bills/1", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var bill domain.Bill
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bill))
	assert.Equal(t, created.Reference, bill.Reference)

	rec = doJSON(t, router, http.MethodGet, "/bills/999", admin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/bills?start_date=bogus", admin, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeactivateItemHidesFromSale(t *testing.T) {
	router, _ := newTestRouter(t)
	admin := registerUser(t, router, "admin@store.test", "admin")
	itemID := createItem(t, router, admin, "Retired", "other", "5.00", "10")

	rec := doJSON(t, router, http.MethodDelete, "/bills", admin, nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/items/1", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/bills", admin, map[string]any{
		"items": []map[string]any{{"item_id": itemID, "quantity": 1}},
	})
	assert.Equal(t, http.StatusNotFound, rec.Code, "deactivated items sell like missing items")

	rec = doJSON(t, router, http.MethodGet, "/items", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var items []domain.Item
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	assert.Empty(t, items, "soft-deleted items are hidden from listings")
}

func TestLowStockReport(t *testing.T) {
	router, _ := newTestRouter(t)
	admin := registerUser(t, router, "admin@store.test", "admin")
	createItem(t, router, admin, "Scarce", "grocery", "10.00", "2")
	createItem(t, router, admin, "Plenty", "grocery", "10.00", "50")

	rec := doJSON(t, router, http.MethodGet, "/reports/low-stock?threshold=5", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var rows []struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "Scarce", rows[0].Name)
}

func TestDailySalesReport(t *testing.T) {
	router, _ := newTestRouter(t)
	admin := registerUser(t, router, "admin@store.test", "admin")
	itemID := createItem(t, router, admin, "Eggs", "grocery", "12.00", "30")

	rec := doJSON(t, router, http.MethodPost, "/bills", admin, map[string]any{
		"items": []map[string]any{{"item_id": itemID, "quantity": 10}},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/reports/sales/daily", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var report struct {
		Revenue   float64 `json:"revenue"`
		BillCount int64   `json:"bill_count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, int64(1), report.BillCount)
	assert.InDelta(t, 120.0, report.Revenue, 0.001)
}
