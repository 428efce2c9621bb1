package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"storelite/ims/domain"
	"storelite/ims/internal/billing"
	"storelite/ims/internal/catalog"
)

type ctxKey string

const (
	ctxUserID ctxKey = "userID"
	ctxRole   ctxKey = "role"
)

// Handler bundles dependencies for HTTP handlers.
type Handler struct {
	db      *sqlx.DB
	billing *billing.Service
	secret  string
}

// New constructs a Handler.
func New(db *sqlx.DB, billingSvc *billing.Service, secret string) *Handler {
	return &Handler{db: db, billing: billingSvc, secret: secret}
}

// Router wires up the HTTP API.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"}, // Change "*" to a list of allowed domains (e.g., ["http://localhost:3000"])
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.health)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.register)
		r.Post("/login", h.login)
		r.Group(func(protected chi.Router) {
			protected.Use(h.authMiddleware)
			protected.Post("/reset-password", h.resetPassword)
		})
	})

	r.Group(func(pr chi.Router) {
		pr.Use(h.authMiddleware)

		pr.Route("/items", func(r chi.Router) {
			r.Get("/", h.listItems)
			r.Post("/", h.createItem)
			r.Put("/{id}", h.updateItem)
			r.Post("/{id}/stock", h.updateStock)
			r.Delete("/{id}", h.deactivateItem)
		})

		pr.Route("/bills", func(r chi.Router) {
			r.Post("/", h.createBill)
			r.Get("/", h.listBills)
			r.Get("/{id}", h.getBill)
		})

		pr.Route("/reports", func(r chi.Router) {
			r.Get("/sales/daily", h.dailySales)
			r.Get("/sales/monthly", h.monthlySales)
			r.Get("/low-stock", h.lowStock)
		})
	})

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Authentication helpers

type authClaims struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func (h *Handler) generateToken(userID int64, role string) (string, error) {
	claims := authClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.secret))
}

func (h *Handler) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			respondError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		tokenString := strings.TrimSpace(header[len("Bearer "):])
		token, err := jwt.ParseWithClaims(tokenString, &authClaims{}, func(token *jwt.Token) (interface{}, error) {
			if token.Method != jwt.SigningMethodHS256 {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(h.secret), nil
		})
		if err != nil || !token.Valid {
			respondError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		claims, ok := token.Claims.(*authClaims)
		if !ok {
			respondError(w, http.StatusUnauthorized, "invalid token claims")
			return
		}
		ctx := context.WithValue(r.Context(), ctxUserID, claims.UserID)
		ctx = context.WithValue(ctx, ctxRole, claims.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) requireRole(w http.ResponseWriter, r *http.Request, allowed ...string) bool {
	role := r.Context().Value(ctxRole)
	if role == nil {
		respondError(w, http.StatusUnauthorized, "missing role")
		return false
	}
	current := role.(string)
	for _, allowedRole := range allowed {
		if current == allowedRole {
			return true
		}
	}
	respondError(w, http.StatusForbidden, "insufficient permissions")
	return false
}

// Auth Handlers

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" || req.Role == "" {
		respondError(w, http.StatusBadRequest, "username, email, password and role are required")
		return
	}

	if req.Role != "admin" && req.Role != "cashier" {
		respondError(w, http.StatusBadRequest, "role must be admin or cashier")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to secure password")
		return
	}

	var userID int64
	err = h.db.QueryRowx(
		h.db.Rebind(`INSERT INTO users (username, email, password, role) VALUES (?, ?, ?, ?) RETURNING id`),
		req.Username, strings.ToLower(req.Email), hashed, req.Role).Scan(&userID)
	if err != nil {
		if strings.Contains(err.Error(), "unique constraint") || strings.Contains(err.Error(), "UNIQUE constraint") || strings.Contains(err.Error(), "duplicate key") {
			respondError(w, http.StatusConflict, "email already exists")
		} else {
			respondError(w, http.StatusInternalServerError, "db error: "+err.Error())
		}
		return
	}

	token, err := h.generateToken(userID, req.Role)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to generate token")
		return
	}

	respondJSON(w, http.StatusCreated, authResponse{Token: token, User: domain.User{
		ID:       userID,
		Username: req.Username,
		Email:    strings.ToLower(req.Email),
		Role:     req.Role,
	}})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var user domain.User
	err := h.db.Get(&user,
		h.db.Rebind(`SELECT id, username, email, password, role FROM users WHERE email = ?`),
		strings.ToLower(req.Email))
	if err != nil {
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := h.generateToken(user.ID, user.Role)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to generate token")
		return
	}

	user.Password = ""
	respondJSON(w, http.StatusOK, authResponse{Token: token, User: user})
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		NewPassword string `json:"new_password"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if payload.NewPassword == "" {
		respondError(w, http.StatusBadRequest, "new_password is required")
		return
	}
	uid := r.Context().Value(ctxUserID).(int64)
	hashed, err := bcrypt.GenerateFromPassword([]byte(payload.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to secure password")
		return
	}
	if _, err := h.db.Exec(h.db.Rebind(`UPDATE users SET password = ? WHERE id = ?`), hashed, uid); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to update password")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "password updated"})
}

// Item handlers

type itemRequest struct {
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Unit      string          `json:"unit"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	StockQty  decimal.Decimal `json:"stock_qty"`
}

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	sqlQuery := `SELECT id, name, category, unit, unit_price, stock_qty, is_active, created_at, updated_at
		FROM items WHERE is_active = TRUE`
	args := []any{}
	if query != "" {
		sqlQuery += ` AND LOWER(name) LIKE LOWER(?)`
		args = append(args, "%"+query+"%")
	}
	sqlQuery += ` ORDER BY name LIMIT 50`

	items := []domain.Item{}
	if err := h.db.Select(&items, h.db.Rebind(sqlQuery), args...); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to list items")
		return
	}
	respondJSON(w, http.StatusOK, items)
}

func (h *Handler) createItem(w http.ResponseWriter, r *http.Request) {
	if !h.requireRole(w, r, "admin") {
		return
	}
	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	category, err := catalog.NormalizeCategory(req.Category)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := validateMoney("unit_price", req.UnitPrice); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}
	if msg := validateQuantity("stock_qty", req.StockQty); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}
	unit := strings.TrimSpace(req.Unit)
	if unit == "" {
		unit = "pc"
	}

	var id int64
	err = h.db.QueryRowx(
		h.db.Rebind(`INSERT INTO items (name, category, unit, unit_price, stock_qty) VALUES (?, ?, ?, ?, ?) RETURNING id`),
		req.Name, category, unit, req.UnitPrice, req.StockQty).Scan(&id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to create item")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{"id": id, "name": req.Name, "category": category})
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	if !h.requireRole(w, r, "admin") {
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid item id")
		return
	}
	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	category, err := catalog.NormalizeCategory(req.Category)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := validateMoney("unit_price", req.UnitPrice); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}
	unit := strings.TrimSpace(req.Unit)
	if unit == "" {
		unit = "pc"
	}

	res, err := h.db.Exec(
		h.db.Rebind(`UPDATE items SET name = ?, category = ?, unit = ?, unit_price = ?, updated_at = CURRENT_TIMESTAMP
			WHERE id = ? AND is_active = TRUE`),
		req.Name, category, unit, req.UnitPrice, id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to update item")
		return
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		respondError(w, http.StatusNotFound, "item not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// updateStock sets an item's absolute stock level (restocking, stocktake
// corrections). Sale decrements never go through here; those happen only
// inside the billing transaction.
func (h *Handler) updateStock(w http.ResponseWriter, r *http.Request) {
	if !h.requireRole(w, r, "admin") {
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid item id")
		return
	}
	var payload struct {
		StockQty decimal.Decimal `json:"stock_qty"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := validateQuantity("stock_qty", payload.StockQty); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}
	res, err := h.db.Exec(
		h.db.Rebind(`UPDATE items SET stock_qty = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND is_active = TRUE`),
		payload.StockQty, id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to update stock")
		return
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		respondError(w, http.StatusNotFound, "item not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "stock updated"})
}

// deactivateItem soft-deletes: the row stays so historical bill lines keep a
// valid item reference.
func (h *Handler) deactivateItem(w http.ResponseWriter, r *http.Request) {
	if !h.requireRole(w, r, "admin") {
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid item id")
		return
	}
	res, err := h.db.Exec(
		h.db.Rebind(`UPDATE items SET is_active = FALSE, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND is_active = TRUE`), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to deactivate item")
		return
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		respondError(w, http.StatusNotFound, "item not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deactivated"})
}

// Bill handlers

func (h *Handler) createBill(w http.ResponseWriter, r *http.Request) {
	if !h.requireRole(w, r, "admin", "cashier") {
		return
	}

	var cart domain.Cart
	if err := json.NewDecoder(r.Body).Decode(&cart); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	bill, err := h.billing.CreateBill(r.Context(), cart)
	if err != nil {
		h.respondBillingError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, bill)
}

// respondBillingError maps the billing error taxonomy to HTTP statuses.
// Validation failures are 4xx and must not be retried as-is; only
// transaction failures are 5xx and safely retryable.
func (h *Handler) respondBillingError(w http.ResponseWriter, err error) {
	var invalidQty *billing.InvalidQuantityError
	var notFound *catalog.NotFoundError
	var stockChanged *billing.StockChangedError
	var insufficient *catalog.InsufficientStockError

	switch {
	case errors.Is(err, billing.ErrEmptyCart):
		respondJSON(w, http.StatusBadRequest, map[string]any{
			"error": err.Error(),
			"code":  "empty_cart",
		})
	case errors.As(err, &invalidQty):
		respondJSON(w, http.StatusBadRequest, map[string]any{
			"error":   err.Error(),
			"code":    "invalid_quantity",
			"item_id": invalidQty.ItemID,
		})
	case errors.As(err, &notFound):
		respondJSON(w, http.StatusNotFound, map[string]any{
			"error":   err.Error(),
			"code":    "item_not_found",
			"item_id": notFound.ItemID,
		})
	case errors.As(err, &stockChanged):
		respondJSON(w, http.StatusConflict, map[string]any{
			"error":     err.Error(),
			"code":      "stock_changed",
			"item_id":   stockChanged.ItemID,
			"available": stockChanged.Available,
			"requested": stockChanged.Requested,
		})
	case errors.As(err, &insufficient):
		respondJSON(w, http.StatusConflict, map[string]any{
			"error":     err.Error(),
			"code":      "insufficient_stock",
			"item_id":   insufficient.ItemID,
			"available": insufficient.Available,
			"requested": insufficient.Requested,
		})
	case errors.Is(err, billing.ErrTransactionFailed):
		respondJSON(w, http.StatusInternalServerError, map[string]any{
			"error":     "bill could not be committed, please retry",
			"code":      "transaction_failed",
			"retryable": true,
		})
	default:
		respondError(w, http.StatusInternalServerError, "unable to create bill")
	}
}

func (h *Handler) listBills(w http.ResponseWriter, r *http.Request) {
	var (
		args    []any
		clauses []string
	)

	startDate := strings.TrimSpace(r.URL.Query().Get("start_date"))
	if startDate != "" {
		if _, err := time.Parse("2006-01-02", startDate); err != nil {
			respondError(w, http.StatusBadRequest, "start_date must be in YYYY-MM-DD format")
			return
		}
		args = append(args, startDate)
		clauses = append(clauses, "DATE(created_at) >= ?")
	}

	endDate := strings.TrimSpace(r.URL.Query().Get("end_date"))
	if endDate != "" {
		if _, err := time.Parse("2006-01-02", endDate); err != nil {
			respondError(w, http.StatusBadRequest, "end_date must be in YYYY-MM-DD format")
			return
		}
		args = append(args, endDate)
		clauses = append(clauses, "DATE(created_at) <= ?")
	}

	query := `SELECT id, reference, customer_name, store_name, total_amount, created_at FROM bills`
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"

	var bills []domain.Bill
	if err := h.db.Select(&bills, h.db.Rebind(query), args...); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to fetch bills")
		return
	}
	if len(bills) == 0 {
		respondJSON(w, http.StatusOK, []domain.Bill{})
		return
	}

	ids := make([]int64, len(bills))
	for i, bill := range bills {
		ids[i] = bill.ID
	}

	linesQuery, linesArgs, err := sqlx.In(
		`SELECT id, bill_id, item_id, item_name, unit_price, quantity, line_total
			FROM bill_lines WHERE bill_id IN (?) ORDER BY id`, ids)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to prepare bill lines query")
		return
	}

	var lines []domain.BillLine
	if err := h.db.Select(&lines, h.db.Rebind(linesQuery), linesArgs...); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load bill lines")
		return
	}
	linesByBill := make(map[int64][]domain.BillLine)
	for _, line := range lines {
		linesByBill[line.BillID] = append(linesByBill[line.BillID], line)
	}

	for i := range bills {
		if billLines := linesByBill[bills[i].ID]; billLines != nil {
			bills[i].Lines = billLines
		} else {
			bills[i].Lines = []domain.BillLine{}
		}
	}

	respondJSON(w, http.StatusOK, bills)
}

func (h *Handler) getBill(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid bill id")
		return
	}

	var bill domain.Bill
	err = h.db.Get(&bill,
		h.db.Rebind(`SELECT id, reference, customer_name, store_name, total_amount, created_at FROM bills WHERE id = ?`), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "bill not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to load bill")
		return
	}

	bill.Lines = []domain.BillLine{}
	err = h.db.Select(&bill.Lines,
		h.db.Rebind(`SELECT id, bill_id, item_id, item_name, unit_price, quantity, line_total
			FROM bill_lines WHERE bill_id = ? ORDER BY id`), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load bill lines")
		return
	}

	respondJSON(w, http.StatusOK, bill)
}

// Reports

func (h *Handler) dailySales(w http.ResponseWriter, r *http.Request) {
	query := `SELECT COALESCE(SUM(CAST(total_amount AS REAL)), 0) AS revenue, COUNT(*) AS count
		FROM bills WHERE DATE(created_at) = CURRENT_DATE`
	if h.db.DriverName() == "sqlite" {
		query = `SELECT COALESCE(SUM(CAST(total_amount AS REAL)), 0) AS revenue, COUNT(*) AS count
			FROM bills WHERE DATE(created_at) = DATE('now')`
	}
	var revenue float64
	var count int64
	if err := h.db.QueryRow(query).Scan(&revenue, &count); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to fetch daily sales")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"revenue": revenue, "bill_count": count})
}

func (h *Handler) monthlySales(w http.ResponseWriter, r *http.Request) {
	query := `SELECT COALESCE(SUM(CAST(total_amount AS REAL)), 0) AS revenue, COUNT(*) AS count
		FROM bills WHERE DATE(created_at) >= date_trunc('month', CURRENT_DATE)`
	if h.db.DriverName() == "sqlite" {
		query = `SELECT COALESCE(SUM(CAST(total_amount AS REAL)), 0) AS revenue, COUNT(*) AS count
			FROM bills WHERE strftime('%Y-%m', created_at) = strftime('%Y-%m', 'now')`
	}
	var revenue float64
	var count int64
	if err := h.db.QueryRow(query).Scan(&revenue, &count); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to fetch monthly sales")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"revenue": revenue, "bill_count": count})
}

type lowStockRow struct {
	ID       int64           `db:"id" json:"id"`
	Name     string          `db:"name" json:"name"`
	Unit     string          `db:"unit" json:"unit"`
	StockQty decimal.Decimal `db:"stock_qty" json:"stock_qty"`
}

func (h *Handler) lowStock(w http.ResponseWriter, r *http.Request) {
	threshold, err := strconv.ParseFloat(r.URL.Query().Get("threshold"), 64)
	if err != nil || threshold < 0 {
		threshold = 5
	}
	items := []lowStockRow{}
	err = h.db.Select(&items,
		h.db.Rebind(`SELECT id, name, unit, stock_qty FROM items
			WHERE is_active = TRUE AND CAST(stock_qty AS REAL) <= ?
			ORDER BY CAST(stock_qty AS REAL) ASC, name`), threshold)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to fetch low stock items")
		return
	}
	respondJSON(w, http.StatusOK, items)
}

// Helpers

func validateMoney(field string, value decimal.Decimal) string {
	if value.IsNegative() {
		return field + " must not be negative"
	}
	if value.Exponent() < -2 {
		return field + " must have at most 2 decimal places"
	}
	return ""
}

func validateQuantity(field string, value decimal.Decimal) string {
	if value.IsNegative() {
		return field + " must not be negative"
	}
	if value.Exponent() < -3 {
		return field + " must have at most 3 decimal places"
	}
	return ""
}

func decodeJSON(r *http.Request, dest interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dest)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	_ = encoder.Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
