package migrations

import (
	"log"

	"github.com/jmoiron/sqlx"
)

// Run creates the database schema required for the IMS backend.
func Run(db *sqlx.DB) {
	schema := postgresSchema
	if db.DriverName() == "sqlite" {
		schema = sqliteSchema
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
	}
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		username TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		role TEXT NOT NULL,
		created_at TIMESTAMPTZ DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS items (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		unit TEXT NOT NULL DEFAULT 'pc',
		unit_price NUMERIC(12,2) NOT NULL CHECK (unit_price >= 0),
		stock_qty NUMERIC(12,3) NOT NULL DEFAULT 0 CHECK (stock_qty >= 0),
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ DEFAULT NOW(),
		updated_at TIMESTAMPTZ DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS bills (
		id SERIAL PRIMARY KEY,
		reference TEXT NOT NULL UNIQUE,
		customer_name TEXT,
		store_name TEXT,
		total_amount NUMERIC(12,2) NOT NULL,
		created_at TIMESTAMPTZ DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS bill_lines (
		id SERIAL PRIMARY KEY,
		bill_id INTEGER NOT NULL REFERENCES bills(id),
		item_id INTEGER NOT NULL REFERENCES items(id),
		item_name TEXT NOT NULL,
		unit_price NUMERIC(12,2) NOT NULL,
		quantity NUMERIC(12,3) NOT NULL,
		line_total NUMERIC(12,2) NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_bill_lines_bill_id ON bill_lines(bill_id);`,
}

// Decimal columns are TEXT on SQLite; values round-trip through
// shopspring/decimal without touching floating point.
var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		role TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`,
	`CREATE TABLE IF NOT EXISTS items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		unit TEXT NOT NULL DEFAULT 'pc',
		unit_price TEXT NOT NULL,
		stock_qty TEXT NOT NULL DEFAULT '0',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`,
	`CREATE TABLE IF NOT EXISTS bills (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		reference TEXT NOT NULL UNIQUE,
		customer_name TEXT,
		store_name TEXT,
		total_amount TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`,
	`CREATE TABLE IF NOT EXISTS bill_lines (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		bill_id INTEGER NOT NULL REFERENCES bills(id),
		item_id INTEGER NOT NULL REFERENCES items(id),
		item_name TEXT NOT NULL,
		unit_price TEXT NOT NULL,
		quantity TEXT NOT NULL,
		line_total TEXT NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_bill_lines_bill_id ON bill_lines(bill_id);`,
}
