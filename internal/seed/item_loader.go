package seed

import (
	"encoding/csv"
	"io"
	"log"
	"os"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"storelite/ims/internal/catalog"
)

// LoadItems ingests a CSV catalog (name, category, unit, unit_price,
// stock_qty) into the items table, skipping names that already exist.
func LoadItems(db *sqlx.DB, csvPath string) {
	file, err := os.Open(csvPath)
	if err != nil {
		log.Printf("unable to load item catalog %s: %v", csvPath, err)
		return
	}
	defer file.Close()

	reader := csv.NewReader(file)
	// Skip header
	if _, err := reader.Read(); err != nil {
		log.Printf("unable to read item catalog header: %v", err)
		return
	}

	tx, err := db.Beginx()
	if err != nil {
		log.Printf("unable to start item seed transaction: %v", err)
		return
	}
	stmt, err := tx.Preparex(tx.Rebind(
		`INSERT INTO items (name, category, unit, unit_price, stock_qty) VALUES (?, ?, ?, ?, ?)`))
	if err != nil {
		log.Printf("unable to prepare item insert: %v", err)
		_ = tx.Rollback()
		return
	}
	defer stmt.Close()

	exists, err := tx.Preparex(tx.Rebind(`SELECT COUNT(*) FROM items WHERE LOWER(name) = LOWER(?)`))
	if err != nil {
		log.Printf("unable to prepare item lookup: %v", err)
		_ = tx.Rollback()
		return
	}
	defer exists.Close()

	rows := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("unable to read item row: %v", err)
			continue
		}
		if len(record) < 5 {
			continue
		}
		name := strings.TrimSpace(record[0])
		if name == "" {
			continue
		}
		category, err := catalog.NormalizeCategory(record[1])
		if err != nil {
			log.Printf("skipping item %s: %v", name, err)
			continue
		}
		unit := strings.TrimSpace(record[2])
		if unit == "" {
			unit = "pc"
		}
		price, err := decimal.NewFromString(strings.TrimSpace(record[3]))
		if err != nil || price.IsNegative() {
			log.Printf("skipping item %s: bad unit_price %q", name, record[3])
			continue
		}
		stock, err := decimal.NewFromString(strings.TrimSpace(record[4]))
		if err != nil || stock.IsNegative() {
			log.Printf("skipping item %s: bad stock_qty %q", name, record[4])
			continue
		}

		var count int
		if err := exists.Get(&count, name); err != nil {
			log.Printf("unable to check item %s: %v", name, err)
			continue
		}
		if count > 0 {
			continue
		}

		if _, err := stmt.Exec(name, category, unit, price, stock); err != nil {
			log.Printf("unable to insert item %s: %v", name, err)
		} else {
			rows++
		}
	}

	if err := tx.Commit(); err != nil {
		log.Printf("unable to commit item seed: %v", err)
	} else {
		log.Printf("seeded item catalog with %d rows", rows)
	}
}
