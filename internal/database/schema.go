package database

import (
	"context"
	"fmt"
)

// Schema bootstrap for the seven normalized relations. This is create-only
// (CREATE TABLE IF NOT EXISTS); evolving an existing schema is out of scope.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS product_categories (
		category_id   INTEGER PRIMARY KEY,
		category_name TEXT NOT NULL UNIQUE,
		description   TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS vendors (
		vendor_id   INTEGER PRIMARY KEY,
		vendor_name TEXT NOT NULL UNIQUE,
		address     TEXT,
		city        TEXT,
		state       TEXT,
		zip_code    TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		product_id        INTEGER PRIMARY KEY,
		product_name      TEXT NOT NULL,
		category_id       INTEGER NOT NULL REFERENCES product_categories(category_id),
		unit_of_measure   TEXT,
		location_code     TEXT,
		primary_vendor_id INTEGER REFERENCES vendors(vendor_id)
	)`,
	`CREATE TABLE IF NOT EXISTS customers (
		customer_id INTEGER PRIMARY KEY,
		first_name  TEXT,
		last_name   TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS inventory (
		product_id       INTEGER PRIMARY KEY REFERENCES products(product_id),
		quantity_on_hand INTEGER NOT NULL DEFAULT 0,
		reorder_level    INTEGER NOT NULL DEFAULT 10,
		max_stock_level  INTEGER NOT NULL DEFAULT 100
	)`,
	`CREATE TABLE IF NOT EXISTS purchase_orders (
		purchase_id      BIGSERIAL PRIMARY KEY,
		product_id       INTEGER NOT NULL REFERENCES products(product_id),
		vendor_id        INTEGER NOT NULL REFERENCES vendors(vendor_id),
		quantity_ordered INTEGER NOT NULL DEFAULT 0,
		unit_cost        NUMERIC(12,2) NOT NULL,
		purchase_date    DATE,
		status           TEXT NOT NULL DEFAULT 'received',
		load_id          UUID
	)`,
	`CREATE TABLE IF NOT EXISTS sales_transactions (
		transaction_id BIGSERIAL PRIMARY KEY,
		product_id     INTEGER NOT NULL REFERENCES products(product_id),
		customer_id    INTEGER REFERENCES customers(customer_id),
		quantity_sold  INTEGER NOT NULL DEFAULT 0,
		unit_price     NUMERIC(12,2) NOT NULL,
		sale_date      DATE,
		load_id        UUID
	)`,
	`CREATE INDEX IF NOT EXISTS idx_purchase_orders_product ON purchase_orders(product_id)`,
	`CREATE INDEX IF NOT EXISTS idx_sales_transactions_product ON sales_transactions(product_id)`,
	`CREATE INDEX IF NOT EXISTS idx_sales_transactions_customer ON sales_transactions(customer_id)`,
	`CREATE INDEX IF NOT EXISTS idx_sales_transactions_date ON sales_transactions(sale_date)`,
}

// EnsureSchema creates the normalized tables and indexes if they do not
// already exist.
func EnsureSchema(ctx context.Context, db DBTX) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
