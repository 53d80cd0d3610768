package ingest

import "database/sql"

// schema holds the catalog DDL. Both binaries ensure it on startup so a
// fresh database works without a separate migration step.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS merchants (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		network TEXT NOT NULL DEFAULT '',
		UNIQUE (name, network)
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id TEXT PRIMARY KEY,
		merchant_id TEXT NOT NULL REFERENCES merchants(id),
		external_id TEXT NOT NULL,
		category TEXT NOT NULL,
		brand TEXT,
		title TEXT NOT NULL,
		canonical_url TEXT,
		affiliate_url TEXT,
		image_url TEXT,
		currency TEXT NOT NULL DEFAULT 'USD',
		price_cents INT,
		sale_price_cents INT,
		stock TEXT NOT NULL DEFAULT 'unknown',
		last_seen_at TIMESTAMPTZ,
		UNIQUE (merchant_id, external_id)
	)`,
	`CREATE TABLE IF NOT EXISTS product_attributes (
		product_id TEXT PRIMARY KEY REFERENCES products(id) ON DELETE CASCADE,
		attrs JSONB NOT NULL DEFAULT '{}'
	)`,
	`CREATE TABLE IF NOT EXISTS click_events (
		id BIGSERIAL PRIMARY KEY,
		session_id TEXT,
		product_id TEXT,
		merchant_id TEXT,
		referrer_path TEXT,
		user_agent TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS products_category_idx ON products (category)`,
	`CREATE INDEX IF NOT EXISTS products_last_seen_idx ON products (last_seen_at DESC)`,
}

// EnsureSchema creates the catalog tables and indexes when missing.
func EnsureSchema(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
