package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/yatelabs/faire-sync/internal/config"
)

// Document collections. Each table stores one record type as a JSONB
// document keyed by the vendor-supplied id.
const (
	collectionOrders     = "orders"
	collectionOrderItems = "order_items"
	collectionShipments  = "shipments"
)

// Open connects to Postgres and verifies the connection.
func Open(cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("repository: opening database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("repository: pinging database: %w", err)
	}

	return db, nil
}

// EnsureSchema creates the document collections if they do not exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, table := range []string{collectionOrders, collectionOrderItems, collectionShipments} {
		stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id         TEXT PRIMARY KEY,
			doc        JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, table)
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("repository: creating collection %s: %w", table, err)
		}
	}
	return nil
}
