package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/yatelabs/faire-sync/internal/mapper"
	"github.com/yatelabs/faire-sync/internal/models"
)

// PersistenceError wraps a database write or read failure.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return "repository: " + e.Op + ": " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// OrderRepository persists normalized order documents. Re-saving a record
// with the same vendor id updates the stored document in place.
type OrderRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewOrderRepository creates a repository over an open database handle.
func NewOrderRepository(db *sql.DB, logger *zap.Logger) *OrderRepository {
	return &OrderRepository{db: db, logger: logger}
}

// SaveOrders upserts every order in the batch together with its items and
// shipments. Each write is an independent idempotent upsert keyed by the
// vendor id; there is no cross-record transaction.
func (r *OrderRepository) SaveOrders(ctx context.Context, batch []mapper.Mapped) error {
	for i := range batch {
		m := &batch[i]

		if err := r.upsert(ctx, collectionOrders, m.Order.ProviderOrderID, m.Order); err != nil {
			return err
		}
		for j := range m.Items {
			if err := r.upsert(ctx, collectionOrderItems, m.Items[j].OrderItemID, m.Items[j]); err != nil {
				return err
			}
		}
		for j := range m.Shipments {
			if err := r.upsert(ctx, collectionShipments, m.Shipments[j].ShipmentID, m.Shipments[j]); err != nil {
				return err
			}
		}

		r.logger.Debug("Order persisted",
			zap.String("provider_order_id", m.Order.ProviderOrderID),
			zap.Int("items", len(m.Items)),
			zap.Int("shipments", len(m.Shipments)),
		)
	}
	return nil
}

// GetOrder reads one order document back by its vendor id. A missing
// document returns (nil, nil).
func (r *OrderRepository) GetOrder(ctx context.Context, providerOrderID string) (*models.Order, error) {
	var doc []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT doc FROM orders WHERE id = $1`, providerOrderID,
	).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, &PersistenceError{Op: "get order " + providerOrderID, Err: err}
	}

	var order models.Order
	if err := json.Unmarshal(doc, &order); err != nil {
		return nil, &PersistenceError{Op: "decode order " + providerOrderID, Err: err}
	}
	return &order, nil
}

func (r *OrderRepository) upsert(ctx context.Context, table, id string, record any) error {
	doc, err := json.Marshal(record)
	if err != nil {
		return &PersistenceError{Op: "encode " + table + " " + id, Err: err}
	}

	query := upsertQuery(table)
	if _, err := r.db.ExecContext(ctx, query, id, doc); err != nil {
		r.logger.Error("Upsert failed",
			zap.String("collection", table),
			zap.String("id", id),
			zap.Error(err),
		)
		return &PersistenceError{Op: "upsert " + table + " " + id, Err: err}
	}
	return nil
}

func upsertQuery(table string) string {
	// table is always one of the fixed collection names, never user input.
	return `INSERT INTO ` + table + ` (id, doc) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()`
}
