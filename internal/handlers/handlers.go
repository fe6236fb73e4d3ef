package handlers

import (
	"context"

	"go.uber.org/zap"

	"github.com/yatelabs/faire-sync/internal/faire"
	"github.com/yatelabs/faire-sync/internal/models"
)

// OrderSyncer is the slice of the sync service the HTTP layer needs.
type OrderSyncer interface {
	Synchronize(ctx context.Context, params faire.OrderListParams) ([]models.Order, error)
	SyncOrder(ctx context.Context, orderID string) (*models.Order, error)
}

// Handlers holds all HTTP handlers for the sync service.
type Handlers struct {
	sync   OrderSyncer
	logger *zap.Logger
}

// NewHandlers creates a new handlers instance.
func NewHandlers(sync OrderSyncer, logger *zap.Logger) *Handlers {
	return &Handlers{sync: sync, logger: logger}
}
