package service

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"github.com/yatelabs/faire-sync/internal/events"
	"github.com/yatelabs/faire-sync/internal/faire"
	"github.com/yatelabs/faire-sync/internal/mapper"
	"github.com/yatelabs/faire-sync/internal/models"
	"github.com/yatelabs/faire-sync/internal/snapshot"
)

// VendorClient fetches raw order payloads from the marketplace API.
type VendorClient interface {
	GetOrders(ctx context.Context, params faire.OrderListParams) (*faire.OrdersPayload, error)
	GetOrder(ctx context.Context, orderID string) (*faire.OrderPayload, error)
}

// Repository persists normalized records and reads them back by vendor id.
type Repository interface {
	SaveOrders(ctx context.Context, batch []mapper.Mapped) error
	GetOrder(ctx context.Context, providerOrderID string) (*models.Order, error)
}

// Archiver receives a copy of each freshly fetched raw payload.
type Archiver interface {
	Archive(ctx context.Context, payload []byte) error
}

// OrderSyncService orchestrates a sync run: load snapshot or fetch live,
// map, persist, publish.
type OrderSyncService struct {
	client    VendorClient
	repo      Repository
	snapshots snapshot.Store
	archiver  Archiver
	publisher events.Publisher
	logger    *zap.Logger
}

// NewOrderSyncService wires the sync service. archiver may be nil when
// snapshot archiving is not configured.
func NewOrderSyncService(
	client VendorClient,
	repo Repository,
	snapshots snapshot.Store,
	archiver Archiver,
	publisher events.Publisher,
	logger *zap.Logger,
) *OrderSyncService {
	return &OrderSyncService{
		client:    client,
		repo:      repo,
		snapshots: snapshots,
		archiver:  archiver,
		publisher: publisher,
		logger:    logger,
	}
}

// Synchronize runs one full sync and returns the normalized orders. A
// parseable snapshot short-circuits the network call; this trades freshness
// for fewer API calls and is intended for development.
func (s *OrderSyncService) Synchronize(ctx context.Context, params faire.OrderListParams) ([]models.Order, error) {
	payload, err := s.loadPayload(ctx, params)
	if err != nil {
		return nil, err
	}

	mapped, err := mapper.MapOrders(payload)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SaveOrders(ctx, mapped); err != nil {
		return nil, err
	}

	orders := make([]models.Order, 0, len(mapped))
	for i := range mapped {
		order := mapped[i].Order
		if err := s.publisher.PublishOrderSynced(ctx, &order); err != nil {
			// Publishing is best-effort; the sync already succeeded.
			s.logger.Warn("Publish failed",
				zap.String("provider_order_id", order.ProviderOrderID),
				zap.Error(err),
			)
		}
		orders = append(orders, order)
	}

	s.logger.Info("Sync completed", zap.Int("orders", len(orders)))
	return orders, nil
}

// SyncOrder fetches, maps and persists a single order by vendor id. The
// snapshot is not consulted; single-order reads are always live.
func (s *OrderSyncService) SyncOrder(ctx context.Context, orderID string) (*models.Order, error) {
	payload, err := s.client.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	mapped, err := mapper.MapOrder(payload)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SaveOrders(ctx, []mapper.Mapped{*mapped}); err != nil {
		return nil, err
	}

	order := mapped.Order
	if err := s.publisher.PublishOrderSynced(ctx, &order); err != nil {
		s.logger.Warn("Publish failed",
			zap.String("provider_order_id", order.ProviderOrderID),
			zap.Error(err),
		)
	}

	return &order, nil
}

// loadPayload returns the snapshot payload when one exists and parses, and
// falls back to a live fetch otherwise.
func (s *OrderSyncService) loadPayload(ctx context.Context, params faire.OrderListParams) (*faire.OrdersPayload, error) {
	raw, err := s.snapshots.Load(ctx)
	if err == nil {
		var payload faire.OrdersPayload
		if jsonErr := json.Unmarshal(raw, &payload); jsonErr == nil {
			s.logger.Info("Using snapshot payload", zap.Int("orders", len(payload.Orders)))
			return &payload, nil
		}
		s.logger.Warn("Snapshot unparseable, fetching live")
	} else if !errors.Is(err, snapshot.ErrNoSnapshot) {
		s.logger.Warn("Snapshot load failed, fetching live", zap.Error(err))
	}

	payload, err := s.client.GetOrders(ctx, params)
	if err != nil {
		return nil, err
	}

	// Keep a local copy so development runs stop hitting the API.
	raw, marshalErr := json.MarshalIndent(payload, "", "    ")
	if marshalErr == nil {
		if saveErr := s.snapshots.Save(ctx, raw); saveErr != nil {
			s.logger.Warn("Snapshot save failed", zap.Error(saveErr))
		}
		if s.archiver != nil {
			if archiveErr := s.archiver.Archive(ctx, raw); archiveErr != nil {
				s.logger.Warn("Snapshot archive failed", zap.Error(archiveErr))
			}
		}
	}

	return payload, nil
}
