package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/yatelabs/faire-sync/internal/config"
	"github.com/yatelabs/faire-sync/internal/middleware"
	"github.com/yatelabs/faire-sync/internal/models"
)

// EventType identifies the kind of order event.
type EventType string

const (
	// EventTypeOrderSynced is emitted after an order has been mapped and
	// persisted by a sync run.
	EventTypeOrderSynced EventType = "order.synced"
)

// OrderEvent is the message envelope published to Kafka.
type OrderEvent struct {
	ID              string          `json:"id"`
	Type            EventType       `json:"type"`
	ProviderOrderID string          `json:"provider_order_id"`
	Data            json.RawMessage `json:"data"`
	Timestamp       time.Time       `json:"timestamp"`
	CorrelationID   string          `json:"correlation_id,omitempty"`
}

// Publisher emits order events. Publishing is best-effort from the sync
// path: a failed publish is logged, never fatal.
type Publisher interface {
	PublishOrderSynced(ctx context.Context, order *models.Order) error
	Close() error
}

// KafkaPublisher publishes order events to Kafka.
type KafkaPublisher struct {
	writer *kafka.Writer
	logger *zap.Logger
}

var _ Publisher = (*KafkaPublisher)(nil)

// NewKafkaPublisher creates a Kafka-based event publisher.
func NewKafkaPublisher(cfg config.KafkaConfig, logger *zap.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.OrdersTopic,
		Balancer:     &kafka.LeastBytes{},
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireOne,
	}

	return &KafkaPublisher{writer: writer, logger: logger}
}

// PublishOrderSynced publishes one order.synced event keyed by the vendor
// order id.
func (p *KafkaPublisher) PublishOrderSynced(ctx context.Context, order *models.Order) error {
	data, err := json.Marshal(order)
	if err != nil {
		return err
	}

	event := &OrderEvent{
		ID:              uuid.NewString(),
		Type:            EventTypeOrderSynced,
		ProviderOrderID: order.ProviderOrderID,
		Data:            data,
		Timestamp:       time.Now().UTC(),
	}
	if rid, ok := ctx.Value(middleware.RequestIDKey).(string); ok {
		event.CorrelationID = rid
	}

	eventData, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(event.ProviderOrderID),
		Value: eventData,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
			{Key: "event_id", Value: []byte(event.ID)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish event",
			zap.String("event_id", event.ID),
			zap.String("provider_order_id", event.ProviderOrderID),
			zap.Error(err),
		)
		return err
	}

	p.logger.Debug("Event published",
		zap.String("event_id", event.ID),
		zap.String("provider_order_id", event.ProviderOrderID),
	)
	return nil
}

// Close closes the Kafka writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher is used when Kafka is not configured.
type NoopPublisher struct{}

var _ Publisher = (*NoopPublisher)(nil)

func (NoopPublisher) PublishOrderSynced(ctx context.Context, order *models.Order) error {
	return nil
}

func (NoopPublisher) Close() error { return nil }

// MockPublisher records published events for tests.
type MockPublisher struct {
	Events []*OrderEvent
	Err    error
}

var _ Publisher = (*MockPublisher)(nil)

func (m *MockPublisher) PublishOrderSynced(ctx context.Context, order *models.Order) error {
	if m.Err != nil {
		return m.Err
	}
	m.Events = append(m.Events, &OrderEvent{
		Type:            EventTypeOrderSynced,
		ProviderOrderID: order.ProviderOrderID,
	})
	return nil
}

func (m *MockPublisher) Close() error { return nil }
