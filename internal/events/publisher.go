// Package events publishes completed orders for downstream consumers
// (fulfilment, analytics). Publication is best effort: the storefront
// never fails a purchase over it.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/ojha-sweta/ShopVault/internal/order"
)

const orderTopic = "order-events"

// Nop drops every event. The default when no broker is configured.
type Nop struct{}

func (Nop) OrderPlaced(context.Context, *order.Order) error { return nil }

// Kafka writes order-placed events to the order-events topic.
type Kafka struct {
	writer *kafka.Writer
}

func NewKafka(brokers ...string) *Kafka {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  orderTopic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &Kafka{writer: w}
}

func (k *Kafka) OrderPlaced(ctx context.Context, o *order.Order) error {
	msg, err := orderMessage(o)
	if err != nil {
		return err
	}
	if err := k.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write order event: %w", err)
	}
	return nil
}

// orderMessage builds the order-placed message, keyed by user so one
// user's orders land on one partition in order.
func orderMessage(o *order.Order) (kafka.Message, error) {
	payload := map[string]interface{}{
		"order_id":  o.ID,
		"user_id":   o.UserID,
		"items":     o.Items,
		"total":     o.Total,
		"status":    o.Status,
		"placed_at": time.Now(),
	}

	value, err := json.Marshal(payload)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal order event: %w", err)
	}

	return kafka.Message{
		Key:   []byte(o.UserID),
		Value: value,
	}, nil
}

func (k *Kafka) Close() error {
	return k.writer.Close()
}
