package producer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/iguana/koalashop/internal/service"

	"github.com/segmentio/kafka-go"
)

const (
	eventOrderCreated = "order.created"
	eventOrderUpdated = "order.updated"
	eventOrderDeleted = "order.deleted"
)

// OrderEventProducer publishes order lifecycle events, keyed by order id so
// events for one order stay in partition order.
type OrderEventProducer struct {
	writer *kafka.Writer
}

func NewOrderEventProducer(brokers []string, topic string) *OrderEventProducer {
	return &OrderEventProducer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireAll,
		},
	}
}

type envelope struct {
	Event string             `json:"event"`
	Order service.OrderEvent `json:"order"`
}

func (p *OrderEventProducer) publish(ctx context.Context, event string, e service.OrderEvent) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	value, err := json.Marshal(envelope{Event: event, Order: e})
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(e.OrderID.String()),
		Value: value,
	})
}

func (p *OrderEventProducer) PublishOrderCreated(ctx context.Context, e service.OrderEvent) error {
	return p.publish(ctx, eventOrderCreated, e)
}

func (p *OrderEventProducer) PublishOrderUpdated(ctx context.Context, e service.OrderEvent) error {
	return p.publish(ctx, eventOrderUpdated, e)
}

func (p *OrderEventProducer) PublishOrderDeleted(ctx context.Context, e service.OrderEvent) error {
	return p.publish(ctx, eventOrderDeleted, e)
}

func (p *OrderEventProducer) Close() error {
	return p.writer.Close()
}
