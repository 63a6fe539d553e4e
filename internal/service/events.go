package service

import (
	"context"
	"time"

	"github.com/iguana/koalashop/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderItemEvent struct {
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int             `json:"quantity"`
	WeightOz  decimal.Decimal `json:"weight_oz"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"total_price"`
}

type OrderEvent struct {
	OrderID     uuid.UUID          `json:"order_id"`
	CustomerID  uuid.UUID          `json:"customer_id"`
	OrderName   string             `json:"order_name"`
	Status      models.OrderStatus `json:"status"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
	Items       []OrderItemEvent   `json:"items,omitempty"`
	OccurredAt  time.Time          `json:"occurred_at"`
}

type EventBus interface {
	PublishOrderCreated(ctx context.Context, e OrderEvent) error
	PublishOrderUpdated(ctx context.Context, e OrderEvent) error
	PublishOrderDeleted(ctx context.Context, e OrderEvent) error
}
