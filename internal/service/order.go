package service

import (
	"context"

	"github.com/iguana/koalashop/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type LineItemInput struct {
	ProductID uuid.UUID
	Quantity  int
	WeightOz  decimal.Decimal
	UnitPrice decimal.Decimal
}

// OrderInput is the full proposed order. Updates are replace-on-write: the
// item list always stands in for the complete new set.
type OrderInput struct {
	CustomerID uuid.UUID
	OrderName  string
	Status     models.OrderStatus // empty means pending
	Items      []LineItemInput
}

type OrderService interface {
	CreateOrder(ctx context.Context, in OrderInput) (*models.Order, error)
	UpdateOrder(ctx context.Context, id uuid.UUID, in OrderInput) (*models.Order, error)
	DeleteOrder(ctx context.Context, id uuid.UUID) error
	GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
}
