package service

import (
	"context"
	"strings"
	"time"

	"github.com/iguana/koalashop/internal/models"
	"github.com/iguana/koalashop/internal/repository"

	"github.com/google/uuid"
)

type orderService struct {
	repo   *repository.Repository
	events EventBus
	now    func() time.Time
}

func NewOrderService(repo *repository.Repository, events EventBus) OrderService {
	return &orderService{
		repo:   repo,
		events: events,
		now:    time.Now,
	}
}

// validateOrderInput runs every input constraint before any store access.
func validateOrderInput(in *OrderInput) error {
	if in.CustomerID == uuid.Nil {
		return invalidField("customer_id", "is required")
	}
	if strings.TrimSpace(in.OrderName) == "" {
		return invalidField("order_name", "is required")
	}
	if len(in.Items) == 0 {
		return invalidField("order_items", "at least one line item is required")
	}
	if in.Status == "" {
		in.Status = models.OrderStatusPending
	}
	if !in.Status.Valid() {
		return invalidField("status", "must be one of pending, completed, cancelled")
	}
	for _, it := range in.Items {
		if it.ProductID == uuid.Nil {
			return invalidField("order_items.product_id", "is required")
		}
		if it.Quantity <= 0 {
			return invalidField("order_items.quantity", "must be greater than zero")
		}
		if it.WeightOz.IsNegative() {
			return invalidField("order_items.weight_oz", "must not be negative")
		}
		if it.UnitPrice.IsNegative() {
			return invalidField("order_items.unit_price", "must not be negative")
		}
	}
	return nil
}

// checkReferences verifies the customer and every product exist. Reference
// data is read-only here; prices stay as submitted (snapshot pricing).
func (s *orderService) checkReferences(ctx context.Context, in OrderInput) error {
	c, err := s.repo.Customers.GetByID(ctx, in.CustomerID)
	if err != nil {
		return err
	}
	if c == nil {
		return ErrCustomerNotFound
	}

	ids := make([]uuid.UUID, 0, len(in.Items))
	seen := make(map[uuid.UUID]struct{}, len(in.Items))
	for _, it := range in.Items {
		if _, ok := seen[it.ProductID]; ok {
			continue
		}
		seen[it.ProductID] = struct{}{}
		ids = append(ids, it.ProductID)
	}
	products, err := s.repo.Products.BatchGetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(products) != len(ids) {
		return ErrProductNotFound
	}
	return nil
}

func buildItems(orderID uuid.UUID, in OrderInput, now time.Time) []models.OrderItem {
	items := make([]models.OrderItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, models.OrderItem{
			OrderID:    orderID,
			ProductID:  it.ProductID,
			Quantity:   it.Quantity,
			WeightOz:   it.WeightOz,
			UnitPrice:  it.UnitPrice,
			TotalPrice: LineTotal(it.Quantity, it.WeightOz, it.UnitPrice),
			CreatedAt:  now,
		})
	}
	return items
}

func (s *orderService) CreateOrder(ctx context.Context, in OrderInput) (*models.Order, error) {
	if err := validateOrderInput(&in); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, in); err != nil {
		return nil, err
	}

	now := s.now()
	order := &models.Order{
		CustomerID:  in.CustomerID,
		OrderName:   in.OrderName,
		TotalAmount: OrderTotal(in.Items),
		Status:      in.Status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.repo.Orders.WithTx(ctx, func(or repository.OrderRepo, ir repository.OrderItemRepo) error {
		if err := or.Create(ctx, order); err != nil {
			return err
		}
		return ir.BulkCreate(ctx, buildItems(order.ID, in, now))
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, order, in, func(bus EventBus, e OrderEvent) error { return bus.PublishOrderCreated(ctx, e) })
	return order, nil
}

func (s *orderService) UpdateOrder(ctx context.Context, id uuid.UUID, in OrderInput) (*models.Order, error) {
	if id == uuid.Nil {
		return nil, invalidField("order_id", "is required")
	}
	if err := validateOrderInput(&in); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, in); err != nil {
		return nil, err
	}

	now := s.now()
	total := OrderTotal(in.Items)

	var order *models.Order
	err := s.repo.Orders.WithTx(ctx, func(or repository.OrderRepo, ir repository.OrderItemRepo) error {
		// The header update doubles as the existence check: zero affected
		// rows aborts the transaction before any item is touched.
		affected, err := or.UpdateHeader(ctx, id, map[string]any{
			"customer_id":  in.CustomerID,
			"order_name":   in.OrderName,
			"total_amount": total,
			"status":       in.Status,
			"updated_at":   now,
		})
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrOrderNotFound
		}

		// Full replace: drop every existing item, reinsert the new set.
		if _, err := ir.DeleteByOrderID(ctx, id); err != nil {
			return err
		}
		if err := ir.BulkCreate(ctx, buildItems(id, in, now)); err != nil {
			return err
		}

		order, err = or.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, order, in, func(bus EventBus, e OrderEvent) error { return bus.PublishOrderUpdated(ctx, e) })
	return order, nil
}

func (s *orderService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return invalidField("order_id", "is required")
	}

	err := s.repo.Orders.WithTx(ctx, func(or repository.OrderRepo, ir repository.OrderItemRepo) error {
		if _, err := ir.DeleteByOrderID(ctx, id); err != nil {
			return err
		}
		// A missing header rolls the item deletion back too: orphan items
		// must never be removed for an order that does not exist.
		affected, err := or.Delete(ctx, id)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrOrderNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	if s.events != nil {
		_ = s.events.PublishOrderDeleted(ctx, OrderEvent{
			OrderID:    id,
			OccurredAt: s.now(),
		})
	}
	return nil
}

func (s *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	ord, err := s.repo.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}
	return ord, nil
}

func (s *orderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	return s.repo.Orders.List(ctx)
}

// publish emits a best-effort event after a committed write. A nil bus
// disables publishing; a publish failure never fails the request.
func (s *orderService) publish(ctx context.Context, order *models.Order, in OrderInput, send func(EventBus, OrderEvent) error) {
	if s.events == nil || order == nil {
		return
	}
	evItems := make([]OrderItemEvent, 0, len(in.Items))
	for _, it := range in.Items {
		evItems = append(evItems, OrderItemEvent{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			WeightOz:  it.WeightOz,
			UnitPrice: it.UnitPrice,
			LineTotal: LineTotal(it.Quantity, it.WeightOz, it.UnitPrice),
		})
	}
	_ = send(s.events, OrderEvent{
		OrderID:     order.ID,
		CustomerID:  order.CustomerID,
		OrderName:   order.OrderName,
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
		Items:       evItems,
		OccurredAt:  s.now(),
	})
}
