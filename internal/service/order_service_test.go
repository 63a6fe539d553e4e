package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/iguana/koalashop/internal/models"
	"github.com/iguana/koalashop/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// fakeDB is an in-memory stand-in for the relational store. WithTx snapshots
// the order/item state and restores it when the closure fails, so rollback
// behaviour is observable from tests.
type fakeDB struct {
	customers map[uuid.UUID]models.Customer
	products  map[uuid.UUID]models.Product
	orders    map[uuid.UUID]models.Order
	items     map[uuid.UUID][]models.OrderItem

	// failBulkCreateAfter fails the item insert once this many items of a
	// batch have been written. -1 disables the fault.
	failBulkCreateAfter int

	storeCalls int
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		customers:           map[uuid.UUID]models.Customer{},
		products:            map[uuid.UUID]models.Product{},
		orders:              map[uuid.UUID]models.Order{},
		items:               map[uuid.UUID][]models.OrderItem{},
		failBulkCreateAfter: -1,
	}
}

func (f *fakeDB) repo() *repository.Repository {
	return &repository.Repository{
		Customers:  &fakeCustomers{f},
		Products:   &fakeProducts{f},
		Orders:     &fakeOrders{f},
		OrderItems: &fakeItems{f},
	}
}

func (f *fakeDB) seedCustomer() uuid.UUID {
	id := uuid.New()
	f.customers[id] = models.Customer{ID: id, Name: "customer"}
	return id
}

func (f *fakeDB) seedProduct() uuid.UUID {
	id := uuid.New()
	f.products[id] = models.Product{ID: id, Name: "product", Units: models.ProductUnitsOz}
	return id
}

func (f *fakeDB) snapshot() (map[uuid.UUID]models.Order, map[uuid.UUID][]models.OrderItem) {
	orders := make(map[uuid.UUID]models.Order, len(f.orders))
	for k, v := range f.orders {
		orders[k] = v
	}
	items := make(map[uuid.UUID][]models.OrderItem, len(f.items))
	for k, v := range f.items {
		items[k] = append([]models.OrderItem(nil), v...)
	}
	return orders, items
}

type fakeCustomers struct{ db *fakeDB }

func (f *fakeCustomers) Create(_ context.Context, c *models.Customer) error {
	f.db.storeCalls++
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	f.db.customers[c.ID] = *c
	return nil
}

func (f *fakeCustomers) GetByID(_ context.Context, id uuid.UUID) (*models.Customer, error) {
	f.db.storeCalls++
	c, ok := f.db.customers[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (f *fakeCustomers) UpdateFields(_ context.Context, id uuid.UUID, fields map[string]any) (int64, error) {
	f.db.storeCalls++
	if _, ok := f.db.customers[id]; !ok {
		return 0, nil
	}
	return 1, nil
}

func (f *fakeCustomers) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	f.db.storeCalls++
	_, ok := f.db.customers[id]
	delete(f.db.customers, id)
	return ok, nil
}

func (f *fakeCustomers) List(_ context.Context, limit int) ([]models.Customer, error) {
	f.db.storeCalls++
	return nil, nil
}

func (f *fakeCustomers) Search(_ context.Context, query string, limit int) ([]models.Customer, error) {
	f.db.storeCalls++
	return nil, nil
}

type fakeProducts struct{ db *fakeDB }

func (f *fakeProducts) Create(_ context.Context, p *models.Product) error {
	f.db.storeCalls++
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	f.db.products[p.ID] = *p
	return nil
}

func (f *fakeProducts) GetByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	f.db.storeCalls++
	p, ok := f.db.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *fakeProducts) BatchGetByIDs(_ context.Context, ids []uuid.UUID) ([]models.Product, error) {
	f.db.storeCalls++
	var list []models.Product
	for _, id := range ids {
		if p, ok := f.db.products[id]; ok {
			list = append(list, p)
		}
	}
	return list, nil
}

func (f *fakeProducts) UpdateFields(_ context.Context, id uuid.UUID, fields map[string]any) (int64, error) {
	f.db.storeCalls++
	if _, ok := f.db.products[id]; !ok {
		return 0, nil
	}
	return 1, nil
}

func (f *fakeProducts) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	f.db.storeCalls++
	_, ok := f.db.products[id]
	delete(f.db.products, id)
	return ok, nil
}

func (f *fakeProducts) List(_ context.Context) ([]models.Product, error) {
	f.db.storeCalls++
	return nil, nil
}

type fakeOrders struct{ db *fakeDB }

func (f *fakeOrders) Create(_ context.Context, o *models.Order) error {
	f.db.storeCalls++
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	f.db.orders[o.ID] = *o
	return nil
}

func (f *fakeOrders) GetByID(_ context.Context, id uuid.UUID) (*models.Order, error) {
	f.db.storeCalls++
	o, ok := f.db.orders[id]
	if !ok {
		return nil, nil
	}
	o.Items = append([]models.OrderItem(nil), f.db.items[id]...)
	return &o, nil
}

func (f *fakeOrders) List(_ context.Context) ([]models.Order, error) {
	f.db.storeCalls++
	var list []models.Order
	for _, o := range f.db.orders {
		list = append(list, o)
	}
	return list, nil
}

func (f *fakeOrders) ListByCustomer(_ context.Context, customerID uuid.UUID, limit int) ([]models.Order, error) {
	f.db.storeCalls++
	var list []models.Order
	for _, o := range f.db.orders {
		if o.CustomerID == customerID {
			list = append(list, o)
		}
	}
	return list, nil
}

func (f *fakeOrders) CountByCustomer(_ context.Context, customerID uuid.UUID) (int64, error) {
	f.db.storeCalls++
	var cnt int64
	for _, o := range f.db.orders {
		if o.CustomerID == customerID {
			cnt++
		}
	}
	return cnt, nil
}

func (f *fakeOrders) UpdateHeader(_ context.Context, id uuid.UUID, fields map[string]any) (int64, error) {
	f.db.storeCalls++
	o, ok := f.db.orders[id]
	if !ok {
		return 0, nil
	}
	for k, v := range fields {
		switch k {
		case "customer_id":
			o.CustomerID = v.(uuid.UUID)
		case "order_name":
			o.OrderName = v.(string)
		case "total_amount":
			o.TotalAmount = v.(decimal.Decimal)
		case "status":
			o.Status = v.(models.OrderStatus)
		case "updated_at":
			o.UpdatedAt = v.(time.Time)
		}
	}
	f.db.orders[id] = o
	return 1, nil
}

func (f *fakeOrders) Delete(_ context.Context, id uuid.UUID) (int64, error) {
	f.db.storeCalls++
	if _, ok := f.db.orders[id]; !ok {
		return 0, nil
	}
	delete(f.db.orders, id)
	return 1, nil
}

func (f *fakeOrders) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	f.db.storeCalls++
	_, ok := f.db.orders[id]
	return ok, nil
}

func (f *fakeOrders) WithTx(_ context.Context, fn func(repository.OrderRepo, repository.OrderItemRepo) error) error {
	orders, items := f.db.snapshot()
	if err := fn(&fakeOrders{f.db}, &fakeItems{f.db}); err != nil {
		f.db.orders = orders
		f.db.items = items
		return err
	}
	return nil
}

type fakeItems struct{ db *fakeDB }

func (f *fakeItems) BulkCreate(_ context.Context, items []models.OrderItem) error {
	f.db.storeCalls++
	for i := range items {
		if f.db.failBulkCreateAfter >= 0 && i >= f.db.failBulkCreateAfter {
			return fmt.Errorf("insert order_items: connection reset")
		}
		it := items[i]
		if it.ID == uuid.Nil {
			it.ID = uuid.New()
		}
		f.db.items[it.OrderID] = append(f.db.items[it.OrderID], it)
	}
	return nil
}

func (f *fakeItems) GetByOrderID(_ context.Context, orderID uuid.UUID) ([]models.OrderItem, error) {
	f.db.storeCalls++
	return append([]models.OrderItem(nil), f.db.items[orderID]...), nil
}

func (f *fakeItems) DeleteByOrderID(_ context.Context, orderID uuid.UUID) (int64, error) {
	f.db.storeCalls++
	n := int64(len(f.db.items[orderID]))
	delete(f.db.items, orderID)
	return n, nil
}

func (f *fakeItems) CountByProduct(_ context.Context, productID uuid.UUID) (int64, error) {
	f.db.storeCalls++
	var cnt int64
	for _, items := range f.db.items {
		for _, it := range items {
			if it.ProductID == productID {
				cnt++
			}
		}
	}
	return cnt, nil
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// The worked scenario: 2 units of P1 at weight 8, price 4.00, plus 1 unit of
// P2 at weight 1, price 10.00 — total 74.00.
func TestCreateOrder_TotalAmount(t *testing.T) {
	db := newFakeDB()
	customerID := db.seedCustomer()
	p1 := db.seedProduct()
	p2 := db.seedProduct()
	svc := NewOrderService(db.repo(), nil)

	ctx := context.Background()
	order, err := svc.CreateOrder(ctx, OrderInput{
		CustomerID: customerID,
		OrderName:  "weekly",
		Items: []LineItemInput{
			{ProductID: p1, Quantity: 2, WeightOz: dec("8"), UnitPrice: dec("4.00")},
			{ProductID: p2, Quantity: 1, WeightOz: dec("1"), UnitPrice: dec("10.00")},
		},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if !order.TotalAmount.Equal(dec("74.00")) {
		t.Fatalf("total expected 74.00 got %s", order.TotalAmount)
	}
	if order.Status != models.OrderStatusPending {
		t.Fatalf("status expected pending got %s", order.Status)
	}

	items := db.items[order.ID]
	if len(items) != 2 {
		t.Fatalf("items expected 2 got %d", len(items))
	}
	if !items[0].TotalPrice.Equal(dec("64.00")) || !items[1].TotalPrice.Equal(dec("10.00")) {
		t.Fatalf("line totals mismatch: %s %s", items[0].TotalPrice, items[1].TotalPrice)
	}

	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.TotalPrice)
	}
	if !order.TotalAmount.Equal(sum) {
		t.Fatalf("total %s != sum of items %s", order.TotalAmount, sum)
	}
}

func TestCreateOrder_ValidationBeforeStore(t *testing.T) {
	customerID := uuid.New()
	productID := uuid.New()
	validItems := []LineItemInput{{ProductID: productID, Quantity: 1, WeightOz: dec("1"), UnitPrice: dec("1")}}

	cases := []struct {
		name  string
		in    OrderInput
		field string
	}{
		{"missing customer", OrderInput{OrderName: "x", Items: validItems}, "customer_id"},
		{"missing name", OrderInput{CustomerID: customerID, OrderName: "  ", Items: validItems}, "order_name"},
		{"empty items", OrderInput{CustomerID: customerID, OrderName: "x"}, "order_items"},
		{"zero quantity", OrderInput{CustomerID: customerID, OrderName: "x",
			Items: []LineItemInput{{ProductID: productID, Quantity: 0, WeightOz: dec("1"), UnitPrice: dec("1")}}}, "order_items.quantity"},
		{"negative weight", OrderInput{CustomerID: customerID, OrderName: "x",
			Items: []LineItemInput{{ProductID: productID, Quantity: 1, WeightOz: dec("-1"), UnitPrice: dec("1")}}}, "order_items.weight_oz"},
		{"negative price", OrderInput{CustomerID: customerID, OrderName: "x",
			Items: []LineItemInput{{ProductID: productID, Quantity: 1, WeightOz: dec("1"), UnitPrice: dec("-0.01")}}}, "order_items.unit_price"},
		{"missing item product", OrderInput{CustomerID: customerID, OrderName: "x",
			Items: []LineItemInput{{Quantity: 1, WeightOz: dec("1"), UnitPrice: dec("1")}}}, "order_items.product_id"},
		{"unknown status", OrderInput{CustomerID: customerID, OrderName: "x", Status: "shipped", Items: validItems}, "status"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db := newFakeDB()
			svc := NewOrderService(db.repo(), nil)

			_, err := svc.CreateOrder(context.Background(), tc.in)

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError got %v", err)
			}
			if verr.Field != tc.field {
				t.Fatalf("field expected %q got %q", tc.field, verr.Field)
			}
			if db.storeCalls != 0 {
				t.Fatalf("store was touched %d times before validation failed", db.storeCalls)
			}
		})
	}
}

func TestCreateOrder_UnknownReferences(t *testing.T) {
	db := newFakeDB()
	customerID := db.seedCustomer()
	svc := NewOrderService(db.repo(), nil)
	ctx := context.Background()

	_, err := svc.CreateOrder(ctx, OrderInput{
		CustomerID: uuid.New(),
		OrderName:  "x",
		Items:      []LineItemInput{{ProductID: uuid.New(), Quantity: 1, WeightOz: dec("1"), UnitPrice: dec("1")}},
	})
	if !errors.Is(err, ErrCustomerNotFound) {
		t.Fatalf("expected ErrCustomerNotFound got %v", err)
	}

	_, err = svc.CreateOrder(ctx, OrderInput{
		CustomerID: customerID,
		OrderName:  "x",
		Items:      []LineItemInput{{ProductID: uuid.New(), Quantity: 1, WeightOz: dec("1"), UnitPrice: dec("1")}},
	})
	if !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound got %v", err)
	}

	if len(db.orders) != 0 || len(db.items) != 0 {
		t.Fatalf("store should be unchanged: %d orders %d item sets", len(db.orders), len(db.items))
	}
}

func TestCreateOrder_RollbackOnItemInsertFailure(t *testing.T) {
	db := newFakeDB()
	customerID := db.seedCustomer()
	p1 := db.seedProduct()
	p2 := db.seedProduct()
	p3 := db.seedProduct()
	db.failBulkCreateAfter = 1 // second item insert fails

	svc := NewOrderService(db.repo(), nil)
	_, err := svc.CreateOrder(context.Background(), OrderInput{
		CustomerID: customerID,
		OrderName:  "doomed",
		Items: []LineItemInput{
			{ProductID: p1, Quantity: 1, WeightOz: dec("1"), UnitPrice: dec("1")},
			{ProductID: p2, Quantity: 1, WeightOz: dec("1"), UnitPrice: dec("1")},
			{ProductID: p3, Quantity: 1, WeightOz: dec("1"), UnitPrice: dec("1")},
		},
	})
	if err == nil {
		t.Fatal("expected item insert failure")
	}

	if len(db.orders) != 0 {
		t.Fatalf("order row leaked after rollback: %d", len(db.orders))
	}
	for id, items := range db.items {
		if len(items) != 0 {
			t.Fatalf("item rows leaked after rollback for %s: %d", id, len(items))
		}
	}
}

func TestUpdateOrder_FullReplace(t *testing.T) {
	db := newFakeDB()
	customerID := db.seedCustomer()
	p1 := db.seedProduct()
	p2 := db.seedProduct()
	svc := NewOrderService(db.repo(), nil)
	ctx := context.Background()

	created, err := svc.CreateOrder(ctx, OrderInput{
		CustomerID: customerID,
		OrderName:  "weekly",
		Items: []LineItemInput{
			{ProductID: p1, Quantity: 2, WeightOz: dec("8"), UnitPrice: dec("4.00")},
			{ProductID: p2, Quantity: 1, WeightOz: dec("1"), UnitPrice: dec("10.00")},
		},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	// Drop the P2 line, bump P1 weight to 10: total becomes 80.00 with
	// exactly one remaining line item.
	updated, err := svc.UpdateOrder(ctx, created.ID, OrderInput{
		CustomerID: customerID,
		OrderName:  "weekly",
		Status:     models.OrderStatusPending,
		Items: []LineItemInput{
			{ProductID: p1, Quantity: 2, WeightOz: dec("10"), UnitPrice: dec("4.00")},
		},
	})
	if err != nil {
		t.Fatalf("UpdateOrder: %v", err)
	}

	if !updated.TotalAmount.Equal(dec("80.00")) {
		t.Fatalf("total expected 80.00 got %s", updated.TotalAmount)
	}
	items := db.items[created.ID]
	if len(items) != 1 {
		t.Fatalf("items expected 1 got %d", len(items))
	}
	if items[0].ProductID != p1 {
		t.Fatalf("remaining item should reference the first product")
	}
}

func TestUpdateOrder_Idempotent(t *testing.T) {
	db := newFakeDB()
	customerID := db.seedCustomer()
	p1 := db.seedProduct()
	svc := NewOrderService(db.repo(), nil)
	ctx := context.Background()

	created, err := svc.CreateOrder(ctx, OrderInput{
		CustomerID: customerID,
		OrderName:  "repeat",
		Items:      []LineItemInput{{ProductID: p1, Quantity: 3, WeightOz: dec("2.5"), UnitPrice: dec("1.10")}},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	in := OrderInput{
		CustomerID: customerID,
		OrderName:  "repeat",
		Status:     models.OrderStatusCompleted,
		Items:      []LineItemInput{{ProductID: p1, Quantity: 3, WeightOz: dec("2.5"), UnitPrice: dec("1.10")}},
	}

	first, err := svc.UpdateOrder(ctx, created.ID, in)
	if err != nil {
		t.Fatalf("first UpdateOrder: %v", err)
	}
	second, err := svc.UpdateOrder(ctx, created.ID, in)
	if err != nil {
		t.Fatalf("second UpdateOrder: %v", err)
	}

	if !first.TotalAmount.Equal(second.TotalAmount) {
		t.Fatalf("totals diverged: %s vs %s", first.TotalAmount, second.TotalAmount)
	}
	if len(db.items[created.ID]) != 1 {
		t.Fatalf("items expected 1 got %d", len(db.items[created.ID]))
	}
	if second.Status != models.OrderStatusCompleted {
		t.Fatalf("status expected completed got %s", second.Status)
	}
}

func TestUpdateOrder_NotFoundLeavesStoreUnchanged(t *testing.T) {
	db := newFakeDB()
	customerID := db.seedCustomer()
	p1 := db.seedProduct()
	svc := NewOrderService(db.repo(), nil)
	ctx := context.Background()

	existing, err := svc.CreateOrder(ctx, OrderInput{
		CustomerID: customerID,
		OrderName:  "keep",
		Items:      []LineItemInput{{ProductID: p1, Quantity: 1, WeightOz: dec("1"), UnitPrice: dec("5")}},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	ordersBefore, itemsBefore := len(db.orders), len(db.items[existing.ID])

	_, err = svc.UpdateOrder(ctx, uuid.New(), OrderInput{
		CustomerID: customerID,
		OrderName:  "ghost",
		Items:      []LineItemInput{{ProductID: p1, Quantity: 1, WeightOz: dec("1"), UnitPrice: dec("5")}},
	})
	if !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound got %v", err)
	}

	if len(db.orders) != ordersBefore || len(db.items[existing.ID]) != itemsBefore {
		t.Fatalf("store changed on not-found update")
	}
}

func TestDeleteOrder(t *testing.T) {
	db := newFakeDB()
	customerID := db.seedCustomer()
	p1 := db.seedProduct()
	svc := NewOrderService(db.repo(), nil)
	ctx := context.Background()

	created, err := svc.CreateOrder(ctx, OrderInput{
		CustomerID: customerID,
		OrderName:  "gone soon",
		Items:      []LineItemInput{{ProductID: p1, Quantity: 1, WeightOz: dec("1"), UnitPrice: dec("3")}},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if err := svc.DeleteOrder(ctx, created.ID); err != nil {
		t.Fatalf("DeleteOrder: %v", err)
	}
	if len(db.orders) != 0 || len(db.items[created.ID]) != 0 {
		t.Fatalf("order or items left behind")
	}

	if err := svc.DeleteOrder(ctx, created.ID); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound got %v", err)
	}
}

// Orphaned item rows must survive a delete of a non-existent order: the
// rolled-back transaction may not remove anything.
func TestDeleteOrder_NotFoundRollsBackItemDeletion(t *testing.T) {
	db := newFakeDB()
	svc := NewOrderService(db.repo(), nil)

	ghost := uuid.New()
	db.items[ghost] = []models.OrderItem{{ID: uuid.New(), OrderID: ghost, ProductID: uuid.New(), Quantity: 1}}

	err := svc.DeleteOrder(context.Background(), ghost)
	if !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound got %v", err)
	}
	if len(db.items[ghost]) != 1 {
		t.Fatalf("orphan items were removed despite rollback")
	}
}

func TestCreateOrder_ItemCountBoundaries(t *testing.T) {
	db := newFakeDB()
	customerID := db.seedCustomer()
	p1 := db.seedProduct()
	svc := NewOrderService(db.repo(), nil)
	ctx := context.Background()

	one, err := svc.CreateOrder(ctx, OrderInput{
		CustomerID: customerID,
		OrderName:  "single",
		Items:      []LineItemInput{{ProductID: p1, Quantity: 1, WeightOz: dec("1"), UnitPrice: dec("2.50")}},
	})
	if err != nil {
		t.Fatalf("CreateOrder single: %v", err)
	}
	if !one.TotalAmount.Equal(dec("2.50")) {
		t.Fatalf("total expected 2.50 got %s", one.TotalAmount)
	}

	items := make([]LineItemInput, 0, 50)
	for i := 0; i < 50; i++ {
		items = append(items, LineItemInput{ProductID: p1, Quantity: 1, WeightOz: dec("1"), UnitPrice: dec("0.10")})
	}
	fifty, err := svc.CreateOrder(ctx, OrderInput{
		CustomerID: customerID,
		OrderName:  "bulk",
		Items:      items,
	})
	if err != nil {
		t.Fatalf("CreateOrder bulk: %v", err)
	}
	if !fifty.TotalAmount.Equal(dec("5.00")) {
		t.Fatalf("total expected 5.00 got %s", fifty.TotalAmount)
	}
	if len(db.items[fifty.ID]) != 50 {
		t.Fatalf("items expected 50 got %d", len(db.items[fifty.ID]))
	}
}
