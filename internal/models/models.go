package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

type ProductUnits string

const (
	ProductUnitsOz    ProductUnits = "oz"
	ProductUnitsEach  ProductUnits = "each"
	ProductUnitsLbs   ProductUnits = "lbs"
	ProductUnitsGrams ProductUnits = "grams"
)

func (u ProductUnits) Valid() bool {
	switch u {
	case ProductUnitsOz, ProductUnitsEach, ProductUnitsLbs, ProductUnitsGrams:
		return true
	}
	return false
}

type Customer struct {
	ID      uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name    string    `gorm:"type:text;not null;index" json:"name"`
	Email   *string   `gorm:"type:text" json:"email"`
	Phone   *string   `gorm:"type:text" json:"phone"`
	Address *string   `gorm:"type:text" json:"address"`

	CreatedAt time.Time `gorm:"not null;default:now();index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Customer) TableName() string { return "customers" }

type Product struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string          `gorm:"type:text;not null;index" json:"name"`
	Description *string         `gorm:"type:text" json:"description"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"unit_price"`
	Units       ProductUnits    `gorm:"type:varchar(10);not null;default:'oz'" json:"units"`

	CreatedAt time.Time `gorm:"not null;default:now();index" json:"created_at"`
}

func (Product) TableName() string { return "products" }

type Order struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CustomerID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"customer_id"`
	OrderName   string          `gorm:"type:text;not null" json:"order_name"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"total_amount"`
	Status      OrderStatus     `gorm:"type:text;not null;default:'pending';index" json:"status"`

	CreatedAt time.Time `gorm:"not null;default:now();index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`

	Customer *Customer   `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_items,omitempty"`
}

func (Order) TableName() string { return "orders" }

type OrderItem struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity  int       `gorm:"type:int;not null" json:"quantity"`
	// WeightOz is the quantity of the product's unit per line; the column name
	// is historical, from the original oz-based pricing model.
	WeightOz   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"weight_oz"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_price"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (OrderItem) TableName() string { return "order_items" }
