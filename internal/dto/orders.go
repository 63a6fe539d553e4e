package dto

import "github.com/shopspring/decimal"

type LineItemRequest struct {
	ProductID string          `json:"product_id" binding:"required,uuid"`
	Quantity  int             `json:"quantity" binding:"required"`
	WeightOz  decimal.Decimal `json:"weight_oz"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// OrderRequest is shared by create and update; an update replaces the whole
// item set with the one submitted.
type OrderRequest struct {
	CustomerID string            `json:"customer_id" binding:"required,uuid"`
	OrderName  string            `json:"order_name" binding:"required"`
	Status     string            `json:"status"`
	Items      []LineItemRequest `json:"order_items" binding:"required,min=1,dive"`
}
