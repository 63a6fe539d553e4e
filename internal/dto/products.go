package dto

import "github.com/shopspring/decimal"

type ProductRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description *string         `json:"description"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Units       string          `json:"units"`
}
