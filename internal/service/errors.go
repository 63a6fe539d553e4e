package service

import "errors"

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrProductNotFound  = errors.New("product not found")

	ErrCustomerHasOrders = errors.New("customer still has orders")
	ErrProductInUse      = errors.New("product is referenced by order items")
)

// ValidationError names the violated request field. It is always raised
// before any store access.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Field + ": " + e.Reason
}

func invalidField(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
