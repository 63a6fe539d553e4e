package service

import (
	"context"

	"github.com/iguana/koalashop/internal/models"

	"github.com/google/uuid"
)

type CustomerInput struct {
	Name    string
	Email   *string
	Phone   *string
	Address *string
}

type CustomerService interface {
	CreateCustomer(ctx context.Context, in CustomerInput) (*models.Customer, error)
	GetCustomer(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	UpdateCustomer(ctx context.Context, id uuid.UUID, in CustomerInput) (*models.Customer, error)
	DeleteCustomer(ctx context.Context, id uuid.UUID) error
	ListCustomers(ctx context.Context) ([]models.Customer, error)
	SearchCustomers(ctx context.Context, query string) ([]models.Customer, error)
	ListCustomerOrders(ctx context.Context, id uuid.UUID) ([]models.Order, error)
}
