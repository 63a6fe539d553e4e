package service

import (
	"context"
	"strings"
	"time"

	"github.com/iguana/koalashop/internal/models"
	"github.com/iguana/koalashop/internal/repository"

	"github.com/google/uuid"
)

const (
	searchMinQueryLen   = 2
	searchResultLimit   = 10
	searchFallbackLimit = 50
	customerOrdersLimit = 10
)

type customerService struct {
	repo *repository.Repository
	now  func() time.Time
}

func NewCustomerService(repo *repository.Repository) CustomerService {
	return &customerService{repo: repo, now: time.Now}
}

func (s *customerService) CreateCustomer(ctx context.Context, in CustomerInput) (*models.Customer, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, invalidField("name", "is required")
	}

	now := s.now()
	c := &models.Customer{
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Customers.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *customerService) GetCustomer(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	c, err := s.repo.Customers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCustomerNotFound
	}
	return c, nil
}

// UpdateCustomer replaces every mutable field; omitted optional fields are
// cleared, mirroring the form-backed full-record submit.
func (s *customerService) UpdateCustomer(ctx context.Context, id uuid.UUID, in CustomerInput) (*models.Customer, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, invalidField("name", "is required")
	}

	affected, err := s.repo.Customers.UpdateFields(ctx, id, map[string]any{
		"name":       in.Name,
		"email":      in.Email,
		"phone":      in.Phone,
		"address":    in.Address,
		"updated_at": s.now(),
	})
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrCustomerNotFound
	}
	return s.repo.Customers.GetByID(ctx, id)
}

func (s *customerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	cnt, err := s.repo.Orders.CountByCustomer(ctx, id)
	if err != nil {
		return err
	}
	if cnt > 0 {
		return ErrCustomerHasOrders
	}

	ok, err := s.repo.Customers.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCustomerNotFound
	}
	return nil
}

func (s *customerService) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	return s.repo.Customers.List(ctx, 0)
}

// SearchCustomers matches name, email and phone. Queries shorter than two
// characters return nothing; an empty query lists the first customers by name.
func (s *customerService) SearchCustomers(ctx context.Context, query string) ([]models.Customer, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return s.repo.Customers.List(ctx, searchFallbackLimit)
	}
	if len(q) < searchMinQueryLen {
		return []models.Customer{}, nil
	}
	return s.repo.Customers.Search(ctx, q, searchResultLimit)
}

func (s *customerService) ListCustomerOrders(ctx context.Context, id uuid.UUID) ([]models.Order, error) {
	c, err := s.repo.Customers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCustomerNotFound
	}
	return s.repo.Orders.ListByCustomer(ctx, id, customerOrdersLimit)
}
