package service

import (
	"context"
	"strings"
	"time"

	"github.com/iguana/koalashop/internal/models"
	"github.com/iguana/koalashop/internal/repository"

	"github.com/google/uuid"
)

type productService struct {
	repo *repository.Repository
	now  func() time.Time
}

func NewProductService(repo *repository.Repository) ProductService {
	return &productService{repo: repo, now: time.Now}
}

func validateProductInput(in *ProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return invalidField("name", "is required")
	}
	if in.UnitPrice.IsNegative() {
		return invalidField("unit_price", "must not be negative")
	}
	if in.Units == "" {
		in.Units = models.ProductUnitsOz
	}
	if !in.Units.Valid() {
		return invalidField("units", "must be one of oz, each, lbs, grams")
	}
	return nil
}

func (s *productService) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	if err := validateProductInput(&in); err != nil {
		return nil, err
	}

	p := &models.Product{
		Name:        in.Name,
		Description: in.Description,
		UnitPrice:   in.UnitPrice,
		Units:       in.Units,
		CreatedAt:   s.now(),
	}
	if err := s.repo.Products.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *productService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	p, err := s.repo.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id uuid.UUID, in ProductInput) (*models.Product, error) {
	if err := validateProductInput(&in); err != nil {
		return nil, err
	}

	affected, err := s.repo.Products.UpdateFields(ctx, id, map[string]any{
		"name":        in.Name,
		"description": in.Description,
		"unit_price":  in.UnitPrice,
		"units":       in.Units,
	})
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrProductNotFound
	}
	return s.repo.Products.GetByID(ctx, id)
}

// DeleteProduct refuses to remove products that historical order lines still
// reference; order pricing snapshots must keep resolving.
func (s *productService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	cnt, err := s.repo.OrderItems.CountByProduct(ctx, id)
	if err != nil {
		return err
	}
	if cnt > 0 {
		return ErrProductInUse
	}

	ok, err := s.repo.Products.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrProductNotFound
	}
	return nil
}

func (s *productService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.repo.Products.List(ctx)
}
