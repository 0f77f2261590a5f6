package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lumeo/admin-backend/internal/common"
	"github.com/lumeo/admin-backend/internal/domain"
	"github.com/lumeo/admin-backend/internal/repository"
	"github.com/lumeo/admin-backend/pkg/cache"
)

// ProductService handles product CRUD glue around the lifecycle engine.
// Status and workflow timestamps are never written here; only the
// WorkflowService mutates those.
type ProductService struct {
	products repository.ProductRepository
	catalog  repository.CatalogRepository
	cache    cache.Service
}

// NewProductService creates a new ProductService
func NewProductService(products repository.ProductRepository, catalog repository.CatalogRepository, cacheService cache.Service) *ProductService {
	return &ProductService{products: products, catalog: catalog, cache: cacheService}
}

// CreateProductInput fields accepted when creating a product
type CreateProductInput struct {
	Slug        string  `json:"slug" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	SKU         *string `json:"sku"`
	Price       *string `json:"price"`
}

// UpdateProductInput fields accepted when updating a product
type UpdateProductInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	SKU         *string `json:"sku"`
	Price       *string `json:"price"`
}

// Create stores a new product in draft status.
func (s *ProductService) Create(input CreateProductInput) (*domain.Product, error) {
	slug := strings.TrimSpace(input.Slug)
	name := strings.TrimSpace(input.Name)
	if slug == "" || name == "" {
		return nil, fmt.Errorf("%w: slug and name are required", common.ErrInvalidInput)
	}

	now := time.Now()
	product := &domain.Product{
		ID:          uuid.New().String(),
		Slug:        slug,
		Name:        name,
		Description: input.Description,
		SKU:         input.SKU,
		Price:       input.Price,
		Status:      domain.StatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.products.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Get returns a product by id. Published products are served from the
// cache when available; the facade invalidates on every transition.
func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	if s.cache != nil && s.cache.IsAvailable() {
		if data, err := s.cache.GetContent(ctx, string(domain.KindProduct), id); err == nil {
			var cached domain.Product
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	product, err := s.products.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: product %s", common.ErrContentNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	if product.Status == domain.StatusPublished && s.cache != nil && s.cache.IsAvailable() {
		_ = s.cache.SetContent(ctx, string(domain.KindProduct), id, product)
	}
	return product, nil
}

// List returns a page of products, optionally filtered by status.
func (s *ProductService) List(page, limit int, status domain.ContentStatus) ([]*domain.Product, *common.Meta, error) {
	page, limit = normalizePage(page, limit)
	if status != "" && !status.Valid() {
		return nil, nil, fmt.Errorf("%w: unknown status %q", common.ErrInvalidInput, status)
	}

	products, total, err := s.products.List(page, limit, status)
	if err != nil {
		return nil, nil, err
	}
	return products, &common.Meta{Page: page, Limit: limit, Total: total}, nil
}

// Update rewrites the editable content fields. The item must exist; status
// and lifecycle timestamps are untouched. Reads the database directly so a
// cached copy is never written back.
func (s *ProductService) Update(ctx context.Context, id string, input UpdateProductInput) (*domain.Product, error) {
	product, err := s.products.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: product %s", common.ErrContentNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", common.ErrInvalidInput)
		}
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.SKU != nil {
		product.SKU = input.SKU
	}
	if input.Price != nil {
		product.Price = input.Price
	}
	product.UpdatedAt = time.Now()

	if err := s.products.Update(product); err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.InvalidateContent(ctx, string(domain.KindProduct), id)
	}
	return product, nil
}

// PublishBlockers lists every unmet publication condition. Advisory: the
// hard gate inside Publish reports only the first failure.
func (s *ProductService) PublishBlockers(ctx context.Context, id string) ([]string, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.catalog.ProductBlockers(id)
}

// normalizePage applies the pagination defaults shared by list endpoints.
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
