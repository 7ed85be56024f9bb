// Package service provides the implementation of product-related business logic.
package service

import (
	"context"
	"fmt"

	"productapi/internal/store"
)

// ProductService defines the methods for managing products.
// It abstracts the underlying business logic and data access.
type ProductService interface {
	// FindByID retrieves a single product by its unique identifier.
	// Returns a not-found error if no product exists with the given ID.
	FindByID(ctx context.Context, id string) (*ProductDto, error)

	// List returns one page of products matching the query.
	List(ctx context.Context, query ListQuery) (*ProductListDto, error)

	// Create validates the payload and adds a new product.
	// Returns a validation error if any field rule is violated.
	Create(ctx context.Context, payload ProductPayload) (*ProductDto, error)

	// Update validates the payload and replaces all fields of an existing
	// product, preserving its id.
	// Returns a not-found error if no product exists with the given ID.
	Update(ctx context.Context, id string, payload ProductPayload) (*ProductDto, error)

	// DeleteByID removes a product by its ID and returns the removed value.
	// Returns a not-found error if no product exists with the given ID.
	DeleteByID(ctx context.Context, id string) (*ProductDto, error)

	// CategoryStats returns the total product count and per-category counts.
	CategoryStats(ctx context.Context) (*CategoryStatsDto, error)
}

// Service implements ProductService and provides methods to manage products.
type Service struct {
	repository store.ProductStore
	validate   *payloadValidator
}

// NewService creates a new instance of ProductService with the provided repository.
func NewService(repo store.ProductStore) *Service {
	return &Service{
		repository: repo,
		validate:   newPayloadValidator(),
	}
}

// ProductDto represents the data transfer object for a product.
type ProductDto struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	InStock     bool    `json:"inStock"`
}

// ProductPayload is the client-supplied representation for create and update.
// Fields are pointers so absent or wrongly typed JSON values surface as rule
// violations instead of silent zero values. Unknown fields are dropped at
// decode time.
type ProductPayload struct {
	Name        *string  `json:"name"        validate:"required,notblank"`
	Description *string  `json:"description" validate:"required"`
	Price       *float64 `json:"price"       validate:"required,gte=0"`
	Category    *string  `json:"category"    validate:"required,notblank"`
	InStock     *bool    `json:"inStock"     validate:"required"`
}

// ListQuery narrows and pages a product listing.
type ListQuery struct {
	Category string
	Search   string
	Page     int
	Limit    int
}

// ProductListDto is one page of a filtered listing.
type ProductListDto struct {
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
	Total int          `json:"total"`
	Data  []ProductDto `json:"data"`
}

// CategoryStatsDto carries the total product count and per-category counts.
type CategoryStatsDto struct {
	Total  int            `json:"total"`
	Counts map[string]int `json:"counts"`
}

// FindByID retrieves a product by its ID and returns it as a ProductDto.
func (s *Service) FindByID(ctx context.Context, id string) (*ProductDto, error) {
	product, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %s: %w", id, err)
	}

	return toDto(product), nil
}

// List retrieves one page of products matching the query.
func (s *Service) List(ctx context.Context, query ListQuery) (*ProductListDto, error) {
	page, err := s.repository.List(ctx, store.ListFilter{
		Category: query.Category,
		Search:   query.Search,
		Page:     query.Page,
		Limit:    query.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	data := make([]ProductDto, len(page.Data))
	for i, item := range page.Data {
		data[i] = *toDto(&item)
	}

	return &ProductListDto{
		Page:  page.Page,
		Limit: page.Limit,
		Total: page.Total,
		Data:  data,
	}, nil
}

// Create validates the payload and creates a new product.
func (s *Service) Create(ctx context.Context, payload ProductPayload) (*ProductDto, error) {
	if err := s.validate.check(payload); err != nil {
		return nil, err
	}

	product, err := s.repository.Create(ctx, toFields(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return toDto(product), nil
}

// Update validates the payload and replaces all fields of an existing product.
func (s *Service) Update(ctx context.Context, id string, payload ProductPayload) (*ProductDto, error) {
	if err := s.validate.check(payload); err != nil {
		return nil, err
	}

	updated, err := s.repository.Update(ctx, id, toFields(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to update product with ID %s: %w", id, err)
	}

	return toDto(updated), nil
}

// DeleteByID deletes a product by its ID and returns the removed value.
func (s *Service) DeleteByID(ctx context.Context, id string) (*ProductDto, error) {
	removed, err := s.repository.DeleteByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete product with ID %s: %w", id, err)
	}

	return toDto(removed), nil
}

// CategoryStats returns the total product count and per-category counts.
func (s *Service) CategoryStats(ctx context.Context) (*CategoryStatsDto, error) {
	stats, err := s.repository.CountByCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count products by category: %w", err)
	}

	return &CategoryStatsDto{
		Total:  stats.Total,
		Counts: stats.Counts,
	}, nil
}

// toDto converts a store.Product to a ProductDto.
func toDto(product *store.Product) *ProductDto {
	return &ProductDto{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Category:    product.Category,
		InStock:     product.InStock,
	}
}

// toFields converts a validated payload to store.Fields. The payload must
// have passed validation, so every pointer is non-nil.
func toFields(payload ProductPayload) store.Fields {
	return store.Fields{
		Name:        *payload.Name,
		Description: *payload.Description,
		Price:       *payload.Price,
		Category:    *payload.Category,
		InStock:     *payload.InStock,
	}
}
