// Package store provides an interface for product storage operations.
package store

import "context"

// Product is the stored representation of a catalog item. The ID is assigned
// at creation and never changes; category is stored case-preserved.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       float64
	Category    string
	InStock     bool
}

// Fields carries the five client-settable attributes of a product. It is the
// input to Create and Update; the store owns id assignment.
type Fields struct {
	Name        string
	Description string
	Price       float64
	Category    string
	InStock     bool
}

// ListFilter narrows and pages a listing. Category matches case-insensitively
// and exactly; Search matches case-insensitively as a substring of the name.
type ListFilter struct {
	Category string
	Search   string
	Page     int
	Limit    int
}

// ProductPage is one page of a filtered listing. Total counts matches after
// filtering, before pagination.
type ProductPage struct {
	Page  int
	Limit int
	Total int
	Data  []Product
}

// CategoryStats counts every stored product once under its stored category.
type CategoryStats struct {
	Total  int
	Counts map[string]int
}

// ProductStore is an interface for product storage operations.
// It abstracts the underlying data store, allowing for different implementations.
type ProductStore interface {
	// FindByID retrieves a single product by its unique identifier.
	// Returns a not-found error if no product exists with the given ID.
	FindByID(ctx context.Context, id string) (*Product, error)

	// List returns one page of products matching the filter, in insertion order.
	List(ctx context.Context, filter ListFilter) (*ProductPage, error)

	// Create adds a new product with a freshly assigned unique id,
	// appending it to the end of the collection.
	Create(ctx context.Context, fields Fields) (*Product, error)

	// Update replaces all five client-settable fields of an existing product
	// in place, preserving its id and position in the collection.
	// Returns a not-found error if no product exists with the given ID.
	Update(ctx context.Context, id string, fields Fields) (*Product, error)

	// DeleteByID removes a product by its ID and returns the removed value.
	// Returns a not-found error if no product exists with the given ID.
	DeleteByID(ctx context.Context, id string) (*Product, error)

	// CountByCategory returns per-category counts over the whole collection.
	CountByCategory(ctx context.Context) (*CategoryStats, error)
}
