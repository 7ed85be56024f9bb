package store

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"productapi/pkg/apperr"

	"github.com/google/uuid"
)

var _ ProductStore = (*MemoryStore)(nil)

// MemoryStore implements ProductStore with an order-preserving in-memory
// slice. A single RWMutex keeps one mutation in flight at a time; readers may
// overlap freely. The collection lives only for the process lifetime.
type MemoryStore struct {
	mu       sync.RWMutex
	products []Product
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// FindByID retrieves a single product by its unique identifier.
func (s *MemoryStore) FindByID(_ context.Context, id string) (*Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.products {
		if p.ID == id {
			found := p
			return &found, nil
		}
	}
	return nil, errNotFound(id)
}

// List filters by category, then by name search, computes the total and
// slices out the requested page. Out-of-range pages yield an empty slice with
// the correct total.
func (s *MemoryStore) List(_ context.Context, filter ListFilter) (*ProductPage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	filtered := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		if filter.Category != "" && !strings.EqualFold(p.Category, filter.Category) {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Search)) {
			continue
		}
		filtered = append(filtered, p)
	}

	start := (filter.Page - 1) * filter.Limit
	end := start + filter.Limit
	data := []Product{}
	if start >= 0 && start < len(filtered) {
		if end > len(filtered) {
			end = len(filtered)
		}
		data = append(data, filtered[start:end]...)
	}

	return &ProductPage{
		Page:  filter.Page,
		Limit: filter.Limit,
		Total: len(filtered),
		Data:  data,
	}, nil
}

// Create assigns a fresh unique id and appends the product to the end of the
// collection.
func (s *MemoryStore) Create(_ context.Context, fields Fields) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product := Product{
		ID:          uuid.NewString(),
		Name:        fields.Name,
		Description: fields.Description,
		Price:       fields.Price,
		Category:    fields.Category,
		InStock:     fields.InStock,
	}
	s.products = append(s.products, product)

	created := product
	return &created, nil
}

// Update replaces all five fields in place, keeping the id and the product's
// position in the collection.
func (s *MemoryStore) Update(_ context.Context, id string, fields Fields) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.products {
		if s.products[i].ID != id {
			continue
		}
		s.products[i] = Product{
			ID:          id,
			Name:        fields.Name,
			Description: fields.Description,
			Price:       fields.Price,
			Category:    fields.Category,
			InStock:     fields.InStock,
		}
		updated := s.products[i]
		return &updated, nil
	}
	return nil, errNotFound(id)
}

// DeleteByID removes a product and returns the removed value.
func (s *MemoryStore) DeleteByID(_ context.Context, id string) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.products {
		if s.products[i].ID != id {
			continue
		}
		removed := s.products[i]
		s.products = append(s.products[:i], s.products[i+1:]...)
		return &removed, nil
	}
	return nil, errNotFound(id)
}

// CountByCategory counts every stored product once under its stored,
// case-preserved category string.
func (s *MemoryStore) CountByCategory(_ context.Context) (*CategoryStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int)
	for _, p := range s.products {
		counts[p.Category]++
	}
	return &CategoryStats{
		Total:  len(s.products),
		Counts: counts,
	}, nil
}

func errNotFound(id string) error {
	return apperr.NotFound(fmt.Sprintf("Product with id %s not found", id))
}
