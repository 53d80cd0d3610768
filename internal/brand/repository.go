package brand

import (
	"sync"

	"github.com/powderline/snowgear-backend/internal/catalog"
)

// InMemoryRepository lists brands from a fixed product slice. Used for tests
// and local scenarios.
type InMemoryRepository struct {
	mu       sync.RWMutex
	products []catalog.Product
}

func NewInMemoryRepository(seed []catalog.Product) *InMemoryRepository {
	r := &InMemoryRepository{products: make([]catalog.Product, 0, len(seed))}
	r.products = append(r.products, seed...)
	return r
}

func (r *InMemoryRepository) ListBrands(category *catalog.Category) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0)
	for _, p := range r.products {
		if category != nil && p.Category != *category {
			continue
		}
		if p.Brand == nil || *p.Brand == "" {
			continue
		}
		out = append(out, *p.Brand)
	}
	return out, nil
}
