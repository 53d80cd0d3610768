package catalog

import (
	"sort"
	"sync"
)

// Repository is the read gateway over the catalog store. Implementations
// must return rows already ordered per the filter's sort key with ties broken
// by insertion/id order, so identical calls yield identical sequences.
type Repository interface {
	Query(f Filter) ([]Product, error)
	GetByID(id string) (Product, error)
	ListByIDs(ids []string) ([]Product, error)
}

// InMemoryRepository is a simple in-memory implementation useful for tests
// and seeding local data.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Product
}

func NewInMemoryRepository(seed []Product) *InMemoryRepository {
	r := &InMemoryRepository{storage: make([]Product, 0, len(seed))}
	r.storage = append(r.storage, seed...)
	return r
}

func (r *InMemoryRepository) Query(f Filter) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Product, 0)
	for _, p := range r.storage {
		if f.matches(p) {
			out = append(out, p)
		}
	}
	// stable sort keeps seed order for ties
	sort.SliceStable(out, func(i, j int) bool { return f.less(out[i], out[j]) })
	if limit := f.limitOrDefault(); len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *InMemoryRepository) GetByID(id string) (Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.storage {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) ListByIDs(ids []string) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	out := make([]Product, 0, len(ids))
	for _, p := range r.storage {
		if want[p.ID] {
			out = append(out, p)
		}
	}
	return out, nil
}

// Reset replaces the whole in-memory storage with the provided products.
func (r *InMemoryRepository) Reset(products []Product) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.storage = make([]Product, 0, len(products))
	r.storage = append(r.storage, products...)
}
