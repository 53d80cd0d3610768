package quiz

import (
	"sync"

	"github.com/powderline/snowgear-backend/internal/catalog"
)

// DefaultPoolSize bounds the candidate fetch for one recommendation request.
const DefaultPoolSize = 250

// Repository fetches the candidate pool for scoring: products joined with
// their attribute bags and merchant display names.
type Repository interface {
	FetchCandidates(category *catalog.Category, limit int) ([]Candidate, error)
}

// InMemoryRepository serves candidates from a fixed slice in insertion
// order. Used for tests and local scenarios.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Candidate
}

func NewInMemoryRepository(seed []Candidate) *InMemoryRepository {
	r := &InMemoryRepository{storage: make([]Candidate, 0, len(seed))}
	r.storage = append(r.storage, seed...)
	return r
}

func (r *InMemoryRepository) FetchCandidates(category *catalog.Category, limit int) ([]Candidate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Candidate, 0)
	for _, c := range r.storage {
		if category != nil && c.Category != *category {
			continue
		}
		out = append(out, c)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}
