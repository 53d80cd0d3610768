package outbound

import (
	"sync"

	"github.com/powderline/snowgear-backend/internal/catalog"
)

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu      sync.RWMutex
	targets map[string]Target
	clicks  []ClickEvent
}

func NewInMemoryRepository(seed []Target) *InMemoryRepository {
	r := &InMemoryRepository{targets: make(map[string]Target, len(seed))}
	for _, t := range seed {
		r.targets[t.ProductID] = t
	}
	return r
}

func (r *InMemoryRepository) ResolveTarget(productID string) (Target, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.targets[productID]
	if !ok {
		return Target{}, catalog.ErrNotFound
	}
	return t, nil
}

func (r *InMemoryRepository) LogClick(ev ClickEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clicks = append(r.clicks, ev)
	return nil
}

// Clicks returns a copy of the recorded click events.
func (r *InMemoryRepository) Clicks() []ClickEvent {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ClickEvent, len(r.clicks))
	copy(out, r.clicks)
	return out
}
