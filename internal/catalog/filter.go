package catalog

import (
	"fmt"
	"strings"
)

// DefaultLimit caps a product query when the caller does not ask for one.
const DefaultLimit = 60

// Filter describes an AND-combined set of optional predicates plus a sort
// key. Absent fields are nil and contribute no predicate at all; there is no
// sentinel value that could collide with real data.
type Filter struct {
	Category      *Category
	Brand         *string
	Query         *string
	MinPriceCents *int
	MaxPriceCents *int
	Sort          SortKey
	Limit         int
}

// Validate rejects malformed or contradictory bounds before any store access.
func (f Filter) Validate() error {
	if f.MinPriceCents != nil && *f.MinPriceCents < 0 {
		return NewInvalidFilter(fmt.Sprintf("minPriceCents must be >= 0, got %d", *f.MinPriceCents))
	}
	if f.MaxPriceCents != nil && *f.MaxPriceCents < 0 {
		return NewInvalidFilter(fmt.Sprintf("maxPriceCents must be >= 0, got %d", *f.MaxPriceCents))
	}
	if f.MinPriceCents != nil && f.MaxPriceCents != nil && *f.MinPriceCents > *f.MaxPriceCents {
		return NewInvalidFilter("minPriceCents exceeds maxPriceCents")
	}
	if f.Limit < 0 {
		return NewInvalidFilter(fmt.Sprintf("limit must be >= 0, got %d", f.Limit))
	}
	return nil
}

// limitOrDefault is the hard row cap applied by every repository.
func (f Filter) limitOrDefault() int {
	if f.Limit > 0 {
		return f.Limit
	}
	return DefaultLimit
}

// matches reports whether a product satisfies every present predicate.
// A product with unknown effective price never satisfies a price bound.
func (f Filter) matches(p Product) bool {
	if f.Category != nil && p.Category != *f.Category {
		return false
	}
	if f.Brand != nil && (p.Brand == nil || *p.Brand != *f.Brand) {
		return false
	}
	if f.Query != nil && !strings.Contains(strings.ToLower(p.Title), strings.ToLower(*f.Query)) {
		return false
	}
	if f.MinPriceCents != nil || f.MaxPriceCents != nil {
		effective, ok := p.EffectivePriceCents()
		if !ok {
			return false
		}
		if f.MinPriceCents != nil && effective < *f.MinPriceCents {
			return false
		}
		if f.MaxPriceCents != nil && effective > *f.MaxPriceCents {
			return false
		}
	}
	return true
}

// less orders two products under the filter's sort key. Equal products are
// not distinguished here; callers rely on a stable sort to keep insertion
// order for ties.
func (f Filter) less(a, b Product) bool {
	switch f.Sort {
	case SortNewest:
		switch {
		case a.LastSeenAt == nil:
			return false
		case b.LastSeenAt == nil:
			return true
		default:
			return a.LastSeenAt.After(*b.LastSeenAt)
		}
	case SortPriceDesc:
		ap, aok := a.EffectivePriceCents()
		bp, bok := b.EffectivePriceCents()
		if aok != bok {
			return aok // unknown prices trail
		}
		return aok && ap > bp
	default: // price_asc and best_deal share the ascending order
		ap, aok := a.EffectivePriceCents()
		bp, bok := b.EffectivePriceCents()
		if aok != bok {
			return aok
		}
		return aok && ap < bp
	}
}
