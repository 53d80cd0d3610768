// Package brand derives the distinct set of brand names available for a
// category, used to populate the filter sidebar.
package brand

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/powderline/snowgear-backend/internal/catalog"
)

// Repository provides access to raw brand values.
type Repository interface {
	// ListBrands returns the non-empty brand values for the category, or for
	// every category when category is nil. Values may repeat; the service
	// deduplicates and sorts.
	ListBrands(category *catalog.Category) ([]string, error)
}

// Service deduplicates and orders brand names for display.
type Service struct {
	repo     Repository
	collator *collate.Collator
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:     repo,
		collator: collate.New(language.English),
	}
}

// List returns the sorted set of distinct brand names. Gateway failures
// surface as-is; a partial list is never returned silently.
func (s *Service) List(category *catalog.Category) ([]string, error) {
	raw, err := s.repo.ListBrands(category)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(raw))
	out := make([]string, 0, len(raw))
	for _, b := range raw {
		if b == "" || seen[b] {
			continue
		}
		seen[b] = true
		out = append(out, b)
	}
	// locale-aware ascending order, the server-side counterpart of the
	// frontend's localeCompare
	s.collator.SortStrings(out)
	return out, nil
}
