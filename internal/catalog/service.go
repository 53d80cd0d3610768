package catalog

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Query validates the filter and returns the ordered product list. Validation
// happens before any store access so a malformed filter never produces a
// partial result.
func (s *Service) Query(f Filter) ([]Product, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Query(f)
}

func (s *Service) GetByID(id string) (Product, error) {
	return s.repo.GetByID(id)
}

func (s *Service) ListByIDs(ids []string) ([]Product, error) {
	return s.repo.ListByIDs(ids)
}
