package quiz

import (
	"sort"

	"github.com/powderline/snowgear-backend/internal/catalog"
)

type Service struct {
	repo     Repository
	poolSize int
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, poolSize: DefaultPoolSize}
}

// Recommend fetches the bounded candidate pool, scores every candidate, and
// returns the full list in descending score order. Ties keep fetch order
// (stable sort); callers truncate to a display page size.
func (s *Service) Recommend(a Answers) ([]Scored, error) {
	var category *catalog.Category
	if a.Category != QuizCategoryAll {
		c := catalog.Category(a.Category)
		category = &c
	}

	candidates, err := s.repo.FetchCandidates(category, s.poolSize)
	if err != nil {
		return nil, err
	}

	scored := make([]Scored, 0, len(candidates))
	for _, c := range candidates {
		score, why := ScoreOne(a, c)
		scored = append(scored, Scored{Candidate: c, Score: score, Why: why})
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	return scored, nil
}
