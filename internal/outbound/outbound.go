// Package outbound resolves a product to its merchant link and records the
// click. This is the only write-side interaction with catalog data: a click
// log, never a product mutation.
package outbound

// Target holds the URLs a product can redirect to. The affiliate URL wins;
// the canonical URL is the fallback.
type Target struct {
	ProductID    string
	MerchantID   string
	AffiliateURL *string
	CanonicalURL *string
}

// Destination picks the outbound URL, or "" when the product has neither.
func (t Target) Destination() string {
	if t.AffiliateURL != nil && *t.AffiliateURL != "" {
		return *t.AffiliateURL
	}
	if t.CanonicalURL != nil && *t.CanonicalURL != "" {
		return *t.CanonicalURL
	}
	return ""
}

// ClickEvent is one outbound click. Best-effort: a failed insert never
// blocks the redirect.
type ClickEvent struct {
	SessionID    string
	ProductID    string
	MerchantID   string
	ReferrerPath string
	UserAgent    string
}

// Repository provides target resolution and click persistence.
type Repository interface {
	ResolveTarget(productID string) (Target, error)
	LogClick(ev ClickEvent) error
}

// Service provides business logic for outbound redirects.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Resolve(productID string) (Target, error) {
	return s.repo.ResolveTarget(productID)
}

func (s *Service) LogClick(ev ClickEvent) error {
	return s.repo.LogClick(ev)
}
