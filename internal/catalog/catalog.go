package catalog

import "time"

// Category is the closed set of product categories carried by the feed.
type Category string

const (
	CategoryBoard    Category = "board"
	CategoryBoots    Category = "boots"
	CategoryBindings Category = "bindings"
)

// AllowedCategories contains the supported product categories used across the app.
var AllowedCategories = []Category{CategoryBoard, CategoryBoots, CategoryBindings}

// ParseCategory validates a raw category value from the feed or a query string.
func ParseCategory(s string) (Category, bool) {
	for _, c := range AllowedCategories {
		if s == string(c) {
			return c, true
		}
	}
	return "", false
}

// Stock is the availability state reported by the merchant feed.
type Stock string

const (
	StockIn      Stock = "in_stock"
	StockOut     Stock = "out_of_stock"
	StockUnknown Stock = "unknown"
)

// SortKey selects the ordering of a product query.
type SortKey string

const (
	SortBestDeal  SortKey = "best_deal"
	SortPriceAsc  SortKey = "price_asc"
	SortPriceDesc SortKey = "price_desc"
	SortNewest    SortKey = "newest"
)

// Product is a normalized catalog listing ingested from a merchant feed.
// JSON tags follow the camelCase convention used elsewhere in the project.
type Product struct {
	ID             string     `json:"productId"`
	MerchantID     string     `json:"merchantId"`
	MerchantName   *string    `json:"merchantName,omitempty"`
	Category       Category   `json:"category"`
	Brand          *string    `json:"brand,omitempty"`
	Title          string     `json:"title"`
	ImageURL       *string    `json:"imageUrl,omitempty"`
	Currency       string     `json:"currency"`
	PriceCents     *int       `json:"priceCents,omitempty"`
	SalePriceCents *int       `json:"salePriceCents,omitempty"`
	Stock          Stock      `json:"stock"`
	LastSeenAt     *time.Time `json:"lastSeenAt,omitempty"`
}

// EffectivePriceCents is the single price used for filtering, sorting and
// budget checks: sale price when present, else list price. The second return
// is false when the product has neither price (unknown, never zero).
func (p Product) EffectivePriceCents() (int, bool) {
	if p.SalePriceCents != nil {
		return *p.SalePriceCents, true
	}
	if p.PriceCents != nil {
		return *p.PriceCents, true
	}
	return 0, false
}

// Merchant is the owner of a set of products. Written only by the ingest
// pipeline; the query side reads its name for display.
type Merchant struct {
	ID      string `json:"merchantId"`
	Name    string `json:"merchantName"`
	Network string `json:"network"`
}
