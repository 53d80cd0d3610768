// Package ingest loads a normalized merchant feed into the catalog store:
// merchants are created on first sight, products upsert on
// (merchant_id, external_id), and attribute bags replace wholesale.
package ingest

import (
	"database/sql"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	gojson "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/powderline/snowgear-backend/internal/catalog"
)

// FeedProduct is one entry of feed.normalized.json. Field names follow the
// feed's snake_case wire format.
type FeedProduct struct {
	MerchantName   string         `json:"merchantName"`
	Network        string         `json:"network"`
	ExternalID     string         `json:"external_id"`
	Category       string         `json:"category"`
	Brand          *string        `json:"brand,omitempty"`
	Title          string         `json:"title"`
	CanonicalURL   string         `json:"canonical_url"`
	AffiliateURL   *string        `json:"affiliate_url,omitempty"`
	ImageURL       *string        `json:"image_url,omitempty"`
	PriceCents     *int           `json:"price_cents,omitempty"`
	SalePriceCents *int           `json:"sale_price_cents,omitempty"`
	Stock          *string        `json:"stock,omitempty"`
	Attrs          map[string]any `json:"attrs"`
}

var trailingArtifact = regexp.MustCompile(`\$\d+$`)

// CleanImageURL strips the trailing $0, $1, … artifacts some feeds append to
// image URLs. Returns nil for an absent or empty URL.
func CleanImageURL(url *string) *string {
	if url == nil {
		return nil
	}
	cleaned := trailingArtifact.ReplaceAllString(strings.TrimSpace(*url), "")
	if cleaned == "" {
		return nil
	}
	return &cleaned
}

// Loader runs one feed import against the store.
type Loader struct {
	db        *sql.DB
	logger    zerolog.Logger
	merchants map[string]string // name::network -> merchant id
}

func NewLoader(db *sql.DB, logger zerolog.Logger) *Loader {
	return &Loader{
		db:        db,
		logger:    logger.With().Str("component", "ingest").Logger(),
		merchants: make(map[string]string),
	}
}

// LoadFile reads a normalized feed file and imports it.
func (l *Loader) LoadFile(path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read feed: %w", err)
	}
	var feed []FeedProduct
	if err := gojson.Unmarshal(raw, &feed); err != nil {
		return 0, fmt.Errorf("parse feed: %w", err)
	}
	l.logger.Info().Int("items", len(feed)).Str("path", path).Msg("feed loaded")
	return l.Run(feed)
}

// Run imports the feed items one at a time, logging and skipping bad rows
// rather than aborting the whole load. Returns the upserted count.
func (l *Loader) Run(feed []FeedProduct) (int, error) {
	now := time.Now().UTC()
	count := 0
	for _, item := range feed {
		if _, ok := catalog.ParseCategory(item.Category); !ok {
			l.logger.Warn().Str("title", item.Title).Str("category", item.Category).Msg("skipping item with unknown category")
			continue
		}
		if item.Title == "" || item.ExternalID == "" {
			l.logger.Warn().Str("title", item.Title).Msg("skipping item with missing title or external_id")
			continue
		}

		merchantID, err := l.ensureMerchant(item.MerchantName, item.Network)
		if err != nil {
			return count, err
		}

		productID, err := l.upsertProduct(merchantID, item, now)
		if err != nil {
			l.logger.Error().Err(err).Str("title", item.Title).Msg("product upsert failed")
			continue
		}
		if err := l.upsertAttrs(productID, item.Attrs); err != nil {
			l.logger.Error().Err(err).Str("title", item.Title).Msg("attrs upsert failed")
			continue
		}

		l.logger.Debug().Str("category", item.Category).Str("title", item.Title).Msg("upserted")
		count++
	}
	l.logger.Info().Int("upserted", count).Int("total", len(feed)).Msg("feed import done")
	return count, nil
}

// ensureMerchant resolves a merchant id, creating the merchant on first
// sight and caching per name+network so repeat rows skip the lookup.
func (l *Loader) ensureMerchant(name, network string) (string, error) {
	key := name + "::" + network
	if id, ok := l.merchants[key]; ok {
		return id, nil
	}

	var id string
	err := l.db.QueryRow(`SELECT id FROM merchants WHERE name = $1 AND network = $2`, name, network).Scan(&id)
	if err == sql.ErrNoRows {
		id = uuid.NewString()
		if _, err := l.db.Exec(`INSERT INTO merchants (id, name, network) VALUES ($1,$2,$3)`, id, name, network); err != nil {
			return "", fmt.Errorf("insert merchant %q: %w", name, err)
		}
	} else if err != nil {
		return "", fmt.Errorf("lookup merchant %q: %w", name, err)
	}

	l.merchants[key] = id
	return id, nil
}

const upsertProductQuery = `
	INSERT INTO products (id, merchant_id, external_id, category, brand, title, canonical_url, affiliate_url, image_url, currency, price_cents, sale_price_cents, stock, last_seen_at)
	VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
	ON CONFLICT (merchant_id, external_id) DO UPDATE SET
		category = EXCLUDED.category,
		brand = EXCLUDED.brand,
		title = EXCLUDED.title,
		canonical_url = EXCLUDED.canonical_url,
		affiliate_url = EXCLUDED.affiliate_url,
		image_url = EXCLUDED.image_url,
		price_cents = EXCLUDED.price_cents,
		sale_price_cents = EXCLUDED.sale_price_cents,
		stock = EXCLUDED.stock,
		last_seen_at = EXCLUDED.last_seen_at
	RETURNING id
`

func (l *Loader) upsertProduct(merchantID string, item FeedProduct, now time.Time) (string, error) {
	stock := string(catalog.StockUnknown)
	if item.Stock != nil && *item.Stock != "" {
		stock = *item.Stock
	}

	var id string
	err := l.db.QueryRow(
		upsertProductQuery,
		uuid.NewString(),
		merchantID,
		item.ExternalID,
		item.Category,
		item.Brand,
		item.Title,
		item.CanonicalURL,
		item.AffiliateURL,
		CleanImageURL(item.ImageURL),
		"USD",
		item.PriceCents,
		item.SalePriceCents,
		stock,
		now,
	).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (l *Loader) upsertAttrs(productID string, attrs map[string]any) error {
	if attrs == nil {
		attrs = map[string]any{}
	}
	raw, err := gojson.Marshal(attrs)
	if err != nil {
		return err
	}
	_, err = l.db.Exec(
		`INSERT INTO product_attributes (product_id, attrs) VALUES ($1,$2) ON CONFLICT (product_id) DO UPDATE SET attrs = EXCLUDED.attrs`,
		productID, raw,
	)
	return err
}
