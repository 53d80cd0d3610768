package quiz

import (
	"database/sql"

	gojson "github.com/goccy/go-json"

	"github.com/powderline/snowgear-backend/internal/catalog"
)

// PostgresRepository implements Repository using Postgres.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const candidatesQuery = `
	SELECT p.id, p.merchant_id, m.name, p.category, p.brand, p.title, p.image_url,
	       p.currency, p.price_cents, p.sale_price_cents, p.stock, p.last_seen_at,
	       pa.attrs
	FROM products p
	LEFT JOIN merchants m ON m.id = p.merchant_id
	LEFT JOIN product_attributes pa ON pa.product_id = p.id
`

// FetchCandidates pulls products, merchant names and attribute bags in one
// query. Ordering by recency then id keeps the fetch order deterministic, so
// score ties stay stable across identical requests.
func (r *PostgresRepository) FetchCandidates(category *catalog.Category, limit int) ([]Candidate, error) {
	q := candidatesQuery
	args := []any{}
	if category != nil {
		q += ` WHERE p.category = $1`
		args = append(args, string(*category))
	}
	args = append(args, limit)
	if category != nil {
		q += ` ORDER BY p.last_seen_at DESC NULLS LAST, p.id LIMIT $2`
	} else {
		q += ` ORDER BY p.last_seen_at DESC NULLS LAST, p.id LIMIT $1`
	}

	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, catalog.NewStoreUnavailable("candidates query failed", err)
	}
	defer rows.Close()

	out := make([]Candidate, 0, limit)
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, catalog.NewStoreUnavailable("candidates row scan failed", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, catalog.NewStoreUnavailable("candidates rows failed", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCandidate(scanner rowScanner) (Candidate, error) {
	c := Candidate{}
	var (
		merchantName sql.NullString
		category     string
		brand        sql.NullString
		imageURL     sql.NullString
		priceCents   sql.NullInt64
		saleCents    sql.NullInt64
		stock        sql.NullString
		lastSeenAt   sql.NullTime
		attrsRaw     []byte
	)
	if err := scanner.Scan(
		&c.ID,
		&c.MerchantID,
		&merchantName,
		&category,
		&brand,
		&c.Title,
		&imageURL,
		&c.Currency,
		&priceCents,
		&saleCents,
		&stock,
		&lastSeenAt,
		&attrsRaw,
	); err != nil {
		return Candidate{}, err
	}

	c.Category = catalog.Category(category)
	if merchantName.Valid {
		c.MerchantName = &merchantName.String
	}
	if brand.Valid {
		c.Brand = &brand.String
	}
	if imageURL.Valid {
		c.ImageURL = &imageURL.String
	}
	if priceCents.Valid {
		v := int(priceCents.Int64)
		c.PriceCents = &v
	}
	if saleCents.Valid {
		v := int(saleCents.Int64)
		c.SalePriceCents = &v
	}
	c.Stock = catalog.StockUnknown
	if stock.Valid && stock.String != "" {
		c.Stock = catalog.Stock(stock.String)
	}
	if lastSeenAt.Valid {
		t := lastSeenAt.Time.UTC()
		c.LastSeenAt = &t
	}

	if len(attrsRaw) > 0 {
		bag := map[string]any{}
		// a corrupt attrs document degrades to an empty bag; the scorer's
		// unknown branches take over from there
		if err := gojson.Unmarshal(attrsRaw, &bag); err == nil {
			c.Attrs = ParseAttrs(bag)
		}
	}
	return c, nil
}
