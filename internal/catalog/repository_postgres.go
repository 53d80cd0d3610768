package catalog

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const productColumns = `p.id, p.merchant_id, m.name, p.category, p.brand, p.title, p.image_url, p.currency, p.price_cents, p.sale_price_cents, p.stock, p.last_seen_at`

const selectProducts = `
	SELECT ` + productColumns + `
	FROM products p
	LEFT JOIN merchants m ON m.id = p.merchant_id
`

// Query assembles the filter into a single SQL statement. Each optional
// field appends exactly one predicate; absent fields append nothing. Price
// bounds use the sale-else-list rule in SQL so a product with neither price
// never satisfies a bound.
func (r *PostgresRepository) Query(f Filter) ([]Product, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Category != nil {
		where = append(where, "p.category = "+arg(string(*f.Category)))
	}
	if f.Brand != nil {
		where = append(where, "p.brand = "+arg(*f.Brand))
	}
	if f.Query != nil {
		where = append(where, `p.title ILIKE `+arg("%"+escapeLike(*f.Query)+"%")+` ESCAPE '\'`)
	}
	if f.MinPriceCents != nil {
		ph := arg(*f.MinPriceCents)
		where = append(where, fmt.Sprintf("(p.sale_price_cents >= %[1]s OR (p.sale_price_cents IS NULL AND p.price_cents >= %[1]s))", ph))
	}
	if f.MaxPriceCents != nil {
		ph := arg(*f.MaxPriceCents)
		where = append(where, fmt.Sprintf("(p.sale_price_cents <= %[1]s OR (p.sale_price_cents IS NULL AND p.price_cents <= %[1]s))", ph))
	}

	q := selectProducts
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY " + orderClause(f.Sort)
	q += " LIMIT " + arg(f.limitOrDefault())

	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, NewStoreUnavailable("products query failed", err)
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, NewStoreUnavailable("products row scan failed", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, NewStoreUnavailable("products rows failed", err)
	}
	return out, nil
}

func (r *PostgresRepository) GetByID(id string) (Product, error) {
	row := r.db.QueryRow(selectProducts+" WHERE p.id = $1", id)
	p, err := scanProduct(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return Product{}, ErrNotFound
		}
		return Product{}, NewStoreUnavailable("product lookup failed", err)
	}
	return p, nil
}

// ListByIDs retrieves the products for all IDs in the provided slice.
// Returns an empty slice when the input is empty.
func (r *PostgresRepository) ListByIDs(ids []string) ([]Product, error) {
	if len(ids) == 0 {
		return []Product{}, nil
	}
	rows, err := r.db.Query(selectProducts+" WHERE p.id = ANY($1) ORDER BY p.id", pq.Array(ids))
	if err != nil {
		return nil, NewStoreUnavailable("products lookup by ids failed", err)
	}
	defer rows.Close()

	out := make([]Product, 0, len(ids))
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, NewStoreUnavailable("products row scan failed", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, NewStoreUnavailable("products rows failed", err)
	}
	return out, nil
}

// orderClause maps the sort key to an ORDER BY body. Unknown effective
// prices sort last in both price orders; id breaks ties so repeated queries
// return identical sequences.
func orderClause(sort SortKey) string {
	switch sort {
	case SortNewest:
		return "p.last_seen_at DESC NULLS LAST, p.id"
	case SortPriceDesc:
		return "COALESCE(p.sale_price_cents, p.price_cents) DESC NULLS LAST, p.id"
	default: // price_asc and best_deal
		return "COALESCE(p.sale_price_cents, p.price_cents) ASC NULLS LAST, p.id"
	}
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(scanner rowScanner) (Product, error) {
	p := Product{}
	var (
		merchantName sql.NullString
		category     string
		brand        sql.NullString
		imageURL     sql.NullString
		priceCents   sql.NullInt64
		saleCents    sql.NullInt64
		stock        sql.NullString
		lastSeenAt   sql.NullTime
	)
	if err := scanner.Scan(
		&p.ID,
		&p.MerchantID,
		&merchantName,
		&category,
		&brand,
		&p.Title,
		&imageURL,
		&p.Currency,
		&priceCents,
		&saleCents,
		&stock,
		&lastSeenAt,
	); err != nil {
		return Product{}, err
	}

	p.Category = Category(category)
	if merchantName.Valid {
		p.MerchantName = &merchantName.String
	}
	if brand.Valid {
		p.Brand = &brand.String
	}
	if imageURL.Valid {
		p.ImageURL = &imageURL.String
	}
	if priceCents.Valid {
		v := int(priceCents.Int64)
		p.PriceCents = &v
	}
	if saleCents.Valid {
		v := int(saleCents.Int64)
		p.SalePriceCents = &v
	}
	p.Stock = StockUnknown
	if stock.Valid && stock.String != "" {
		p.Stock = Stock(stock.String)
	}
	if lastSeenAt.Valid {
		t := lastSeenAt.Time.UTC()
		p.LastSeenAt = &t
	}
	return p, nil
}
