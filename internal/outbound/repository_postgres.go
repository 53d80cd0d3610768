package outbound

import (
	"database/sql"

	"github.com/powderline/snowgear-backend/internal/catalog"
)

// PostgresRepository implements Repository using Postgres.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ResolveTarget(productID string) (Target, error) {
	row := r.db.QueryRow(
		`SELECT id, merchant_id, affiliate_url, canonical_url FROM products WHERE id = $1`,
		productID,
	)
	t := Target{}
	var affiliate, canonical sql.NullString
	if err := row.Scan(&t.ProductID, &t.MerchantID, &affiliate, &canonical); err != nil {
		if err == sql.ErrNoRows {
			return Target{}, catalog.ErrNotFound
		}
		return Target{}, catalog.NewStoreUnavailable("target lookup failed", err)
	}
	if affiliate.Valid {
		t.AffiliateURL = &affiliate.String
	}
	if canonical.Valid {
		t.CanonicalURL = &canonical.String
	}
	return t, nil
}

func (r *PostgresRepository) LogClick(ev ClickEvent) error {
	_, err := r.db.Exec(
		`INSERT INTO click_events (session_id, product_id, merchant_id, referrer_path, user_agent) VALUES ($1,$2,$3,$4,$5)`,
		ev.SessionID, ev.ProductID, ev.MerchantID, ev.ReferrerPath, ev.UserAgent,
	)
	if err != nil {
		return catalog.NewStoreUnavailable("click insert failed", err)
	}
	return nil
}
