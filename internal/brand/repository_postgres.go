package brand

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

func (r *PostgresRepository) ListBrands(category *catalog.Category) ([]string, error) {
	q := `SELECT DISTINCT brand FROM products WHERE brand IS NOT NULL AND brand <> ''`
	args := []any{}
	if category != nil {
		q += ` AND category = $1`
		args = append(args, string(*category))
	}

	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, catalog.NewStoreUnavailable("brands query failed", err)
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var b string
		if err := rows.Scan(&b); err != nil {
			return nil, catalog.NewStoreUnavailable("brands row scan failed", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, catalog.NewStoreUnavailable("brands rows failed", err)
	}
	return out, nil
}
