package quiz

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/powderline/snowgear-backend/internal/catalog"
)

var candidateCols = []string{"id", "merchant_id", "name", "category", "brand", "title", "image_url", "currency", "price_cents", "sale_price_cents", "stock", "last_seen_at", "attrs"}

func TestFetchCandidatesJoinsAttrsAndMerchant(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := sqlmock.NewRows(candidateCols).
		AddRow("c1", "m1", "Alpine Deals", "board", "Burton", "Custom Camber", nil, "USD", 50000, 42000, "in_stock", time.Now(), []byte(`{"flex":6,"profile":"camber","base":"sintered"}`)).
		AddRow("c2", "m1", "Alpine Deals", "board", nil, "Mystery Board", nil, "USD", nil, nil, nil, nil, nil)

	mock.ExpectQuery("LEFT JOIN product_attributes").
		WithArgs("board", DefaultPoolSize).
		WillReturnRows(rows)

	cat := catalog.CategoryBoard
	out, err := repo.FetchCandidates(&cat, DefaultPoolSize)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(out))
	}

	c := out[0]
	if c.Attrs.Flex == nil || *c.Attrs.Flex != 6 {
		t.Fatalf("flex attr not decoded: %+v", c.Attrs)
	}
	if c.Attrs.Profile != "camber" {
		t.Fatalf("profile attr not decoded: %+v", c.Attrs)
	}
	if c.Attrs.Extra["base"] != "sintered" {
		t.Fatalf("residual attrs not kept: %+v", c.Attrs.Extra)
	}
	if c.MerchantName == nil || *c.MerchantName != "Alpine Deals" {
		t.Fatalf("merchant name not joined: %+v", c.Product)
	}

	// a candidate with no attrs row and no prices still scores through the
	// unknown branches
	empty := out[1]
	if empty.Attrs.Flex != nil || empty.Attrs.Profile != "" {
		t.Fatalf("missing attrs row must read as absent: %+v", empty.Attrs)
	}
	if empty.Stock != catalog.StockUnknown {
		t.Fatalf("null stock must default to unknown, got %v", empty.Stock)
	}
	if _, ok := empty.EffectivePriceCents(); ok {
		t.Fatalf("expected unknown effective price")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestFetchCandidatesWithoutCategory(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("LEFT JOIN product_attributes").
		WithArgs(DefaultPoolSize).
		WillReturnRows(sqlmock.NewRows(candidateCols))

	if _, err := repo.FetchCandidates(nil, DefaultPoolSize); err != nil {
		t.Fatalf("fetch failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestFetchCandidatesStoreFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("LEFT JOIN product_attributes").WillReturnError(errors.New("connection refused"))

	if _, err := repo.FetchCandidates(nil, DefaultPoolSize); !catalog.IsStoreUnavailable(err) {
		t.Fatalf("expected StoreUnavailable, got %v", err)
	}
}
