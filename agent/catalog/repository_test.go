package catalog

import (
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// newOfflineRepository builds a repository whose queries can be rendered but
// never reach a server.
func newOfflineRepository(t *testing.T) *Repository {
	t.Helper()

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN("postgres://u:p@127.0.0.1:1/none?sslmode=disable")))
	db := bun.NewDB(sqldb, pgdialect.New())
	t.Cleanup(func() { _ = db.Close() })

	repo, err := NewRepository(db)
	if err != nil {
		t.Fatalf("NewRepository() error = %v", err)
	}
	return repo
}

func TestNewRepositoryNilDB(t *testing.T) {
	t.Parallel()

	if _, err := NewRepository(nil); err == nil {
		t.Fatal("expected error for nil db")
	}
}

func TestProductNamesQuery(t *testing.T) {
	t.Parallel()

	q := newOfflineRepository(t).productNamesQuery().String()
	for _, want := range []string{`FROM "products" AS "p"`, `"name"`, `ORDER BY "id" ASC`} {
		if !strings.Contains(q, want) {
			t.Fatalf("query %q does not contain %q", q, want)
		}
	}
	if strings.Contains(q, "WHERE") {
		t.Fatalf("query must not filter: %q", q)
	}
}

func TestProductByNameQuery(t *testing.T) {
	t.Parallel()

	var p Product
	q := newOfflineRepository(t).productByNameQuery(&p, "Pixel 8").String()
	if !strings.Contains(q, `p.name = 'Pixel 8'`) {
		t.Fatalf("unexpected query: %q", q)
	}
	if !strings.Contains(q, "LIMIT 1") {
		t.Fatalf("expected LIMIT 1: %q", q)
	}
}

func TestPriceRangeQueryIsInclusive(t *testing.T) {
	t.Parallel()

	q := newOfflineRepository(t).priceRangeQuery(100.5, 999.99).String()
	if !strings.Contains(q, "p.price BETWEEN") {
		t.Fatalf("expected BETWEEN filter: %q", q)
	}
	if !strings.Contains(q, "100.5") || !strings.Contains(q, "999.99") {
		t.Fatalf("expected bounds in query: %q", q)
	}
}

func TestFeatureQueryUsesILike(t *testing.T) {
	t.Parallel()

	q := newOfflineRepository(t).featureQuery("OLED").String()
	if !strings.Contains(q, `p.description ILIKE '%OLED%'`) {
		t.Fatalf("unexpected query: %q", q)
	}
}

func TestFeatureQueryQuotesInput(t *testing.T) {
	t.Parallel()

	q := newOfflineRepository(t).featureQuery("it's").String()
	if !strings.Contains(q, `'%it''s%'`) {
		t.Fatalf("expected quoted literal: %q", q)
	}
}

func TestEscapeLike(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"OLED":     "OLED",
		"100%":     `100\%`,
		"fast_chg": `fast\_chg`,
		`a\b`:      `a\\b`,
	}
	for in, want := range tests {
		if got := escapeLike(in); got != want {
			t.Fatalf("escapeLike(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestInsertOrderQuery(t *testing.T) {
	t.Parallel()

	q := newOfflineRepository(t).insertOrderQuery(&Order{
		Name:        "Ivan",
		Address:     "Lenina 1",
		PhoneNumber: "+79990000000",
	}).String()

	for _, want := range []string{`INSERT INTO "orders"`, "'Ivan'", "'Lenina 1'", "'+79990000000'", "RETURNING id, created_at"} {
		if !strings.Contains(q, want) {
			t.Fatalf("query %q does not contain %q", q, want)
		}
	}
}

func TestParseSeed(t *testing.T) {
	t.Parallel()

	raw := []byte(`
products:
  - name: " Pixel 8 "
    description: OLED 120Hz, Tensor G3
    price: 699
    count: 12
  - name: iPhone 15
    description: A16 Bionic, USB-C
    price: 799.5
    count: 3
`)
	products, err := ParseSeed(raw)
	if err != nil {
		t.Fatalf("ParseSeed() error = %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	if products[0].Name != "Pixel 8" {
		t.Fatalf("name not trimmed: %q", products[0].Name)
	}
	if products[1].Price != 799.5 || products[1].Count != 3 {
		t.Fatalf("unexpected product: %#v", products[1])
	}
}

func TestParseSeedRejectsInvalid(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"negative price": "products:\n  - {name: a, description: d, price: -1, count: 1}\n",
		"negative count": "products:\n  - {name: a, description: d, price: 1, count: -1}\n",
		"missing name":   "products:\n  - {description: d, price: 1}\n",
		"duplicate name": "products:\n  - {name: a, description: d1, price: 1}\n  - {name: a, description: d2, price: 1}\n",
		"duplicate desc": "products:\n  - {name: a, description: d, price: 1}\n  - {name: b, description: d, price: 1}\n",
		"bad yaml":       "products: [",
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseSeed([]byte(raw))
			if !errors.Is(err, ErrInvalidSeed) {
				t.Fatalf("ParseSeed() error = %v, want ErrInvalidSeed", err)
			}
		})
	}
}
