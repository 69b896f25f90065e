package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	contractx "github.com/tanpawarit/Chative-Phone-Sales-Assistant/agent/contract"
	"github.com/uptrace/bun"
)

// Repository reads the catalog and records orders. Every call takes its own
// connection from the pool.
type Repository struct {
	db *bun.DB
}

var _ contractx.Catalog = (*Repository)(nil)

func NewRepository(db *bun.DB) (*Repository, error) {
	if db == nil {
		return nil, errors.New("catalog: db is required")
	}
	return &Repository{db: db}, nil
}

func (r *Repository) ProductNames(ctx context.Context) ([]string, error) {
	var names []string
	if err := r.productNamesQuery().Scan(ctx, &names); err != nil {
		return nil, fmt.Errorf("select product names: %w", err)
	}
	return names, nil
}

func (r *Repository) ProductByName(ctx context.Context, name string) (contractx.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return contractx.Product{}, fmt.Errorf("%w: empty name", contractx.ErrProductNotFound)
	}

	var p Product
	if err := r.productByNameQuery(&p, name).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return contractx.Product{}, fmt.Errorf("%w: %q", contractx.ErrProductNotFound, name)
		}
		return contractx.Product{}, fmt.Errorf("select product %q: %w", name, err)
	}
	return p.toContract(), nil
}

// ProductNamesByPriceRange matches minPrice <= price <= maxPrice.
func (r *Repository) ProductNamesByPriceRange(ctx context.Context, minPrice, maxPrice float64) ([]string, error) {
	var names []string
	if err := r.priceRangeQuery(minPrice, maxPrice).Scan(ctx, &names); err != nil {
		return nil, fmt.Errorf("select products by price: %w", err)
	}
	return names, nil
}

// ProductNamesByFeature matches feature as a case-insensitive literal substring
// of the description.
func (r *Repository) ProductNamesByFeature(ctx context.Context, feature string) ([]string, error) {
	var names []string
	if err := r.featureQuery(feature).Scan(ctx, &names); err != nil {
		return nil, fmt.Errorf("select products by feature: %w", err)
	}
	return names, nil
}

func (r *Repository) CreateOrder(ctx context.Context, req contractx.OrderRequest) (contractx.PlacedOrder, error) {
	order := &Order{
		Name:        req.Name,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
	}
	if _, err := r.insertOrderQuery(order).Exec(ctx); err != nil {
		return contractx.PlacedOrder{}, fmt.Errorf("insert order: %w", err)
	}
	return order.toContract(), nil
}

// Products returns every catalog row ordered by id.
func (r *Repository) Products(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := r.db.NewSelect().Model(&products).Order("id ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	return products, nil
}

func (r *Repository) productNamesQuery() *bun.SelectQuery {
	return r.db.NewSelect().
		Model((*Product)(nil)).
		Column("name").
		Order("id ASC")
}

func (r *Repository) productByNameQuery(dest *Product, name string) *bun.SelectQuery {
	return r.db.NewSelect().
		Model(dest).
		Where("p.name = ?", name).
		Limit(1)
}

func (r *Repository) priceRangeQuery(minPrice, maxPrice float64) *bun.SelectQuery {
	return r.db.NewSelect().
		Model((*Product)(nil)).
		Column("name").
		Where("p.price BETWEEN ? AND ?", minPrice, maxPrice).
		Order("id ASC")
}

func (r *Repository) featureQuery(feature string) *bun.SelectQuery {
	return r.db.NewSelect().
		Model((*Product)(nil)).
		Column("name").
		Where("p.description ILIKE ?", "%"+escapeLike(feature)+"%").
		Order("id ASC")
}

func (r *Repository) insertOrderQuery(order *Order) *bun.InsertQuery {
	return r.db.NewInsert().
		Model(order).
		Returning("id, created_at")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
