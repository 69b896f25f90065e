package catalog

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/uptrace/bun"
)

type checkConstraint struct {
	table string
	name  string
	expr  string
}

var checkConstraints = []checkConstraint{
	{table: "products", name: "chk_price_non_negative", expr: "price >= 0"},
	{table: "products", name: "chk_count_non_negative", expr: "count >= 0"},
}

const orderNameIndex = "orders_name_idx"

// CreateSchema creates both tables, the order name index and the product CHECK
// constraints. It is safe to run repeatedly.
func (r *Repository) CreateSchema(ctx context.Context) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, model := range []any{(*Product)(nil), (*Order)(nil)} {
			if _, err := tx.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
				return fmt.Errorf("create table for %T: %w", model, err)
			}
		}

		if _, err := tx.NewCreateIndex().
			Model((*Order)(nil)).
			Index(orderNameIndex).
			Column("name").
			IfNotExists().
			Exec(ctx); err != nil {
			return fmt.Errorf("create index %s: %w", orderNameIndex, err)
		}

		for _, c := range checkConstraints {
			exists, err := tx.NewSelect().
				TableExpr("pg_constraint").
				Where("conname = ?", c.name).
				Exists(ctx)
			if err != nil {
				return fmt.Errorf("lookup constraint %s: %w", c.name, err)
			}
			if exists {
				continue
			}
			if _, err := tx.ExecContext(ctx, "ALTER TABLE ? ADD CONSTRAINT ? CHECK (?)",
				bun.Ident(c.table), bun.Ident(c.name), bun.Safe(c.expr)); err != nil {
				return fmt.Errorf("add constraint %s: %w", c.name, err)
			}
			log.Info().Str("table", c.table).Str("constraint", c.name).Msg("check constraint added")
		}
		return nil
	})
}

// UpsertProducts inserts products, replacing description, price and count of
// rows whose name already exists.
func (r *Repository) UpsertProducts(ctx context.Context, products []Product) (int, error) {
	if len(products) == 0 {
		return 0, nil
	}

	res, err := r.db.NewInsert().
		Model(&products).
		On("CONFLICT (name) DO UPDATE").
		Set("description = EXCLUDED.description").
		Set("price = EXCLUDED.price").
		Set("count = EXCLUDED.count").
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("upsert products: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("upsert products: rows affected: %w", err)
	}
	return int(n), nil
}
