package catalog

import (
	"time"

	contractx "github.com/tanpawarit/Chative-Phone-Sales-Assistant/agent/contract"
	"github.com/uptrace/bun"
)

// Product is a phone on sale. Price and Count are kept non-negative by CHECK
// constraints created in CreateSchema.
type Product struct {
	bun.BaseModel `bun:"table:products,alias:p" yaml:"-"`

	ID          int64   `bun:"id,pk,autoincrement" yaml:"-"`
	Name        string  `bun:"name,notnull,unique" yaml:"name"`
	Description string  `bun:"description,notnull,unique" yaml:"description"`
	Price       float64 `bun:"price,notnull" yaml:"price"`
	Count       int     `bun:"count,notnull,default:0" yaml:"count"`
}

// Order is a customer's purchase request. It does not reference a product.
type Order struct {
	bun.BaseModel `bun:"table:orders,alias:o"`

	ID          int64     `bun:"id,pk,autoincrement"`
	Name        string    `bun:"name,notnull"`
	Address     string    `bun:"address,notnull"`
	PhoneNumber string    `bun:"phone_number,notnull"`
	CreatedAt   time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

func (p Product) toContract() contractx.Product {
	return contractx.Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Count:       p.Count,
	}
}

func (o Order) toContract() contractx.PlacedOrder {
	return contractx.PlacedOrder{
		ID:          o.ID,
		Name:        o.Name,
		PhoneNumber: o.PhoneNumber,
		Address:     o.Address,
		CreatedAt:   o.CreatedAt,
	}
}
